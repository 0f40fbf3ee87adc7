package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"latexref/internal/contextutil"
	"latexref/internal/corpus"
	"latexref/internal/latex"
	"latexref/internal/macros"
	"latexref/internal/storage"
)

// Options configure an extraction run.
type Options struct {
	OutputPath string
	Denylist   []string
	// SkipParseErrors logs files the parser rejects and continues without them.
	// By default a parse error aborts the run.
	SkipParseErrors bool
	// Strict selects strict LaTeX parsing, see latex.Options.
	Strict bool
}

// Result summarizes a finished extraction.
type Result struct {
	RunID         string         // Empty when run history is disabled or could not be saved
	Files         int            // Files whose macros were collected
	Unsupported   int            // Files skipped for their extension
	ParseFailures []string       // Relative paths skipped because of parse errors
	Macros        []string       // Cleaned macro names, sorted
	Usage         map[string]int // Number of files using each cleaned macro
}

// Pipeline extracts the macros used across a book and writes them to a list file.
type Pipeline struct {
	scanner *corpus.Scanner
	runs    storage.RunStore
	cleaner *macros.Cleaner
	opts    Options
}

// NewPipeline creates a new extraction pipeline. runs may be nil to disable run history.
func NewPipeline(scanner *corpus.Scanner, runs storage.RunStore, opts Options) *Pipeline {
	return &Pipeline{
		scanner: scanner,
		runs:    runs,
		cleaner: macros.NewCleaner(opts.Denylist),
		opts:    opts,
	}
}

// ExtractFile reads and parses one content file and returns the macros it uses.
func (p *Pipeline) ExtractFile(ctx context.Context, file corpus.SourceFile) (macros.Set, error) {
	text, err := corpus.ReadSource(file)
	if err != nil {
		return nil, err
	}

	nodes, err := latex.NewParser(strings.NewReader(text), latex.Options{Strict: p.opts.Strict}).Parse()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", file.RelPath, err)
	}

	return macros.Collect(nodes), nil
}

// Run scans the book, collects the macros of every file, cleans the union and
// writes it to the output path. Any error aborts the run before the output is
// written, except parse errors when SkipParseErrors is set.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	logger := contextutil.LoggerFromContext(ctx)

	scan, err := p.scanner.ScanAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to scan book: %w", err)
	}

	result := &Result{Unsupported: len(scan.Unsupported)}
	all := macros.NewSet()
	counts := make(map[string]int)

	for _, file := range scan.Files() {
		// Check for context cancellation
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		found, err := p.ExtractFile(ctx, file)
		if err != nil {
			if p.opts.SkipParseErrors && errors.Is(err, latex.ErrParse) {
				logger.WarnContext(ctx, "skipping file with parse error", "rel_path", file.RelPath, "error", err)
				result.ParseFailures = append(result.ParseFailures, file.RelPath)
				continue
			}
			return nil, err
		}

		for name := range found {
			counts[name]++
		}
		all = all.Union(found)
		result.Files++

		logger.DebugContext(ctx, "processed file", "rel_path", file.RelPath, "kind", file.Kind.String(), "macros", found.Len())
	}

	clean := p.cleaner.Clean(all)
	result.Macros = clean.Sorted()
	result.Usage = make(map[string]int, clean.Len())
	for _, name := range result.Macros {
		result.Usage[name] = counts[name]
	}

	if err := WriteMacros(p.opts.OutputPath, result.Macros); err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "wrote macro list",
		"path", p.opts.OutputPath,
		"files", result.Files,
		"macros", len(result.Macros),
		"removed_artifacts", all.Len()-clean.Len(),
		"parse_failures", len(result.ParseFailures),
	)

	if p.runs != nil {
		p.record(ctx, result)
	}

	return result, nil
}

// record stores the run in the history. A failure here does not undo the written list.
func (p *Pipeline) record(ctx context.Context, result *Result) {
	logger := contextutil.LoggerFromContext(ctx)

	run := &storage.Run{
		BookDir:    p.scanner.BookDir(),
		OutputPath: p.opts.OutputPath,
		FileCount:  result.Files,
		MacroCount: len(result.Macros),
		Usage:      make([]storage.MacroUsage, 0, len(result.Macros)),
	}
	for _, name := range result.Macros {
		run.Usage = append(run.Usage, storage.MacroUsage{Macro: name, Files: result.Usage[name]})
	}

	if err := p.runs.SaveRun(ctx, run); err != nil {
		logger.WarnContext(ctx, "failed to record run history", "error", err)
		return
	}

	result.RunID = run.ID
	logger.InfoContext(ctx, "recorded run", "run_id", run.ID)
}
