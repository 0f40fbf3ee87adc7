package reference

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_completer.go -package=mocks latexref/internal/reference Completer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"latexref/internal/contextutil"
	"latexref/internal/llm"
)

// ErrEmptyMacroList is returned when the macro list file holds no names.
var ErrEmptyMacroList = errors.New("macro list is empty")

// Completer is the completion service as seen by the reference stage.
type Completer interface {
	// ChatWithMessages sends a conversation and returns the reply text.
	ChatWithMessages(ctx context.Context, messages []llm.Message, params llm.ChatParams) (string, error)
}

// Options configure reference generation.
type Options struct {
	Model       string
	Temperature float32
	OutputDir   string           // Directory the reference document is written to
	Subject     string           // Course named in the user message, DefaultSubject when empty
	Now         func() time.Time // Clock for the file name timestamp, time.Now when nil
}

// Generator turns a macro list into a categorized markdown reference.
type Generator struct {
	completer Completer
	opts      Options
}

// NewGenerator creates a new Generator.
func NewGenerator(completer Completer, opts Options) *Generator {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}

	return &Generator{completer: completer, opts: opts}
}

// FileName returns the reference document name for a model and time,
// e.g. latex_reference_gpt-4_2023-07-15_22-36.md.
func FileName(model string, t time.Time) string {
	model = strings.NewReplacer("/", "-", string(filepath.Separator), "-").Replace(model)
	return fmt.Sprintf("latex_reference_%s_%s.md", model, t.Format("2006-01-02_15-04"))
}

// Generate reads the macro list at macroPath, asks the completer for a
// reference document and writes the reply. It returns the written path.
func (g *Generator) Generate(ctx context.Context, macroPath string) (string, error) {
	logger := contextutil.LoggerFromContext(ctx)

	content, err := os.ReadFile(macroPath)
	if err != nil {
		return "", fmt.Errorf("failed to read macro list: %w", err)
	}

	macroList := string(content)
	count := len(strings.Fields(macroList))
	if count == 0 {
		return "", fmt.Errorf("%s: %w", macroPath, ErrEmptyMacroList)
	}

	logger.InfoContext(ctx, "requesting reference document", "model", g.opts.Model, "macros", count)

	reply, err := g.completer.ChatWithMessages(ctx, Messages(g.opts.Subject, macroList), llm.ChatParams{
		Model:       g.opts.Model,
		Temperature: g.opts.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate reference: %w", err)
	}

	outline := ParseOutline([]byte(reply))
	for _, problem := range outline.Problems() {
		logger.WarnContext(ctx, "reference document does not follow the requested format", "problem", problem)
	}

	if err := os.MkdirAll(g.opts.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(g.opts.OutputDir, FileName(g.opts.Model, g.opts.Now()))
	if err := os.WriteFile(path, []byte(reply), 0644); err != nil {
		return "", fmt.Errorf("failed to write reference: %w", err)
	}

	logger.InfoContext(ctx, "wrote reference document",
		"path", path,
		"categories", len(outline.Categories),
		"entries", outline.Entries(),
	)

	return path, nil
}
