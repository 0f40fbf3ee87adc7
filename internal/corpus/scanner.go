package corpus

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"latexref/internal/contextutil"
)

// DefaultUnits are the content folders of a book laid out as unit1..unit10 plus backmatter.
func DefaultUnits() []string {
	units := make([]string, 0, 11)
	for i := 1; i <= 10; i++ {
		units = append(units, fmt.Sprintf("unit%d", i))
	}
	return append(units, "backmatter")
}

// ScanResult holds the files found in the unit folders, split by kind.
type ScanResult struct {
	Markdown    []SourceFile
	Notebooks   []SourceFile
	Hidden      []string           // Relative paths of skipped hidden or extensionless files
	Unsupported []*FileFormatError // Skipped files with an unsupported extension
}

// Files returns the markdown files followed by the notebooks.
func (r *ScanResult) Files() []SourceFile {
	files := make([]SourceFile, 0, len(r.Markdown)+len(r.Notebooks))
	files = append(files, r.Markdown...)
	return append(files, r.Notebooks...)
}

// Scanner lists content files in a fixed set of unit folders under a book directory.
// Only immediate children of each unit folder are considered.
type Scanner struct {
	bookDir string
	units   []string
}

// NewScanner creates a scanner for the given book directory and unit folder names.
func NewScanner(bookDir string, units []string) *Scanner {
	return &Scanner{bookDir: bookDir, units: units}
}

// BookDir returns the scanned base directory.
func (s *Scanner) BookDir() string {
	return s.bookDir
}

// Validate checks that the book directory and every unit folder exist.
func (s *Scanner) Validate() error {
	if err := checkDir(s.bookDir); err != nil {
		return err
	}

	for _, unit := range s.units {
		if err := checkDir(filepath.Join(s.bookDir, unit)); err != nil {
			return err
		}
	}

	return nil
}

func checkDir(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return &ConfigurationError{Path: path, Reason: "does not exist"}
	}
	if err != nil {
		return &ConfigurationError{Path: path, Reason: err.Error()}
	}
	if !info.IsDir() {
		return &ConfigurationError{Path: path, Reason: "not a directory"}
	}
	return nil
}

// ScanAll validates the directories and then lists every unit folder.
// Unsupported files are logged as warnings and recorded in the result.
func (s *Scanner) ScanAll(ctx context.Context) (*ScanResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if err := s.Validate(); err != nil {
		return nil, err
	}

	result := &ScanResult{}

	for _, unit := range s.units {
		// Check for context cancellation
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		unitPath := filepath.Join(s.bookDir, unit)
		entries, err := os.ReadDir(unitPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read unit %s: %w", unitPath, err)
		}

		for _, entry := range entries {
			name := entry.Name()
			relPath := filepath.ToSlash(filepath.Join(unit, name))

			if entry.IsDir() {
				logger.DebugContext(ctx, "ignoring directory", "rel_path", relPath)
				continue
			}

			if isHidden(name) {
				logger.DebugContext(ctx, "ignoring hidden file", "rel_path", relPath)
				result.Hidden = append(result.Hidden, relPath)
				continue
			}

			file := SourceFile{
				Unit:    unit,
				RelPath: relPath,
				AbsPath: filepath.Join(unitPath, name),
				Kind:    KindOf(name),
			}

			switch file.Kind {
			case Markdown:
				result.Markdown = append(result.Markdown, file)
			case Notebook:
				result.Notebooks = append(result.Notebooks, file)
			default:
				ferr := &FileFormatError{Path: file.AbsPath, Ext: filepath.Ext(name)}
				logger.WarnContext(ctx, ferr.Error(), "rel_path", relPath, "ext", ferr.Ext)
				result.Unsupported = append(result.Unsupported, ferr)
			}
		}
	}

	logger.InfoContext(ctx, "scanned book",
		"book_dir", s.bookDir,
		"units", len(s.units),
		"markdown", len(result.Markdown),
		"notebooks", len(result.Notebooks),
		"skipped", len(result.Unsupported),
	)

	return result, nil
}
