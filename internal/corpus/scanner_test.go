package corpus

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeBook creates files (paths relative to the book dir) and returns the book dir.
func writeBook(t *testing.T, files map[string]string) string {
	t.Helper()

	bookDir := t.TempDir()
	for rel, content := range files {
		fullPath := filepath.Join(bookDir, rel)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			t.Fatalf("Failed to create dir: %v", err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to create file: %v", err)
		}
	}
	return bookDir
}

func TestDefaultUnits(t *testing.T) {
	units := DefaultUnits()
	if len(units) != 11 {
		t.Fatalf("DefaultUnits() returned %d units, want 11", len(units))
	}
	if units[0] != "unit1" || units[9] != "unit10" || units[10] != "backmatter" {
		t.Errorf("DefaultUnits() = %v", units)
	}
}

func TestScanner_ScanAll(t *testing.T) {
	bookDir := writeBook(t, map[string]string{
		"unit1/intro.md":        "# Intro",
		"unit1/priors.ipynb":    `{"cells": []}`,
		"unit1/notes.txt":       "plain",
		"unit1/Makefile":        "all:",
		"unit1/.DS_Store":       "",
		"unit1/images/plot.png": "png",
		"unit2/posterior.md":    "# Posterior",
		"unit2/nested/deep.md":  "# Not scanned",
		"unit3/sampling.ipynb":  `{"cells": []}`,
		"other/ignored.md":      "# Not a unit",
	})

	scanner := NewScanner(bookDir, []string{"unit1", "unit2", "unit3"})
	result, err := scanner.ScanAll(context.Background())
	if err != nil {
		t.Fatalf("ScanAll() error = %v", err)
	}

	wantMarkdown := []string{"unit1/intro.md", "unit2/posterior.md"}
	if len(result.Markdown) != len(wantMarkdown) {
		t.Fatalf("ScanAll() found %d markdown files, want %d", len(result.Markdown), len(wantMarkdown))
	}
	for i, want := range wantMarkdown {
		if result.Markdown[i].RelPath != want {
			t.Errorf("Markdown[%d].RelPath = %q, want %q", i, result.Markdown[i].RelPath, want)
		}
		if result.Markdown[i].Kind != Markdown {
			t.Errorf("Markdown[%d].Kind = %v, want markdown", i, result.Markdown[i].Kind)
		}
	}

	wantNotebooks := []string{"unit1/priors.ipynb", "unit3/sampling.ipynb"}
	if len(result.Notebooks) != len(wantNotebooks) {
		t.Fatalf("ScanAll() found %d notebooks, want %d", len(result.Notebooks), len(wantNotebooks))
	}
	for i, want := range wantNotebooks {
		if result.Notebooks[i].RelPath != want {
			t.Errorf("Notebooks[%d].RelPath = %q, want %q", i, result.Notebooks[i].RelPath, want)
		}
	}

	if len(result.Hidden) != 2 {
		t.Errorf("ScanAll() hidden = %v, want Makefile and .DS_Store", result.Hidden)
	}

	if len(result.Unsupported) != 1 {
		t.Fatalf("ScanAll() unsupported = %d, want 1", len(result.Unsupported))
	}
	if result.Unsupported[0].Ext != ".txt" {
		t.Errorf("Unsupported[0].Ext = %q, want .txt", result.Unsupported[0].Ext)
	}
	if !errors.Is(result.Unsupported[0], ErrFileFormat) {
		t.Error("Unsupported entries should match ErrFileFormat")
	}

	files := result.Files()
	if len(files) != 4 {
		t.Fatalf("Files() returned %d files, want 4", len(files))
	}
	if files[0].Kind != Markdown || files[3].Kind != Notebook {
		t.Error("Files() should list markdown files before notebooks")
	}
}

func TestIsHidden(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"Makefile", true},
		{".DS_Store", true},
		{".gitignore", true},
		{"intro.md", false},
		{".draft.md", false},
		{".notes.txt", false},
		{"._intro.md", false},
	}

	for _, tt := range tests {
		if got := isHidden(tt.name); got != tt.want {
			t.Errorf("isHidden(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestScanner_ScanAll_DotfilesWithExtension(t *testing.T) {
	bookDir := writeBook(t, map[string]string{
		"unit1/.draft.md":  "$\\alpha$",
		"unit1/.notes.txt": "plain",
		"unit1/.DS_Store":  "",
	})

	result, err := NewScanner(bookDir, []string{"unit1"}).ScanAll(context.Background())
	if err != nil {
		t.Fatalf("ScanAll() error = %v", err)
	}

	if len(result.Markdown) != 1 || result.Markdown[0].RelPath != "unit1/.draft.md" {
		t.Errorf("ScanAll() markdown = %v, want unit1/.draft.md", result.Markdown)
	}
	if len(result.Unsupported) != 1 || result.Unsupported[0].Ext != ".txt" {
		t.Errorf("ScanAll() unsupported = %v, want .notes.txt", result.Unsupported)
	}
	if len(result.Hidden) != 1 || result.Hidden[0] != "unit1/.DS_Store" {
		t.Errorf("ScanAll() hidden = %v, want unit1/.DS_Store", result.Hidden)
	}
}

func TestScanner_SourceFileFields(t *testing.T) {
	bookDir := writeBook(t, map[string]string{"unit4/mcmc.md": "x"})

	result, err := NewScanner(bookDir, []string{"unit4"}).ScanAll(context.Background())
	if err != nil {
		t.Fatalf("ScanAll() error = %v", err)
	}
	if len(result.Markdown) != 1 {
		t.Fatalf("ScanAll() found %d files, want 1", len(result.Markdown))
	}

	file := result.Markdown[0]
	if file.Unit != "unit4" {
		t.Errorf("SourceFile.Unit = %q, want unit4", file.Unit)
	}
	if want := filepath.Join(bookDir, "unit4", "mcmc.md"); file.AbsPath != want {
		t.Errorf("SourceFile.AbsPath = %q, want %q", file.AbsPath, want)
	}
}

func TestScanner_ConfigurationErrors(t *testing.T) {
	bookDir := writeBook(t, map[string]string{
		"unit1/a.md": "x",
		"afile":      "x",
	})

	tests := []struct {
		name    string
		bookDir string
		units   []string
	}{
		{"missing book dir", filepath.Join(bookDir, "nope"), []string{"unit1"}},
		{"missing unit", bookDir, []string{"unit1", "unit2"}},
		{"unit is a file", bookDir, []string{"afile"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewScanner(tt.bookDir, tt.units).ScanAll(context.Background())
			if err == nil {
				t.Fatal("ScanAll() expected error, got nil")
			}

			var cerr *ConfigurationError
			if !errors.As(err, &cerr) {
				t.Errorf("ScanAll() error = %v, want *ConfigurationError", err)
			}
			if !errors.Is(err, ErrConfiguration) {
				t.Errorf("ScanAll() error = %v, want errors.Is ErrConfiguration", err)
			}
		})
	}
}

func TestScanner_ContextCancellation(t *testing.T) {
	bookDir := writeBook(t, map[string]string{"unit1/a.md": "x"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewScanner(bookDir, []string{"unit1"}).ScanAll(ctx)
	if err != context.Canceled {
		t.Errorf("ScanAll() error = %v, want context.Canceled", err)
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		want Kind
	}{
		{"a.md", Markdown},
		{"a.ipynb", Notebook},
		{"a.txt", Unsupported},
		{"a.MD", Unsupported},
		{"README", Unsupported},
	}

	for _, tt := range tests {
		if got := KindOf(tt.name); got != tt.want {
			t.Errorf("KindOf(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
