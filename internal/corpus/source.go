package corpus

import (
	"path/filepath"
	"strings"
)

// Kind is the source format of a content file.
type Kind int

const (
	// Unsupported marks files that are neither markdown nor notebooks.
	Unsupported Kind = iota
	Markdown
	Notebook
)

func (k Kind) String() string {
	switch k {
	case Markdown:
		return "markdown"
	case Notebook:
		return "notebook"
	default:
		return "unsupported"
	}
}

// SourceFile represents a content file found in a unit folder.
type SourceFile struct {
	Unit    string // Unit folder name (e.g., "unit3")
	RelPath string // Path relative to the book directory, forward slashes (e.g., "unit3/priors.md")
	AbsPath string // Absolute or book-dir-joined file path
	Kind    Kind
}

// KindOf classifies a file name by extension.
func KindOf(name string) Kind {
	switch filepath.Ext(name) {
	case ".md":
		return Markdown
	case ".ipynb":
		return Notebook
	default:
		return Unsupported
	}
}

// isHidden reports whether a file is skipped without a warning: files without
// an extension. A leading dot does not start an extension, so ".DS_Store" is
// hidden while ".draft.md" is markdown.
func isHidden(name string) bool {
	return filepath.Ext(strings.TrimLeft(name, ".")) == ""
}
