package extract

import (
	"os"
	"path/filepath"
	"strings"
)

// WriteMacros overwrites path with one macro name per line.
func WriteMacros(path string, names []string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &PersistenceError{Path: path, Err: err}
		}
	}

	var b strings.Builder
	for _, name := range names {
		b.WriteString(name)
		b.WriteByte('\n')
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return &PersistenceError{Path: path, Err: err}
	}

	return nil
}
