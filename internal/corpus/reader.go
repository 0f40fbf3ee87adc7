package corpus

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ReadSource returns the text of a content file ready for LaTeX parsing.
// Markdown is returned unmodified. For notebooks the source of every cell,
// code and markdown alike, is concatenated in order without separators.
func ReadSource(file SourceFile) (string, error) {
	switch file.Kind {
	case Markdown:
		content, err := os.ReadFile(file.AbsPath)
		if err != nil {
			return "", fmt.Errorf("failed to read file %s: %w", file.AbsPath, err)
		}
		return string(content), nil
	case Notebook:
		f, err := os.Open(file.AbsPath)
		if err != nil {
			return "", fmt.Errorf("failed to open notebook %s: %w", file.AbsPath, err)
		}
		defer func() {
			_ = f.Close()
		}()

		text, err := ReadNotebook(f)
		if err != nil {
			return "", fmt.Errorf("failed to read notebook %s: %w", file.AbsPath, err)
		}
		return text, nil
	default:
		return "", &FileFormatError{Path: file.AbsPath, Ext: filepath.Ext(file.AbsPath)}
	}
}

// notebook is the subset of the nbformat 4 document needed here.
type notebook struct {
	Cells []struct {
		CellType string     `json:"cell_type"`
		Source   cellSource `json:"source"`
	} `json:"cells"`
}

// cellSource accepts both encodings nbformat allows: a single string or a list of lines.
type cellSource string

func (s *cellSource) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*s = cellSource(text)
		return nil
	}

	var lines []string
	if err := json.Unmarshal(data, &lines); err != nil {
		return fmt.Errorf("cell source must be a string or a list of strings: %w", err)
	}
	*s = cellSource(strings.Join(lines, ""))
	return nil
}

// ReadNotebook decodes a notebook and concatenates the source of all its cells.
func ReadNotebook(r io.Reader) (string, error) {
	var nb notebook
	if err := json.NewDecoder(r).Decode(&nb); err != nil {
		return "", fmt.Errorf("failed to decode notebook: %w", err)
	}

	var b strings.Builder
	for _, cell := range nb.Cells {
		b.WriteString(string(cell.Source))
	}
	return b.String(), nil
}
