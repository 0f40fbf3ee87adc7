package corpus

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is returned when the book directory or a unit folder is unusable.
	ErrConfiguration = errors.New("configuration error")
	// ErrFileFormat is returned for files that are neither markdown nor notebooks.
	ErrFileFormat = errors.New("unsupported file format")
)

// ConfigurationError reports a missing or invalid input directory.
type ConfigurationError struct {
	Path   string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Path, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

// FileFormatError reports a file whose extension is not supported. It is a
// warning: the file is skipped and the run continues.
type FileFormatError struct {
	Path string
	Ext  string
}

func (e *FileFormatError) Error() string {
	return fmt.Sprintf("non-hidden file type ignored: %s is not .md or .ipynb", e.Path)
}

func (e *FileFormatError) Unwrap() error {
	return ErrFileFormat
}
