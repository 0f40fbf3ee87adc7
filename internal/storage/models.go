package storage

import "time"

// Run is one successful extraction over a book.
type Run struct {
	ID         string // UUID, assigned by SaveRun when empty
	BookDir    string
	OutputPath string
	FileCount  int // Markdown and notebook files processed
	MacroCount int // Distinct macros written after cleaning
	CreatedAt  time.Time
	Usage      []MacroUsage
}

// MacroUsage counts the files of a run that use a macro.
type MacroUsage struct {
	Macro string
	Files int
}
