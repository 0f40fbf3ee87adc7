package extract

import (
	"errors"
	"fmt"
)

// ErrPersistence is matched by every PersistenceError.
var ErrPersistence = errors.New("persistence error")

// PersistenceError reports a failure writing the macro list.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to write macro list %s: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() []error {
	return []error{ErrPersistence, e.Err}
}
