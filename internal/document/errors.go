package document

import (
	"errors"
	"fmt"
)

// ErrInvalidFileNameSource indicates the record field the file name derives
// from was empty or unusable.
var ErrInvalidFileNameSource = errors.New("invalid file name source")

// UnsupportedNameError indicates a document kind outside the supported set.
// The request must not reach the renderer.
type UnsupportedNameError struct {
	Name Name
}

func (e UnsupportedNameError) Error() string {
	return fmt.Sprintf("unsupported document name: %q", string(e.Name))
}

// InvalidDateError indicates letterDateRequested could not be parsed.
type InvalidDateError struct {
	Value string
	Err   error
}

func (e InvalidDateError) Error() string {
	return fmt.Sprintf("invalid letter date %q: %v", e.Value, e.Err)
}

func (e InvalidDateError) Unwrap() error { return e.Err }
