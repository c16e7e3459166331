package diag

import (
	"errors"
	"fmt"
)

// ErrNotDirectory is wrapped by SetupError when the root exists but is a file.
var ErrNotDirectory = errors.New("not a directory")

// SetupError is the only fatal error of a run: the scan root is missing or is
// not a directory. Nothing has been traversed when it is returned.
type SetupError struct {
	Root string
	Err  error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("setup: root %q: %v", e.Root, e.Err)
}

func (e *SetupError) Unwrap() error {
	return e.Err
}
