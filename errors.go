package pylaunch

import "fmt"

// LaunchError is the error type for fatal startup failures. Every failure on
// the bootstrap path is a LaunchError; there are no recoverable conditions
// and no retries.
type LaunchError struct {
	// Op is the failing operation: "discover", "probe", or "launch".
	Op string

	// Path is the filesystem path involved, if any.
	Path string

	// Err is the underlying cause.
	Err error
}

func (e *LaunchError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("pylaunch %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("pylaunch %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying cause so errors.Is and errors.As see through
// the wrapper (e.g. to fs.ErrNotExist for missing paths).
func (e *LaunchError) Unwrap() error {
	return e.Err
}
