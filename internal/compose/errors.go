package compose

import (
	"fmt"
	"strings"
)

// CommandFailedError is returned when an external command exits non-zero
// or cannot be started at all. ExitCode is -1 when no exit status exists.
type CommandFailedError struct {
	Args     []string
	ExitCode int
	Err      error
}

func (e *CommandFailedError) Error() string {
	cmd := strings.Join(e.Args, " ")
	if e.ExitCode < 0 {
		return fmt.Sprintf("command %q failed: %v", cmd, e.Err)
	}
	return fmt.Sprintf("command %q exited with code %d", cmd, e.ExitCode)
}

func (e *CommandFailedError) Unwrap() error {
	return e.Err
}
