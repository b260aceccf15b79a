package tool

import (
	"errors"
	"fmt"
)

// CommandNotFoundError is returned when the active version has no executable with the requested name
type CommandNotFoundError struct {
	Name string
}

func (e *CommandNotFoundError) Error() string {
	return fmt.Sprintf("command not found: %s", e.Name)
}

// SpawnError is returned when the operating system cannot start a child process
type SpawnError struct {
	Name string
	Err  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to execute process %s: %v", e.Name, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// IsCommandNotFound checks if an error is a CommandNotFoundError
func IsCommandNotFound(err error) bool {
	var target *CommandNotFoundError
	return errors.As(err, &target)
}
