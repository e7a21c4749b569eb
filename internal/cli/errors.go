package cli

import (
	"errors"

	"github.com/vk/releasegrid/internal/builder"
)

// Process exit codes. A failed build exits with the build's own code.
const (
	ExitFailure = 1
	ExitUsage   = 2
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// usageError marks errors caused by how the tool was invoked.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func usage(err error) error {
	if err == nil {
		return nil
	}
	return &usageError{err: err}
}

// toExitError maps an error returned by a command to the process exit code.
func toExitError(err error) *ExitError {
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	var ue *usageError
	if errors.As(err, &ue) {
		return &ExitError{Code: ExitUsage, Message: err.Error()}
	}
	var buildErr *builder.BuildFailureError
	if errors.As(err, &buildErr) && buildErr.ExitCode > 0 {
		return &ExitError{Code: buildErr.ExitCode, Message: err.Error()}
	}
	return &ExitError{Code: ExitFailure, Message: err.Error()}
}
