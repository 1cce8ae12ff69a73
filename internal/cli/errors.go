package cli

import (
	"errors"

	"github.com/specialistvlad/kisscoast/internal/app"
	"github.com/specialistvlad/kisscoast/internal/artifact"
	"github.com/specialistvlad/kisscoast/internal/executor"
)

// Process exit codes.
const (
	ExitFailure        = 1
	ExitUsage          = 2
	ExitInputNotFound  = 3
	ExitAlreadyCoasted = 4
	ExitScratchArea    = 5
	ExitWorkerFailure  = 6
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

// usageError marks malformed flags and arguments.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// toExitError converts err to an *ExitError carrying the exit code for its
// cause. A nil err stays nil.
func toExitError(err error) error {
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	return &ExitError{Code: exitCode(err), Message: err.Error()}
}

func exitCode(err error) int {
	var ue *usageError
	switch {
	case errors.As(err, &ue), errors.Is(err, app.ErrConfig):
		return ExitUsage
	case errors.Is(err, app.ErrInputNotFound):
		return ExitInputNotFound
	case errors.Is(err, app.ErrAlreadyCoasted):
		return ExitAlreadyCoasted
	case errors.Is(err, artifact.ErrScratchArea):
		return ExitScratchArea
	case errors.Is(err, executor.ErrWorkerFailure):
		return ExitWorkerFailure
	default:
		return ExitFailure
	}
}
