package app

import (
	"errors"
	"fmt"

	"github.com/agis/scal/internal/contract"
	"github.com/agis/scal/internal/output"
)

// Exit codes: 2 invalid usage, 3 invalid event data, 4 not found.
const (
	exitGeneric      = 1
	exitInvalidUsage = 2
	exitInvalidEvent = 3
	exitNotFound     = 4
)

type AppError struct {
	Code    int
	Err     error
	Printed bool
}

func (e AppError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

func Wrap(code int, err error) error {
	if err == nil {
		return nil
	}
	return AppError{Code: code, Err: err}
}

func WrapPrinted(code int, err error) error {
	if err == nil {
		return nil
	}
	return AppError{Code: code, Err: err, Printed: true}
}

func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var e AppError
	if errors.As(err, &e) {
		return e.Code
	}
	return exitGeneric
}

func errorCodeForExit(code int) contract.ErrorCode {
	switch code {
	case exitInvalidUsage:
		return contract.ErrInvalidUsage
	case exitInvalidEvent:
		return contract.ErrInvalidEvent
	case exitNotFound:
		return contract.ErrNotFound
	default:
		return contract.ErrGeneric
	}
}

// failWithHint prints the error envelope and wraps the exit code so
// the top-level handler does not print it twice.
func failWithHint(p output.Printer, code contract.ErrorCode, err error, hint string, exit int) error {
	_ = p.Error(code, err.Error(), hint)
	return WrapPrinted(exit, err)
}
