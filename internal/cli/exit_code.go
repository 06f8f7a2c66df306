package cli

import (
	"errors"

	"github.com/bigbrotr/sitenav/pkg/navconfig"
)

// Process exit statuses. diff reuses ExitFailure to signal changes so
// scripts can treat "changed" like a failed check.
const (
	ExitOK         = 0
	ExitFailure    = 1
	ExitValidation = 2
)

// ExitError attaches an exit status to a command error.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e == nil || e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func exitCodeError(code int, err error) error {
	if code <= ExitOK || err == nil {
		return err
	}
	return &ExitError{Code: code, Err: err}
}

// ExitCode maps a command error to a process exit status. Site
// configuration violations exit with ExitValidation even when no command
// tagged them.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var coded *ExitError
	if errors.As(err, &coded) && coded.Code > ExitOK {
		return coded.Code
	}
	var buildErr *navconfig.BuildError
	if errors.As(err, &buildErr) {
		return ExitValidation
	}
	return ExitFailure
}
