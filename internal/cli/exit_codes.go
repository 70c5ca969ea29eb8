package cli

import (
	"errors"
	"fmt"
)

// Exit codes for the relnote CLI.
// Each failure kind has its own code so CI pipelines can branch on it.
const (
	// ExitSuccess indicates the message was printed or delivered
	ExitSuccess = 0

	// ExitGeneral indicates an unclassified failure
	ExitGeneral = 1

	// ExitInvalidArguments indicates invalid flags or arguments
	ExitInvalidArguments = 2

	// ExitConfigError indicates the configuration could not be loaded or is invalid
	ExitConfigError = 3

	// ExitChangelogUnreadable indicates the changelog is missing or could not be read
	ExitChangelogUnreadable = 4

	// ExitNoHeaderFound indicates the changelog contains no version header
	ExitNoHeaderFound = 5

	// ExitMissingWebhook indicates a send was requested without a webhook URL
	ExitMissingWebhook = 6

	// ExitSendFailed indicates a webhook rejected or failed to receive the message
	ExitSendFailed = 7
)

// ExitError carries a process exit code alongside the error that caused it.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// withExitCode attaches an exit code to err.
func withExitCode(code int, err error) error {
	return &ExitError{Code: code, Err: err}
}

// ExitCode returns the exit code for err: the code of the first ExitError
// in its chain, ExitSuccess for nil, and ExitGeneral otherwise.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitGeneral
}
