// Package clierror carries exit codes and operator hints from commands to main.
package clierror

import (
	"context"
	"errors"
	"fmt"

	"github.com/qudata/gatekeeper/internal/domain"
)

// Exit codes.
const (
	ExitSuccess      = 0   // Completed, or denied and acknowledged
	ExitGeneral      = 1   // Unknown/unhandled error
	ExitInvalidInput = 2   // Username rejected
	ExitNetwork      = 3   // Allow-list unreachable
	ExitInterrupted  = 130 // SIGINT
)

// Error codes for programmatic handling.
const (
	CodeInvalidInput       = "INVALID_INPUT"
	CodeNetworkUnavailable = "NETWORK_UNAVAILABLE"
	CodeInterrupted        = "INTERRUPTED"
	CodeInternalError      = "INTERNAL_ERROR"
)

// CLIError is a failure ready to be shown to the operator.
type CLIError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Hint     string `json:"hint,omitempty"`
	ExitCode int    `json:"-"`
	Err      error  `json:"-"`
}

func (e *CLIError) Error() string {
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// InvalidInput is returned when the operator never supplied a usable username.
func InvalidInput(err error) *CLIError {
	return &CLIError{
		Code:     CodeInvalidInput,
		Message:  err.Error(),
		Hint:     "Enter a non-empty codename",
		ExitCode: ExitInvalidInput,
		Err:      err,
	}
}

// NetworkUnavailable is returned when the allow-list could not be fetched.
func NetworkUnavailable(err error) *CLIError {
	return &CLIError{
		Code:     CodeNetworkUnavailable,
		Message:  err.Error(),
		Hint:     "Check network connectivity and GATEKEEPER_ALLOWLIST_URL",
		ExitCode: ExitNetwork,
		Err:      err,
	}
}

// Interrupted is returned when the session was cancelled by a signal.
func Interrupted() *CLIError {
	return &CLIError{
		Code:     CodeInterrupted,
		Message:  "session interrupted by user",
		ExitCode: ExitInterrupted,
		Err:      context.Canceled,
	}
}

// InternalError wraps anything else.
func InternalError(err error) *CLIError {
	msg := "an unexpected internal error occurred"
	if err != nil {
		msg = fmt.Sprintf("unexpected error: %s", err.Error())
	}
	return &CLIError{
		Code:     CodeInternalError,
		Message:  msg,
		ExitCode: ExitGeneral,
		Err:      err,
	}
}

// From maps an arbitrary error onto a CLIError. Cancellation wins over the
// error it caused, so an interrupted fetch reports as an interruption.
func From(err error) *CLIError {
	if err == nil {
		return nil
	}

	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr
	}
	if errors.Is(err, context.Canceled) {
		return Interrupted()
	}

	var invalid *domain.InvalidInputError
	if errors.As(err, &invalid) {
		return InvalidInput(err)
	}
	var unavailable *domain.NetworkUnavailableError
	if errors.As(err, &unavailable) {
		return NetworkUnavailable(err)
	}
	return InternalError(err)
}

// Format renders the error for the terminal.
func Format(err *CLIError) string {
	output := fmt.Sprintf("Error [%s]: %s", err.Code, err.Message)
	if err.Hint != "" {
		output += fmt.Sprintf("\nHint: %s", err.Hint)
	}
	return output
}
