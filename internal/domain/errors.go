package domain

import "fmt"

// InvalidInputError reports caller-supplied input that cannot be used,
// such as an empty username.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NetworkUnavailableError is returned once every fetch attempt has failed.
// Err holds the last observed failure.
type NetworkUnavailableError struct {
	URL      string
	Attempts int
	Err      error
}

func (e *NetworkUnavailableError) Error() string {
	if e.Attempts > 0 {
		return fmt.Sprintf("allow-list %s unavailable after %d attempt(s): %v", e.URL, e.Attempts, e.Err)
	}
	return fmt.Sprintf("allow-list %s unavailable: %v", e.URL, e.Err)
}

func (e *NetworkUnavailableError) Unwrap() error {
	return e.Err
}

// HostQueryError wraps a failed lookup of a single host attribute.
// It is absorbed by the fingerprint generator and never surfaced.
type HostQueryError struct {
	Attribute string
	Err       error
}

func (e *HostQueryError) Error() string {
	return fmt.Sprintf("host query %s: %v", e.Attribute, e.Err)
}

func (e *HostQueryError) Unwrap() error {
	return e.Err
}

// StatusError is a non-200 answer from the allow-list endpoint.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}
