package util

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for workflow failures
var (
	ErrNotFound            = errors.New("port-channel not found")
	ErrAllocationExhausted = errors.New("no free port-channel identifier")
	ErrUnsupportedMode     = errors.New("switchport mode not implemented")
	ErrUnsupportedFeature  = errors.New("feature not supported on platform")
	ErrValidationFailed    = errors.New("validation failed")
	ErrTransport           = errors.New("transport failure")
)

// TransportError reports a failed remote command execution on one switch.
// A transport failure is fatal for that switch's operation only; the other
// switch of a redundant pair is still attempted.
type TransportError struct {
	Switch  string
	Command string
	Cause   error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure on %s running %q: %v", e.Switch, e.Command, e.Cause)
}

func (e *TransportError) Unwrap() error {
	return ErrTransport
}

// NewTransportError creates a transport error for a switch/command pair
func NewTransportError(sw, command string, cause error) *TransportError {
	return &TransportError{Switch: sw, Command: command, Cause: cause}
}

// NotFoundError reports a missing port-channel on a specific switch.
type NotFoundError struct {
	Switch string
	ID     int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("port-channel %d not found on %s", e.ID, e.Switch)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// ValidationError represents one or more validation failures
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return "validation failed: " + e.Errors[0]
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// ValidationBuilder helps accumulate validation errors
type ValidationBuilder struct {
	errors []string
}

// Require adds message when condition is false
func (v *ValidationBuilder) Require(condition bool, message string) *ValidationBuilder {
	if !condition {
		v.errors = append(v.errors, message)
	}
	return v
}

// AddErrorf adds a formatted error message unconditionally
func (v *ValidationBuilder) AddErrorf(format string, args ...interface{}) *ValidationBuilder {
	v.errors = append(v.errors, fmt.Sprintf(format, args...))
	return v
}

// HasErrors returns true if there are validation errors
func (v *ValidationBuilder) HasErrors() bool {
	return len(v.errors) > 0
}

// Build returns the validation error or nil if no errors
func (v *ValidationBuilder) Build() error {
	if len(v.errors) == 0 {
		return nil
	}
	return &ValidationError{Errors: v.errors}
}
