package util

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestTransportErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewTransportError("sw1.example.net", "show port-channel summary", cause)

	if !errors.Is(err, ErrTransport) {
		t.Error("transport error should unwrap to ErrTransport")
	}
	if !strings.Contains(err.Error(), "sw1.example.net") {
		t.Errorf("error message should name the switch: %v", err)
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("error message should carry the cause: %v", err)
	}
}

func TestNotFoundErrorUnwrap(t *testing.T) {
	err := &NotFoundError{Switch: "sw2", ID: 12}

	if !errors.Is(err, ErrNotFound) {
		t.Error("not-found error should unwrap to ErrNotFound")
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.ID != 12 {
		t.Errorf("errors.As should recover the id: %v", err)
	}
}

func TestValidationBuilderEmpty(t *testing.T) {
	var v ValidationBuilder
	if v.HasErrors() {
		t.Error("fresh builder should have no errors")
	}
	if err := v.Build(); err != nil {
		t.Errorf("Build on empty builder should return nil, got %v", err)
	}
}

func TestValidationBuilderAccumulates(t *testing.T) {
	var v ValidationBuilder
	v.Require(false, "description is required").
		Require(true, "this one passes").
		AddErrorf("native VLAN %d invalid", 0)

	err := v.Build()
	if err == nil {
		t.Fatal("expected a validation error")
	}
	if !errors.Is(err, ErrValidationFailed) {
		t.Error("validation error should unwrap to ErrValidationFailed")
	}

	msg := err.Error()
	if !strings.Contains(msg, "description is required") {
		t.Errorf("missing first failure: %s", msg)
	}
	if !strings.Contains(msg, "native VLAN 0 invalid") {
		t.Errorf("missing formatted failure: %s", msg)
	}
	if strings.Contains(msg, "this one passes") {
		t.Errorf("passing condition should not appear: %s", msg)
	}
}

func TestValidationErrorSingleMessage(t *testing.T) {
	var v ValidationBuilder
	v.Require(false, "member ports are required")
	err := v.Build()

	want := "validation failed: member ports are required"
	if err.Error() != want {
		t.Errorf("single failure format: got %q, want %q", err.Error(), want)
	}
}

func TestSentinelsWrapThroughFmt(t *testing.T) {
	wrapped := fmt.Errorf("allocating identifier: %w", ErrAllocationExhausted)
	if !errors.Is(wrapped, ErrAllocationExhausted) {
		t.Error("wrapped sentinel should still match with errors.Is")
	}
}
