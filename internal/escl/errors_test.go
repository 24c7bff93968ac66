package escl

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestScanErrorMessage(t *testing.T) {
	err := NewDeviceBusyError("Office MFP", "device processing another job")

	if !strings.Contains(err.Error(), "Device Busy") {
		t.Errorf("Error() = %q, should contain type name", err.Error())
	}
	if !strings.Contains(err.Error(), "device processing another job") {
		t.Errorf("Error() = %q, should contain message", err.Error())
	}
	if err.StatusCode != 409 {
		t.Errorf("StatusCode = %d, want 409", err.StatusCode)
	}
}

func TestScanErrorUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewTransportError("Office MFP", "page download failed", 0, cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if !strings.Contains(err.Error(), "connection reset") {
		t.Errorf("Error() = %q, should include cause", err.Error())
	}
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		err   error
		check func(error) bool
	}{
		{NewValidationError("bad mode"), IsValidationError},
		{NewDeviceBusyError("d", "busy"), IsDeviceBusy},
		{NewDeviceUnavailableError("d", "down"), IsDeviceUnavailable},
		{NewNoDocumentError("d"), IsNoDocument},
		{NewTransportError("d", "failed", 502, nil), IsTransportError},
		{NewProtocolError("d", "no job id"), IsProtocolError},
	}

	for _, tt := range tests {
		if !tt.check(tt.err) {
			t.Errorf("predicate mismatch for %v", tt.err)
		}
	}

	// Predicates must survive wrapping
	wrapped := fmt.Errorf("session failed: %w", NewNoDocumentError("d"))
	if !IsNoDocument(wrapped) {
		t.Error("IsNoDocument should match a wrapped ScanError")
	}

	if IsDeviceBusy(errors.New("plain")) {
		t.Error("IsDeviceBusy should not match a plain error")
	}
}
