package escl

import (
	"errors"
	"fmt"
)

// ErrNoMorePages is returned by DownloadPage when the device reports 404,
// meaning the job has no further pages to deliver. Callers treat this as
// normal end-of-pages, not a failure.
var ErrNoMorePages = errors.New("no more pages available")

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeValidation indicates a bad mode or configuration, rejected before any I/O
	ErrTypeValidation ErrorType = iota
	// ErrTypeDeviceBusy indicates the device is processing another job (HTTP 409)
	ErrTypeDeviceBusy
	// ErrTypeDeviceUnavailable indicates the device cannot accept jobs right now (HTTP 503)
	ErrTypeDeviceUnavailable
	// ErrTypeNoDocument indicates the feeder has no document loaded (HTTP 500 with Feeder source)
	ErrTypeNoDocument
	// ErrTypeTransport indicates a timeout, connection failure, or unclassified HTTP status
	ErrTypeTransport
	// ErrTypeProtocol indicates an unparseable response or a missing job identifier
	ErrTypeProtocol
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeValidation:
		return "Validation Error"
	case ErrTypeDeviceBusy:
		return "Device Busy"
	case ErrTypeDeviceUnavailable:
		return "Device Unavailable"
	case ErrTypeNoDocument:
		return "No Document"
	case ErrTypeTransport:
		return "Transport Error"
	case ErrTypeProtocol:
		return "Protocol Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// ScanError represents an error that occurred while driving a scanner
type ScanError struct {
	Type       ErrorType // Category of error
	Message    string    // Human-readable error message
	StatusCode int       // HTTP status code (if applicable)
	Device     string    // Device name (for context)
	Err        error     // Underlying error (if any)
}

// Error implements the error interface
func (e *ScanError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *ScanError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a validation error
func NewValidationError(message string) *ScanError {
	return &ScanError{
		Type:    ErrTypeValidation,
		Message: message,
	}
}

// NewDeviceBusyError creates a device-busy error
func NewDeviceBusyError(device string, message string) *ScanError {
	return &ScanError{
		Type:       ErrTypeDeviceBusy,
		Message:    message,
		StatusCode: 409,
		Device:     device,
	}
}

// NewDeviceUnavailableError creates a device-unavailable error
func NewDeviceUnavailableError(device string, message string) *ScanError {
	return &ScanError{
		Type:       ErrTypeDeviceUnavailable,
		Message:    message,
		StatusCode: 503,
		Device:     device,
	}
}

// NewNoDocumentError creates a no-document error
func NewNoDocumentError(device string) *ScanError {
	return &ScanError{
		Type:       ErrTypeNoDocument,
		Message:    "feeder has no document loaded",
		StatusCode: 500,
		Device:     device,
	}
}

// NewTransportError creates a transport-level error
func NewTransportError(device string, message string, statusCode int, err error) *ScanError {
	return &ScanError{
		Type:       ErrTypeTransport,
		Message:    message,
		StatusCode: statusCode,
		Device:     device,
		Err:        err,
	}
}

// NewProtocolError creates a protocol error (unparseable or incomplete device response)
func NewProtocolError(device string, message string) *ScanError {
	return &ScanError{
		Type:    ErrTypeProtocol,
		Message: message,
		Device:  device,
	}
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errorTypeIs(err, ErrTypeValidation)
}

// IsDeviceBusy checks if an error indicates the device is busy
func IsDeviceBusy(err error) bool {
	return errorTypeIs(err, ErrTypeDeviceBusy)
}

// IsDeviceUnavailable checks if an error indicates the device is unavailable
func IsDeviceUnavailable(err error) bool {
	return errorTypeIs(err, ErrTypeDeviceUnavailable)
}

// IsNoDocument checks if an error indicates an empty feeder
func IsNoDocument(err error) bool {
	return errorTypeIs(err, ErrTypeNoDocument)
}

// IsTransportError checks if an error is a transport-level error
func IsTransportError(err error) bool {
	return errorTypeIs(err, ErrTypeTransport)
}

// IsProtocolError checks if an error is a protocol error
func IsProtocolError(err error) bool {
	return errorTypeIs(err, ErrTypeProtocol)
}

func errorTypeIs(err error, et ErrorType) bool {
	var scanErr *ScanError
	if errors.As(err, &scanErr) {
		return scanErr.Type == et
	}
	return false
}
