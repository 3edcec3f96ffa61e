package protocol

import (
	"encoding/hex"
	"fmt"
)

// ErrorType represents the category of a protocol or transport failure.
type ErrorType int

const (
	// ErrTypeTransportUnavailable indicates the device could not be found or
	// opened, or disappeared mid-exchange. Fatal; retrying without
	// re-plugging the device will not help.
	ErrTypeTransportUnavailable ErrorType = iota
	// ErrTypeDeviceUnresponsive indicates the device did not answer a request
	// within the receive timeout. The caller may retry the whole command.
	ErrTypeDeviceUnresponsive
	// ErrTypeMalformedResponse indicates a framing, length or marker
	// mismatch in a received report. Treated as protocol desync; never
	// retried automatically because the device state is unknown.
	ErrTypeMalformedResponse
	// ErrTypeUnrecognizedFieldValue indicates a decoder met a byte pattern
	// outside the documented range. The raw bytes are attached for diagnosis.
	ErrTypeUnrecognizedFieldValue
	// ErrTypePayloadTooLarge indicates an attempt to build a command whose
	// payload does not fit the fixed report size. Programmer error.
	ErrTypePayloadTooLarge
)

// String returns a human-readable name for the error type.
func (et ErrorType) String() string {
	switch et {
	case ErrTypeTransportUnavailable:
		return "Transport Unavailable"
	case ErrTypeDeviceUnresponsive:
		return "Device Unresponsive"
	case ErrTypeMalformedResponse:
		return "Malformed Response"
	case ErrTypeUnrecognizedFieldValue:
		return "Unrecognized Field Value"
	case ErrTypePayloadTooLarge:
		return "Payload Too Large"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// DeviceError represents a failure while talking to the data logger.
// All errors crossing the facade boundary are of this type.
type DeviceError struct {
	Type      ErrorType // Category of error
	Op        string    // Command or step that failed (e.g. "status", "record-start: write config")
	Message   string    // Human-readable error message
	Raw       []byte    // Offending raw bytes, if any
	Err       error     // Underlying error, if any
	Retryable bool      // Whether retrying the whole command may help
}

// Error implements the error interface.
func (e *DeviceError) Error() string {
	msg := e.Message
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if len(e.Raw) > 0 {
		msg = fmt.Sprintf("%s (raw: %s)", msg, hex.EncodeToString(e.Raw))
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, msg)
}

// Unwrap returns the underlying error for error chain inspection.
func (e *DeviceError) Unwrap() error {
	return e.Err
}

// WithOp returns the error with the failing operation recorded, unless one is
// already set. Used by the session layer to name the step that failed without
// otherwise modifying the error.
func (e *DeviceError) WithOp(op string) *DeviceError {
	if e.Op == "" {
		e.Op = op
	}
	return e
}

// NewTransportUnavailableError creates a transport-unavailable error.
func NewTransportUnavailableError(message string, err error) *DeviceError {
	return &DeviceError{
		Type:      ErrTypeTransportUnavailable,
		Message:   message,
		Err:       err,
		Retryable: false,
	}
}

// NewDeviceUnresponsiveError creates a timeout error.
func NewDeviceUnresponsiveError(message string) *DeviceError {
	return &DeviceError{
		Type:      ErrTypeDeviceUnresponsive,
		Message:   message,
		Retryable: true,
	}
}

// NewMalformedResponseError creates a framing/validation error carrying the
// offending report bytes.
func NewMalformedResponseError(message string, raw []byte) *DeviceError {
	return &DeviceError{
		Type:      ErrTypeMalformedResponse,
		Message:   message,
		Raw:       raw,
		Retryable: false,
	}
}

// NewUnrecognizedFieldValueError creates a decoder error carrying the raw
// source bytes. The value is surfaced, never silently coerced.
func NewUnrecognizedFieldValueError(message string, raw []byte) *DeviceError {
	return &DeviceError{
		Type:      ErrTypeUnrecognizedFieldValue,
		Message:   message,
		Raw:       raw,
		Retryable: false,
	}
}

// NewPayloadTooLargeError creates an oversized-command error.
func NewPayloadTooLargeError(message string) *DeviceError {
	return &DeviceError{
		Type:      ErrTypePayloadTooLarge,
		Message:   message,
		Retryable: false,
	}
}

// IsTransportUnavailable checks whether the error is a transport-unavailable error.
func IsTransportUnavailable(err error) bool {
	if devErr, ok := err.(*DeviceError); ok {
		return devErr.Type == ErrTypeTransportUnavailable
	}
	return false
}

// IsDeviceUnresponsive checks whether the error is a receive timeout.
func IsDeviceUnresponsive(err error) bool {
	if devErr, ok := err.(*DeviceError); ok {
		return devErr.Type == ErrTypeDeviceUnresponsive
	}
	return false
}

// IsMalformedResponse checks whether the error is a framing/validation error.
func IsMalformedResponse(err error) bool {
	if devErr, ok := err.(*DeviceError); ok {
		return devErr.Type == ErrTypeMalformedResponse
	}
	return false
}

// IsUnrecognizedFieldValue checks whether the error is a decoder error.
func IsUnrecognizedFieldValue(err error) bool {
	if devErr, ok := err.(*DeviceError); ok {
		return devErr.Type == ErrTypeUnrecognizedFieldValue
	}
	return false
}

// IsRetryable checks whether retrying the whole command may succeed.
func IsRetryable(err error) bool {
	if devErr, ok := err.(*DeviceError); ok {
		return devErr.Retryable
	}
	return false
}

// GetTroubleshootingHint returns user-friendly advice for an error.
func GetTroubleshootingHint(err error) string {
	devErr, ok := err.(*DeviceError)
	if !ok {
		return "An unexpected error occurred. Please try again."
	}

	switch devErr.Type {
	case ErrTypeTransportUnavailable:
		return "The data logger was not found.\n" +
			"Troubleshooting:\n" +
			"  • Check the USB cable and that the logger is plugged in\n" +
			"  • On Linux, verify udev permissions for vid 2047 pid 0301\n" +
			"  • If the logger mounts as mass storage, unbind usbhid first"
	case ErrTypeDeviceUnresponsive:
		return "The data logger did not answer in time.\n" +
			"Troubleshooting:\n" +
			"  • Retry the command\n" +
			"  • Unplug and replug the logger\n" +
			"  • Try a longer --timeout"
	case ErrTypeMalformedResponse:
		return "The data logger answered with an invalid report.\n" +
			"The device session may be out of sync; re-run 'dl2xx status' to\n" +
			"resynchronize before retrying."
	case ErrTypeUnrecognizedFieldValue:
		return "The data logger reported a value this tool does not understand.\n" +
			"The raw bytes are included in the error message; please report them."
	default:
		return "An error occurred. Please check the error message for details."
	}
}
