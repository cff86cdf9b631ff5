package provisioning

import (
	"errors"
	"fmt"
)

// Provisioning errors.
var (
	ErrAlreadyInProgress         = errors.New("provisioning already in progress")
	ErrNotInProgress             = errors.New("no provisioning in progress")
	ErrTimeout                   = errors.New("provisioning timed out")
	ErrInvalidInput              = errors.New("invalid input")
	ErrUnsupportedPaymentNetwork = errors.New("unsupported payment network")
	ErrMissingField              = errors.New("missing field")
	ErrMalformedHex              = errors.New("malformed hex")
	ErrPlatformUnavailable       = errors.New("wallet unavailable on this device")
	ErrUIPresentationFailed      = errors.New("failed to present wallet sheet")
	ErrSystem                    = errors.New("system error")
	ErrCancelled                 = errors.New("provisioning cancelled")
	ErrClosed                    = errors.New("coordinator closed")
)

// Bridge error codes.
const (
	CodeAlreadyInProgress         = "ALREADY_IN_PROGRESS"
	CodeNotInProgress             = "NOT_IN_PROGRESS"
	CodeTimeout                   = "TIMEOUT"
	CodeInvalidInput              = "INVALID_INPUT"
	CodeUnsupportedPaymentNetwork = "UNSUPPORTED_PAYMENT_NETWORK"
	CodeMissingField              = "MISSING_FIELD"
	CodeMalformedHex              = "MALFORMED_HEX"
	CodePlatformUnavailable       = "PLATFORM_UNAVAILABLE"
	CodeUIPresentationFailed      = "UI_PRESENTATION_FAILED"
	CodeCancelled                 = "CANCELLED"
	CodeClosed                    = "CLOSED"
	CodeSystemError               = "SYSTEM_ERROR"
)

var codes = []struct {
	err  error
	code string
}{
	{ErrAlreadyInProgress, CodeAlreadyInProgress},
	{ErrNotInProgress, CodeNotInProgress},
	{ErrTimeout, CodeTimeout},
	{ErrInvalidInput, CodeInvalidInput},
	{ErrUnsupportedPaymentNetwork, CodeUnsupportedPaymentNetwork},
	{ErrMissingField, CodeMissingField},
	{ErrMalformedHex, CodeMalformedHex},
	{ErrPlatformUnavailable, CodePlatformUnavailable},
	{ErrUIPresentationFailed, CodeUIPresentationFailed},
	{ErrCancelled, CodeCancelled},
	{ErrClosed, CodeClosed},
	{ErrSystem, CodeSystemError},
}

// Code returns the bridge error code for err. Errors that are not
// provisioning errors map to CodeSystemError. Code(nil) is "".
func Code(err error) string {
	if err == nil {
		return ""
	}
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return CodeSystemError
}

// isKnown reports whether err already carries a provisioning error.
func isKnown(err error) bool {
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return true
		}
	}
	return false
}

// InvalidInputError reports a required card field that is empty.
type InvalidInputError struct {
	Field string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s is required", e.Field)
}

// Is matches ErrInvalidInput.
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// UnsupportedNetworkError reports a payment network outside the allow-list.
type UnsupportedNetworkError struct {
	Network string
}

func (e *UnsupportedNetworkError) Error() string {
	return fmt.Sprintf("unsupported payment network: %q", e.Network)
}

// Is matches ErrUnsupportedPaymentNetwork.
func (e *UnsupportedNetworkError) Is(target error) bool {
	return target == ErrUnsupportedPaymentNetwork
}

// MissingFieldError reports an empty server material field.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field: %s", e.Field)
}

// Is matches ErrMissingField.
func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// MalformedHexError reports a server material field that is not valid hex.
type MalformedHexError struct {
	Field string
	Err   error
}

func (e *MalformedHexError) Error() string {
	return fmt.Sprintf("malformed hex in %s: %v", e.Field, e.Err)
}

// Is matches ErrMalformedHex.
func (e *MalformedHexError) Is(target error) bool {
	return target == ErrMalformedHex
}

func (e *MalformedHexError) Unwrap() error {
	return e.Err
}

// UIPresentationError wraps a failure to present the wallet sheet.
type UIPresentationError struct {
	Err error
}

func (e *UIPresentationError) Error() string {
	return fmt.Sprintf("%v: %v", ErrUIPresentationFailed, e.Err)
}

// Is matches ErrUIPresentationFailed.
func (e *UIPresentationError) Is(target error) bool {
	return target == ErrUIPresentationFailed
}

func (e *UIPresentationError) Unwrap() error {
	return e.Err
}

// SystemError wraps an error reported by the platform.
type SystemError struct {
	Err error
}

func (e *SystemError) Error() string {
	return fmt.Sprintf("%v: %v", ErrSystem, e.Err)
}

// Is matches ErrSystem.
func (e *SystemError) Is(target error) bool {
	return target == ErrSystem
}

func (e *SystemError) Unwrap() error {
	return e.Err
}

// asSystemError wraps a platform error unless it already is a provisioning
// error.
func asSystemError(err error) error {
	if err == nil || isKnown(err) {
		return err
	}
	return &SystemError{Err: err}
}
