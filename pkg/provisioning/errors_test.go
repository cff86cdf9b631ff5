package provisioning

import (
	"errors"
	"fmt"
	"testing"
)

func TestCode(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{ErrAlreadyInProgress, CodeAlreadyInProgress},
		{fmt.Errorf("wrapped: %w", ErrNotInProgress), CodeNotInProgress},
		{ErrTimeout, CodeTimeout},
		{&InvalidInputError{Field: "cardholderName"}, CodeInvalidInput},
		{&UnsupportedNetworkError{Network: "x"}, CodeUnsupportedPaymentNetwork},
		{&MissingFieldError{Field: "activationData"}, CodeMissingField},
		{&MalformedHexError{Field: "activationData"}, CodeMalformedHex},
		{ErrPlatformUnavailable, CodePlatformUnavailable},
		{&UIPresentationError{Err: errors.New("x")}, CodeUIPresentationFailed},
		{ErrCancelled, CodeCancelled},
		{ErrClosed, CodeClosed},
		{&SystemError{Err: errors.New("x")}, CodeSystemError},
		{errors.New("anything else"), CodeSystemError},
	}

	for _, tt := range tests {
		if got := Code(tt.err); got != tt.want {
			t.Errorf("Code(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestTypedErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&InvalidInputError{Field: "cardholderName"}, "invalid input: cardholderName is required"},
		{&UnsupportedNetworkError{Network: "diners"}, `unsupported payment network: "diners"`},
		{&MissingFieldError{Field: "encryptedPassData"}, "missing field: encryptedPassData"},
		{&SystemError{Err: errors.New("boom")}, "system error: boom"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestAsSystemError(t *testing.T) {
	if asSystemError(nil) != nil {
		t.Error("asSystemError(nil) != nil")
	}
	if err := asSystemError(ErrTimeout); err != ErrTimeout {
		t.Errorf("asSystemError(ErrTimeout) = %v, want unchanged", err)
	}

	cause := errors.New("platform")
	err := asSystemError(cause)
	var sysErr *SystemError
	if !errors.As(err, &sysErr) || sysErr.Err != cause {
		t.Errorf("asSystemError(cause) = %v, want *SystemError wrapping cause", err)
	}
}
