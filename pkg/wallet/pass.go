package wallet

import (
	"fmt"
	"strings"
)

// ActivationState is the secure element activation state of a pass.
type ActivationState uint8

const (
	// ActivationActivated indicates the pass can be used for payments.
	ActivationActivated ActivationState = iota

	// ActivationRequiresActivation indicates the issuer must activate the pass.
	ActivationRequiresActivation

	// ActivationActivating indicates activation is in progress.
	ActivationActivating

	// ActivationSuspended indicates the issuer suspended the pass.
	ActivationSuspended

	// ActivationDeactivated indicates the pass was removed from service.
	ActivationDeactivated
)

// String returns a human-readable state name.
func (s ActivationState) String() string {
	switch s {
	case ActivationActivated:
		return "ACTIVATED"
	case ActivationRequiresActivation:
		return "REQUIRES_ACTIVATION"
	case ActivationActivating:
		return "ACTIVATING"
	case ActivationSuspended:
		return "SUSPENDED"
	case ActivationDeactivated:
		return "DEACTIVATED"
	default:
		return "UNKNOWN"
	}
}

// ParseActivationState parses a state name as produced by String.
// Matching ignores case; "-" and "_" are interchangeable.
func ParseActivationState(s string) (ActivationState, error) {
	switch strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(s)), "-", "_") {
	case "ACTIVATED", "":
		return ActivationActivated, nil
	case "REQUIRES_ACTIVATION":
		return ActivationRequiresActivation, nil
	case "ACTIVATING":
		return ActivationActivating, nil
	case "SUSPENDED":
		return ActivationSuspended, nil
	case "DEACTIVATED":
		return ActivationDeactivated, nil
	default:
		return 0, fmt.Errorf("unknown activation state: %s", s)
	}
}

// Pass is a provisioned payment pass.
type Pass struct {
	// SerialNumber is the wallet's identifier for the pass.
	SerialNumber string

	// PrimaryAccountIdentifier is the issuer-assigned account identifier.
	PrimaryAccountIdentifier string

	// PrimaryAccountNumberSuffix is the last digits of the card number.
	PrimaryAccountNumberSuffix string

	// DeviceAccountNumberSuffix is the last digits of the device account number.
	DeviceAccountNumberSuffix string

	// LocalizedDescription is the card description shown in the wallet.
	LocalizedDescription string

	// Network is the payment network of the card.
	Network Network

	// ActivationState is the secure element activation state.
	ActivationState ActivationState

	// PassURL opens the pass detail view.
	PassURL string

	// ActivationURL opens the issuer's activation flow, if any.
	ActivationURL string
}

// Library is the platform wallet as seen by the bridge.
type Library interface {
	// CanAddPasses reports whether the device supports adding payment passes.
	CanAddPasses() bool

	// Passes returns the payment passes stored on this device.
	Passes() []Pass

	// RemotePasses returns the payment passes stored on a paired companion.
	RemotePasses() []Pass

	// CompanionPaired reports whether a companion device is paired.
	CompanionPaired() bool
}

// Opener opens wallet URLs on behalf of the application.
type Opener interface {
	// Open opens url in the wallet.
	Open(url string) error
}
