package log

import "time"

// Event represents a trace event captured at any layer.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID identifies the provisioning session (UUID). Empty for
	// events that happen outside a session, such as eligibility queries.
	SessionID string `cbor:"2,keyasint,omitempty"`

	// Direction indicates flow relative to the plugin.
	Direction Direction `cbor:"3,keyasint"`

	// Layer where the event was captured.
	Layer Layer `cbor:"4,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"5,keyasint"`

	// CallbackID is the bridge callback the event relates to, if any.
	CallbackID string `cbor:"6,keyasint,omitempty"`

	// AccountSuffix is the primary account number suffix of the card.
	AccountSuffix string `cbor:"7,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Call        *CallEvent        `cbor:"10,keyasint,omitempty"` // Bridge layer
	StateChange *StateChangeEvent `cbor:"11,keyasint,omitempty"` // Coordinator state
	Exchange    *ExchangeEvent    `cbor:"12,keyasint,omitempty"` // Wallet UI exchange
	Error       *ErrorEventData   `cbor:"13,keyasint,omitempty"` // Errors at any layer
}

// Direction indicates the direction of flow.
type Direction uint8

const (
	// DirectionIn indicates something arriving at the plugin.
	DirectionIn Direction = 0
	// DirectionOut indicates something leaving the plugin.
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Layer indicates which component captured the event.
type Layer uint8

const (
	// LayerBridge is the application shell boundary.
	LayerBridge Layer = 0
	// LayerCoordinator is the provisioning state machine.
	LayerCoordinator Layer = 1
	// LayerPlatform is the wallet UI and pass library.
	LayerPlatform Layer = 2
	// LayerIssuer is the remote issuer service.
	LayerIssuer Layer = 3
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerBridge:
		return "BRIDGE"
	case LayerCoordinator:
		return "COORDINATOR"
	case LayerPlatform:
		return "PLATFORM"
	case LayerIssuer:
		return "ISSUER"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryCall indicates a bridge call or its outcome.
	CategoryCall Category = 0
	// CategoryState indicates a session state change.
	CategoryState Category = 1
	// CategoryExchange indicates a step of the certificate exchange.
	CategoryExchange Category = 2
	// CategoryError indicates an error event.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryCall:
		return "CALL"
	case CategoryState:
		return "STATE"
	case CategoryExchange:
		return "EXCHANGE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// CallEvent captures a bridge method call and its outcome.
type CallEvent struct {
	// Method is the plugin method name (e.g. "startAddPaymentPass").
	Method string `cbor:"1,keyasint"`

	// Outcome of the call at the time the event was recorded.
	Outcome CallOutcome `cbor:"2,keyasint"`

	// Code is the rejection code for rejected calls.
	Code string `cbor:"3,keyasint,omitempty"`

	// Duration from call arrival to resolution (resolved/rejected only).
	// Stored as nanoseconds.
	Duration *time.Duration `cbor:"4,keyasint,omitempty"`
}

// CallOutcome describes what happened to a bridge call.
type CallOutcome uint8

const (
	// CallReceived indicates the call arrived.
	CallReceived CallOutcome = 0
	// CallSaved indicates the call was kept alive awaiting an async result.
	CallSaved CallOutcome = 1
	// CallResolved indicates the call succeeded.
	CallResolved CallOutcome = 2
	// CallRejected indicates the call failed.
	CallRejected CallOutcome = 3
)

// String returns the outcome name.
func (o CallOutcome) String() string {
	switch o {
	case CallReceived:
		return "RECEIVED"
	case CallSaved:
		return "SAVED"
	case CallResolved:
		return "RESOLVED"
	case CallRejected:
		return "REJECTED"
	default:
		return "UNKNOWN"
	}
}

// StateChangeEvent captures provisioning session lifecycle changes.
type StateChangeEvent struct {
	// OldState is the previous state (may be empty).
	OldState string `cbor:"1,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"2,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"3,keyasint,omitempty"`
}

// ExchangeEvent captures a step of the wallet certificate exchange.
type ExchangeEvent struct {
	// Step identifies the exchange step.
	Step ExchangeStep `cbor:"1,keyasint"`

	// CertificateCount is the length of the device certificate chain.
	CertificateCount int `cbor:"2,keyasint,omitempty"`

	// NonceSize is the nonce length in bytes.
	NonceSize int `cbor:"3,keyasint,omitempty"`

	// Reason explains dropped steps.
	Reason string `cbor:"4,keyasint,omitempty"`
}

// ExchangeStep identifies a step of the certificate exchange.
type ExchangeStep uint8

const (
	// ExchangePresented indicates the wallet sheet was presented.
	ExchangePresented ExchangeStep = 0
	// ExchangeRequested indicates the wallet delivered certificates and nonce.
	ExchangeRequested ExchangeStep = 1
	// ExchangeDropped indicates an exchange event was ignored.
	ExchangeDropped ExchangeStep = 2
	// ExchangeResponderScheduled indicates the responder is waiting out the
	// stabilization delay.
	ExchangeResponderScheduled ExchangeStep = 3
	// ExchangeResponderInvoked indicates the encrypted pass data was handed
	// to the wallet.
	ExchangeResponderInvoked ExchangeStep = 4
	// ExchangeFinished indicates the wallet reported a terminal result.
	ExchangeFinished ExchangeStep = 5
)

// String returns the step name.
func (s ExchangeStep) String() string {
	switch s {
	case ExchangePresented:
		return "PRESENTED"
	case ExchangeRequested:
		return "REQUESTED"
	case ExchangeDropped:
		return "DROPPED"
	case ExchangeResponderScheduled:
		return "RESPONDER_SCHEDULED"
	case ExchangeResponderInvoked:
		return "RESPONDER_INVOKED"
	case ExchangeFinished:
		return "FINISHED"
	default:
		return "UNKNOWN"
	}
}

// ErrorEventData captures errors at any layer.
type ErrorEventData struct {
	// Layer where the error occurred.
	Layer Layer `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Code is the bridge error code (if applicable).
	Code string `cbor:"3,keyasint,omitempty"`

	// Context describes what operation was being performed.
	Context string `cbor:"4,keyasint,omitempty"`
}
