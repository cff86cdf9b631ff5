package provisioning

import (
	"log/slog"
	"time"

	"github.com/passbridge/passbridge-go/pkg/log"
	"github.com/passbridge/passbridge-go/pkg/ui"
)

// Timing defaults.
const (
	// DefaultTimeout is how long a session may wait for the exchange, and
	// after the exchange for completion, before it is abandoned.
	DefaultTimeout = 30 * time.Second

	// DefaultStabilizationDelay is the pause between accepting server
	// material and handing it to the wallet sheet.
	DefaultStabilizationDelay = 100 * time.Millisecond
)

// State represents the provisioning session state.
type State uint8

const (
	// StateIdle indicates no session is live.
	StateIdle State = iota

	// StateAwaitingExchange indicates the wallet sheet is shown and the
	// certificate exchange has not completed yet.
	StateAwaitingExchange

	// StateAwaitingCompletion indicates server material was accepted and is
	// waiting out the stabilization delay.
	StateAwaitingCompletion

	// StateFinishing indicates the material was handed to the wallet.
	StateFinishing
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateAwaitingExchange:
		return "AWAITING_EXCHANGE"
	case StateAwaitingCompletion:
		return "AWAITING_COMPLETION"
	case StateFinishing:
		return "FINISHING"
	default:
		return "UNKNOWN"
	}
}

// CardInfo describes the card to provision.
type CardInfo struct {
	CardholderName       string `json:"cardholderName" yaml:"cardholderName"`
	LocalizedDescription string `json:"localizedDescription" yaml:"localizedDescription"`
	PrimaryAccountSuffix string `json:"primaryAccountSuffix" yaml:"primaryAccountSuffix"`
	PaymentNetwork       string `json:"paymentNetwork" yaml:"paymentNetwork"`
}

// Exchange is the certificate exchange delivered to the Begin caller.
// All values are lowercase hex.
type Exchange struct {
	Nonce            string   `json:"nonce"`
	NonceSignature   string   `json:"nonceSignature"`
	CertificateChain []string `json:"certificateChain"`
}

// ServerMaterial is the issuer's response to an Exchange. All values are
// hex encoded.
type ServerMaterial struct {
	EncryptedPassData  string `json:"encryptedPassData"`
	EphemeralPublicKey string `json:"ephemeralPublicKey"`
	ActivationData     string `json:"activationData"`
}

// Status is a point-in-time view of the coordinator.
type Status struct {
	State         State
	SessionID     string
	AccountSuffix string
	Deadline      time.Time
}

// Config configures a Coordinator.
type Config struct {
	// Timeout bounds each waiting phase of a session.
	// Zero uses DefaultTimeout.
	Timeout time.Duration

	// StabilizationDelay is the pause before the responder is invoked.
	// Zero uses DefaultStabilizationDelay; negative means no delay.
	StabilizationDelay time.Duration

	// EncryptionScheme is passed to the wallet sheet.
	// Empty uses ui.EncryptionSchemeECCV2.
	EncryptionScheme string

	// Logger for operational messages. Nil discards.
	Logger *slog.Logger

	// ProtocolLogger receives structured trace events. Nil disables tracing.
	ProtocolLogger log.Logger
}

// DefaultConfig returns the default coordinator configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:            DefaultTimeout,
		StabilizationDelay: DefaultStabilizationDelay,
		EncryptionScheme:   ui.EncryptionSchemeECCV2,
	}
}

func (c Config) withDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.StabilizationDelay == 0 {
		c.StabilizationDelay = DefaultStabilizationDelay
	} else if c.StabilizationDelay < 0 {
		c.StabilizationDelay = 0
	}
	if c.EncryptionScheme == "" {
		c.EncryptionScheme = ui.EncryptionSchemeECCV2
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	if c.ProtocolLogger == nil {
		c.ProtocolLogger = log.NoopLogger{}
	}
	return c
}
