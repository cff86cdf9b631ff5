package ui

// EncryptionSchemeECCV2 is the default pass data encryption scheme.
const EncryptionSchemeECCV2 = "ECC_V2"

// Configuration describes the card to be added and is handed to the
// Presenter when the wallet sheet is shown.
type Configuration struct {
	// EncryptionScheme is the scheme the issuer uses for pass data.
	EncryptionScheme string

	// CardholderName is the name printed on the card.
	CardholderName string

	// LocalizedDescription is the card description shown in the wallet.
	LocalizedDescription string

	// PrimaryAccountSuffix is the last digits of the card number.
	PrimaryAccountSuffix string

	// PaymentNetwork is the canonical payment network name.
	PaymentNetwork string

	// PrimaryAccountIdentifier identifies an existing pass to be replaced.
	// Empty when the card is not yet in the wallet.
	PrimaryAccountIdentifier string
}

// AddPaymentPassRequest carries the issuer's encrypted material back to the
// wallet sheet to finish the exchange.
type AddPaymentPassRequest struct {
	EncryptedPassData  []byte
	EphemeralPublicKey []byte
	ActivationData     []byte
}

// ExchangeResponder is the one-shot completion handler supplied by the
// wallet sheet together with the certificate exchange request.
type ExchangeResponder func(req AddPaymentPassRequest)

// Surface is a weak reference to a presented wallet sheet. Events are
// matched to sessions by comparing surfaces with ==, so implementations must
// be comparable; pointer types are. A non-comparable surface fails the
// presentation.
type Surface interface {
	// Alive reports whether the sheet is still attached and able to accept
	// a response.
	Alive() bool
}

// EventSink receives the wallet sheet's callbacks. Implementations must not
// block; the coordinator queues events onto its own loop.
type EventSink interface {
	// ExchangeRequested delivers the device certificate chain, nonce and
	// nonce signature. respond must be invoked at most once.
	ExchangeRequested(s Surface, certificateChain [][]byte, nonce, nonceSignature []byte, respond ExchangeResponder)

	// Finished delivers the terminal result of the sheet. A nil error means
	// the pass was added.
	Finished(s Surface, err error)
}

// Presenter shows the platform wallet sheet.
type Presenter interface {
	// Present shows the sheet for cfg and wires its callbacks to sink.
	Present(cfg Configuration, sink EventSink) (Surface, error)
}
