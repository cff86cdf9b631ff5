package issuer

import (
	"time"

	"github.com/passbridge/passbridge-go/pkg/provisioning"
)

// ProvisionPath is the issuer endpoint for pass provisioning.
const ProvisionPath = "/v1/provision"

// ProvisionRequest is sent to the issuer after the certificate exchange.
type ProvisionRequest struct {
	CardholderName       string   `json:"cardholderName,omitempty"`
	PrimaryAccountSuffix string   `json:"primaryAccountSuffix"`
	PaymentNetwork       string   `json:"paymentNetwork,omitempty"`
	Nonce                string   `json:"nonce"`
	NonceSignature       string   `json:"nonceSignature"`
	CertificateChain     []string `json:"certificateChain"`
}

// NewProvisionRequest builds a request from a card and its exchange.
func NewProvisionRequest(card provisioning.CardInfo, ex provisioning.Exchange) ProvisionRequest {
	return ProvisionRequest{
		CardholderName:       card.CardholderName,
		PrimaryAccountSuffix: card.PrimaryAccountSuffix,
		PaymentNetwork:       card.PaymentNetwork,
		Nonce:                ex.Nonce,
		NonceSignature:       ex.NonceSignature,
		CertificateChain:     ex.CertificateChain,
	}
}

// errorResponse is the issuer's JSON error body.
type errorResponse struct {
	Error string `json:"error"`
}

// Record is an issued pass as kept by the simulated issuer.
type Record struct {
	ID                   string
	PrimaryAccountSuffix string
	PaymentNetwork       string
	CardholderName       string
	DeviceAccountSuffix  string
	EphemeralPublicKey   string
	CreatedAt            time.Time
}
