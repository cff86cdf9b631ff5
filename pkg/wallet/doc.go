// Package wallet models the read-only view of the platform wallet that the
// provisioning bridge needs: device capability, the payment passes stored
// on the device and on a paired companion, and opening an existing pass.
//
// # Eligibility
//
// AvailableActions reports which actions the application may offer for a
// card, identified by its primary account number suffix:
//
//   - ADD: the device can add passes and the card is missing on the device,
//     or a companion is paired and the card is missing on the companion
//   - PAY: the card is on the device and activated
//
// FindPass locates an existing pass so that re-provisioning replaces it
// instead of creating a duplicate. A missing pass is not an error.
//
// # Payment Networks
//
// ParseNetwork accepts a fixed allow-list of networks, matched
// case-insensitively:
//
//	amex, cartesBancaires, chinaUnionPay, discover, eftpos, electron, elo,
//	interac, jcb, mada, maestro, masterCard, visa, vPay
package wallet
