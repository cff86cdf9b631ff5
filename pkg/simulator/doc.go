// Package simulator provides an in-memory wallet and a scriptable wallet
// sheet so the provisioning coordinator can be exercised without a phone.
//
// Library implements wallet.Library and wallet.Opener. It can be seeded
// from a YAML fixture:
//
//	canAddPasses: true
//	companionPaired: true
//	passes:
//	  - primaryAccountSuffix: "1234"
//	    network: visa
//	    activationState: requires-activation
//	    activationURL: wallet://activate/1234
//	remotePasses:
//	  - primaryAccountSuffix: "5678"
//
// Presenter implements ui.Presenter. Each Present call creates a Sheet that
// holds a fresh device key. RequestExchange sends the key as the leaf of
// the certificate chain. When the responder is invoked the sheet decrypts
// the issuer's pass data, adds the pass to the Library and reports the
// result.
package simulator
