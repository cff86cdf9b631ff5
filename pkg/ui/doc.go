// Package ui defines the boundary between the provisioning coordinator and
// the platform wallet sheet.
//
// The coordinator never renders anything. It asks a Presenter to show the
// add-payment-pass sheet and receives the sheet's callbacks through an
// EventSink:
//
//	Presenter.Present(cfg, sink) -> Surface
//	sink.ExchangeRequested(surface, certificateChain, nonce, nonceSignature, respond)
//	sink.Finished(surface, err)
//
// A Surface is a non-owning reference to the presented sheet. The coordinator
// only asks it whether it is still alive before acting on its callbacks.
package ui
