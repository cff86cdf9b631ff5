// Package provisioning implements the card provisioning state machine that
// sits between the application shell and the platform wallet sheet.
//
// # Session Lifecycle
//
// At most one provisioning session is live at a time:
//
//	IDLE --Begin--> AWAITING_EXCHANGE --Complete--> AWAITING_COMPLETION
//	                                                  |
//	                              (stabilization delay)
//	                                                  v
//	IDLE <--Finished / deadline / Close------------ FINISHING
//
// Begin validates the card, presents the wallet sheet and suspends its
// caller until the sheet delivers the device certificate chain and nonce.
// The application forwards those to its issuer and calls Complete with the
// encrypted pass data. After a short stabilization delay the material is
// handed to the wallet through the sheet's one-shot responder. The wallet's
// terminal result resolves the Complete caller.
//
// Every session has a deadline (DefaultTimeout). The deadline is re-armed
// when the exchange arrives. If it fires, the session is torn down and the
// pending caller receives ErrTimeout; a fresh Begin then succeeds.
//
// # Concurrency
//
// All session state is owned by a single Loop goroutine. Public methods
// marshal onto it, and timer callbacks are posted to it. Callers are
// resolved, and the wallet responder is invoked, from a second Loop so that
// callbacks may call back into the Coordinator.
//
// Events from a superseded sheet are identified by surface identity and
// session generation and are dropped.
package provisioning
