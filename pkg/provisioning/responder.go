package provisioning

import "github.com/passbridge/passbridge-go/pkg/ui"

// oneShotResponder wraps the wallet sheet's responder. It is tagged with the
// generation of the session that received it and hands out the underlying
// function at most once. Only accessed from the coordinator loop.
type oneShotResponder struct {
	gen   uint64
	fired bool
	fn    ui.ExchangeResponder
}

func newOneShotResponder(gen uint64, fn ui.ExchangeResponder) *oneShotResponder {
	return &oneShotResponder{gen: gen, fn: fn}
}

// take returns the responder if it has not fired and belongs to gen.
func (r *oneShotResponder) take(gen uint64) (ui.ExchangeResponder, bool) {
	if r == nil || r.fired || r.gen != gen || r.fn == nil {
		return nil, false
	}
	r.fired = true
	fn := r.fn
	r.fn = nil
	return fn, true
}
