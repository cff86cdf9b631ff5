package provisioning

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/passbridge/passbridge-go/pkg/log"
	"github.com/passbridge/passbridge-go/pkg/ui"
	"github.com/passbridge/passbridge-go/pkg/wallet"
)

const waitTimeout = 2 * time.Second

type fakeSurface struct {
	alive atomic.Bool
}

func newFakeSurface() *fakeSurface {
	s := &fakeSurface{}
	s.alive.Store(true)
	return s
}

func (s *fakeSurface) Alive() bool { return s.alive.Load() }

type presented struct {
	cfg     ui.Configuration
	sink    ui.EventSink
	surface *fakeSurface
}

type fakePresenter struct {
	mu     sync.Mutex
	sheets []presented
	err    error
}

func (p *fakePresenter) Present(cfg ui.Configuration, sink ui.EventSink) (ui.Surface, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return nil, p.err
	}
	s := newFakeSurface()
	p.sheets = append(p.sheets, presented{cfg: cfg, sink: sink, surface: s})
	return s, nil
}

func (p *fakePresenter) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.sheets)
}

func (p *fakePresenter) last(t *testing.T) presented {
	t.Helper()
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.sheets) == 0 {
		t.Fatal("no sheet presented")
	}
	return p.sheets[len(p.sheets)-1]
}

type fakeLibrary struct {
	canAdd bool
	passes []wallet.Pass
}

func (l *fakeLibrary) CanAddPasses() bool          { return l.canAdd }
func (l *fakeLibrary) CompanionPaired() bool       { return false }
func (l *fakeLibrary) Passes() []wallet.Pass       { return l.passes }
func (l *fakeLibrary) RemotePasses() []wallet.Pass { return nil }

// responder records every invocation of the wallet sheet's responder.
type responder struct {
	calls atomic.Int32
	got   chan ui.AddPaymentPassRequest
}

func newResponder() *responder {
	return &responder{got: make(chan ui.AddPaymentPassRequest, 4)}
}

func (r *responder) fn() ui.ExchangeResponder {
	return func(req ui.AddPaymentPassRequest) {
		r.calls.Add(1)
		r.got <- req
	}
}

func (r *responder) wait(t *testing.T) ui.AddPaymentPassRequest {
	t.Helper()
	select {
	case req := <-r.got:
		return req
	case <-time.After(waitTimeout):
		t.Fatal("responder not invoked")
		return ui.AddPaymentPassRequest{}
	}
}

type recordingLogger struct {
	mu     sync.Mutex
	events []log.Event
}

func (l *recordingLogger) Log(e log.Event) {
	l.mu.Lock()
	l.events = append(l.events, e)
	l.mu.Unlock()
}

func (l *recordingLogger) states() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []string
	for _, e := range l.events {
		if e.StateChange != nil {
			out = append(out, e.StateChange.OldState+">"+e.StateChange.NewState)
		}
	}
	return out
}

func (l *recordingLogger) steps() []log.ExchangeStep {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []log.ExchangeStep
	for _, e := range l.events {
		if e.Exchange != nil {
			out = append(out, e.Exchange.Step)
		}
	}
	return out
}

type harness struct {
	c         *Coordinator
	presenter *fakePresenter
	library   *fakeLibrary
	trace     *recordingLogger
}

func newHarness(t *testing.T, cfg Config) *harness {
	t.Helper()
	h := &harness{
		presenter: &fakePresenter{},
		library:   &fakeLibrary{canAdd: true},
		trace:     &recordingLogger{},
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = time.Second
	}
	if cfg.StabilizationDelay == 0 {
		cfg.StabilizationDelay = 10 * time.Millisecond
	}
	cfg.ProtocolLogger = h.trace
	h.c = NewCoordinator(h.presenter, h.library, cfg)
	t.Cleanup(func() { h.c.Close() })
	return h
}

func testCard() CardInfo {
	return CardInfo{
		CardholderName:       "Jane Doe",
		LocalizedDescription: "Everyday Card",
		PrimaryAccountSuffix: "1234",
		PaymentNetwork:       "visa",
	}
}

func testMaterial() ServerMaterial {
	return ServerMaterial{
		EncryptedPassData:  "0a0b",
		EphemeralPublicKey: "0c0d",
		ActivationData:     "0e0f",
	}
}

// exchange drives the last presented sheet through the certificate
// exchange with the canonical test payload.
func (h *harness) exchange(t *testing.T, r *responder) presented {
	t.Helper()
	sheet := h.presenter.last(t)
	sheet.sink.ExchangeRequested(sheet.surface, [][]byte{{0xaa}}, []byte{0xbb}, []byte{0xcc}, r.fn())
	return sheet
}

func waitFor[T any](t *testing.T, p *Promise[T]) (T, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), waitTimeout)
	defer cancel()
	v, err := p.Wait(ctx)
	if err == context.DeadlineExceeded {
		t.Fatal("promise not settled")
	}
	return v, err
}

func assertPending[T any](t *testing.T, p *Promise[T]) {
	t.Helper()
	select {
	case <-p.Done():
		t.Fatal("promise settled unexpectedly")
	case <-time.After(20 * time.Millisecond):
	}
}
