package provisioning

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/passbridge/passbridge-go/pkg/log"
	"github.com/passbridge/passbridge-go/pkg/ui"
	"github.com/passbridge/passbridge-go/pkg/wallet"
)

// session is the live provisioning session. Owned by the coordinator loop.
type session struct {
	id    string
	gen   uint64
	state State
	card  CardInfo

	surface ui.Surface

	begin    Pending[Exchange]
	complete Pending[struct{}]

	responder *oneShotResponder

	deadline       time.Time
	deadlineSeq    uint64
	deadlineTimer  *time.Timer
	stabilizeTimer *time.Timer
}

// Coordinator runs the provisioning state machine.
type Coordinator struct {
	presenter ui.Presenter
	library   wallet.Library
	config    Config
	logger    *slog.Logger
	trace     log.Logger

	loop   *Loop
	notify *Loop

	// Loop-owned state.
	sess   *session
	gen    uint64
	closed bool
}

// NewCoordinator creates a Coordinator that presents wallet sheets through
// presenter and checks device capability through library.
func NewCoordinator(presenter ui.Presenter, library wallet.Library, config Config) *Coordinator {
	config = config.withDefaults()
	return &Coordinator{
		presenter: presenter,
		library:   library,
		config:    config,
		logger:    config.Logger,
		trace:     config.ProtocolLogger,
		loop:      NewLoop(),
		notify:    NewLoop(),
	}
}

var _ ui.EventSink = (*Coordinator)(nil)

// Begin starts a session for card. Validation failures and presentation
// failures are returned synchronously and leave caller untouched. Otherwise
// caller is settled later with the exchange, ErrTimeout, or the reason the
// sheet was closed.
func (c *Coordinator) Begin(card CardInfo, caller Pending[Exchange]) error {
	var err error
	if callErr := c.loop.Call(func() { err = c.begin(card, caller) }); callErr != nil {
		return callErr
	}
	return err
}

// Complete hands the issuer's material to the live session. caller is
// settled when the wallet reports a result or the session times out.
func (c *Coordinator) Complete(material ServerMaterial, caller Pending[struct{}]) error {
	var err error
	if callErr := c.loop.Call(func() { err = c.complete(material, caller) }); callErr != nil {
		return callErr
	}
	return err
}

// BeginAndWait calls Begin and waits for the exchange.
func (c *Coordinator) BeginAndWait(ctx context.Context, card CardInfo) (Exchange, error) {
	p := NewPromise[Exchange]()
	if err := c.Begin(card, p); err != nil {
		return Exchange{}, err
	}
	return p.Wait(ctx)
}

// CompleteAndWait calls Complete and waits for the wallet's result.
func (c *Coordinator) CompleteAndWait(ctx context.Context, material ServerMaterial) error {
	p := NewPromise[struct{}]()
	if err := c.Complete(material, p); err != nil {
		return err
	}
	_, err := p.Wait(ctx)
	return err
}

// State returns the current session state.
func (c *Coordinator) State() State {
	return c.Status().State
}

// Status returns a snapshot of the live session.
func (c *Coordinator) Status() Status {
	var st Status
	_ = c.loop.Call(func() {
		if s := c.sess; s != nil {
			st = Status{
				State:         s.state,
				SessionID:     s.id,
				AccountSuffix: s.card.PrimaryAccountSuffix,
				Deadline:      s.deadline,
			}
		}
	})
	return st
}

// ExchangeRequested implements ui.EventSink. Events are matched to the live
// session by surface only.
func (c *Coordinator) ExchangeRequested(s ui.Surface, certificateChain [][]byte, nonce, nonceSignature []byte, respond ui.ExchangeResponder) {
	c.loop.Post(func() {
		c.onExchange(s, 0, certificateChain, nonce, nonceSignature, respond)
	})
}

// Finished implements ui.EventSink.
func (c *Coordinator) Finished(s ui.Surface, err error) {
	c.loop.Post(func() {
		c.onFinished(s, 0, err)
	})
}

// Close tears down any live session, rejecting pending callers with
// ErrClosed, and stops the coordinator. Close is idempotent.
func (c *Coordinator) Close() error {
	_ = c.loop.Call(func() {
		if c.closed {
			return
		}
		c.closed = true
		begin, complete := c.cleanup("coordinator closed")
		if begin != nil {
			c.rejectBegin(begin, ErrClosed)
		}
		if complete != nil {
			c.rejectComplete(complete, ErrClosed)
		}
	})
	c.loop.Stop()
	c.notify.Stop()
	<-c.loop.Done()
	return nil
}

// sessionSink tags sheet events with the generation of the session the
// sheet was presented for.
type sessionSink struct {
	c   *Coordinator
	gen uint64
}

func (k *sessionSink) ExchangeRequested(s ui.Surface, certificateChain [][]byte, nonce, nonceSignature []byte, respond ui.ExchangeResponder) {
	k.c.loop.Post(func() {
		k.c.onExchange(s, k.gen, certificateChain, nonce, nonceSignature, respond)
	})
}

func (k *sessionSink) Finished(s ui.Surface, err error) {
	k.c.loop.Post(func() {
		k.c.onFinished(s, k.gen, err)
	})
}

// ---- loop handlers ----

func (c *Coordinator) begin(card CardInfo, caller Pending[Exchange]) error {
	if c.closed {
		return ErrClosed
	}
	if c.sess != nil {
		c.logger.Debug("begin rejected", "session", c.sess.id, "state", c.sess.state)
		return ErrAlreadyInProgress
	}

	network, err := validateCard(card)
	if err != nil {
		return err
	}
	if c.library == nil || !c.library.CanAddPasses() {
		return ErrPlatformUnavailable
	}

	cfg := ui.Configuration{
		EncryptionScheme:     c.config.EncryptionScheme,
		CardholderName:       card.CardholderName,
		LocalizedDescription: card.LocalizedDescription,
		PrimaryAccountSuffix: card.PrimaryAccountSuffix,
		PaymentNetwork:       network.String(),
	}
	if pass, ok := wallet.FindPass(c.library, card.PrimaryAccountSuffix); ok {
		cfg.PrimaryAccountIdentifier = pass.PrimaryAccountIdentifier
	}

	c.gen++
	s := &session{
		id:    uuid.New().String(),
		gen:   c.gen,
		state: StateAwaitingExchange,
		card:  card,
		begin: caller,
	}
	c.sess = s
	c.traceState(s, StateIdle, StateAwaitingExchange, "begin")

	surface, err := c.presenter.Present(cfg, &sessionSink{c: c, gen: s.gen})
	if err == nil && surface == nil {
		err = errors.New("presenter returned no surface")
	}
	if err == nil && !reflect.TypeOf(surface).Comparable() {
		err = fmt.Errorf("surface type %T is not comparable", surface)
	}
	if err != nil {
		// Caller gets the error synchronously, not through the session.
		s.begin = nil
		c.cleanup("presentation failed")
		c.traceError(s, CodeUIPresentationFailed, err.Error(), "present")
		c.logger.Warn("wallet sheet presentation failed", "error", err)
		return &UIPresentationError{Err: err}
	}
	s.surface = surface
	c.armDeadline(s)

	c.traceExchange(s, log.ExchangeEvent{Step: log.ExchangePresented})
	c.logger.Info("provisioning started",
		"session", s.id,
		"suffix", card.PrimaryAccountSuffix,
		"network", network,
		"replacing", cfg.PrimaryAccountIdentifier != "")
	return nil
}

func (c *Coordinator) onExchange(surface ui.Surface, gen uint64, chain [][]byte, nonce, nonceSignature []byte, respond ui.ExchangeResponder) {
	s := c.sess
	if reason := c.staleReason(s, surface, gen); reason != "" {
		c.dropExchange(s, reason)
		return
	}
	if !surface.Alive() {
		c.dropExchange(s, "surface detached")
		return
	}
	if s.begin == nil {
		c.dropExchange(s, "no begin caller pending")
		return
	}
	if respond == nil {
		c.dropExchange(s, "no responder")
		return
	}

	// Fresh window for the issuer round trip.
	c.stopDeadline(s)
	c.armDeadline(s)

	s.responder = newOneShotResponder(s.gen, respond)
	exchange := Exchange{
		Nonce:            EncodeHex(nonce),
		NonceSignature:   EncodeHex(nonceSignature),
		CertificateChain: encodeChain(chain),
	}
	begin := s.begin
	s.begin = nil

	c.traceExchange(s, log.ExchangeEvent{
		Step:             log.ExchangeRequested,
		CertificateCount: len(chain),
		NonceSize:        len(nonce),
	})
	c.logger.Debug("exchange delivered", "session", s.id, "certificates", len(chain))

	c.notify.Post(func() { begin.Resolve(exchange) })
}

func (c *Coordinator) complete(material ServerMaterial, caller Pending[struct{}]) error {
	if c.closed {
		return ErrClosed
	}
	s := c.sess
	if s == nil || s.responder == nil {
		return ErrNotInProgress
	}
	if s.complete != nil || s.state != StateAwaitingExchange {
		return ErrAlreadyInProgress
	}

	req, err := decodeMaterial(material)
	if err != nil {
		return err
	}

	s.complete = caller
	c.setState(s, StateAwaitingCompletion, "server material received")

	gen := s.gen
	s.stabilizeTimer = c.loop.AfterFunc(c.config.StabilizationDelay, func() {
		c.fireResponder(gen, req)
	})
	c.traceExchange(s, log.ExchangeEvent{Step: log.ExchangeResponderScheduled})
	return nil
}

func (c *Coordinator) fireResponder(gen uint64, req ui.AddPaymentPassRequest) {
	s := c.sess
	if s == nil || s.gen != gen || s.state != StateAwaitingCompletion {
		c.dropExchange(s, "stale responder continuation")
		return
	}
	s.stabilizeTimer = nil

	if s.surface == nil || !s.surface.Alive() {
		// Pending caller is released by the deadline.
		c.dropExchange(s, "surface detached before responder")
		return
	}
	respond, ok := s.responder.take(gen)
	if !ok {
		c.dropExchange(s, "responder already fired")
		return
	}

	c.setState(s, StateFinishing, "responder invoked")
	c.traceExchange(s, log.ExchangeEvent{Step: log.ExchangeResponderInvoked})
	c.notify.Post(func() { respond(req) })
}

func (c *Coordinator) onFinished(surface ui.Surface, gen uint64, result error) {
	s := c.sess
	if reason := c.staleReason(s, surface, gen); reason != "" {
		c.dropExchange(s, "finished: "+reason)
		return
	}

	reason := "finished"
	if result != nil {
		reason = "finished with error"
	}
	c.traceExchange(s, log.ExchangeEvent{Step: log.ExchangeFinished, Reason: errString(result)})
	begin, complete := c.cleanup(reason)

	switch {
	case complete != nil && result == nil:
		c.logger.Info("pass added", "session", s.id, "suffix", s.card.PrimaryAccountSuffix)
		c.notify.Post(func() { complete.Resolve(struct{}{}) })
	case complete != nil:
		c.rejectComplete(complete, asSystemError(result))
	case begin != nil:
		err := asSystemError(result)
		if err == nil {
			err = ErrCancelled
		}
		c.rejectBegin(begin, err)
	default:
		c.logger.Debug("result dropped, no caller pending", "session", s.id, "error", result)
	}
}

// onDeadline handles the timer armed for gen with sequence seq. A timer
// that fired before being re-armed still runs, so both must match.
func (c *Coordinator) onDeadline(gen, seq uint64) {
	s := c.sess
	if s == nil || s.gen != gen || s.deadlineSeq != seq {
		return
	}
	s.deadlineTimer = nil
	c.logger.Warn("provisioning timed out", "session", s.id, "state", s.state)
	c.traceError(s, CodeTimeout, ErrTimeout.Error(), s.state.String())

	begin, complete := c.cleanup("deadline expired")
	if begin != nil {
		c.rejectBegin(begin, ErrTimeout)
	}
	if complete != nil {
		c.rejectComplete(complete, ErrTimeout)
	}
}

// cleanup is the only path back to Idle. It stops both timers and clears
// every handle, returning the callers that were still pending.
func (c *Coordinator) cleanup(reason string) (Pending[Exchange], Pending[struct{}]) {
	s := c.sess
	if s == nil {
		return nil, nil
	}
	c.stopDeadline(s)
	if s.stabilizeTimer != nil {
		s.stabilizeTimer.Stop()
		s.stabilizeTimer = nil
	}
	begin, complete := s.begin, s.complete
	s.begin = nil
	s.complete = nil
	s.responder = nil
	s.surface = nil

	old := s.state
	s.state = StateIdle
	c.sess = nil
	c.traceState(s, old, StateIdle, reason)
	return begin, complete
}

func (c *Coordinator) armDeadline(s *session) {
	s.deadlineSeq++
	gen, seq := s.gen, s.deadlineSeq
	s.deadline = time.Now().Add(c.config.Timeout)
	s.deadlineTimer = c.loop.AfterFunc(c.config.Timeout, func() {
		c.onDeadline(gen, seq)
	})
}

func (c *Coordinator) stopDeadline(s *session) {
	if s.deadlineTimer != nil {
		s.deadlineTimer.Stop()
		s.deadlineTimer = nil
	}
}

func (c *Coordinator) setState(s *session, state State, reason string) {
	old := s.state
	s.state = state
	c.traceState(s, old, state, reason)
}

// staleReason returns why an event for surface and gen does not belong to
// the live session, or "" if it does. gen 0 skips the generation check.
func (c *Coordinator) staleReason(s *session, surface ui.Surface, gen uint64) string {
	switch {
	case s == nil:
		return "no session"
	case gen != 0 && gen != s.gen:
		return "superseded session"
	case surface == nil || s.surface == nil || surface != s.surface:
		return "foreign surface"
	default:
		return ""
	}
}

func (c *Coordinator) rejectBegin(p Pending[Exchange], err error) {
	c.notify.Post(func() { p.Reject(err) })
}

func (c *Coordinator) rejectComplete(p Pending[struct{}], err error) {
	c.notify.Post(func() { p.Reject(err) })
}

// ---- validation ----

func validateCard(card CardInfo) (wallet.Network, error) {
	switch {
	case strings.TrimSpace(card.CardholderName) == "":
		return "", &InvalidInputError{Field: "cardholderName"}
	case strings.TrimSpace(card.LocalizedDescription) == "":
		return "", &InvalidInputError{Field: "localizedDescription"}
	case strings.TrimSpace(card.PrimaryAccountSuffix) == "":
		return "", &InvalidInputError{Field: "primaryAccountSuffix"}
	}
	network, ok := wallet.ParseNetwork(card.PaymentNetwork)
	if !ok {
		return "", &UnsupportedNetworkError{Network: card.PaymentNetwork}
	}
	return network, nil
}

func decodeMaterial(m ServerMaterial) (ui.AddPaymentPassRequest, error) {
	var (
		req ui.AddPaymentPassRequest
		err error
	)
	if req.EncryptedPassData, err = decodeField("encryptedPassData", m.EncryptedPassData); err != nil {
		return ui.AddPaymentPassRequest{}, err
	}
	if req.EphemeralPublicKey, err = decodeField("ephemeralPublicKey", m.EphemeralPublicKey); err != nil {
		return ui.AddPaymentPassRequest{}, err
	}
	if req.ActivationData, err = decodeField("activationData", m.ActivationData); err != nil {
		return ui.AddPaymentPassRequest{}, err
	}
	return req, nil
}

func decodeField(name, value string) ([]byte, error) {
	if value == "" {
		return nil, &MissingFieldError{Field: name}
	}
	b, err := DecodeHex(value)
	if err != nil {
		return nil, &MalformedHexError{Field: name, Err: err}
	}
	return b, nil
}

// ---- tracing ----

func (c *Coordinator) traceState(s *session, old, state State, reason string) {
	c.trace.Log(log.Event{
		Timestamp:     time.Now(),
		SessionID:     s.id,
		Direction:     log.DirectionIn,
		Layer:         log.LayerCoordinator,
		Category:      log.CategoryState,
		AccountSuffix: s.card.PrimaryAccountSuffix,
		StateChange: &log.StateChangeEvent{
			OldState: old.String(),
			NewState: state.String(),
			Reason:   reason,
		},
	})
}

func (c *Coordinator) traceExchange(s *session, ev log.ExchangeEvent) {
	c.trace.Log(log.Event{
		Timestamp:     time.Now(),
		SessionID:     s.id,
		Direction:     log.DirectionIn,
		Layer:         log.LayerPlatform,
		Category:      log.CategoryExchange,
		AccountSuffix: s.card.PrimaryAccountSuffix,
		Exchange:      &ev,
	})
}

func (c *Coordinator) dropExchange(s *session, reason string) {
	c.logger.Debug("sheet event dropped", "reason", reason)
	ev := log.Event{
		Timestamp: time.Now(),
		Direction: log.DirectionIn,
		Layer:     log.LayerPlatform,
		Category:  log.CategoryExchange,
		Exchange:  &log.ExchangeEvent{Step: log.ExchangeDropped, Reason: reason},
	}
	if s != nil {
		ev.SessionID = s.id
		ev.AccountSuffix = s.card.PrimaryAccountSuffix
	}
	c.trace.Log(ev)
}

func (c *Coordinator) traceError(s *session, code, msg, op string) {
	c.trace.Log(log.Event{
		Timestamp:     time.Now(),
		SessionID:     s.id,
		Direction:     log.DirectionOut,
		Layer:         log.LayerCoordinator,
		Category:      log.CategoryError,
		AccountSuffix: s.card.PrimaryAccountSuffix,
		Error: &log.ErrorEventData{
			Layer:   log.LayerCoordinator,
			Message: msg,
			Code:    code,
			Context: op,
		},
	})
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
