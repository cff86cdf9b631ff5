package simulator

import (
	"bytes"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/passbridge/passbridge-go/pkg/issuer"
	"github.com/passbridge/passbridge-go/pkg/ui"
	"github.com/passbridge/passbridge-go/pkg/wallet"
)

// NonceSize is the length of the wallet nonce.
const NonceSize = 32

// Sheet errors.
var (
	ErrUserCancelled      = errors.New("user cancelled")
	ErrSheetClosed        = errors.New("sheet is closed")
	ErrExchangeRequested  = errors.New("exchange already requested")
	ErrActivationMismatch = errors.New("activation data does not match")
	ErrPresentFailed      = errors.New("wallet sheet could not be presented")
)

// intermediateCert stands in for the platform's intermediate certificate.
var intermediateCert = []byte("passbridge simulator intermediate")

// PresenterConfig configures a Presenter.
type PresenterConfig struct {
	// AutoExchange makes each new sheet request the exchange right away.
	AutoExchange bool

	// Logger for operational messages. Nil discards.
	Logger *slog.Logger
}

// Presenter is a simulated wallet sheet presenter.
type Presenter struct {
	library *Library
	config  PresenterConfig
	logger  *slog.Logger

	mu       sync.Mutex
	sheets   []*Sheet
	failNext error
}

// NewPresenter creates a Presenter whose sheets add passes to library.
func NewPresenter(library *Library, config PresenterConfig) *Presenter {
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	return &Presenter{library: library, config: config, logger: config.Logger}
}

// FailNext makes the next Present call fail with err.
func (p *Presenter) FailNext(err error) {
	p.mu.Lock()
	p.failNext = err
	p.mu.Unlock()
}

// Present implements ui.Presenter.
func (p *Presenter) Present(cfg ui.Configuration, sink ui.EventSink) (ui.Surface, error) {
	p.mu.Lock()
	if err := p.failNext; err != nil {
		p.failNext = nil
		p.mu.Unlock()
		return nil, fmt.Errorf("%w: %w", ErrPresentFailed, err)
	}
	p.mu.Unlock()

	key, err := issuer.GenerateDeviceKey()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPresentFailed, err)
	}
	s := &Sheet{
		cfg:     cfg,
		sink:    sink,
		library: p.library,
		key:     key,
		logger:  p.logger,
		done:    make(chan struct{}),
	}
	s.alive.Store(true)

	p.mu.Lock()
	p.sheets = append(p.sheets, s)
	p.mu.Unlock()

	p.logger.Debug("sheet presented", "suffix", cfg.PrimaryAccountSuffix, "network", cfg.PaymentNetwork)
	if p.config.AutoExchange {
		go func() {
			if err := s.RequestExchange(); err != nil {
				p.logger.Warn("auto exchange failed", "error", err)
			}
		}()
	}
	return s, nil
}

// Current returns the most recently presented sheet, or nil.
func (p *Presenter) Current() *Sheet {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.sheets) == 0 {
		return nil
	}
	return p.sheets[len(p.sheets)-1]
}

// Sheets returns every sheet presented so far.
func (p *Presenter) Sheets() []*Sheet {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*Sheet(nil), p.sheets...)
}

// Sheet is a simulated wallet sheet. It implements ui.Surface.
type Sheet struct {
	cfg     ui.Configuration
	sink    ui.EventSink
	library *Library
	key     issuer.DeviceKey
	logger  *slog.Logger

	alive atomic.Bool

	mu        sync.Mutex
	nonce     []byte
	requested bool
	finished  bool
	result    error
	pass      *wallet.Pass
	done      chan struct{}
}

// Alive implements ui.Surface.
func (s *Sheet) Alive() bool {
	return s.alive.Load()
}

// Configuration returns the configuration the sheet was presented with.
func (s *Sheet) Configuration() ui.Configuration {
	return s.cfg
}

// DeviceKey returns the sheet's device key.
func (s *Sheet) DeviceKey() issuer.DeviceKey {
	return s.key
}

// RequestExchange sends the device certificate chain, a fresh nonce and its
// signature to the sink.
func (s *Sheet) RequestExchange() error {
	s.mu.Lock()
	if !s.alive.Load() || s.finished {
		s.mu.Unlock()
		return ErrSheetClosed
	}
	if s.requested {
		s.mu.Unlock()
		return ErrExchangeRequested
	}
	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		s.mu.Unlock()
		return err
	}
	s.nonce = nonce
	s.requested = true
	s.mu.Unlock()

	chain := [][]byte{s.key.Public, intermediateCert}
	s.sink.ExchangeRequested(s, chain, nonce, s.sign(nonce), s.respond)
	return nil
}

// sign produces the simulated nonce signature.
func (s *Sheet) sign(nonce []byte) []byte {
	mac := hmac.New(sha256.New, s.key.Private)
	mac.Write(nonce)
	return mac.Sum(nil)
}

// Dismiss detaches the sheet without reporting a result, as when the host
// view goes away.
func (s *Sheet) Dismiss() {
	s.alive.Store(false)
}

// Cancel closes the sheet as if the user tapped cancel.
func (s *Sheet) Cancel() error {
	if !s.finish(ErrUserCancelled, nil) {
		return ErrSheetClosed
	}
	s.sink.Finished(s, ErrUserCancelled)
	return nil
}

// respond is the sheet's exchange responder.
func (s *Sheet) respond(req ui.AddPaymentPassRequest) {
	if !s.alive.Load() {
		s.logger.Debug("responder invoked on detached sheet")
		return
	}
	pass, err := s.addPass(req)
	if !s.finish(err, pass) {
		return
	}
	if pass != nil {
		s.library.AddPass(*pass)
		s.logger.Info("pass added", "suffix", pass.PrimaryAccountNumberSuffix, "serial", pass.SerialNumber)
	}
	s.sink.Finished(s, err)
}

// addPass decrypts and checks the issuer's material.
func (s *Sheet) addPass(req ui.AddPaymentPassRequest) (*wallet.Pass, error) {
	s.mu.Lock()
	nonce := s.nonce
	s.mu.Unlock()

	payload, err := issuer.OpenPassData(s.key.Private, nonce, req.EphemeralPublicKey, req.EncryptedPassData)
	if err != nil {
		return nil, err
	}
	activation, err := issuer.ActivationData(req.EphemeralPublicKey, nonce)
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(activation, req.ActivationData) {
		return nil, ErrActivationMismatch
	}
	if payload.PrimaryAccountSuffix != s.cfg.PrimaryAccountSuffix {
		return nil, fmt.Errorf("pass data is for account %s, want %s", payload.PrimaryAccountSuffix, s.cfg.PrimaryAccountSuffix)
	}

	id := payload.PrimaryAccountID
	if s.cfg.PrimaryAccountIdentifier != "" {
		id = s.cfg.PrimaryAccountIdentifier
	}
	network := wallet.Network(payload.PaymentNetwork)
	if n, ok := wallet.ParseNetwork(payload.PaymentNetwork); ok {
		network = n
	}
	serial := uuid.NewString()
	return &wallet.Pass{
		SerialNumber:               serial,
		PrimaryAccountIdentifier:   id,
		PrimaryAccountNumberSuffix: payload.PrimaryAccountSuffix,
		DeviceAccountNumberSuffix:  payload.DeviceAccountSuffix,
		LocalizedDescription:       s.cfg.LocalizedDescription,
		Network:                    network,
		ActivationState:            wallet.ActivationActivated,
		PassURL:                    passURLFor(serial),
	}, nil
}

// finish records the result once. It reports whether this call did so.
func (s *Sheet) finish(err error, pass *wallet.Pass) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finished {
		return false
	}
	s.finished = true
	s.result = err
	s.pass = pass
	s.alive.Store(false)
	close(s.done)
	return true
}

// Done is closed when the sheet reports a result.
func (s *Sheet) Done() <-chan struct{} {
	return s.done
}

// Result returns the reported result and the added pass, if any. Valid
// after Done is closed.
func (s *Sheet) Result() (*wallet.Pass, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pass, s.result
}

var (
	_ ui.Presenter = (*Presenter)(nil)
	_ ui.Surface   = (*Sheet)(nil)
)
