package bridge

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/passbridge/passbridge-go/pkg/log"
	"github.com/passbridge/passbridge-go/pkg/provisioning"
	"github.com/passbridge/passbridge-go/pkg/wallet"
)

// Plugin method names.
const (
	MethodStartAddPaymentPass    = "startAddPaymentPass"
	MethodCompleteAddPaymentPass = "completeAddPaymentPass"
	MethodGetAvailableActions    = "getAvailableActions"
	MethodCanAddPaymentPass      = "canAddPaymentPass"
	MethodOpenCard               = "openCard"
)

// Provisioner runs provisioning sessions. Implemented by
// *provisioning.Coordinator.
type Provisioner interface {
	Begin(card provisioning.CardInfo, caller provisioning.Pending[provisioning.Exchange]) error
	Complete(material provisioning.ServerMaterial, caller provisioning.Pending[struct{}]) error
}

var _ Provisioner = (*provisioning.Coordinator)(nil)

// PluginConfig configures a Plugin.
type PluginConfig struct {
	// Logger for operational messages. Nil discards.
	Logger *slog.Logger

	// ProtocolLogger receives call trace events. Nil disables tracing.
	ProtocolLogger log.Logger
}

// Plugin dispatches shell calls to the provisioning coordinator and the
// wallet.
type Plugin struct {
	provisioner Provisioner
	library     wallet.Library
	opener      wallet.Opener
	shell       Shell
	logger      *slog.Logger
	trace       log.Logger
}

// NewPlugin creates a Plugin.
func NewPlugin(p Provisioner, lib wallet.Library, opener wallet.Opener, shell Shell, cfg PluginConfig) *Plugin {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.ProtocolLogger == nil {
		cfg.ProtocolLogger = log.NoopLogger{}
	}
	return &Plugin{
		provisioner: p,
		library:     lib,
		opener:      opener,
		shell:       shell,
		logger:      cfg.Logger,
		trace:       cfg.ProtocolLogger,
	}
}

// Options of the plugin methods.
type (
	accountOptions struct {
		PrimaryAccountSuffix string `json:"primaryAccountSuffix"`
	}

	actionsResult struct {
		Actions []wallet.Action `json:"actions"`
	}

	valueResult struct {
		Value bool `json:"value"`
	}
)

// Handle dispatches call. Synchronous methods are settled before Handle
// returns; asynchronous ones are saved with the Shell until settled.
func (p *Plugin) Handle(call *Call) {
	p.traceCall(call, log.CallReceived, nil)

	switch call.Method {
	case MethodStartAddPaymentPass:
		p.startAddPaymentPass(call)
	case MethodCompleteAddPaymentPass:
		p.completeAddPaymentPass(call)
	case MethodGetAvailableActions:
		p.getAvailableActions(call)
	case MethodCanAddPaymentPass:
		p.resolve(call, valueResult{Value: p.library.CanAddPasses()})
	case MethodOpenCard:
		p.openCard(call)
	default:
		p.reject(call, fmt.Errorf("%w: %s", ErrUnknownMethod, call.Method))
	}
}

func (p *Plugin) startAddPaymentPass(call *Call) {
	var card provisioning.CardInfo
	if err := call.Decode(&card); err != nil {
		p.reject(call, err)
		return
	}

	p.save(call)
	if err := p.provisioner.Begin(card, pendingCall[provisioning.Exchange]{p: p, call: call}); err != nil {
		p.release(call)
		p.reject(call, err)
	}
}

func (p *Plugin) completeAddPaymentPass(call *Call) {
	var material provisioning.ServerMaterial
	if err := call.Decode(&material); err != nil {
		p.reject(call, err)
		return
	}

	p.save(call)
	if err := p.provisioner.Complete(material, pendingCall[struct{}]{p: p, call: call}); err != nil {
		p.release(call)
		p.reject(call, err)
	}
}

func (p *Plugin) getAvailableActions(call *Call) {
	var opts accountOptions
	if err := call.Decode(&opts); err != nil {
		p.reject(call, err)
		return
	}
	actions := wallet.AvailableActions(p.library, opts.PrimaryAccountSuffix)
	p.resolve(call, actionsResult{Actions: actions.Slice()})
}

func (p *Plugin) openCard(call *Call) {
	var opts accountOptions
	if err := call.Decode(&opts); err != nil {
		p.reject(call, err)
		return
	}
	if err := wallet.OpenCard(p.library, p.opener, opts.PrimaryAccountSuffix); err != nil {
		p.reject(call, err)
		return
	}
	p.resolve(call, nil)
}

func (p *Plugin) save(call *Call) {
	p.shell.SaveCall(call)
	p.traceCall(call, log.CallSaved, nil)
}

func (p *Plugin) release(call *Call) {
	p.shell.ReleaseCall(call)
}

func (p *Plugin) resolve(call *Call, data any) {
	call.Resolve(data)
	p.traceCall(call, log.CallResolved, nil)
}

func (p *Plugin) reject(call *Call, err error) {
	call.Reject(err)
	p.traceCall(call, log.CallRejected, err)
	p.logger.Debug("call rejected", "method", call.Method, "callback", call.ID, "error", err)
}

func (p *Plugin) traceCall(call *Call, outcome log.CallOutcome, err error) {
	ev := &log.CallEvent{Method: call.Method, Outcome: outcome}
	dir := log.DirectionIn
	if outcome == log.CallResolved || outcome == log.CallRejected {
		d := time.Since(call.Received)
		ev.Duration = &d
		dir = log.DirectionOut
	}
	if err != nil {
		ev.Code = Code(err)
	}
	p.trace.Log(log.Event{
		Timestamp:  time.Now(),
		Direction:  dir,
		Layer:      log.LayerBridge,
		Category:   log.CategoryCall,
		CallbackID: call.ID,
		Call:       ev,
	})
}

// pendingCall settles a saved call and releases it from the shell.
type pendingCall[T any] struct {
	p    *Plugin
	call *Call
}

func (c pendingCall[T]) Resolve(value T) {
	c.p.release(c.call)
	c.p.resolve(c.call, value)
}

func (c pendingCall[T]) Reject(err error) {
	c.p.release(c.call)
	c.p.reject(c.call, err)
}
