// Package interactive provides the interactive command-line interface of
// passbridge-sim.
package interactive

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/chzyer/readline"

	"github.com/passbridge/passbridge-go/pkg/bridge"
	"github.com/passbridge/passbridge-go/pkg/discovery"
	"github.com/passbridge/passbridge-go/pkg/issuer"
	"github.com/passbridge/passbridge-go/pkg/provisioning"
	"github.com/passbridge/passbridge-go/pkg/simulator"
	"github.com/passbridge/passbridge-go/pkg/wallet"
)

// Deps are the components the shell drives.
type Deps struct {
	Plugin      bridge.Handler
	Coordinator *provisioning.Coordinator
	Presenter   *simulator.Presenter
	Library     *simulator.Library

	// IssuerURL is the initial issuer. It can be changed with "issuer".
	IssuerURL string

	// NewClient creates an issuer client for a base URL.
	NewClient func(baseURL string) *issuer.Client

	// Browser finds issuers on the network. Nil disables "discover".
	Browser discovery.Browser
}

// Shell handles interactive mode for passbridge-sim.
type Shell struct {
	deps Deps
	rl   *readline.Instance
	out  io.Writer

	mu       sync.Mutex
	client   *issuer.Client
	card     provisioning.CardInfo
	exchange *provisioning.Exchange
}

// New creates a new interactive shell.
func New(deps Deps) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "passbridge> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	s := newShell(deps, rl.Stdout())
	s.rl = rl
	return s, nil
}

func newShell(deps Deps, out io.Writer) *Shell {
	s := &Shell{deps: deps, out: out}
	if deps.IssuerURL != "" && deps.NewClient != nil {
		s.client = deps.NewClient(deps.IssuerURL)
	}
	return s
}

// Stdout returns a writer that properly coordinates with the readline input.
// Use this for log output to avoid interfering with the command prompt.
func (s *Shell) Stdout() io.Writer {
	return s.out
}

// Run starts the interactive command loop.
func (s *Shell) Run(ctx context.Context, cancel context.CancelFunc) {
	defer s.rl.Close()

	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.out, "Exiting...")
			cancel()
			return
		}

		if !s.Exec(ctx, line) {
			fmt.Fprintln(s.out, "Exiting...")
			cancel()
			return
		}
	}
}

// Exec runs one command line. It returns false when the shell should exit.
func (s *Shell) Exec(ctx context.Context, line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return true
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		s.printHelp()
	case "add":
		s.cmdAdd(args)
	case "exchange":
		s.cmdExchange()
	case "complete":
		s.cmdComplete(args)
	case "provision":
		s.cmdProvision(ctx)
	case "dismiss":
		s.cmdDismiss()
	case "cancel":
		s.cmdCancel()
	case "actions":
		s.cmdAccount(cmd, bridge.MethodGetAvailableActions, args)
	case "open":
		s.cmdAccount(cmd, bridge.MethodOpenCard, args)
	case "can":
		s.call(bridge.MethodCanAddPaymentPass, nil, nil)
	case "passes", "ls":
		s.cmdPasses()
	case "status":
		s.cmdStatus()
	case "issuer":
		s.cmdIssuer(args)
	case "discover":
		s.cmdDiscover(ctx)
	case "quit", "exit", "q":
		return false
	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return true
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, `
Passbridge Simulator Commands:
  Provisioning:
    add <suffix> <network> [name...]  - Start adding a card
    exchange                          - Sheet: request the certificate exchange
    provision                         - Fetch material from the issuer and complete
    complete <data> <ephemeral> <act> - Complete with hex-encoded material
    dismiss                           - Sheet: detach without a result
    cancel                            - Sheet: user cancels

  Wallet:
    actions <suffix>                  - Show available actions for a card
    open <suffix>                     - Open a card in the wallet
    can                               - Check if passes can be added
    passes                            - List wallet passes

  General:
    issuer [url]                      - Show or set the issuer URL
    discover                          - Find issuers on the network
    status                            - Show session status
    help                              - Show this help
    quit                              - Exit`)
}

// call sends a plugin call and prints its response. onSuccess, if set,
// receives the resolved data.
func (s *Shell) call(method string, options any, onSuccess func(data any)) {
	var raw json.RawMessage
	if options != nil {
		b, err := json.Marshal(options)
		if err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
			return
		}
		raw = b
	}

	s.deps.Plugin.Handle(bridge.NewCall("", method, raw, func(resp bridge.Response) {
		if resp.Success && onSuccess != nil {
			onSuccess(resp.Data)
		}
		s.printResponse(method, resp)
	}))
}

func (s *Shell) printResponse(method string, resp bridge.Response) {
	if !resp.Success {
		fmt.Fprintf(s.out, "[%s] rejected: %s (%s)\n", method, resp.Error.Message, resp.Error.Code)
		return
	}
	data, err := json.MarshalIndent(resp.Data, "  ", "  ")
	if err != nil {
		fmt.Fprintf(s.out, "[%s] resolved\n", method)
		return
	}
	fmt.Fprintf(s.out, "[%s] resolved:\n  %s\n", method, data)
}

func (s *Shell) cmdAdd(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(s.out, "Usage: add <suffix> <network> [cardholder name...]")
		return
	}
	card := provisioning.CardInfo{
		PrimaryAccountSuffix: args[0],
		PaymentNetwork:       args[1],
		CardholderName:       "Test Cardholder",
		LocalizedDescription: "Card " + args[0],
	}
	if len(args) > 2 {
		card.CardholderName = strings.Join(args[2:], " ")
	}

	s.mu.Lock()
	s.card = card
	s.exchange = nil
	s.mu.Unlock()

	s.call(bridge.MethodStartAddPaymentPass, card, func(data any) {
		if ex, ok := data.(provisioning.Exchange); ok {
			s.mu.Lock()
			s.exchange = &ex
			s.mu.Unlock()
		}
	})
}

func (s *Shell) cmdExchange() {
	sheet := s.deps.Presenter.Current()
	if sheet == nil {
		fmt.Fprintln(s.out, "No sheet presented")
		return
	}
	if err := sheet.RequestExchange(); err != nil {
		fmt.Fprintf(s.out, "Exchange failed: %v\n", err)
	}
}

func (s *Shell) cmdComplete(args []string) {
	if len(args) < 3 {
		fmt.Fprintln(s.out, "Usage: complete <encryptedPassData> <ephemeralPublicKey> <activationData>")
		return
	}
	s.call(bridge.MethodCompleteAddPaymentPass, provisioning.ServerMaterial{
		EncryptedPassData:  args[0],
		EphemeralPublicKey: args[1],
		ActivationData:     args[2],
	}, nil)
}

func (s *Shell) cmdProvision(ctx context.Context) {
	s.mu.Lock()
	card, ex, client := s.card, s.exchange, s.client
	s.mu.Unlock()

	if ex == nil {
		fmt.Fprintln(s.out, "No exchange yet (use 'add' then 'exchange')")
		return
	}
	if client == nil {
		fmt.Fprintln(s.out, "No issuer configured (use 'issuer <url>' or 'discover')")
		return
	}

	fmt.Fprintln(s.out, "Requesting pass data from issuer...")
	reqCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	material, err := client.Provision(reqCtx, issuer.NewProvisionRequest(card, *ex))
	cancel()
	if err != nil {
		fmt.Fprintf(s.out, "Issuer error: %v\n", err)
		return
	}
	s.call(bridge.MethodCompleteAddPaymentPass, material, nil)
}

func (s *Shell) cmdDismiss() {
	sheet := s.deps.Presenter.Current()
	if sheet == nil {
		fmt.Fprintln(s.out, "No sheet presented")
		return
	}
	sheet.Dismiss()
	fmt.Fprintln(s.out, "Sheet dismissed")
}

func (s *Shell) cmdCancel() {
	sheet := s.deps.Presenter.Current()
	if sheet == nil {
		fmt.Fprintln(s.out, "No sheet presented")
		return
	}
	if err := sheet.Cancel(); err != nil {
		fmt.Fprintf(s.out, "Cancel failed: %v\n", err)
	}
}

func (s *Shell) cmdAccount(name, method string, args []string) {
	if len(args) < 1 {
		fmt.Fprintf(s.out, "Usage: %s <suffix>\n", name)
		return
	}
	s.call(method, map[string]string{"primaryAccountSuffix": args[0]}, nil)
}

func (s *Shell) cmdPasses() {
	lib := s.deps.Library
	printPasses := func(title string, passes []wallet.Pass) {
		fmt.Fprintf(s.out, "\n%s (%d):\n", title, len(passes))
		fmt.Fprintln(s.out, "-------------------------------------------")
		for _, p := range passes {
			fmt.Fprintf(s.out, "  *%s  %-14s %-20s %s\n",
				p.PrimaryAccountNumberSuffix, p.Network, p.ActivationState, p.LocalizedDescription)
		}
	}
	printPasses("Device passes", lib.Passes())
	if lib.CompanionPaired() {
		printPasses("Companion passes", lib.RemotePasses())
	}
	if opened := lib.Opened(); len(opened) > 0 {
		fmt.Fprintf(s.out, "\nOpened URLs:\n  %s\n", strings.Join(opened, "\n  "))
	}
}

func (s *Shell) cmdStatus() {
	st := s.deps.Coordinator.Status()
	fmt.Fprintln(s.out, "\nSession Status:")
	fmt.Fprintln(s.out, "-------------------------------------------")
	fmt.Fprintf(s.out, "  State:     %s\n", st.State)
	if st.SessionID != "" {
		fmt.Fprintf(s.out, "  Session:   %s\n", st.SessionID)
		fmt.Fprintf(s.out, "  Account:   *%s\n", st.AccountSuffix)
		fmt.Fprintf(s.out, "  Expires in: %s\n", time.Until(st.Deadline).Round(time.Second))
	}
	s.mu.Lock()
	hasExchange := s.exchange != nil
	s.mu.Unlock()
	fmt.Fprintf(s.out, "  Exchange:  %v\n", hasExchange)
	if sheet := s.deps.Presenter.Current(); sheet != nil {
		fmt.Fprintf(s.out, "  Sheet:     alive=%v\n", sheet.Alive())
	}
}

func (s *Shell) cmdIssuer(args []string) {
	if len(args) == 0 {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.client == nil {
			fmt.Fprintln(s.out, "No issuer configured")
			return
		}
		fmt.Fprintf(s.out, "Issuer: %s\n", s.deps.IssuerURL)
		return
	}
	s.setIssuer(args[0])
}

func (s *Shell) setIssuer(url string) {
	if s.deps.NewClient == nil {
		return
	}
	s.mu.Lock()
	s.deps.IssuerURL = url
	s.client = s.deps.NewClient(url)
	s.mu.Unlock()
	fmt.Fprintf(s.out, "Issuer set to %s\n", url)
}

func (s *Shell) cmdDiscover(ctx context.Context) {
	if s.deps.Browser == nil {
		fmt.Fprintln(s.out, "Discovery not available")
		return
	}
	fmt.Fprintln(s.out, "Discovering issuers...")
	discoverCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	svc, err := discovery.FindFirst(discoverCtx, s.deps.Browser)
	if err != nil {
		fmt.Fprintf(s.out, "Discovery error: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "Found %s (%s) at %s:%d\n", svc.InstanceName, svc.Name, svc.Host, svc.Port)
	s.setIssuer(svc.BaseURL())
}
