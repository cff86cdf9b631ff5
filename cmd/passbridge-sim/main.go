// Command passbridge-sim runs the provisioning bridge against a simulated
// wallet.
//
// It wires the provisioning coordinator, the bridge plugin, a simulated
// wallet sheet and an issuer client together, then either offers an
// interactive shell or serves the bridge's JSON protocol on stdin/stdout.
//
// Usage:
//
//	passbridge-sim [flags]
//
// Flags:
//
//	-config string              Configuration file path (YAML)
//	-issuer string              Issuer base URL (default "http://localhost:8080")
//	-discover                   Discover the issuer via mDNS
//	-interface string           Network interface for mDNS
//	-wallet string              Wallet fixture file (YAML)
//	-auto-exchange              Request the exchange as soon as the sheet is shown
//	-timeout duration           Provisioning session timeout (default 30s)
//	-stabilization-delay dur    Delay before handing material to the sheet (default 100ms)
//	-log-level string           Log level: debug, info, warn, error (default "info")
//	-protocol-log string        Write trace events to this file (CBOR)
//	-log-trace                  Also write trace events to the console log
//	-stdio                      Serve the JSON bridge on stdin/stdout
//
// Examples:
//
//	# Interactive shell against a local issuer-sim
//	passbridge-sim -wallet wallet.yaml
//
//	# JSON bridge for a host application, tracing to a file
//	passbridge-sim -stdio -auto-exchange -protocol-log session.plog
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/passbridge/passbridge-go/cmd/passbridge-sim/interactive"
	"github.com/passbridge/passbridge-go/pkg/bridge"
	"github.com/passbridge/passbridge-go/pkg/discovery"
	"github.com/passbridge/passbridge-go/pkg/issuer"
	"github.com/passbridge/passbridge-go/pkg/log"
	"github.com/passbridge/passbridge-go/pkg/provisioning"
	"github.com/passbridge/passbridge-go/pkg/simulator"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "passbridge-sim: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := parseConfig(args, os.Stderr)
	if err != nil {
		return err
	}

	// Logs go to stderr; in stdio mode stdout carries the protocol.
	level, _ := parseLevel(cfg.LogLevel)
	handler := newSwitchWriter(os.Stderr)
	logger := slog.New(slog.NewTextHandler(handler, &slog.HandlerOptions{Level: level}))

	trace, closeTrace, err := setupTrace(cfg, logger)
	if err != nil {
		return err
	}
	defer closeTrace()

	lib := simulator.NewLibrary()
	if cfg.WalletFile != "" {
		if lib, err = simulator.LoadLibraryFile(cfg.WalletFile); err != nil {
			return err
		}
		logger.Info("wallet loaded", "file", cfg.WalletFile, "passes", len(lib.Passes()))
	}

	presenter := simulator.NewPresenter(lib, simulator.PresenterConfig{
		AutoExchange: cfg.AutoExchange,
		Logger:       logger.With("component", "sheet"),
	})

	pc := cfg.coordinatorConfig(logger.With("component", "coordinator"))
	pc.ProtocolLogger = trace
	coord := provisioning.NewCoordinator(presenter, lib, pc)
	defer coord.Close()

	shell := bridge.NewCallStore()
	plugin := bridge.NewPlugin(coord, lib, lib, shell, bridge.PluginConfig{
		Logger:         logger.With("component", "bridge"),
		ProtocolLogger: trace,
	})

	newClient := func(baseURL string) *issuer.Client {
		return issuer.NewClient(baseURL, issuer.ClientConfig{
			Backoff:        cfg.Backoff,
			Logger:         logger.With("component", "issuer"),
			ProtocolLogger: trace,
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var browser discovery.Browser = discovery.NewMDNSBrowser(discovery.BrowserConfig{Interface: cfg.Interface})
	issuerURL := cfg.IssuerURL
	if cfg.Discover {
		findCtx, findCancel := context.WithTimeout(ctx, 5*time.Second)
		svc, err := discovery.FindFirst(findCtx, browser)
		findCancel()
		if err != nil {
			logger.Warn("issuer discovery failed, using configured URL", "url", issuerURL, "error", err)
		} else {
			issuerURL = svc.BaseURL()
			logger.Info("issuer discovered", "instance", svc.InstanceName, "url", issuerURL)
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigCh:
			logger.Info("received signal", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	if cfg.Stdio {
		logger.Info("serving bridge on stdio")
		err := bridge.NewChannel(os.Stdin, os.Stdout).Serve(ctx, plugin)
		if pending := shell.Len(); pending > 0 {
			logger.Warn("exiting with pending calls", "count", pending)
		}
		return err
	}

	sh, err := interactive.New(interactive.Deps{
		Plugin:      plugin,
		Coordinator: coord,
		Presenter:   presenter,
		Library:     lib,
		IssuerURL:   issuerURL,
		NewClient:   newClient,
		Browser:     browser,
	})
	if err != nil {
		return err
	}
	// Route log output through readline to avoid interfering with input.
	handler.Set(sh.Stdout())
	sh.Run(ctx, cancel)
	return nil
}

// setupTrace builds the protocol trace logger from the configuration.
func setupTrace(cfg Config, logger *slog.Logger) (log.Logger, func(), error) {
	var loggers []log.Logger
	closeFn := func() {}

	if cfg.ProtocolLog != "" {
		fl, err := log.NewFileLogger(cfg.ProtocolLog)
		if err != nil {
			return nil, nil, fmt.Errorf("open protocol log: %w", err)
		}
		loggers = append(loggers, fl)
		closeFn = func() {
			if err := fl.Err(); err != nil {
				logger.Warn("protocol log incomplete", "file", fl.Path(), "error", err)
			}
			if err := fl.Close(); err != nil {
				logger.Warn("close protocol log", "error", err)
			}
			logger.Debug("protocol log closed", "file", fl.Path(), "events", fl.Count())
		}
		logger.Info("protocol logging enabled", "file", cfg.ProtocolLog)
	}
	if cfg.LogTrace {
		loggers = append(loggers, log.NewSlogAdapter(logger.With("component", "trace")))
	}

	switch len(loggers) {
	case 0:
		return log.NoopLogger{}, closeFn, nil
	case 1:
		return loggers[0], closeFn, nil
	default:
		return log.NewMultiLogger(loggers...), closeFn, nil
	}
}
