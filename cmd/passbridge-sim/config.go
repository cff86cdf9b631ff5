package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/passbridge/passbridge-go/pkg/issuer"
	"github.com/passbridge/passbridge-go/pkg/provisioning"
)

// Config holds the simulator configuration. Values from the -config file
// are overridden by flags given on the command line.
type Config struct {
	ConfigFile string `yaml:"-"`

	// IssuerURL is the base URL of the issuer API. Empty with Discover set
	// looks the issuer up via mDNS.
	IssuerURL string `yaml:"issuerURL"`
	Discover  bool   `yaml:"discover"`
	Interface string `yaml:"interface"`

	// WalletFile is a YAML wallet fixture.
	WalletFile   string `yaml:"wallet"`
	AutoExchange bool   `yaml:"autoExchange"`

	Timeout            time.Duration        `yaml:"timeout"`
	StabilizationDelay time.Duration        `yaml:"stabilizationDelay"`
	Backoff            issuer.BackoffConfig `yaml:"backoff"`

	LogLevel    string `yaml:"logLevel"`
	ProtocolLog string `yaml:"protocolLog"`
	LogTrace    bool   `yaml:"logTrace"`

	// Stdio serves the JSON bridge on stdin/stdout instead of the shell.
	Stdio bool `yaml:"-"`
}

func defaultConfig() Config {
	return Config{
		IssuerURL:          "http://localhost:8080",
		Timeout:            provisioning.DefaultTimeout,
		StabilizationDelay: provisioning.DefaultStabilizationDelay,
		LogLevel:           "info",
	}
}

// parseConfig builds the configuration from args.
func parseConfig(args []string, stderr io.Writer) (Config, error) {
	cfg := defaultConfig()
	var flags Config

	fs := flag.NewFlagSet("passbridge-sim", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&flags.ConfigFile, "config", "", "Configuration file path (YAML)")
	fs.StringVar(&flags.IssuerURL, "issuer", cfg.IssuerURL, "Issuer base URL")
	fs.BoolVar(&flags.Discover, "discover", false, "Discover the issuer via mDNS")
	fs.StringVar(&flags.Interface, "interface", "", "Network interface for mDNS")
	fs.StringVar(&flags.WalletFile, "wallet", "", "Wallet fixture file (YAML)")
	fs.BoolVar(&flags.AutoExchange, "auto-exchange", false, "Request the exchange as soon as the sheet is shown")
	fs.DurationVar(&flags.Timeout, "timeout", cfg.Timeout, "Provisioning session timeout")
	fs.DurationVar(&flags.StabilizationDelay, "stabilization-delay", cfg.StabilizationDelay, "Delay before handing material to the sheet")
	fs.StringVar(&flags.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	fs.StringVar(&flags.ProtocolLog, "protocol-log", "", "Write trace events to this file (CBOR)")
	fs.BoolVar(&flags.LogTrace, "log-trace", false, "Also write trace events to the console log")
	fs.BoolVar(&flags.Stdio, "stdio", false, "Serve the JSON bridge on stdin/stdout")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if flags.ConfigFile != "" {
		if err := loadConfigFile(flags.ConfigFile, &cfg); err != nil {
			return Config{}, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "config":
			cfg.ConfigFile = flags.ConfigFile
		case "issuer":
			cfg.IssuerURL = flags.IssuerURL
		case "discover":
			cfg.Discover = flags.Discover
		case "interface":
			cfg.Interface = flags.Interface
		case "wallet":
			cfg.WalletFile = flags.WalletFile
		case "auto-exchange":
			cfg.AutoExchange = flags.AutoExchange
		case "timeout":
			cfg.Timeout = flags.Timeout
		case "stabilization-delay":
			cfg.StabilizationDelay = flags.StabilizationDelay
		case "log-level":
			cfg.LogLevel = flags.LogLevel
		case "protocol-log":
			cfg.ProtocolLog = flags.ProtocolLog
		case "log-trace":
			cfg.LogTrace = flags.LogTrace
		case "stdio":
			cfg.Stdio = flags.Stdio
		}
	})

	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return Config{}, err
	}
	if cfg.Timeout <= 0 {
		return Config{}, errors.New("timeout must be positive")
	}
	return cfg, nil
}

func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level: %s (use: debug, info, warn, error)", s)
	}
}

// coordinatorConfig maps the simulator settings onto the coordinator.
func (c Config) coordinatorConfig(logger *slog.Logger) provisioning.Config {
	pc := provisioning.DefaultConfig()
	pc.Timeout = c.Timeout
	pc.StabilizationDelay = c.StabilizationDelay
	pc.Logger = logger
	return pc
}
