// Command issuer-sim runs a simulated card issuer for development.
//
// It accepts provisioning requests from passbridge clients, seals pass data
// to the device key in the certificate chain, and records every issued pass.
//
// Usage:
//
//	issuer-sim [flags]
//
// Flags:
//
//	-port int          HTTP server port (default 8080)
//	-db string         SQLite database path; empty keeps records in memory
//	-name string       Issuer display name (default "Passbridge Dev Issuer")
//	-advertise         Advertise the issuer via mDNS
//	-interface string  Network interface for mDNS
//	-log-level string  Log level: debug, info, warn, error (default "info")
//	-version           Show version information
//
// Examples:
//
//	# Start an issuer keeping records in SQLite and announce it
//	issuer-sim -db ./issuer.db -advertise
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Version information - set at build time via ldflags
var (
	Version   = "0.1.0"
	BuildDate = "dev"
	GitCommit = "unknown"
)

var (
	port        = flag.Int("port", 8080, "HTTP server port")
	dbPath      = flag.String("db", "", "SQLite database path; empty keeps records in memory")
	name        = flag.String("name", "Passbridge Dev Issuer", "Issuer display name")
	advertise   = flag.Bool("advertise", false, "Advertise the issuer via mDNS")
	iface       = flag.String("interface", "", "Network interface for mDNS")
	logLevel    = flag.String("log-level", "info", "Log level: debug, info, warn, error")
	showVersion = flag.Bool("version", false, "Show version information")
)

func main() {
	os.Exit(run())
}

func run() int {
	flag.Parse()

	if *showVersion {
		fmt.Printf("issuer-sim %s (built %s, commit %s)\n", Version, BuildDate, GitCommit)
		return 0
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(*logLevel))); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q\n", *logLevel)
		return 1
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	srv, err := NewServer(ServerConfig{
		Port:      *port,
		DBPath:    *dbPath,
		Name:      *name,
		Advertise: *advertise,
		Interface: *iface,
		Version:   Version,
		Logger:    logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create server: %v\n", err)
		return 1
	}
	defer srv.Close()

	logger.Info("starting issuer", "url", fmt.Sprintf("http://localhost:%d", *port), "db", *dbPath)
	if err := srv.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: server failed: %v\n", err)
		return 1
	}
	return 0
}
