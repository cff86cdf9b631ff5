package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/passbridge/passbridge-go/pkg/discovery"
	"github.com/passbridge/passbridge-go/pkg/issuer"
	"github.com/passbridge/passbridge-go/pkg/wallet"
)

// ServerConfig holds configuration for the issuer server.
type ServerConfig struct {
	Port      int
	DBPath    string
	Name      string
	Advertise bool
	Interface string
	Version   string
	Logger    *slog.Logger
}

// Server is the simulated issuer's HTTP server.
type Server struct {
	config     ServerConfig
	logger     *slog.Logger
	store      issuer.Store
	server     *http.Server
	advertiser discovery.Advertiser
}

// NewServer creates a new server with the given configuration.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}

	var store issuer.Store = issuer.NewMemoryStore()
	if cfg.DBPath != "" {
		sqlite, err := issuer.NewSQLiteStore(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize store: %w", err)
		}
		store = sqlite
	}

	handler := issuer.NewHandler(issuer.HandlerConfig{
		Store:  store,
		Logger: cfg.Logger.With("component", "issuer"),
	})

	s := &Server{
		config: cfg,
		logger: cfg.Logger,
		store:  store,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
	if cfg.Advertise {
		s.advertiser = discovery.NewMDNSAdvertiser(discovery.AdvertiserConfig{Interface: cfg.Interface})
	}
	return s, nil
}

// issuerInfo is what the server announces via mDNS.
func (s *Server) issuerInfo() *discovery.IssuerInfo {
	nets := wallet.SupportedNetworks()
	names := make([]string, 0, len(nets))
	for _, n := range nets {
		names = append(names, n.String())
	}
	host, _ := os.Hostname()
	instance := "issuer-sim"
	if host != "" {
		instance = "issuer-sim-" + host
	}
	if len(instance) > discovery.MaxInstanceNameLen {
		instance = instance[:discovery.MaxInstanceNameLen]
	}
	return &discovery.IssuerInfo{
		InstanceName: instance,
		Port:         uint16(s.config.Port),
		Path:         "/",
		Name:         s.config.Name,
		Networks:     names,
	}
}

// ListenAndServe serves until SIGINT or SIGTERM.
func (s *Server) ListenAndServe() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if s.advertiser != nil {
		info := s.issuerInfo()
		if err := s.advertiser.Advertise(ctx, info); err != nil {
			s.logger.Warn("mDNS advertisement failed", "error", err)
		} else {
			s.logger.Info("advertising issuer", "instance", info.InstanceName, "service", discovery.ServiceType)
		}
	}

	errc := make(chan error, 1)
	go func() { errc <- s.server.ListenAndServe() }()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}

// Close withdraws the advertisement and closes the store.
func (s *Server) Close() error {
	if s.advertiser != nil {
		_ = s.advertiser.Stop()
	}
	return s.store.Close()
}
