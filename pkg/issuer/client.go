package issuer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/passbridge/passbridge-go/pkg/log"
	"github.com/passbridge/passbridge-go/pkg/provisioning"
)

// DefaultMaxAttempts is the number of tries per request, including the first.
const DefaultMaxAttempts = 3

// Client errors.
var (
	// ErrIssuerUnavailable is returned when every attempt failed with a
	// retryable error.
	ErrIssuerUnavailable = errors.New("issuer unavailable")

	// ErrBadResponse is returned when the issuer's response cannot be decoded.
	ErrBadResponse = errors.New("malformed issuer response")
)

// StatusError is a non-success HTTP response from the issuer.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("issuer returned %d", e.StatusCode)
	}
	return fmt.Sprintf("issuer returned %d: %s", e.StatusCode, e.Message)
}

// Temporary reports whether the request may succeed when retried.
func (e *StatusError) Temporary() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

// ClientConfig configures a Client.
type ClientConfig struct {
	// HTTPClient performs requests. Nil uses a client with a 10s timeout.
	HTTPClient *http.Client

	// MaxAttempts bounds tries per request. Zero uses DefaultMaxAttempts.
	MaxAttempts int

	// Backoff controls the delay between attempts.
	Backoff BackoffConfig

	// Logger for operational messages. Nil discards.
	Logger *slog.Logger

	// ProtocolLogger receives issuer trace events. Nil disables tracing.
	ProtocolLogger log.Logger
}

// Client calls the issuer's provisioning API.
type Client struct {
	baseURL string
	http    *http.Client
	config  ClientConfig
	logger  *slog.Logger
	trace   log.Logger
}

// NewClient creates a client for the issuer at baseURL.
func NewClient(baseURL string, cfg ClientConfig) *Client {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.ProtocolLogger == nil {
		cfg.ProtocolLogger = log.NoopLogger{}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    cfg.HTTPClient,
		config:  cfg,
		logger:  cfg.Logger,
		trace:   cfg.ProtocolLogger,
	}
}

// Provision requests encrypted pass data for an exchange. Network failures
// and 5xx responses are retried with backoff; other failures are returned
// immediately.
func (c *Client) Provision(ctx context.Context, req ProvisionRequest) (provisioning.ServerMaterial, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return provisioning.ServerMaterial{}, fmt.Errorf("failed to encode request: %w", err)
	}

	start := time.Now()
	c.traceCall(req.PrimaryAccountSuffix, log.DirectionOut, log.CallReceived, "", nil)

	backoff := NewBackoff(c.config.Backoff)
	var lastErr error
attempts:
	for attempt := 1; attempt <= c.config.MaxAttempts; attempt++ {
		material, err := c.post(ctx, body)
		if err == nil {
			d := time.Since(start)
			c.traceCall(req.PrimaryAccountSuffix, log.DirectionIn, log.CallResolved, "", &d)
			return material, nil
		}
		lastErr = err
		if !retryable(err) || attempt == c.config.MaxAttempts {
			break
		}

		delay := backoff.Next()
		c.logger.Warn("issuer request failed, retrying",
			"attempt", attempt, "delay", delay, "error", err)
		select {
		case <-ctx.Done():
			lastErr = ctx.Err()
			break attempts
		case <-time.After(delay):
		}
	}

	d := time.Since(start)
	c.traceCall(req.PrimaryAccountSuffix, log.DirectionIn, log.CallRejected, lastErr.Error(), &d)
	if retryable(lastErr) {
		return provisioning.ServerMaterial{}, fmt.Errorf("%w: %w", ErrIssuerUnavailable, lastErr)
	}
	return provisioning.ServerMaterial{}, lastErr
}

func (c *Client) post(ctx context.Context, body []byte) (provisioning.ServerMaterial, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+ProvisionPath, bytes.NewReader(body))
	if err != nil {
		return provisioning.ServerMaterial{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return provisioning.ServerMaterial{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return provisioning.ServerMaterial{}, err
	}

	if resp.StatusCode != http.StatusOK {
		var e errorResponse
		_ = json.Unmarshal(data, &e)
		return provisioning.ServerMaterial{}, &StatusError{StatusCode: resp.StatusCode, Message: e.Error}
	}

	var material provisioning.ServerMaterial
	if err := json.Unmarshal(data, &material); err != nil {
		return provisioning.ServerMaterial{}, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	return material, nil
}

func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Temporary()
	}
	// Anything else is a transport failure.
	return !errors.Is(err, ErrBadResponse)
}

func (c *Client) traceCall(suffix string, dir log.Direction, outcome log.CallOutcome, msg string, d *time.Duration) {
	ev := log.Event{
		Timestamp:     time.Now(),
		Direction:     dir,
		Layer:         log.LayerIssuer,
		Category:      log.CategoryCall,
		AccountSuffix: suffix,
		Call: &log.CallEvent{
			Method:   "provision",
			Outcome:  outcome,
			Duration: d,
		},
	}
	if msg != "" {
		ev.Call.Code = "ISSUER_ERROR"
		c.trace.Log(ev)
		c.trace.Log(log.Event{
			Timestamp:     ev.Timestamp,
			Direction:     dir,
			Layer:         log.LayerIssuer,
			Category:      log.CategoryError,
			AccountSuffix: suffix,
			Error: &log.ErrorEventData{
				Layer:   log.LayerIssuer,
				Message: msg,
				Context: "provision",
			},
		})
		return
	}
	c.trace.Log(ev)
}
