// Package commands implements the passbridge-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/passbridge/passbridge-go/pkg/log"
)

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [session:id] DIRECTION LAYER Type
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	fmt.Fprintf(w, "%s [session:%s] %-3s %s %s\n",
		ts, shortenID(event.SessionID), event.Direction.String(), event.Layer.String(), typeLabel(event))

	if event.CallbackID != "" {
		fmt.Fprintf(w, "  Callback: %s\n", event.CallbackID)
	}
	if event.AccountSuffix != "" {
		fmt.Fprintf(w, "  Account: *%s\n", event.AccountSuffix)
	}

	switch {
	case event.Call != nil:
		formatCallDetails(w, event.Call)
	case event.StateChange != nil:
		formatStateChangeDetails(w, event.StateChange)
	case event.Exchange != nil:
		formatExchangeDetails(w, event.Exchange)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w) // Blank line between events
}

// typeLabel names the event payload.
func typeLabel(event log.Event) string {
	switch {
	case event.Call != nil:
		return "Call"
	case event.StateChange != nil:
		return "State"
	case event.Exchange != nil:
		return "Exchange"
	case event.Error != nil:
		return "Error"
	default:
		return "Unknown"
	}
}

// shortenID returns the first 8 characters of an ID, or "-" when empty.
func shortenID(id string) string {
	if id == "" {
		return "-"
	}
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func formatCallDetails(w io.Writer, call *log.CallEvent) {
	fmt.Fprintf(w, "  Method: %s\n", call.Method)
	fmt.Fprintf(w, "  Outcome: %s\n", call.Outcome.String())
	if call.Code != "" {
		fmt.Fprintf(w, "  Code: %s\n", call.Code)
	}
	if call.Duration != nil {
		fmt.Fprintf(w, "  Duration: %s\n", formatDuration(*call.Duration))
	}
}

func formatStateChangeDetails(w io.Writer, sc *log.StateChangeEvent) {
	if sc.OldState != "" {
		fmt.Fprintf(w, "  %s -> %s\n", sc.OldState, sc.NewState)
	} else {
		fmt.Fprintf(w, "  -> %s\n", sc.NewState)
	}
	if sc.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", sc.Reason)
	}
}

func formatExchangeDetails(w io.Writer, ex *log.ExchangeEvent) {
	fmt.Fprintf(w, "  Step: %s\n", ex.Step.String())
	if ex.CertificateCount > 0 {
		fmt.Fprintf(w, "  Certificates: %d\n", ex.CertificateCount)
	}
	if ex.NonceSize > 0 {
		fmt.Fprintf(w, "  Nonce: %d bytes\n", ex.NonceSize)
	}
	if ex.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", ex.Reason)
	}
}

func formatErrorDetails(w io.Writer, err *log.ErrorEventData) {
	fmt.Fprintf(w, "  Layer: %s\n", err.Layer.String())
	fmt.Fprintf(w, "  Message: %s\n", err.Message)
	if err.Code != "" {
		fmt.Fprintf(w, "  Code: %s\n", err.Code)
	}
	if err.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", err.Context)
	}
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.3fus", float64(d.Nanoseconds())/1000)
	}
	if d < time.Second {
		return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.3fs", d.Seconds())
}

// ParseLayerFlag parses a layer name (case-insensitive).
func ParseLayerFlag(s string) (log.Layer, error) {
	switch strings.ToLower(s) {
	case "bridge":
		return log.LayerBridge, nil
	case "coordinator":
		return log.LayerCoordinator, nil
	case "platform":
		return log.LayerPlatform, nil
	case "issuer":
		return log.LayerIssuer, nil
	default:
		return 0, fmt.Errorf("invalid layer: %s (must be bridge, coordinator, platform, or issuer)", s)
	}
}

// ParseDirectionFlag parses a direction name (case-insensitive).
func ParseDirectionFlag(s string) (log.Direction, error) {
	switch strings.ToLower(s) {
	case "in":
		return log.DirectionIn, nil
	case "out":
		return log.DirectionOut, nil
	default:
		return 0, fmt.Errorf("invalid direction: %s (must be in or out)", s)
	}
}

// ParseCategoryFlag parses a category name (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "call":
		return log.CategoryCall, nil
	case "state":
		return log.CategoryState, nil
	case "exchange":
		return log.CategoryExchange, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be call, state, exchange, or error)", s)
	}
}

// RunView prints the events of the trace at path that match filter.
func RunView(path string, filter log.Filter, output io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(output, event)
	}
}
