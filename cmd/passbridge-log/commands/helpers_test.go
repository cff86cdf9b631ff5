package commands

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/passbridge/passbridge-go/pkg/log"
)

var baseTime = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

// sampleEvents is a short successful provisioning session plus one
// rejected eligibility call outside any session.
func sampleEvents() []log.Event {
	d := 1500 * time.Microsecond
	sess := "5f0c2a1e-8b7d-4c3a-9e21-0d6f4b8a7c11"
	return []log.Event{
		{
			Timestamp: baseTime, Direction: log.DirectionIn, Layer: log.LayerBridge,
			Category: log.CategoryCall, CallbackID: "cb-1",
			Call: &log.CallEvent{Method: "startAddPaymentPass", Outcome: log.CallReceived},
		},
		{
			Timestamp: baseTime.Add(time.Millisecond), SessionID: sess, AccountSuffix: "4242",
			Direction: log.DirectionIn, Layer: log.LayerCoordinator, Category: log.CategoryState,
			StateChange: &log.StateChangeEvent{OldState: "IDLE", NewState: "AWAITING_EXCHANGE", Reason: "sheet presented"},
		},
		{
			Timestamp: baseTime.Add(2 * time.Millisecond), SessionID: sess, AccountSuffix: "4242",
			Direction: log.DirectionIn, Layer: log.LayerPlatform, Category: log.CategoryExchange,
			Exchange: &log.ExchangeEvent{Step: log.ExchangeRequested, CertificateCount: 2, NonceSize: 32},
		},
		{
			Timestamp: baseTime.Add(3 * time.Millisecond), SessionID: sess,
			Direction: log.DirectionIn, Layer: log.LayerPlatform, Category: log.CategoryExchange,
			Exchange: &log.ExchangeEvent{Step: log.ExchangeDropped, Reason: "stale surface"},
		},
		{
			Timestamp: baseTime.Add(4 * time.Millisecond), SessionID: sess, AccountSuffix: "4242",
			Direction: log.DirectionOut, Layer: log.LayerCoordinator, Category: log.CategoryState,
			StateChange: &log.StateChangeEvent{OldState: "FINISHING", NewState: "IDLE", Reason: "finished"},
		},
		{
			Timestamp: baseTime.Add(5 * time.Millisecond), Direction: log.DirectionOut, Layer: log.LayerBridge,
			Category: log.CategoryCall, CallbackID: "cb-2",
			Call: &log.CallEvent{Method: "openCard", Outcome: log.CallRejected, Code: "PASS_NOT_FOUND", Duration: &d},
		},
		{
			Timestamp: baseTime.Add(6 * time.Millisecond), Direction: log.DirectionIn, Layer: log.LayerIssuer,
			Category: log.CategoryError,
			Error: &log.ErrorEventData{Layer: log.LayerIssuer, Message: "issuer unavailable", Code: "SYSTEM_ERROR", Context: "provision"},
		},
	}
}

// writeTrace writes events to a new trace file and returns its path.
func writeTrace(t *testing.T, events []log.Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trace.plog")
	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return path
}
