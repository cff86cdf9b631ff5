package log

import "testing"

func TestDirectionString(t *testing.T) {
	tests := []struct {
		dir  Direction
		want string
	}{
		{DirectionIn, "IN"},
		{DirectionOut, "OUT"},
		{Direction(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		got := tt.dir.String()
		if got != tt.want {
			t.Errorf("Direction(%d).String() = %q, want %q", tt.dir, got, tt.want)
		}
	}
}

func TestLayerString(t *testing.T) {
	tests := []struct {
		layer Layer
		want  string
	}{
		{LayerBridge, "BRIDGE"},
		{LayerCoordinator, "COORDINATOR"},
		{LayerPlatform, "PLATFORM"},
		{LayerIssuer, "ISSUER"},
		{Layer(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		got := tt.layer.String()
		if got != tt.want {
			t.Errorf("Layer(%d).String() = %q, want %q", tt.layer, got, tt.want)
		}
	}
}

func TestCategoryString(t *testing.T) {
	tests := []struct {
		cat  Category
		want string
	}{
		{CategoryCall, "CALL"},
		{CategoryState, "STATE"},
		{CategoryExchange, "EXCHANGE"},
		{CategoryError, "ERROR"},
		{Category(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		got := tt.cat.String()
		if got != tt.want {
			t.Errorf("Category(%d).String() = %q, want %q", tt.cat, got, tt.want)
		}
	}
}

func TestCallOutcomeString(t *testing.T) {
	tests := []struct {
		outcome CallOutcome
		want    string
	}{
		{CallReceived, "RECEIVED"},
		{CallSaved, "SAVED"},
		{CallResolved, "RESOLVED"},
		{CallRejected, "REJECTED"},
		{CallOutcome(42), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.outcome.String(); got != tt.want {
			t.Errorf("CallOutcome(%d).String() = %q, want %q", tt.outcome, got, tt.want)
		}
	}
}

func TestExchangeStepString(t *testing.T) {
	tests := []struct {
		step ExchangeStep
		want string
	}{
		{ExchangePresented, "PRESENTED"},
		{ExchangeRequested, "REQUESTED"},
		{ExchangeDropped, "DROPPED"},
		{ExchangeResponderScheduled, "RESPONDER_SCHEDULED"},
		{ExchangeResponderInvoked, "RESPONDER_INVOKED"},
		{ExchangeFinished, "FINISHED"},
		{ExchangeStep(77), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.step.String(); got != tt.want {
			t.Errorf("ExchangeStep(%d).String() = %q, want %q", tt.step, got, tt.want)
		}
	}
}
