package provisioning

import (
	"testing"
	"time"
)

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateIdle, "IDLE"},
		{StateAwaitingExchange, "AWAITING_EXCHANGE"},
		{StateAwaitingCompletion, "AWAITING_COMPLETION"},
		{StateFinishing, "FINISHING"},
		{State(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()

	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", cfg.Timeout, DefaultTimeout)
	}
	if cfg.StabilizationDelay != DefaultStabilizationDelay {
		t.Errorf("StabilizationDelay = %v, want %v", cfg.StabilizationDelay, DefaultStabilizationDelay)
	}
	if cfg.EncryptionScheme != "ECC_V2" {
		t.Errorf("EncryptionScheme = %q, want ECC_V2", cfg.EncryptionScheme)
	}
	if cfg.Logger == nil || cfg.ProtocolLogger == nil {
		t.Error("loggers not defaulted")
	}

	cfg = Config{StabilizationDelay: -1, Timeout: 5 * time.Second}.withDefaults()
	if cfg.StabilizationDelay != 0 {
		t.Errorf("negative StabilizationDelay = %v, want 0", cfg.StabilizationDelay)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Timeout)
	}

	if d := DefaultConfig(); d.Timeout != 30*time.Second || d.StabilizationDelay != 100*time.Millisecond {
		t.Errorf("DefaultConfig() = %+v", d)
	}
}

func TestHex(t *testing.T) {
	if got := EncodeHex([]byte{0xAB, 0x01}); got != "ab01" {
		t.Errorf("EncodeHex = %q, want ab01", got)
	}
	b, err := DecodeHex("AB01")
	if err != nil || len(b) != 2 || b[0] != 0xab {
		t.Errorf("DecodeHex(AB01) = %x, %v", b, err)
	}
	if _, err := DecodeHex("0g"); err == nil {
		t.Error("DecodeHex(0g) succeeded")
	}
	if got := encodeChain([][]byte{{0xaa}, {0xbb, 0xcc}}); len(got) != 2 || got[1] != "bbcc" {
		t.Errorf("encodeChain = %v", got)
	}
}
