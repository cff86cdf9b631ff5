package main

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/passbridge/passbridge-go/pkg/log"
)

func TestSetupTrace(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)

	trace, closeFn, err := setupTrace(Config{}, logger)
	require.NoError(t, err)
	assert.IsType(t, log.NoopLogger{}, trace)
	closeFn()

	path := filepath.Join(t.TempDir(), "trace.plog")
	trace, closeFn, err = setupTrace(Config{ProtocolLog: path, LogTrace: true}, logger)
	require.NoError(t, err)
	assert.IsType(t, &log.MultiLogger{}, trace)
	closeFn()

	_, _, err = setupTrace(Config{ProtocolLog: filepath.Join(t.TempDir(), "no", "such", "dir.plog")}, logger)
	assert.Error(t, err)
}

func TestSwitchWriter(t *testing.T) {
	var a, b bytes.Buffer
	w := newSwitchWriter(&a)
	_, _ = w.Write([]byte("one"))
	w.Set(&b)
	_, _ = w.Write([]byte("two"))

	assert.Equal(t, "one", a.String())
	assert.Equal(t, "two", b.String())
}
