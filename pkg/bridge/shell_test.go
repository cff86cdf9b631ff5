package bridge_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/passbridge/passbridge-go/pkg/bridge"
)

func ioPipe() (*io.PipeReader, *io.PipeWriter) {
	return io.Pipe()
}

func TestCallStore(t *testing.T) {
	s := bridge.NewCallStore()
	c1 := bridge.NewCall("a", "m", nil, nil)
	c2 := bridge.NewCall("b", "m", nil, nil)

	s.SaveCall(c1)
	s.SaveCall(c2)
	assert.Equal(t, 2, s.Len())

	got, ok := s.Get("a")
	assert.True(t, ok)
	assert.Same(t, c1, got)

	s.ReleaseCall(c1)
	_, ok = s.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, s.Len())

	// Releasing twice is harmless.
	s.ReleaseCall(c1)
	assert.Equal(t, 1, s.Len())
}
