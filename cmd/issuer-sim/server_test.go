package main

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/passbridge/passbridge-go/pkg/discovery"
)

func TestNewServerWithSQLite(t *testing.T) {
	srv, err := NewServer(ServerConfig{Port: 8080, DBPath: filepath.Join(t.TempDir(), "issuer.db")})
	require.NoError(t, err)
	defer srv.Close()

	rec := httptest.NewRecorder()
	srv.server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestIssuerInfo(t *testing.T) {
	srv, err := NewServer(ServerConfig{Port: 9443, Name: "Dev", Advertise: true})
	require.NoError(t, err)
	defer srv.Close()

	info := srv.issuerInfo()
	assert.NoError(t, discovery.ValidateInstanceName(info.InstanceName))
	assert.Equal(t, uint16(9443), info.Port)
	assert.Contains(t, info.Networks, "visa")

	txt, err := discovery.DecodeIssuerTXT(discovery.EncodeIssuerTXT(info))
	require.NoError(t, err)
	assert.Equal(t, "Dev", txt.Name)
}
