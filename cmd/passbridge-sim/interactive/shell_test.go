package interactive

import (
	"bytes"
	"context"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/passbridge/passbridge-go/pkg/bridge"
	"github.com/passbridge/passbridge-go/pkg/discovery"
	"github.com/passbridge/passbridge-go/pkg/issuer"
	"github.com/passbridge/passbridge-go/pkg/provisioning"
	"github.com/passbridge/passbridge-go/pkg/simulator"
)

// syncBuffer is a bytes.Buffer safe for concurrent writers.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type fixture struct {
	shell     *Shell
	out       *syncBuffer
	lib       *simulator.Library
	presenter *simulator.Presenter
	coord     *provisioning.Coordinator
}

func newFixture(t *testing.T, issuerURL string) *fixture {
	t.Helper()
	lib := simulator.NewLibrary()
	presenter := simulator.NewPresenter(lib, simulator.PresenterConfig{})
	cfg := provisioning.DefaultConfig()
	cfg.Timeout = 2 * time.Second
	cfg.StabilizationDelay = time.Millisecond
	coord := provisioning.NewCoordinator(presenter, lib, cfg)
	t.Cleanup(func() { _ = coord.Close() })

	plugin := bridge.NewPlugin(coord, lib, lib, bridge.NewCallStore(), bridge.PluginConfig{})
	out := &syncBuffer{}
	shell := newShell(Deps{
		Plugin:      plugin,
		Coordinator: coord,
		Presenter:   presenter,
		Library:     lib,
		IssuerURL:   issuerURL,
		NewClient: func(url string) *issuer.Client {
			return issuer.NewClient(url, issuer.ClientConfig{MaxAttempts: 1})
		},
	}, out)
	return &fixture{shell: shell, out: out, lib: lib, presenter: presenter, coord: coord}
}

func TestShellProvisionFlow(t *testing.T) {
	srv := httptest.NewServer(issuer.NewHandler(issuer.HandlerConfig{}))
	defer srv.Close()
	f := newFixture(t, srv.URL)
	ctx := context.Background()

	require.True(t, f.shell.Exec(ctx, "add 4242 visa Ada Lovelace"))
	require.NotNil(t, f.presenter.Current())
	assert.Equal(t, "Ada Lovelace", f.presenter.Current().Configuration().CardholderName)

	f.shell.Exec(ctx, "provision")
	assert.Contains(t, f.out.String(), "No exchange yet")

	f.shell.Exec(ctx, "exchange")
	assert.Eventually(t, func() bool {
		f.shell.mu.Lock()
		defer f.shell.mu.Unlock()
		return f.shell.exchange != nil
	}, time.Second, 5*time.Millisecond)

	f.shell.Exec(ctx, "provision")
	assert.Eventually(t, func() bool { return len(f.lib.Passes()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Eventually(t, func() bool { return f.coord.State() == provisioning.StateIdle }, time.Second, 5*time.Millisecond)

	f.shell.Exec(ctx, "actions 4242")
	assert.Contains(t, f.out.String(), `"PAY"`)
	f.shell.Exec(ctx, "passes")
	assert.Contains(t, f.out.String(), "*4242")
}

func TestShellCancel(t *testing.T) {
	f := newFixture(t, "")
	ctx := context.Background()

	f.shell.Exec(ctx, "add 4242 visa")
	f.shell.Exec(ctx, "cancel")

	assert.Eventually(t, func() bool {
		return bytes.Contains([]byte(f.out.String()), []byte("[startAddPaymentPass] rejected"))
	}, time.Second, 5*time.Millisecond)
	assert.Contains(t, f.out.String(), provisioning.CodeSystemError)
}

func TestShellValidationError(t *testing.T) {
	f := newFixture(t, "")
	f.shell.Exec(context.Background(), "add 4242 bitcoin")
	assert.Contains(t, f.out.String(), provisioning.CodeUnsupportedPaymentNetwork)
	assert.Nil(t, f.presenter.Current())
}

func TestShellUsageAndUnknown(t *testing.T) {
	f := newFixture(t, "")
	ctx := context.Background()

	tests := []struct {
		line string
		want string
	}{
		{"add", "Usage: add"},
		{"complete aa", "Usage: complete"},
		{"open", "Usage: open <suffix>"},
		{"exchange", "No sheet presented"},
		{"provision", "No exchange yet"},
		{"issuer", "No issuer configured"},
		{"discover", "Discovery not available"},
		{"frobnicate", "Unknown command: frobnicate"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.True(t, f.shell.Exec(ctx, tt.line))
			assert.Contains(t, f.out.String(), tt.want)
		})
	}

	assert.False(t, f.shell.Exec(ctx, "quit"))
	assert.True(t, f.shell.Exec(ctx, "   "))
}

type stubBrowser struct{ svc *discovery.IssuerService }

func (b stubBrowser) Browse(ctx context.Context) (<-chan *discovery.IssuerService, error) {
	ch := make(chan *discovery.IssuerService, 1)
	ch <- b.svc
	close(ch)
	return ch, nil
}

func TestShellDiscoverSetsIssuer(t *testing.T) {
	f := newFixture(t, "")
	f.shell.deps.Browser = stubBrowser{svc: &discovery.IssuerService{
		InstanceName: "dev",
		Name:         "Dev Bank",
		Port:         9000,
		Addresses:    []string{"10.0.0.5"},
		Path:         "/",
	}}

	f.shell.Exec(context.Background(), "discover")
	assert.Contains(t, f.out.String(), "Issuer set to http://10.0.0.5:9000")
	assert.NotNil(t, f.shell.client)
}
