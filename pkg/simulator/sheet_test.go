package simulator

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/passbridge/passbridge-go/pkg/issuer"
	"github.com/passbridge/passbridge-go/pkg/ui"
)

// recordingSink captures sheet callbacks.
type recordingSink struct {
	mu        sync.Mutex
	chain     [][]byte
	nonce     []byte
	signature []byte
	respond   ui.ExchangeResponder
	finished  []error
}

func (r *recordingSink) ExchangeRequested(s ui.Surface, chain [][]byte, nonce, sig []byte, respond ui.ExchangeResponder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.chain, r.nonce, r.signature, r.respond = chain, nonce, sig, respond
}

func (r *recordingSink) Finished(s ui.Surface, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finished = append(r.finished, err)
}

func (r *recordingSink) results() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]error(nil), r.finished...)
}

func testConfig() ui.Configuration {
	return ui.Configuration{
		EncryptionScheme:     ui.EncryptionSchemeECCV2,
		CardholderName:       "Ada Lovelace",
		LocalizedDescription: "Dev Card",
		PrimaryAccountSuffix: "4242",
		PaymentNetwork:       "visa",
	}
}

func presentSheet(t *testing.T, lib *Library) (*Sheet, *recordingSink) {
	t.Helper()
	sink := &recordingSink{}
	surface, err := NewPresenter(lib, PresenterConfig{}).Present(testConfig(), sink)
	require.NoError(t, err)
	return surface.(*Sheet), sink
}

// seal builds the material an issuer would return for the sheet's exchange.
func seal(t *testing.T, sink *recordingSink, suffix string) ui.AddPaymentPassRequest {
	t.Helper()
	encrypted, eph, err := issuer.SealPassData(sink.chain[0], sink.nonce, issuer.PassPayload{
		PrimaryAccountSuffix: suffix,
		PaymentNetwork:       "visa",
		DeviceAccountSuffix:  "0042",
		PrimaryAccountID:     "pai-new",
	})
	require.NoError(t, err)
	activation, err := issuer.ActivationData(eph, sink.nonce)
	require.NoError(t, err)
	return ui.AddPaymentPassRequest{EncryptedPassData: encrypted, EphemeralPublicKey: eph, ActivationData: activation}
}

func TestSheetRequestExchange(t *testing.T) {
	sheet, sink := presentSheet(t, NewLibrary())
	assert.True(t, sheet.Alive())

	require.NoError(t, sheet.RequestExchange())
	require.Len(t, sink.chain, 2)
	assert.Equal(t, sheet.DeviceKey().Public, sink.chain[0])
	assert.Len(t, sink.nonce, NonceSize)
	assert.Len(t, sink.signature, 32)
	assert.NotNil(t, sink.respond)

	assert.ErrorIs(t, sheet.RequestExchange(), ErrExchangeRequested)
}

func TestSheetRespondAddsPass(t *testing.T) {
	lib := NewLibrary()
	sheet, sink := presentSheet(t, lib)
	require.NoError(t, sheet.RequestExchange())

	sink.respond(seal(t, sink, "4242"))

	assert.Equal(t, []error{nil}, sink.results())
	assert.False(t, sheet.Alive())
	<-sheet.Done()

	pass, err := sheet.Result()
	require.NoError(t, err)
	require.NotNil(t, pass)
	assert.Equal(t, "pai-new", pass.PrimaryAccountIdentifier)
	assert.Equal(t, "0042", pass.DeviceAccountNumberSuffix)
	assert.Equal(t, "Dev Card", pass.LocalizedDescription)

	passes := lib.Passes()
	require.Len(t, passes, 1)
	assert.Equal(t, "4242", passes[0].PrimaryAccountNumberSuffix)
}

func TestSheetRespondKeepsReplacedIdentifier(t *testing.T) {
	lib := NewLibrary()
	cfg := testConfig()
	cfg.PrimaryAccountIdentifier = "pai-old"
	sink := &recordingSink{}
	surface, err := NewPresenter(lib, PresenterConfig{}).Present(cfg, sink)
	require.NoError(t, err)
	sheet := surface.(*Sheet)
	require.NoError(t, sheet.RequestExchange())

	sink.respond(seal(t, sink, "4242"))

	require.Len(t, lib.Passes(), 1)
	assert.Equal(t, "pai-old", lib.Passes()[0].PrimaryAccountIdentifier)
}

func TestSheetRespondRejectsBadMaterial(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ui.AddPaymentPassRequest)
		want   error
	}{
		{"tampered data", func(r *ui.AddPaymentPassRequest) { r.EncryptedPassData[len(r.EncryptedPassData)-1] ^= 1 }, issuer.ErrDecrypt},
		{"wrong activation", func(r *ui.AddPaymentPassRequest) { r.ActivationData = []byte{1, 2, 3} }, ErrActivationMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lib := NewLibrary()
			sheet, sink := presentSheet(t, lib)
			require.NoError(t, sheet.RequestExchange())

			req := seal(t, sink, "4242")
			tt.mutate(&req)
			sink.respond(req)

			results := sink.results()
			require.Len(t, results, 1)
			assert.ErrorIs(t, results[0], tt.want)
			assert.Empty(t, lib.Passes())
		})
	}
}

func TestSheetRespondRejectsOtherAccount(t *testing.T) {
	lib := NewLibrary()
	sheet, sink := presentSheet(t, lib)
	require.NoError(t, sheet.RequestExchange())

	sink.respond(seal(t, sink, "0000"))

	results := sink.results()
	require.Len(t, results, 1)
	assert.Error(t, results[0])
	assert.Empty(t, lib.Passes())
}

func TestSheetCancel(t *testing.T) {
	sheet, sink := presentSheet(t, NewLibrary())

	require.NoError(t, sheet.Cancel())
	assert.False(t, sheet.Alive())
	assert.Equal(t, []error{ErrUserCancelled}, sink.results())

	assert.ErrorIs(t, sheet.Cancel(), ErrSheetClosed)
	assert.ErrorIs(t, sheet.RequestExchange(), ErrSheetClosed)
}

func TestSheetDismissIgnoresResponder(t *testing.T) {
	lib := NewLibrary()
	sheet, sink := presentSheet(t, lib)
	require.NoError(t, sheet.RequestExchange())

	sheet.Dismiss()
	sink.respond(seal(t, sink, "4242"))

	assert.Empty(t, sink.results())
	assert.Empty(t, lib.Passes())
}

func TestPresenterFailNext(t *testing.T) {
	p := NewPresenter(NewLibrary(), PresenterConfig{})
	boom := errors.New("no window")
	p.FailNext(boom)

	_, err := p.Present(testConfig(), &recordingSink{})
	assert.ErrorIs(t, err, ErrPresentFailed)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, p.Current())

	_, err = p.Present(testConfig(), &recordingSink{})
	require.NoError(t, err)
	assert.NotNil(t, p.Current())
	assert.Len(t, p.Sheets(), 1)
}

func TestPresenterAutoExchange(t *testing.T) {
	sink := &recordingSink{}
	_, err := NewPresenter(NewLibrary(), PresenterConfig{AutoExchange: true}).Present(testConfig(), sink)
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		sink.mu.Lock()
		defer sink.mu.Unlock()
		return sink.respond != nil
	}, time.Second, 5*time.Millisecond)
}
