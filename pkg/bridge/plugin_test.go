package bridge_test

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/passbridge/passbridge-go/pkg/bridge"
	"github.com/passbridge/passbridge-go/pkg/bridge/mocks"
	"github.com/passbridge/passbridge-go/pkg/provisioning"
	"github.com/passbridge/passbridge-go/pkg/wallet"
	walletmocks "github.com/passbridge/passbridge-go/pkg/wallet/mocks"
)

type fakeProvisioner struct {
	beginErr    error
	completeErr error

	card     provisioning.CardInfo
	material provisioning.ServerMaterial
	begin    provisioning.Pending[provisioning.Exchange]
	complete provisioning.Pending[struct{}]
}

func (f *fakeProvisioner) Begin(card provisioning.CardInfo, caller provisioning.Pending[provisioning.Exchange]) error {
	if f.beginErr != nil {
		return f.beginErr
	}
	f.card = card
	f.begin = caller
	return nil
}

func (f *fakeProvisioner) Complete(material provisioning.ServerMaterial, caller provisioning.Pending[struct{}]) error {
	if f.completeErr != nil {
		return f.completeErr
	}
	f.material = material
	f.complete = caller
	return nil
}

type fakeLibrary struct {
	canAdd bool
	passes []wallet.Pass
}

func (l *fakeLibrary) CanAddPasses() bool          { return l.canAdd }
func (l *fakeLibrary) CompanionPaired() bool       { return false }
func (l *fakeLibrary) Passes() []wallet.Pass       { return l.passes }
func (l *fakeLibrary) RemotePasses() []wallet.Pass { return nil }

type recorder struct {
	mu        sync.Mutex
	responses []bridge.Response
}

func (r *recorder) respond(resp bridge.Response) {
	r.mu.Lock()
	r.responses = append(r.responses, resp)
	r.mu.Unlock()
}

func (r *recorder) only(t *testing.T) string {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.Len(t, r.responses, 1)
	b, err := json.Marshal(r.responses[0])
	require.NoError(t, err)
	return string(b)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.responses)
}

func call(r *recorder, method, options string) *bridge.Call {
	var raw json.RawMessage
	if options != "" {
		raw = json.RawMessage(options)
	}
	return bridge.NewCall("cb1", method, raw, r.respond)
}

const cardOptions = `{"cardholderName":"Jane Doe","localizedDescription":"Everyday","primaryAccountSuffix":"1234","paymentNetwork":"visa"}`

func TestStartAddPaymentPassResolves(t *testing.T) {
	prov := &fakeProvisioner{}
	shell := mocks.NewMockShell(t)
	shell.EXPECT().SaveCall(mock.Anything).Return().Once()
	shell.EXPECT().ReleaseCall(mock.Anything).Return().Once()

	p := bridge.NewPlugin(prov, &fakeLibrary{canAdd: true}, nil, shell, bridge.PluginConfig{})
	r := &recorder{}
	p.Handle(call(r, bridge.MethodStartAddPaymentPass, cardOptions))

	assert.Equal(t, 0, r.count(), "call settled before exchange")
	assert.Equal(t, provisioning.CardInfo{
		CardholderName:       "Jane Doe",
		LocalizedDescription: "Everyday",
		PrimaryAccountSuffix: "1234",
		PaymentNetwork:       "visa",
	}, prov.card)

	prov.begin.Resolve(provisioning.Exchange{Nonce: "bb", NonceSignature: "cc", CertificateChain: []string{"aa"}})

	assert.JSONEq(t,
		`{"callbackId":"cb1","success":true,"data":{"nonce":"bb","nonceSignature":"cc","certificateChain":["aa"]}}`,
		r.only(t))
}

func TestStartAddPaymentPassRejectedSynchronously(t *testing.T) {
	prov := &fakeProvisioner{beginErr: provisioning.ErrAlreadyInProgress}
	store := bridge.NewCallStore()

	p := bridge.NewPlugin(prov, &fakeLibrary{canAdd: true}, nil, store, bridge.PluginConfig{})
	r := &recorder{}
	p.Handle(call(r, bridge.MethodStartAddPaymentPass, cardOptions))

	assert.JSONEq(t,
		`{"callbackId":"cb1","success":false,"error":{"message":"provisioning already in progress","code":"ALREADY_IN_PROGRESS"}}`,
		r.only(t))
	assert.Equal(t, 0, store.Len())
}

func TestStartAddPaymentPassBadOptions(t *testing.T) {
	shell := mocks.NewMockShell(t)
	p := bridge.NewPlugin(&fakeProvisioner{}, &fakeLibrary{}, nil, shell, bridge.PluginConfig{})

	r := &recorder{}
	p.Handle(call(r, bridge.MethodStartAddPaymentPass, `{"cardholderName":42}`))

	var resp bridge.Response
	require.NoError(t, json.Unmarshal([]byte(r.only(t)), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, provisioning.CodeInvalidInput, resp.Error.Code)
}

func TestCompleteAddPaymentPass(t *testing.T) {
	prov := &fakeProvisioner{}
	store := bridge.NewCallStore()
	p := bridge.NewPlugin(prov, &fakeLibrary{}, nil, store, bridge.PluginConfig{})

	r := &recorder{}
	p.Handle(call(r, bridge.MethodCompleteAddPaymentPass,
		`{"encryptedPassData":"aa","ephemeralPublicKey":"bb","activationData":"cc"}`))

	assert.Equal(t, provisioning.ServerMaterial{
		EncryptedPassData:  "aa",
		EphemeralPublicKey: "bb",
		ActivationData:     "cc",
	}, prov.material)
	_, saved := store.Get("cb1")
	assert.True(t, saved)

	prov.complete.Resolve(struct{}{})
	assert.JSONEq(t, `{"callbackId":"cb1","success":true,"data":{}}`, r.only(t))
	assert.Equal(t, 0, store.Len())
}

func TestCompleteAddPaymentPassRejectedLater(t *testing.T) {
	prov := &fakeProvisioner{}
	store := bridge.NewCallStore()
	p := bridge.NewPlugin(prov, &fakeLibrary{}, nil, store, bridge.PluginConfig{})

	r := &recorder{}
	p.Handle(call(r, bridge.MethodCompleteAddPaymentPass, `{}`))
	prov.complete.Reject(provisioning.ErrTimeout)

	assert.JSONEq(t,
		`{"callbackId":"cb1","success":false,"error":{"message":"provisioning timed out","code":"TIMEOUT"}}`,
		r.only(t))
	assert.Equal(t, 0, store.Len())
}

func TestGetAvailableActions(t *testing.T) {
	lib := &fakeLibrary{
		canAdd: true,
		passes: []wallet.Pass{{PrimaryAccountNumberSuffix: "1234"}},
	}
	p := bridge.NewPlugin(&fakeProvisioner{}, lib, nil, bridge.NewCallStore(), bridge.PluginConfig{})

	r := &recorder{}
	p.Handle(call(r, bridge.MethodGetAvailableActions, `{"primaryAccountSuffix":"1234"}`))
	assert.JSONEq(t, `{"callbackId":"cb1","success":true,"data":{"actions":["PAY"]}}`, r.only(t))

	r = &recorder{}
	p.Handle(call(r, bridge.MethodGetAvailableActions, `{"primaryAccountSuffix":"9999"}`))
	assert.JSONEq(t, `{"callbackId":"cb1","success":true,"data":{"actions":["ADD"]}}`, r.only(t))

	lib.canAdd = false
	r = &recorder{}
	p.Handle(call(r, bridge.MethodGetAvailableActions, `{"primaryAccountSuffix":"9999"}`))
	assert.JSONEq(t, `{"callbackId":"cb1","success":true,"data":{"actions":[]}}`, r.only(t))
}

func TestCanAddPaymentPass(t *testing.T) {
	p := bridge.NewPlugin(&fakeProvisioner{}, &fakeLibrary{canAdd: true}, nil, bridge.NewCallStore(), bridge.PluginConfig{})

	r := &recorder{}
	p.Handle(call(r, bridge.MethodCanAddPaymentPass, ""))
	assert.JSONEq(t, `{"callbackId":"cb1","success":true,"data":{"value":true}}`, r.only(t))
}

func TestOpenCard(t *testing.T) {
	lib := &fakeLibrary{passes: []wallet.Pass{{
		PrimaryAccountNumberSuffix: "1234",
		PassURL:                    "wallet://pass/1",
	}}}
	opener := walletmocks.NewMockOpener(t)
	opener.EXPECT().Open("wallet://pass/1").Return(nil).Once()
	p := bridge.NewPlugin(&fakeProvisioner{}, lib, opener, bridge.NewCallStore(), bridge.PluginConfig{})

	r := &recorder{}
	p.Handle(call(r, bridge.MethodOpenCard, `{"primaryAccountSuffix":"1234"}`))
	assert.JSONEq(t, `{"callbackId":"cb1","success":true,"data":{}}`, r.only(t))

	r = &recorder{}
	p.Handle(call(r, bridge.MethodOpenCard, `{"primaryAccountSuffix":"0000"}`))
	var resp bridge.Response
	require.NoError(t, json.Unmarshal([]byte(r.only(t)), &resp))
	assert.Equal(t, bridge.CodePassNotFound, resp.Error.Code)
}

func TestUnknownMethod(t *testing.T) {
	p := bridge.NewPlugin(&fakeProvisioner{}, &fakeLibrary{}, nil, bridge.NewCallStore(), bridge.PluginConfig{})

	r := &recorder{}
	p.Handle(call(r, "deletePass", ""))
	assert.JSONEq(t,
		`{"callbackId":"cb1","success":false,"error":{"message":"unknown method: deletePass","code":"UNIMPLEMENTED"}}`,
		r.only(t))
}

func TestCallSettlesOnce(t *testing.T) {
	r := &recorder{}
	c := bridge.NewCall("", "x", nil, r.respond)
	assert.NotEmpty(t, c.ID)

	c.Resolve(nil)
	c.Reject(errors.New("late"))
	c.Resolve("again")

	assert.JSONEq(t, `{"callbackId":"`+c.ID+`","success":true,"data":{}}`, r.only(t))
}

func TestCode(t *testing.T) {
	assert.Equal(t, bridge.CodeUnimplemented, bridge.Code(bridge.ErrUnknownMethod))
	assert.Equal(t, provisioning.CodeInvalidInput, bridge.Code(bridge.ErrBadOptions))
	assert.Equal(t, bridge.CodePassNotFound, bridge.Code(wallet.ErrPassNotFound))
	assert.Equal(t, provisioning.CodeMissingField, bridge.Code(&provisioning.MissingFieldError{Field: "x"}))
	assert.Equal(t, provisioning.CodeSystemError, bridge.Code(errors.New("x")))
}
