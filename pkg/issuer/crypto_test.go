package issuer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealOpenPassData(t *testing.T) {
	device, err := GenerateDeviceKey()
	require.NoError(t, err)
	nonce := []byte{0x01, 0x02, 0x03, 0x04}

	payload := PassPayload{
		PrimaryAccountSuffix: "1234",
		PaymentNetwork:       "visa",
		CardholderName:       "Jane Doe",
		DeviceAccountSuffix:  "9876",
		PrimaryAccountID:     "pai-1",
	}
	encrypted, ephemeralPub, err := SealPassData(device.Public, nonce, payload)
	require.NoError(t, err)
	assert.Len(t, ephemeralPub, 32)

	got, err := OpenPassData(device.Private, nonce, ephemeralPub, encrypted)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestOpenPassDataRejectsTampering(t *testing.T) {
	device, err := GenerateDeviceKey()
	require.NoError(t, err)
	other, err := GenerateDeviceKey()
	require.NoError(t, err)
	nonce := []byte{0xaa}

	encrypted, ephemeralPub, err := SealPassData(device.Public, nonce, PassPayload{PrimaryAccountSuffix: "1"})
	require.NoError(t, err)

	tests := []struct {
		name      string
		priv      []byte
		nonce     []byte
		ephemeral []byte
		data      []byte
	}{
		{"wrong device key", other.Private, nonce, ephemeralPub, encrypted},
		{"wrong wallet nonce", device.Private, []byte{0xbb}, ephemeralPub, encrypted},
		{"wrong ephemeral key", device.Private, nonce, other.Public, encrypted},
		{"truncated", device.Private, nonce, ephemeralPub, encrypted[:10]},
		{"flipped bit", device.Private, nonce, ephemeralPub, flip(encrypted)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := OpenPassData(tt.priv, tt.nonce, tt.ephemeral, tt.data)
			assert.ErrorIs(t, err, ErrDecrypt)
		})
	}
}

func TestSealPassDataRejectsBadKey(t *testing.T) {
	_, _, err := SealPassData([]byte{0x01, 0x02}, []byte{0x01}, PassPayload{})
	assert.ErrorIs(t, err, ErrInvalidDeviceKey)
}

func TestActivationDataIsDeterministic(t *testing.T) {
	a, err := ActivationData([]byte{1, 2, 3}, []byte{4})
	require.NoError(t, err)
	b, err := ActivationData([]byte{1, 2, 3}, []byte{4})
	require.NoError(t, err)
	c, err := ActivationData([]byte{1, 2, 3}, []byte{5})
	require.NoError(t, err)

	assert.Len(t, a, ActivationDataSize)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func flip(b []byte) []byte {
	out := append([]byte(nil), b...)
	out[len(out)-1] ^= 0x01
	return out
}
