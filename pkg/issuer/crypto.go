package issuer

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/hkdf"
)

// Key derivation labels.
const (
	passDataInfo   = "passbridge pass data"
	activationInfo = "passbridge activation"
)

// ActivationDataSize is the length of generated activation data.
const ActivationDataSize = 16

// Crypto errors.
var (
	ErrInvalidDeviceKey = errors.New("invalid device key")
	ErrDecrypt          = errors.New("pass data decryption failed")
)

// PassPayload is the plaintext sealed into encryptedPassData.
type PassPayload struct {
	PrimaryAccountSuffix string `json:"primaryAccountSuffix"`
	PaymentNetwork       string `json:"paymentNetwork"`
	CardholderName       string `json:"cardholderName"`
	DeviceAccountSuffix  string `json:"deviceAccountSuffix"`
	PrimaryAccountID     string `json:"primaryAccountIdentifier"`
}

// DeviceKey is a device X25519 key pair.
type DeviceKey struct {
	Private []byte
	Public  []byte
}

// GenerateDeviceKey creates a random device key pair.
func GenerateDeviceKey() (DeviceKey, error) {
	priv := make([]byte, curve25519.ScalarSize)
	if _, err := io.ReadFull(rand.Reader, priv); err != nil {
		return DeviceKey{}, err
	}
	pub, err := curve25519.X25519(priv, curve25519.Basepoint)
	if err != nil {
		return DeviceKey{}, err
	}
	return DeviceKey{Private: priv, Public: pub}, nil
}

// SealPassData encrypts payload for the device holding devicePub. It returns
// the ciphertext (AEAD nonce prepended) and the ephemeral public key.
func SealPassData(devicePub, walletNonce []byte, payload PassPayload) (encrypted, ephemeralPub []byte, err error) {
	if len(devicePub) != curve25519.PointSize {
		return nil, nil, fmt.Errorf("%w: %d bytes", ErrInvalidDeviceKey, len(devicePub))
	}

	eph, err := GenerateDeviceKey()
	if err != nil {
		return nil, nil, err
	}
	shared, err := curve25519.X25519(eph.Private, devicePub)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidDeviceKey, err)
	}

	aead, err := newAEAD(shared, walletNonce)
	if err != nil {
		return nil, nil, err
	}
	plaintext, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}

	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plaintext)+aead.Overhead())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, nil, err
	}
	return aead.Seal(nonce, nonce, plaintext, eph.Public), eph.Public, nil
}

// OpenPassData decrypts pass data sealed by SealPassData.
func OpenPassData(devicePriv, walletNonce, ephemeralPub, encrypted []byte) (PassPayload, error) {
	shared, err := curve25519.X25519(devicePriv, ephemeralPub)
	if err != nil {
		return PassPayload{}, fmt.Errorf("%w: %v", ErrDecrypt, err)
	}
	aead, err := newAEAD(shared, walletNonce)
	if err != nil {
		return PassPayload{}, err
	}
	if len(encrypted) < aead.NonceSize()+aead.Overhead() {
		return PassPayload{}, fmt.Errorf("%w: ciphertext too short", ErrDecrypt)
	}

	nonce, ciphertext := encrypted[:aead.NonceSize()], encrypted[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, ephemeralPub)
	if err != nil {
		return PassPayload{}, fmt.Errorf("%w: %v", ErrDecrypt, err)
	}

	var payload PassPayload
	if err := json.Unmarshal(plaintext, &payload); err != nil {
		return PassPayload{}, fmt.Errorf("%w: %v", ErrDecrypt, err)
	}
	return payload, nil
}

// ActivationData derives the activation code bound to an issued pass.
func ActivationData(ephemeralPub, walletNonce []byte) ([]byte, error) {
	out := make([]byte, ActivationDataSize)
	r := hkdf.New(sha256.New, ephemeralPub, walletNonce, []byte(activationInfo))
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, err
	}
	return out, nil
}

func newAEAD(shared, salt []byte) (cipher.AEAD, error) {
	key := make([]byte, chacha20poly1305.KeySize)
	r := hkdf.New(sha256.New, shared, salt, []byte(passDataInfo))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, err
	}
	return chacha20poly1305.New(key)
}
