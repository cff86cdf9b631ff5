// Package issuer talks to the card issuer's provisioning service and
// provides a simulated issuer for development.
//
// The application forwards the certificate exchange produced by
// provisioning.Coordinator.Begin to the issuer with Client.Provision and
// hands the returned material to Coordinator.Complete.
//
// # Simulated Issuer
//
// Handler implements POST /v1/provision. It treats the leaf of the device
// certificate chain as the device's X25519 public key, generates an
// ephemeral key pair, and seals the pass payload with ChaCha20-Poly1305
// under a key derived with HKDF-SHA256 from the shared secret, salted with
// the wallet nonce. OpenPassData reverses this on the device side.
//
// Every response is recorded in a Store (MemoryStore or SQLiteStore).
package issuer
