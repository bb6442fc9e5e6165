// Package crypto exposes the cryptographic primitives used by parley.
//
// Contents
//
//   - Curve25519 key pair generation and XSalsa20-Poly1305 box
//     sealing/opening (GenerateKeyPair, Seal, Open)
//   - Deterministic key derivation from BIP-39 recovery phrases
//     (NewRecoveryPhrase, KeyPairFromPhrase)
//   - Base64 helpers for bytes crossing the component boundary (B64, FromB64)
//   - Short fingerprints and shareable contact codes for public keys
//     (Fingerprint, ContactCode)
//
// # Notes
//
// All functions operate on the fixed-size array types defined in
// internal/domain to avoid accidental reallocations. Sealing draws a fresh
// random 24-byte nonce per message; nonce reuse under one key pair is never
// possible through this API. Every decryption failure is collapsed into
// ErrDecryptFailed so callers cannot distinguish a tampered message from a
// wrong key.
package crypto
