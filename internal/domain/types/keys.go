package types

import (
	"encoding/base64"
	"fmt"
)

// PublicKey is a Curve25519 public key.
type PublicKey [32]byte

// Slice returns the key as a []byte.
func (p PublicKey) Slice() []byte { return p[:] }

// MarshalText encodes the key as standard base64.
func (p PublicKey) MarshalText() ([]byte, error) {
	return []byte(base64.StdEncoding.EncodeToString(p[:])), nil
}

// UnmarshalText decodes a base64 key, rejecting wrong-length material.
func (p *PublicKey) UnmarshalText(text []byte) error {
	b, err := base64.StdEncoding.DecodeString(string(text))
	if err != nil {
		return fmt.Errorf("public key: %w", err)
	}
	if len(b) != 32 {
		return fmt.Errorf("public key: want 32 bytes, got %d", len(b))
	}
	copy(p[:], b)
	return nil
}

// SecretKey is a Curve25519 private key. It is only ever serialised inside
// the encrypted vault payload, never on the wire.
type SecretKey [32]byte

// Slice returns the key as a []byte.
func (k SecretKey) Slice() []byte { return k[:] }

// MarshalText encodes the key as standard base64.
func (k SecretKey) MarshalText() ([]byte, error) {
	return []byte(base64.StdEncoding.EncodeToString(k[:])), nil
}

// UnmarshalText decodes a base64 key, rejecting wrong-length material.
func (k *SecretKey) UnmarshalText(text []byte) error {
	b, err := base64.StdEncoding.DecodeString(string(text))
	if err != nil {
		return fmt.Errorf("secret key: %w", err)
	}
	if len(b) != 32 {
		return fmt.Errorf("secret key: want 32 bytes, got %d", len(b))
	}
	copy(k[:], b)
	return nil
}

// Nonce is the 24-byte random value drawn fresh for every sealed message.
type Nonce [24]byte

// Slice returns the nonce as a []byte.
func (n Nonce) Slice() []byte { return n[:] }

// MarshalText encodes the nonce as standard base64.
func (n Nonce) MarshalText() ([]byte, error) {
	return []byte(base64.StdEncoding.EncodeToString(n[:])), nil
}

// UnmarshalText decodes a base64 nonce, rejecting wrong-length material.
func (n *Nonce) UnmarshalText(text []byte) error {
	b, err := base64.StdEncoding.DecodeString(string(text))
	if err != nil {
		return fmt.Errorf("nonce: %w", err)
	}
	if len(b) != 24 {
		return fmt.Errorf("nonce: want 24 bytes, got %d", len(b))
	}
	copy(n[:], b)
	return nil
}
