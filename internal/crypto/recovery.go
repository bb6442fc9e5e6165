package crypto

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/hkdf"

	"parley/internal/domain"
)

const (
	// phraseEntropyBits sizes new recovery phrases (128 bits, 12 words).
	phraseEntropyBits = 128

	// recoveryInfo binds derived keys to this use; bump the suffix if the
	// derivation ever changes.
	recoveryInfo = "parley/identity/x25519/v1"
)

// ErrInvalidPhrase is returned when a mnemonic fails checksum validation.
var ErrInvalidPhrase = errors.New("invalid recovery phrase")

// NewRecoveryPhrase returns a fresh BIP-39 mnemonic. The phrase fully
// determines an identity key pair via KeyPairFromPhrase.
func NewRecoveryPhrase() (string, error) {
	entropy, err := bip39.NewEntropy(phraseEntropyBits)
	if err != nil {
		return "", fmt.Errorf("phrase entropy: %w", err)
	}
	return bip39.NewMnemonic(entropy)
}

// KeyPairFromPhrase deterministically derives the identity key pair from a
// mnemonic phrase. The seed is expanded with HKDF-SHA256 and the secret is
// clamped per RFC 7748.
func KeyPairFromPhrase(phrase string) (domain.KeyPair, error) {
	if !bip39.IsMnemonicValid(phrase) {
		return domain.KeyPair{}, ErrInvalidPhrase
	}
	seed := bip39.NewSeed(phrase, "")

	var secret domain.SecretKey
	r := hkdf.New(sha256.New, seed, nil, []byte(recoveryInfo))
	if _, err := io.ReadFull(r, secret[:]); err != nil {
		return domain.KeyPair{}, fmt.Errorf("expand seed: %w", err)
	}
	clamp(&secret)

	pub, err := PublicKeyOf(secret)
	if err != nil {
		return domain.KeyPair{}, err
	}
	return domain.KeyPair{Public: pub, Secret: secret}, nil
}

// clamp applies the RFC 7748 bit mask to a Curve25519 scalar.
func clamp(k *domain.SecretKey) {
	k[0] &= 248
	k[31] &= 127
	k[31] |= 64
}
