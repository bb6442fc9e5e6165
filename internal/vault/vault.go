package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/pbkdf2"

	"parley/internal/util/memzero"
)

const (
	// Version is the current package format written by Lock.
	Version = 1

	kdfName = "pbkdf2-sha256"

	keySize  = 32
	saltSize = 16
	ivSize   = 12

	// MinIterations is the floor below which stored packages are refused.
	// PINs are low entropy; the KDF work factor is what slows guessing.
	MinIterations = 100_000

	// DefaultIterations is the work factor written by new vaults.
	DefaultIterations = 600_000
)

var (
	// ErrUnlockFailed covers every unlock failure. An unparseable package,
	// an unsupported format and a wrong PIN all look the same to the caller.
	ErrUnlockFailed = errors.New("vault unlock failed")

	// ErrLowIterations rejects configured work factors below MinIterations.
	ErrLowIterations = fmt.Errorf("vault iterations below minimum %d", MinIterations)
)

// Package is the serialised vault: everything needed to re-derive the key
// rides next to the ciphertext. Salt and IV are fresh on every Lock and are
// not secret. The KDF name and iteration count are stored so the work
// factor can be raised later without breaking existing vaults.
type Package struct {
	Version    int    `json:"version"`
	KDF        string `json:"kdf"`
	Iterations int    `json:"iterations"`
	Salt       []byte `json:"salt"`
	IV         []byte `json:"iv"`
	Data       []byte `json:"data"`
}

// Vault locks and unlocks a secret under a low-entropy PIN. The zero value
// is not usable; construct with New or NewWithIterations.
type Vault struct {
	iterations int
}

// New returns a vault using DefaultIterations.
func New() *Vault { return &Vault{iterations: DefaultIterations} }

// NewWithIterations returns a vault with a custom work factor, refusing
// anything under MinIterations.
func NewWithIterations(iterations int) (*Vault, error) {
	if iterations < MinIterations {
		return nil, ErrLowIterations
	}
	return &Vault{iterations: iterations}, nil
}

// Lock seals secret under pin and returns the serialised package. Each call
// draws a fresh salt and IV, so locking identical inputs twice yields
// different packages.
func (v *Vault) Lock(secret []byte, pin string) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("draw salt: %w", err)
	}
	iv := make([]byte, ivSize)
	if _, err := rand.Read(iv); err != nil {
		return nil, fmt.Errorf("draw iv: %w", err)
	}

	key := deriveKey(pin, salt, v.iterations)
	defer memzero.Zero(key)

	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	data := aead.Seal(nil, iv, secret, nil)

	return json.Marshal(Package{
		Version:    Version,
		KDF:        kdfName,
		Iterations: v.iterations,
		Salt:       salt,
		IV:         iv,
		Data:       data,
	})
}

// Unlock opens a package produced by Lock. The stored iteration count is
// honoured, so packages written under older defaults keep unlocking, but a
// count under MinIterations is refused outright. Every failure path returns
// ErrUnlockFailed and nothing else.
func (v *Vault) Unlock(blob []byte, pin string) ([]byte, error) {
	var pkg Package
	if err := json.Unmarshal(blob, &pkg); err != nil {
		return nil, ErrUnlockFailed
	}
	if pkg.Version != Version || pkg.KDF != kdfName {
		return nil, ErrUnlockFailed
	}
	if pkg.Iterations < MinIterations {
		return nil, ErrUnlockFailed
	}
	if len(pkg.Salt) != saltSize || len(pkg.IV) != ivSize {
		return nil, ErrUnlockFailed
	}

	key := deriveKey(pin, pkg.Salt, pkg.Iterations)
	defer memzero.Zero(key)

	aead, err := newGCM(key)
	if err != nil {
		return nil, ErrUnlockFailed
	}
	secret, err := aead.Open(nil, pkg.IV, pkg.Data, nil)
	if err != nil {
		return nil, ErrUnlockFailed
	}
	return secret, nil
}

func deriveKey(pin string, salt []byte, iterations int) []byte {
	return pbkdf2.Key([]byte(pin), salt, iterations, keySize, sha256.New)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
