package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/nacl/box"

	"parley/internal/domain"
)

const (
	// KeySize is the length of Curve25519 public and secret keys.
	KeySize = 32
	// NonceSize is the length of the random nonce drawn for every message.
	NonceSize = 24
	// Overhead is the Poly1305 tag appended to every ciphertext.
	Overhead = box.Overhead
)

var (
	// ErrDecryptFailed is returned for any message that does not
	// authenticate: tampered ciphertext, a wrong key pair, or an envelope
	// not addressed to this caller. The cause is never split out.
	ErrDecryptFailed = errors.New("message decryption failed")

	// ErrInvalidKeySize reports key material of the wrong length.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrInvalidNonceSize reports a nonce of the wrong length.
	ErrInvalidNonceSize = errors.New("invalid nonce size")
)

// GenerateKeyPair returns a fresh Curve25519 key pair for the box
// construction. An error means the platform's random source is unavailable;
// callers must treat that as fatal rather than retry.
func GenerateKeyPair() (domain.KeyPair, error) {
	pub, priv, err := box.GenerateKey(rand.Reader)
	if err != nil {
		return domain.KeyPair{}, fmt.Errorf("generate key pair: %w", err)
	}
	return domain.KeyPair{
		Public: domain.PublicKey(*pub),
		Secret: domain.SecretKey(*priv),
	}, nil
}

// Seal encrypts plaintext from the holder of mySecret to theirPublic using
// XSalsa20-Poly1305 over the Curve25519 shared secret. Every call draws a
// fresh random 24-byte nonce; the returned ciphertext carries the Poly1305
// tag as its final Overhead bytes.
func Seal(
	plaintext string,
	mySecret domain.SecretKey,
	theirPublic domain.PublicKey,
) (domain.Sealed, error) {
	var nonce domain.Nonce
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return domain.Sealed{}, fmt.Errorf("draw nonce: %w", err)
	}

	sender, err := PublicKeyOf(mySecret)
	if err != nil {
		return domain.Sealed{}, err
	}

	ct := box.Seal(
		nil,
		[]byte(plaintext),
		(*[NonceSize]byte)(&nonce),
		(*[KeySize]byte)(&theirPublic),
		(*[KeySize]byte)(&mySecret),
	)
	return domain.Sealed{Nonce: nonce, Ciphertext: ct, SenderKey: sender}, nil
}

// Open authenticates msg as authored by theirPublic for the holder of
// mySecret and returns the plaintext. The envelope's sender key must match
// theirPublic: a sealed message is only ever opened as the addressee of its
// claimed author, so an author replaying their own outbound ciphertext gets
// ErrDecryptFailed, not the plaintext. All failures return ErrDecryptFailed
// and never partial plaintext.
func Open(
	msg domain.Sealed,
	mySecret domain.SecretKey,
	theirPublic domain.PublicKey,
) (string, error) {
	if msg.SenderKey != theirPublic {
		return "", ErrDecryptFailed
	}
	pt, ok := box.Open(
		nil,
		msg.Ciphertext,
		(*[NonceSize]byte)(&msg.Nonce),
		(*[KeySize]byte)(&theirPublic),
		(*[KeySize]byte)(&mySecret),
	)
	if !ok {
		return "", ErrDecryptFailed
	}
	return string(pt), nil
}

// PublicKeyOf derives the public half for a secret key.
func PublicKeyOf(secret domain.SecretKey) (domain.PublicKey, error) {
	pb, err := curve25519.X25519(secret.Slice(), curve25519.Basepoint)
	if err != nil {
		return domain.PublicKey{}, fmt.Errorf("derive public key: %w", err)
	}
	var pub domain.PublicKey
	copy(pub[:], pb)
	return pub, nil
}

// PublicKeyFromBytes converts raw key material, rejecting wrong lengths.
func PublicKeyFromBytes(b []byte) (domain.PublicKey, error) {
	if len(b) != KeySize {
		return domain.PublicKey{}, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeySize, len(b), KeySize)
	}
	var pub domain.PublicKey
	copy(pub[:], b)
	return pub, nil
}

// SecretKeyFromBytes converts raw key material, rejecting wrong lengths.
func SecretKeyFromBytes(b []byte) (domain.SecretKey, error) {
	if len(b) != KeySize {
		return domain.SecretKey{}, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeySize, len(b), KeySize)
	}
	var sec domain.SecretKey
	copy(sec[:], b)
	return sec, nil
}

// NonceFromBytes converts a raw nonce, rejecting wrong lengths.
func NonceFromBytes(b []byte) (domain.Nonce, error) {
	if len(b) != NonceSize {
		return domain.Nonce{}, fmt.Errorf("%w: got %d, want %d", ErrInvalidNonceSize, len(b), NonceSize)
	}
	var n domain.Nonce
	copy(n[:], b)
	return n, nil
}
