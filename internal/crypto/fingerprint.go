package crypto

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/mr-tron/base58/base58"

	"parley/internal/domain"
)

// codePrefix marks contact codes so they are recognisable when shared.
const codePrefix = "ply1"

// Fingerprint returns a short hex fingerprint of a public key.
//
// It hashes with SHA-256 and truncates to 10 bytes (20 hex chars).
func Fingerprint(pub []byte) string {
	sum := sha256.Sum256(pub)
	return hex.EncodeToString(sum[:10])
}

// ContactCode returns the shareable code for a public key: a prefix plus
// the base58 encoding of the full SHA-256 digest. Two users comparing codes
// out of band are comparing the keys themselves.
func ContactCode(pub domain.PublicKey) string {
	sum := sha256.Sum256(pub.Slice())
	return codePrefix + base58.Encode(sum[:])
}
