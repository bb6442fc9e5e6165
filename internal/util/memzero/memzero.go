// Package memzero clears sensitive byte slices in place.
package memzero

// Zero overwrites b with zeros. Callers hand it key material and decrypted
// payloads once they are done with them.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
