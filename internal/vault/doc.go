// Package vault seals the local identity under a low-entropy PIN.
//
// Lock derives a 256-bit key from the PIN with PBKDF2-SHA256 and seals the
// secret with AES-256-GCM. The resulting package carries its format
// version, KDF name, iteration count, salt and IV next to the ciphertext,
// so the work factor can be raised over time while old packages keep
// unlocking.
//
// Unlock never says why it failed. A wrong PIN, corrupted data and an
// unparseable package all come back as ErrUnlockFailed.
package vault
