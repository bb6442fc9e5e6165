// Package identity manages creation, sealing and unlocking of the local
// identity.
//
// It enforces PIN policy, generates Curve25519 key pairs (optionally derived
// from a mnemonic recovery phrase), and persists them PIN-sealed via the
// domain.VaultStore. Failed unlocks open an exponential backoff window so a
// stolen vault file cannot be PIN-guessed at full speed through this API.
package identity
