package types

// KeyPair holds a Curve25519 key pair.
type KeyPair struct {
	Public PublicKey `json:"public"`
	Secret SecretKey `json:"secret"`
}

// Identity is the long-term local identity. It only exists in plaintext
// inside the vault payload and in an unlocked session.
type Identity struct {
	Username  Username `json:"username"`
	Keys      KeyPair  `json:"keys"`
	CreatedAt int64    `json:"created_at"`
}

// Profile is the public half of an identity, as published to the directory.
type Profile struct {
	Username Username  `json:"username"`
	Key      PublicKey `json:"public_key"`
}
