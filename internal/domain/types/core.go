package types

// Username represents a relay-registered identity.
type Username string

// String returns the string form of the username.
func (u Username) String() string { return string(u) }

// Fingerprint is a short identifier for public keys presented to users.
type Fingerprint string

// String returns the string form of the fingerprint.
func (f Fingerprint) String() string { return string(f) }

// ContactCode is a shareable encoding of a public-key hash, compared out of
// band to verify a peer's key.
type ContactCode string

// String returns the string form of the contact code.
func (c ContactCode) String() string { return string(c) }

// MessageID uniquely identifies an envelope in transit.
type MessageID string

// String returns the string form of the message identifier.
func (id MessageID) String() string { return string(id) }
