package types

import "parley/internal/util/memzero"

// ActiveIdentity is an unlocked identity scoped to a single authenticated
// session. It is owned by whoever unlocked it and passed by reference to
// operations that need the key material; the owner calls Wipe when the
// session ends.
type ActiveIdentity struct {
	Identity
}

// Wipe destroys the secret key material. The identity must not be used
// afterwards.
func (a *ActiveIdentity) Wipe() {
	memzero.Zero(a.Keys.Secret[:])
}
