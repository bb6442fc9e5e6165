package types

// Contact is a peer key cached locally. The first key seen for a username
// is pinned; replacing it is an explicit user action, not an automatic one.
type Contact struct {
	Username  Username  `json:"username"`
	Key       PublicKey `json:"public_key"`
	FirstSeen int64     `json:"first_seen"`
}
