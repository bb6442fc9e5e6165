package interfaces

import (
	"context"

	domaintypes "parley/internal/domain/types"
)

// IdentityService creates, unlocks, and maintains the local identity.
type IdentityService interface {
	CreateIdentity(
		username domaintypes.Username,
		pin string,
	) (domaintypes.Identity, domaintypes.Fingerprint, error)

	// CreateRecoverableIdentity derives the key pair from a fresh mnemonic
	// phrase and returns the phrase for offline backup.
	CreateRecoverableIdentity(
		username domaintypes.Username,
		pin string,
	) (domaintypes.Identity, domaintypes.Fingerprint, string, error)

	// RestoreIdentity rebuilds the key pair from a mnemonic phrase and locks
	// it under a new PIN.
	RestoreIdentity(
		username domaintypes.Username,
		phrase string,
		pin string,
	) (domaintypes.Identity, domaintypes.Fingerprint, error)

	// UnlockIdentity opens the vault and hands the caller a session-scoped
	// identity; the caller owns it and must Wipe it when done.
	UnlockIdentity(pin string) (*domaintypes.ActiveIdentity, error)

	ChangePIN(oldPIN, newPIN string) error
}

// MessageService encrypts, sends, fetches and decrypts messages.
type MessageService interface {
	SendMessage(
		ctx context.Context,
		active *domaintypes.ActiveIdentity,
		to domaintypes.Username,
		text string,
	) (domaintypes.SentRecord, error)

	ReceiveMessages(
		ctx context.Context,
		active *domaintypes.ActiveIdentity,
		max int,
	) ([]domaintypes.Message, error)

	// SentHistory lists the local plaintext archive for a peer; an empty
	// peer lists everything.
	SentHistory(peer domaintypes.Username) ([]domaintypes.SentRecord, error)
}
