package interfaces

import domaintypes "parley/internal/domain/types"

// VaultStore persists the single encrypted identity blob. The blob is
// opaque at this layer; it is replaced wholesale on every save.
type VaultStore interface {
	SaveVault(blob []byte) error
	LoadVault() (blob []byte, ok bool, err error)
}

// ContactStore caches peer public keys fetched from the directory.
type ContactStore interface {
	SaveContact(contact domaintypes.Contact) error
	LoadContact(username domaintypes.Username) (domaintypes.Contact, bool, error)
	ListContacts() ([]domaintypes.Contact, error)
}

// OutboxStore archives sent plaintext locally, since the one-way box keeps
// authors from decrypting their own wire payloads.
type OutboxStore interface {
	AppendSent(record domaintypes.SentRecord) error
	ListSent(peer domaintypes.Username) ([]domaintypes.SentRecord, error)
}
