package domain

import (
	interfaces "parley/internal/domain/interfaces"
	types "parley/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Username       = types.Username
	Fingerprint    = types.Fingerprint
	ContactCode    = types.ContactCode
	MessageID      = types.MessageID
	PublicKey      = types.PublicKey
	SecretKey      = types.SecretKey
	Nonce          = types.Nonce
	KeyPair        = types.KeyPair
	Identity       = types.Identity
	ActiveIdentity = types.ActiveIdentity
	Profile        = types.Profile
	Contact        = types.Contact
	Sealed         = types.Sealed
	Envelope       = types.Envelope
	Message        = types.Message
	SentRecord     = types.SentRecord
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	IdentityService = interfaces.IdentityService
	MessageService  = interfaces.MessageService
	RelayClient     = interfaces.RelayClient
	VaultStore      = interfaces.VaultStore
	ContactStore    = interfaces.ContactStore
	OutboxStore     = interfaces.OutboxStore
)
