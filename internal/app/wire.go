package app

import (
	"parley/internal/domain"
	"parley/internal/relay"
	identitysvc "parley/internal/services/identity"
	messagesvc "parley/internal/services/message"
	"parley/internal/store"
	"parley/internal/vault"
)

// Wire bundles all stores, services, and clients for the CLI.
type Wire struct {
	Identity domain.IdentityService
	Messages domain.MessageService
	Relay    domain.RelayClient
	Contacts domain.ContactStore
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config) (*Wire, error) {
	vaultStore := store.NewVaultFileStore(cfg.Home)
	contactStore := store.NewContactFileStore(cfg.Home)
	outboxStore := store.NewOutboxFileStore(cfg.Home)

	v := vault.New()
	if cfg.Iterations != 0 {
		var err error
		if v, err = vault.NewWithIterations(cfg.Iterations); err != nil {
			return nil, err
		}
	}

	rc := relay.NewClient(cfg.RelayURL)
	if cfg.HTTP != nil {
		rc.HTTP = cfg.HTTP
	}

	return &Wire{
		Identity: identitysvc.New(v, vaultStore),
		Messages: messagesvc.New(rc, contactStore, outboxStore),
		Relay:    rc,
		Contacts: contactStore,
	}, nil
}
