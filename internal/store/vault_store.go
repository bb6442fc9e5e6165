package store

import (
	"path/filepath"
	"sync"

	"parley/internal/domain"
)

const vaultFilename = "identity.vault"

// VaultFileStore persists the encrypted identity blob to disk. Each save
// replaces the previous blob wholesale; there is only ever one vault file.
type VaultFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewVaultFileStore returns a VaultFileStore rooted at dir.
func NewVaultFileStore(dir string) *VaultFileStore {
	return &VaultFileStore{dir: dir}
}

// SaveVault writes the blob to disk, replacing any existing vault.
func (s *VaultFileStore) SaveVault(blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return writeFile(filepath.Join(s.dir, vaultFilename), blob, 0o600)
}

// LoadVault returns the stored blob and whether one was present.
func (s *VaultFileStore) LoadVault() ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := readFile(filepath.Join(s.dir, vaultFilename))
	if err != nil {
		return nil, false, err
	}
	return b, b != nil, nil
}

// Compile-time assertion that VaultFileStore implements domain.VaultStore.
var _ domain.VaultStore = (*VaultFileStore)(nil)
