package store

import (
	"path/filepath"
	"sort"
	"sync"

	"parley/internal/domain"
)

const contactsFilename = "contacts.json"

// ContactFileStore caches peer public keys looked up from the directory.
type ContactFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewContactFileStore returns a ContactFileStore rooted at dir.
func NewContactFileStore(dir string) *ContactFileStore {
	return &ContactFileStore{dir: dir}
}

// SaveContact inserts or replaces the entry for contact.Username.
func (s *ContactFileStore) SaveContact(contact domain.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	contacts, err := s.load()
	if err != nil {
		return err
	}
	contacts[contact.Username] = contact
	return writeJSON(filepath.Join(s.dir, contactsFilename), contacts, 0o600)
}

// LoadContact returns the cached entry for username and whether it exists.
func (s *ContactFileStore) LoadContact(username domain.Username) (domain.Contact, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	contacts, err := s.load()
	if err != nil {
		return domain.Contact{}, false, err
	}
	c, ok := contacts[username]
	return c, ok, nil
}

// ListContacts returns every cached contact, ordered by username.
func (s *ContactFileStore) ListContacts() ([]domain.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	contacts, err := s.load()
	if err != nil {
		return nil, err
	}
	out := make([]domain.Contact, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

// load reads the contact map; callers must hold mu.
func (s *ContactFileStore) load() (map[domain.Username]domain.Contact, error) {
	contacts := make(map[domain.Username]domain.Contact)
	if err := readJSON(filepath.Join(s.dir, contactsFilename), &contacts); err != nil {
		return nil, err
	}
	return contacts, nil
}

// Compile-time assertion that ContactFileStore implements domain.ContactStore.
var _ domain.ContactStore = (*ContactFileStore)(nil)
