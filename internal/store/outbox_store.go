package store

import (
	"path/filepath"
	"sync"

	"parley/internal/domain"
)

const outboxFilename = "outbox.json"

// OutboxFileStore keeps a local plaintext archive of sent messages. The
// wire carries only sealed payloads the author cannot reopen, so this
// archive is the sender's sole record of what was said.
type OutboxFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewOutboxFileStore returns an OutboxFileStore rooted at dir.
func NewOutboxFileStore(dir string) *OutboxFileStore {
	return &OutboxFileStore{dir: dir}
}

// AppendSent adds record to the end of the archive.
func (s *OutboxFileStore) AppendSent(record domain.SentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return err
	}
	records = append(records, record)
	return writeJSON(filepath.Join(s.dir, outboxFilename), records, 0o600)
}

// ListSent returns archived records addressed to peer, oldest first. An
// empty peer returns the whole archive.
func (s *OutboxFileStore) ListSent(peer domain.Username) ([]domain.SentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return nil, err
	}
	if peer == "" {
		return records, nil
	}
	out := make([]domain.SentRecord, 0, len(records))
	for _, r := range records {
		if r.To == peer {
			out = append(out, r)
		}
	}
	return out, nil
}

// load reads the archive; callers must hold mu.
func (s *OutboxFileStore) load() ([]domain.SentRecord, error) {
	var records []domain.SentRecord
	if err := readJSON(filepath.Join(s.dir, outboxFilename), &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Compile-time assertion that OutboxFileStore implements domain.OutboxStore.
var _ domain.OutboxStore = (*OutboxFileStore)(nil)
