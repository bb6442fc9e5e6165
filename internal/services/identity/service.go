package identity

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"parley/internal/crypto"
	"parley/internal/domain"
	"parley/internal/util/memzero"
	"parley/internal/vault"
)

const (
	// minPINLength defines the minimum number of characters in a PIN.
	minPINLength = 6

	backoffBase = time.Second
	backoffCap  = 32 * time.Second
)

var (
	// ErrWeakPIN is returned when the PIN fails the strength policy.
	ErrWeakPIN = fmt.Errorf(
		"pin is too weak (must be at least %d characters and not one repeated character)",
		minPINLength,
	)

	// ErrNoIdentity means no vault has been created on this machine yet.
	ErrNoIdentity = errors.New("no identity found")

	// ErrIdentityExists guards against clobbering an existing vault.
	ErrIdentityExists = errors.New("identity already exists")

	// ErrUnlockThrottled is returned while the failed-attempt backoff window
	// is open; the PIN is not checked during that window.
	ErrUnlockThrottled = errors.New("too many failed unlock attempts, wait before retrying")
)

// Service manages the local identity: key creation, the PIN-sealed vault,
// and session unlock. Repeated unlock failures open an exponential backoff
// window, doubling from one second up to half a minute.
type Service struct {
	vault *vault.Vault
	store domain.VaultStore

	mu       sync.Mutex
	failures int
	retryAt  time.Time
}

// New returns an identity service sealing with v and persisting via store.
func New(v *vault.Vault, store domain.VaultStore) *Service {
	return &Service{vault: v, store: store}
}

// CreateIdentity generates a fresh key pair, seals it under pin, and
// persists the vault. It refuses to overwrite an existing identity.
func (s *Service) CreateIdentity(
	username domain.Username,
	pin string,
) (domain.Identity, domain.Fingerprint, error) {
	pair, err := crypto.GenerateKeyPair()
	if err != nil {
		return domain.Identity{}, "", err
	}
	return s.saveNew(username, pin, pair)
}

// CreateRecoverableIdentity derives the key pair from a fresh mnemonic
// phrase and returns the phrase alongside the identity. Anyone holding the
// phrase can rebuild the secret key, so the caller shows it once and never
// stores it.
func (s *Service) CreateRecoverableIdentity(
	username domain.Username,
	pin string,
) (domain.Identity, domain.Fingerprint, string, error) {
	phrase, err := crypto.NewRecoveryPhrase()
	if err != nil {
		return domain.Identity{}, "", "", err
	}
	pair, err := crypto.KeyPairFromPhrase(phrase)
	if err != nil {
		return domain.Identity{}, "", "", err
	}
	id, fp, err := s.saveNew(username, pin, pair)
	if err != nil {
		return domain.Identity{}, "", "", err
	}
	return id, fp, phrase, nil
}

// RestoreIdentity rebuilds the key pair from a mnemonic phrase and seals it
// under a new PIN. Unlike CreateIdentity it overwrites an existing vault:
// restoring is the recovery path for a lost PIN.
func (s *Service) RestoreIdentity(
	username domain.Username,
	phrase string,
	pin string,
) (domain.Identity, domain.Fingerprint, error) {
	if err := checkUsername(username); err != nil {
		return domain.Identity{}, "", err
	}
	if !isAcceptablePIN(pin) {
		return domain.Identity{}, "", ErrWeakPIN
	}
	pair, err := crypto.KeyPairFromPhrase(phrase)
	if err != nil {
		return domain.Identity{}, "", err
	}

	id := newIdentity(username, pair)
	if err := s.lockAndSave(id, pin); err != nil {
		return domain.Identity{}, "", err
	}
	return id, domain.Fingerprint(crypto.Fingerprint(id.Keys.Public.Slice())), nil
}

// UnlockIdentity opens the vault and returns a session-scoped identity.
// The caller owns the result and must Wipe it when the session ends.
func (s *Service) UnlockIdentity(pin string) (*domain.ActiveIdentity, error) {
	raw, err := s.unlockRaw(pin)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(raw)

	var id domain.Identity
	if err := json.Unmarshal(raw, &id); err != nil {
		return nil, vault.ErrUnlockFailed
	}
	return &domain.ActiveIdentity{Identity: id}, nil
}

// ChangePIN re-seals the vault under newPIN. The old PIN goes through the
// same throttled unlock path as UnlockIdentity.
func (s *Service) ChangePIN(oldPIN, newPIN string) error {
	if !isAcceptablePIN(newPIN) {
		return ErrWeakPIN
	}
	raw, err := s.unlockRaw(oldPIN)
	if err != nil {
		return err
	}
	defer memzero.Zero(raw)

	blob, err := s.vault.Lock(raw, newPIN)
	if err != nil {
		return err
	}
	return s.store.SaveVault(blob)
}

// saveNew applies policy, refuses to clobber an existing vault, and
// persists a brand new identity.
func (s *Service) saveNew(
	username domain.Username,
	pin string,
	pair domain.KeyPair,
) (domain.Identity, domain.Fingerprint, error) {
	if err := checkUsername(username); err != nil {
		return domain.Identity{}, "", err
	}
	if !isAcceptablePIN(pin) {
		return domain.Identity{}, "", ErrWeakPIN
	}
	if _, ok, err := s.store.LoadVault(); err != nil {
		return domain.Identity{}, "", err
	} else if ok {
		return domain.Identity{}, "", ErrIdentityExists
	}

	id := newIdentity(username, pair)
	if err := s.lockAndSave(id, pin); err != nil {
		return domain.Identity{}, "", err
	}
	return id, domain.Fingerprint(crypto.Fingerprint(id.Keys.Public.Slice())), nil
}

// lockAndSave seals id under pin and replaces the stored vault wholesale.
func (s *Service) lockAndSave(id domain.Identity, pin string) error {
	raw, err := json.Marshal(id)
	if err != nil {
		return err
	}
	defer memzero.Zero(raw)

	blob, err := s.vault.Lock(raw, pin)
	if err != nil {
		return err
	}
	return s.store.SaveVault(blob)
}

// unlockRaw loads and opens the vault, tracking failed attempts. While the
// backoff window is open the PIN is not even checked.
func (s *Service) unlockRaw(pin string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if time.Now().Before(s.retryAt) {
		return nil, ErrUnlockThrottled
	}

	blob, ok, err := s.store.LoadVault()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoIdentity
	}

	raw, err := s.vault.Unlock(blob, pin)
	if err != nil {
		s.failures++
		delay := backoffBase << min(s.failures-1, 5)
		if delay > backoffCap {
			delay = backoffCap
		}
		s.retryAt = time.Now().Add(delay)
		return nil, err
	}

	s.failures = 0
	s.retryAt = time.Time{}
	return raw, nil
}

func newIdentity(username domain.Username, pair domain.KeyPair) domain.Identity {
	return domain.Identity{
		Username:  username,
		Keys:      pair,
		CreatedAt: time.Now().Unix(),
	}
}

func checkUsername(username domain.Username) error {
	if username == "" {
		return errors.New("username required")
	}
	return nil
}

// isAcceptablePIN enforces a basic strength policy: long enough, and not a
// single rune repeated.
func isAcceptablePIN(pin string) bool {
	if utf8.RuneCountInString(pin) < minPINLength {
		return false
	}
	first, _ := utf8.DecodeRuneInString(pin)
	for _, r := range pin {
		if r != first {
			return true
		}
	}
	return false
}

// Compile-time assertion that Service implements domain.IdentityService.
var _ domain.IdentityService = (*Service)(nil)
