package identity_test

import (
	"errors"
	"testing"
	"time"

	"parley/internal/crypto"
	"parley/internal/domain"
	"parley/internal/services/identity"
	"parley/internal/store"
	"parley/internal/vault"
)

const testPIN = "482913"

func newService(t *testing.T) *identity.Service {
	t.Helper()
	v, err := vault.NewWithIterations(vault.MinIterations)
	if err != nil {
		t.Fatalf("NewWithIterations: %v", err)
	}
	return identity.New(v, store.NewVaultFileStore(t.TempDir()))
}

func TestCreateIdentity_RoundTrip(t *testing.T) {
	svc := newService(t)

	id, fp, err := svc.CreateIdentity("alice", testPIN)
	if err != nil {
		t.Fatalf("CreateIdentity: %v", err)
	}
	if id.Username != "alice" {
		t.Fatalf("username = %q, want alice", id.Username)
	}
	if want := domain.Fingerprint(crypto.Fingerprint(id.Keys.Public.Slice())); fp != want {
		t.Fatalf("fingerprint = %q, want %q", fp, want)
	}

	active, err := svc.UnlockIdentity(testPIN)
	if err != nil {
		t.Fatalf("UnlockIdentity: %v", err)
	}
	defer active.Wipe()

	if active.Username != id.Username || active.Keys != id.Keys {
		t.Fatal("unlocked identity does not match the one created")
	}
}

func TestCreateIdentity_Policy(t *testing.T) {
	svc := newService(t)

	for _, pin := range []string{"", "12345", "000000", "aaaaaaaaaa"} {
		if _, _, err := svc.CreateIdentity("alice", pin); !errors.Is(err, identity.ErrWeakPIN) {
			t.Fatalf("pin %q: got %v, want ErrWeakPIN", pin, err)
		}
	}
	if _, _, err := svc.CreateIdentity("", testPIN); err == nil {
		t.Fatal("empty username accepted")
	}
}

func TestCreateIdentity_RefusesOverwrite(t *testing.T) {
	svc := newService(t)

	if _, _, err := svc.CreateIdentity("alice", testPIN); err != nil {
		t.Fatalf("CreateIdentity: %v", err)
	}
	if _, _, err := svc.CreateIdentity("alice", testPIN); !errors.Is(err, identity.ErrIdentityExists) {
		t.Fatalf("second create: got %v, want ErrIdentityExists", err)
	}
}

func TestUnlockIdentity_NoVault(t *testing.T) {
	svc := newService(t)

	if _, err := svc.UnlockIdentity(testPIN); !errors.Is(err, identity.ErrNoIdentity) {
		t.Fatalf("UnlockIdentity: got %v, want ErrNoIdentity", err)
	}
}

func TestUnlockIdentity_WrongPINOpensBackoffWindow(t *testing.T) {
	svc := newService(t)
	if _, _, err := svc.CreateIdentity("alice", testPIN); err != nil {
		t.Fatalf("CreateIdentity: %v", err)
	}

	if _, err := svc.UnlockIdentity("999999"); !errors.Is(err, vault.ErrUnlockFailed) {
		t.Fatalf("wrong PIN: got %v, want ErrUnlockFailed", err)
	}

	// While the window is open even the right PIN is refused unchecked.
	if _, err := svc.UnlockIdentity(testPIN); !errors.Is(err, identity.ErrUnlockThrottled) {
		t.Fatalf("during backoff: got %v, want ErrUnlockThrottled", err)
	}

	time.Sleep(1100 * time.Millisecond)
	active, err := svc.UnlockIdentity(testPIN)
	if err != nil {
		t.Fatalf("after backoff: %v", err)
	}
	active.Wipe()

	// Success closes the window; an immediate unlock works again.
	active, err = svc.UnlockIdentity(testPIN)
	if err != nil {
		t.Fatalf("after reset: %v", err)
	}
	active.Wipe()
}

func TestActiveIdentity_Wipe(t *testing.T) {
	svc := newService(t)
	if _, _, err := svc.CreateIdentity("alice", testPIN); err != nil {
		t.Fatalf("CreateIdentity: %v", err)
	}

	active, err := svc.UnlockIdentity(testPIN)
	if err != nil {
		t.Fatalf("UnlockIdentity: %v", err)
	}
	if active.Keys.Secret == (domain.SecretKey{}) {
		t.Fatal("unlocked secret key is zero")
	}
	active.Wipe()
	if active.Keys.Secret != (domain.SecretKey{}) {
		t.Fatal("Wipe left secret key material behind")
	}
}

func TestRecoverableIdentity_RestoreMatches(t *testing.T) {
	first := newService(t)
	id, fp, phrase, err := first.CreateRecoverableIdentity("alice", testPIN)
	if err != nil {
		t.Fatalf("CreateRecoverableIdentity: %v", err)
	}
	if phrase == "" {
		t.Fatal("expected a recovery phrase")
	}

	// A different machine with only the phrase rebuilds the same key pair.
	second := newService(t)
	restored, restoredFP, err := second.RestoreIdentity("alice", phrase, "771028")
	if err != nil {
		t.Fatalf("RestoreIdentity: %v", err)
	}
	if restored.Keys.Public != id.Keys.Public || restoredFP != fp {
		t.Fatal("restored identity does not match the original")
	}

	active, err := second.UnlockIdentity("771028")
	if err != nil {
		t.Fatalf("UnlockIdentity after restore: %v", err)
	}
	defer active.Wipe()
	if active.Keys.Secret != id.Keys.Secret {
		t.Fatal("restored secret key does not match the original")
	}
}

func TestRestoreIdentity_OverwritesExisting(t *testing.T) {
	svc := newService(t)
	original, _, err := svc.CreateIdentity("alice", testPIN)
	if err != nil {
		t.Fatalf("CreateIdentity: %v", err)
	}

	phrase, err := crypto.NewRecoveryPhrase()
	if err != nil {
		t.Fatalf("NewRecoveryPhrase: %v", err)
	}
	restored, _, err := svc.RestoreIdentity("alice", phrase, testPIN)
	if err != nil {
		t.Fatalf("RestoreIdentity: %v", err)
	}
	if restored.Keys.Public == original.Keys.Public {
		t.Fatal("expected restore to replace the key pair")
	}

	active, err := svc.UnlockIdentity(testPIN)
	if err != nil {
		t.Fatalf("UnlockIdentity: %v", err)
	}
	defer active.Wipe()
	if active.Keys.Public != restored.Keys.Public {
		t.Fatal("vault still holds the pre-restore identity")
	}
}

func TestRestoreIdentity_RejectsBadPhrase(t *testing.T) {
	svc := newService(t)
	if _, _, err := svc.RestoreIdentity("alice", "definitely not a mnemonic", testPIN); !errors.Is(err, crypto.ErrInvalidPhrase) {
		t.Fatalf("RestoreIdentity: got %v, want ErrInvalidPhrase", err)
	}
}

func TestChangePIN(t *testing.T) {
	svc := newService(t)
	id, _, err := svc.CreateIdentity("alice", testPIN)
	if err != nil {
		t.Fatalf("CreateIdentity: %v", err)
	}

	if err := svc.ChangePIN(testPIN, "111111"); !errors.Is(err, identity.ErrWeakPIN) {
		t.Fatalf("weak new PIN: got %v, want ErrWeakPIN", err)
	}
	if err := svc.ChangePIN(testPIN, "771028"); err != nil {
		t.Fatalf("ChangePIN: %v", err)
	}

	active, err := svc.UnlockIdentity("771028")
	if err != nil {
		t.Fatalf("UnlockIdentity with new PIN: %v", err)
	}
	defer active.Wipe()
	if active.Keys != id.Keys {
		t.Fatal("identity changed across ChangePIN")
	}

	if _, err := svc.UnlockIdentity(testPIN); !errors.Is(err, vault.ErrUnlockFailed) {
		t.Fatalf("old PIN after change: got %v, want ErrUnlockFailed", err)
	}
}
