package vault_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"parley/internal/vault"
)

func lock(t *testing.T, v *vault.Vault, secret, pin string) []byte {
	t.Helper()
	blob, err := v.Lock([]byte(secret), pin)
	if err != nil {
		t.Fatalf("Lock: %v", err)
	}
	return blob
}

func parsePackage(t *testing.T, blob []byte) vault.Package {
	t.Helper()
	var pkg vault.Package
	if err := json.Unmarshal(blob, &pkg); err != nil {
		t.Fatalf("unmarshal package: %v", err)
	}
	return pkg
}

func remarshal(t *testing.T, pkg vault.Package) []byte {
	t.Helper()
	blob, err := json.Marshal(pkg)
	if err != nil {
		t.Fatalf("marshal package: %v", err)
	}
	return blob
}

func TestLockUnlock_RoundTrip(t *testing.T) {
	v := vault.New()
	for _, secret := range []string{
		"the quick brown fox",
		"",
		`{"username":"alice","keys":{}}`,
		"pätterns with ünicode 🔑",
	} {
		blob := lock(t, v, secret, "482913")
		got, err := v.Unlock(blob, "482913")
		if err != nil {
			t.Fatalf("Unlock: %v", err)
		}
		if string(got) != secret {
			t.Fatalf("round trip: got %q, want %q", got, secret)
		}
	}
}

func TestUnlock_WrongPIN(t *testing.T) {
	v := vault.New()
	blob := lock(t, v, "secret material", "482913")

	if _, err := v.Unlock(blob, "482914"); !errors.Is(err, vault.ErrUnlockFailed) {
		t.Fatalf("wrong PIN: got %v, want ErrUnlockFailed", err)
	}
	if _, err := v.Unlock(blob, ""); !errors.Is(err, vault.ErrUnlockFailed) {
		t.Fatalf("empty PIN: got %v, want ErrUnlockFailed", err)
	}
}

func TestLock_FreshSaltAndIVPerCall(t *testing.T) {
	v := vault.New()
	first := lock(t, v, "same secret", "482913")
	second := lock(t, v, "same secret", "482913")

	a, b := parsePackage(t, first), parsePackage(t, second)
	if bytes.Equal(a.Salt, b.Salt) {
		t.Fatal("salt repeated across Lock calls")
	}
	if bytes.Equal(a.IV, b.IV) {
		t.Fatal("iv repeated across Lock calls")
	}
	if bytes.Equal(a.Data, b.Data) {
		t.Fatal("ciphertext repeated across Lock calls")
	}

	for _, blob := range [][]byte{first, second} {
		got, err := v.Unlock(blob, "482913")
		if err != nil {
			t.Fatalf("Unlock: %v", err)
		}
		if string(got) != "same secret" {
			t.Fatalf("round trip: got %q", got)
		}
	}
}

func TestUnlock_TamperDetection(t *testing.T) {
	v := vault.New()
	blob := lock(t, v, "secret material", "482913")
	pkg := parsePackage(t, blob)

	for _, i := range []int{0, len(pkg.Data) / 2, len(pkg.Data) - 1} {
		tampered := pkg
		tampered.Data = bytes.Clone(pkg.Data)
		tampered.Data[i] ^= 0x01
		if _, err := v.Unlock(remarshal(t, tampered), "482913"); !errors.Is(err, vault.ErrUnlockFailed) {
			t.Fatalf("flipped data byte %d: got %v, want ErrUnlockFailed", i, err)
		}
	}

	truncated := pkg
	truncated.Data = pkg.Data[:4]
	if _, err := v.Unlock(remarshal(t, truncated), "482913"); !errors.Is(err, vault.ErrUnlockFailed) {
		t.Fatal("truncated ciphertext accepted")
	}
}

func TestUnlock_MalformedBlob(t *testing.T) {
	v := vault.New()
	for _, blob := range [][]byte{
		nil,
		[]byte("not json at all"),
		[]byte(`{"version":1`),
		[]byte(`{"unexpected":"shape"}`),
	} {
		if _, err := v.Unlock(blob, "482913"); !errors.Is(err, vault.ErrUnlockFailed) {
			t.Fatalf("blob %q: got %v, want ErrUnlockFailed", blob, err)
		}
	}
}

// A caller must not be able to tell a corrupt package from a wrong PIN.
func TestUnlock_UniformFailureSignal(t *testing.T) {
	v := vault.New()
	blob := lock(t, v, "secret material", "482913")

	_, wrongPIN := v.Unlock(blob, "000000")
	_, garbage := v.Unlock([]byte("garbage"), "482913")
	if wrongPIN == nil || garbage == nil {
		t.Fatal("expected both unlocks to fail")
	}
	if wrongPIN.Error() != garbage.Error() {
		t.Fatalf("failure modes distinguishable: %q vs %q", wrongPIN, garbage)
	}
}

func TestUnlock_RejectsUnsupportedPackage(t *testing.T) {
	v := vault.New()
	blob := lock(t, v, "secret material", "482913")

	futureVersion := parsePackage(t, blob)
	futureVersion.Version = 2
	if _, err := v.Unlock(remarshal(t, futureVersion), "482913"); !errors.Is(err, vault.ErrUnlockFailed) {
		t.Fatal("unknown version accepted")
	}

	wrongKDF := parsePackage(t, blob)
	wrongKDF.KDF = "md5"
	if _, err := v.Unlock(remarshal(t, wrongKDF), "482913"); !errors.Is(err, vault.ErrUnlockFailed) {
		t.Fatal("unknown kdf accepted")
	}

	downgraded := parsePackage(t, blob)
	downgraded.Iterations = 1_000
	if _, err := v.Unlock(remarshal(t, downgraded), "482913"); !errors.Is(err, vault.ErrUnlockFailed) {
		t.Fatal("iteration downgrade accepted")
	}
}

func TestNewWithIterations(t *testing.T) {
	if _, err := vault.NewWithIterations(vault.MinIterations - 1); !errors.Is(err, vault.ErrLowIterations) {
		t.Fatalf("below-floor iterations: got %v, want ErrLowIterations", err)
	}

	v, err := vault.NewWithIterations(vault.MinIterations)
	if err != nil {
		t.Fatalf("NewWithIterations: %v", err)
	}
	blob := lock(t, v, "secret material", "482913")
	got, err := v.Unlock(blob, "482913")
	if err != nil {
		t.Fatalf("Unlock: %v", err)
	}
	if string(got) != "secret material" {
		t.Fatalf("round trip: got %q", got)
	}
}

// Packages written under a different work factor keep unlocking: the stored
// iteration count wins over the vault's own configuration.
func TestUnlock_HonoursStoredIterations(t *testing.T) {
	writer, err := vault.NewWithIterations(150_000)
	if err != nil {
		t.Fatalf("NewWithIterations: %v", err)
	}
	blob := lock(t, writer, "secret material", "482913")

	if pkg := parsePackage(t, blob); pkg.Iterations != 150_000 {
		t.Fatalf("stored iterations = %d, want 150000", pkg.Iterations)
	}

	got, err := vault.New().Unlock(blob, "482913")
	if err != nil {
		t.Fatalf("Unlock with default vault: %v", err)
	}
	if string(got) != "secret material" {
		t.Fatalf("round trip: got %q", got)
	}
}
