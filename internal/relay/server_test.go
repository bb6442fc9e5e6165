package relay_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"parley/internal/crypto"
	"parley/internal/domain"
	"parley/internal/relay"
)

// newTestRelay spins up a full server and returns a client wired to it.
func newTestRelay(t *testing.T, cfg relay.Config) *relay.Client {
	t.Helper()
	srv := relay.NewServer(cfg, zerolog.Nop(), relay.NewMetrics(prometheus.NewRegistry()))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return relay.NewClient(ts.URL)
}

// roomyConfig keeps the limiter out of the way for tests not about it.
func roomyConfig() relay.Config {
	return relay.Config{QueueCap: 100, RPS: 1000, Burst: 1000}
}

func newProfile(t *testing.T, username domain.Username) domain.Profile {
	t.Helper()
	pair, err := crypto.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	return domain.Profile{Username: username, Key: pair.Public}
}

func envelope(id domain.MessageID, from, to domain.Username) domain.Envelope {
	return domain.Envelope{
		ID:         id,
		From:       from,
		To:         to,
		Ciphertext: []byte("sealed"),
		SentAt:     42,
	}
}

func TestRegisterLookup(t *testing.T) {
	client := newTestRelay(t, roomyConfig())
	ctx := context.Background()

	alice := newProfile(t, "alice")
	if err := client.RegisterKey(ctx, alice); err != nil {
		t.Fatalf("RegisterKey: %v", err)
	}

	got, err := client.LookupKey(ctx, "alice")
	if err != nil {
		t.Fatalf("LookupKey: %v", err)
	}
	if got != alice {
		t.Fatalf("LookupKey: got %+v, want %+v", got, alice)
	}

	if _, err := client.LookupKey(ctx, "nobody"); !errors.Is(err, relay.ErrUnknownUser) {
		t.Fatalf("LookupKey(nobody): got %v, want ErrUnknownUser", err)
	}
}

func TestRegister_Conflicts(t *testing.T) {
	client := newTestRelay(t, roomyConfig())
	ctx := context.Background()

	alice := newProfile(t, "alice")
	if err := client.RegisterKey(ctx, alice); err != nil {
		t.Fatalf("RegisterKey: %v", err)
	}

	// Same key again is idempotent.
	if err := client.RegisterKey(ctx, alice); err != nil {
		t.Fatalf("re-register same key: %v", err)
	}

	// A different key for a taken username is refused.
	imposter := newProfile(t, "alice")
	err := client.RegisterKey(ctx, imposter)
	if err == nil || !strings.Contains(err.Error(), "409") {
		t.Fatalf("imposter register: got %v, want 409", err)
	}

	got, err := client.LookupKey(ctx, "alice")
	if err != nil {
		t.Fatalf("LookupKey: %v", err)
	}
	if got.Key != alice.Key {
		t.Fatal("directory entry replaced by refused registration")
	}
}

func TestPushFetchAck(t *testing.T) {
	client := newTestRelay(t, roomyConfig())
	ctx := context.Background()

	for _, env := range []domain.Envelope{
		envelope("e1", "alice", "bob"),
		envelope("e2", "alice", "bob"),
		envelope("e3", "carol", "bob"),
	} {
		if err := client.PushEnvelope(ctx, env); err != nil {
			t.Fatalf("PushEnvelope(%s): %v", env.ID, err)
		}
	}

	// max limits the batch; fetching does not consume.
	two, err := client.FetchEnvelopes(ctx, "bob", 2)
	if err != nil {
		t.Fatalf("FetchEnvelopes: %v", err)
	}
	if len(two) != 2 || two[0].ID != "e1" || two[1].ID != "e2" {
		t.Fatalf("fetch max=2: %+v", two)
	}

	all, err := client.FetchEnvelopes(ctx, "bob", 0)
	if err != nil {
		t.Fatalf("FetchEnvelopes: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("fetch all: got %d envelopes, want 3", len(all))
	}

	// Ack removes exactly the named envelopes; unknown ids are ignored.
	if err := client.AckEnvelopes(ctx, "bob", []domain.MessageID{"e1", "e3", "never-seen"}); err != nil {
		t.Fatalf("AckEnvelopes: %v", err)
	}
	left, err := client.FetchEnvelopes(ctx, "bob", 0)
	if err != nil {
		t.Fatalf("FetchEnvelopes: %v", err)
	}
	if len(left) != 1 || left[0].ID != "e2" {
		t.Fatalf("after ack: %+v", left)
	}
}

func TestPush_RejectsIncompleteEnvelope(t *testing.T) {
	client := newTestRelay(t, roomyConfig())
	ctx := context.Background()

	missingSender := envelope("e1", "", "bob")
	if err := client.PushEnvelope(ctx, missingSender); err == nil {
		t.Fatal("envelope without sender accepted")
	}

	empty := envelope("e2", "alice", "bob")
	empty.Ciphertext = nil
	if err := client.PushEnvelope(ctx, empty); err == nil {
		t.Fatal("envelope without ciphertext accepted")
	}
}

func TestPush_MailboxFull(t *testing.T) {
	cfg := roomyConfig()
	cfg.QueueCap = 2
	client := newTestRelay(t, cfg)
	ctx := context.Background()

	for i, id := range []domain.MessageID{"e1", "e2"} {
		if err := client.PushEnvelope(ctx, envelope(id, "alice", "bob")); err != nil {
			t.Fatalf("push %d: %v", i, err)
		}
	}
	err := client.PushEnvelope(ctx, envelope("e3", "alice", "bob"))
	if err == nil || !strings.Contains(err.Error(), "503") {
		t.Fatalf("push over cap: got %v, want 503", err)
	}

	// Other mailboxes are unaffected.
	if err := client.PushEnvelope(ctx, envelope("e4", "alice", "carol")); err != nil {
		t.Fatalf("push to other mailbox: %v", err)
	}
}

func TestRateLimit(t *testing.T) {
	client := newTestRelay(t, relay.Config{QueueCap: 100, RPS: 1, Burst: 2})
	ctx := context.Background()

	// The first burst passes (as 404s); the next request is refused.
	for i := 0; i < 2; i++ {
		if _, err := client.LookupKey(ctx, "nobody"); !errors.Is(err, relay.ErrUnknownUser) {
			t.Fatalf("lookup %d: got %v, want ErrUnknownUser", i, err)
		}
	}
	_, err := client.LookupKey(ctx, "nobody")
	if err == nil || !strings.Contains(err.Error(), "429") {
		t.Fatalf("over-budget lookup: got %v, want 429", err)
	}
}
