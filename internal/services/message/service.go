package message

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"parley/internal/crypto"
	"parley/internal/domain"
)

// Service sends and receives sealed messages over the relay.
//
// High-level flow:
//   - Send: resolve the peer's key (pinned contact cache first, directory on
//     a miss), seal the plaintext with a fresh nonce, post the envelope, then
//     archive the plaintext locally. The archive is the only readable record
//     the sender keeps; the wire payload cannot be reopened by its author.
//   - Receive: fetch envelopes, open each against the claimed sender's key,
//     then ack exactly the envelopes that were handled.
type Service struct {
	relay    domain.RelayClient
	contacts domain.ContactStore
	outbox   domain.OutboxStore
}

// New constructs a message service with the given relay client and stores.
func New(
	relay domain.RelayClient,
	contacts domain.ContactStore,
	outbox domain.OutboxStore,
) *Service {
	return &Service{relay: relay, contacts: contacts, outbox: outbox}
}

// SendMessage seals text for peer to and posts it via the relay. The sent
// plaintext is archived only after the relay accepts the envelope, so the
// archive never claims a message the relay did not take.
func (s *Service) SendMessage(
	ctx context.Context,
	active *domain.ActiveIdentity,
	to domain.Username,
	text string,
) (domain.SentRecord, error) {
	peerKey, err := s.resolveKey(ctx, to)
	if err != nil {
		return domain.SentRecord{}, err
	}

	sealed, err := crypto.Seal(text, active.Keys.Secret, peerKey)
	if err != nil {
		return domain.SentRecord{}, err
	}

	env := domain.Envelope{
		ID:         domain.MessageID(uuid.NewString()),
		From:       active.Username,
		To:         to,
		Nonce:      sealed.Nonce,
		Ciphertext: sealed.Ciphertext,
		SentAt:     time.Now().Unix(),
	}
	if err := s.relay.PushEnvelope(ctx, env); err != nil {
		return domain.SentRecord{}, fmt.Errorf("push to relay: %w", err)
	}

	rec := domain.SentRecord{ID: env.ID, To: to, Text: text, SentAt: env.SentAt}
	if err := s.outbox.AppendSent(rec); err != nil {
		return domain.SentRecord{}, fmt.Errorf("archive sent message: %w", err)
	}
	return rec, nil
}

// ReceiveMessages fetches up to max queued envelopes and opens them.
//
// Each envelope is opened against the claimed sender's directory key. An
// envelope that fails authentication is returned with Failed set and is
// still acked; it can never become readable by retrying. A key resolution
// error stops processing instead, leaving that envelope and the rest
// queued, and only the envelopes already handled are acked.
func (s *Service) ReceiveMessages(
	ctx context.Context,
	active *domain.ActiveIdentity,
	max int,
) ([]domain.Message, error) {
	envs, err := s.relay.FetchEnvelopes(ctx, active.Username, max)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Message, 0, len(envs))
	acked := make([]domain.MessageID, 0, len(envs))

	var stopErr error
	for _, env := range envs {
		senderKey, err := s.resolveKey(ctx, env.From)
		if err != nil {
			stopErr = err
			break // leave this envelope and the rest queued
		}

		msg := domain.Message{ID: env.ID, From: env.From, SentAt: env.SentAt}
		sealed := domain.Sealed{
			Nonce:      env.Nonce,
			Ciphertext: env.Ciphertext,
			SenderKey:  senderKey,
		}
		text, err := crypto.Open(sealed, active.Keys.Secret, senderKey)
		if err != nil {
			msg.Failed = true
		} else {
			msg.Text = text
		}

		out = append(out, msg)
		acked = append(acked, env.ID)
	}

	if len(acked) > 0 {
		if err := s.relay.AckEnvelopes(ctx, active.Username, acked); err != nil {
			return out, fmt.Errorf("ack %d envelopes: %w", len(acked), err)
		}
	}
	return out, stopErr
}

// SentHistory returns the local plaintext archive for peer, oldest first.
// An empty peer returns everything.
func (s *Service) SentHistory(peer domain.Username) ([]domain.SentRecord, error) {
	return s.outbox.ListSent(peer)
}

// resolveKey returns the pinned key for username, consulting the directory
// only on a cache miss. The first key seen wins; a later directory answer
// never silently replaces a pinned key.
func (s *Service) resolveKey(
	ctx context.Context,
	username domain.Username,
) (domain.PublicKey, error) {
	if c, ok, err := s.contacts.LoadContact(username); err != nil {
		return domain.PublicKey{}, err
	} else if ok {
		return c.Key, nil
	}

	profile, err := s.relay.LookupKey(ctx, username)
	if err != nil {
		return domain.PublicKey{}, fmt.Errorf("lookup %q: %w", username, err)
	}
	contact := domain.Contact{
		Username:  username,
		Key:       profile.Key,
		FirstSeen: time.Now().Unix(),
	}
	if err := s.contacts.SaveContact(contact); err != nil {
		return domain.PublicKey{}, err
	}
	return profile.Key, nil
}

// Compile-time assertion that Service implements domain.MessageService.
var _ domain.MessageService = (*Service)(nil)
