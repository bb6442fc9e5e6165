// Package message sends and receives sealed messages.
//
// It resolves peer keys through the pinned contact cache, seals and opens
// payloads with the crypto package, exchanges envelopes via the
// RelayClient, and archives sent plaintext in the outbox.
package message
