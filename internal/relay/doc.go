// Package relay implements the store-and-forward relay: the HTTP server
// and the matching domain.RelayClient.
//
// The relay is an untrusted middleman. It keeps a username-to-key
// directory and queues sealed envelopes until recipients fetch and
// acknowledge them; it never sees plaintext or secret keys.
//
// HTTP API
//
//	POST /v1/register
//	    Publish a profile (username + public key). Re-registering the same
//	    key is idempotent; a different key for a taken username is a 409.
//
//	GET /v1/keys/{username}
//	    Return the directory entry for {username}, or 404.
//
//	POST /v1/messages/{username}
//	    Queue an envelope in {username}'s mailbox. A full mailbox is a 503.
//
//	GET /v1/messages/{username}?max=N
//	    Return up to N queued envelopes without removing them. If max is
//	    absent or larger than the queue, all queued envelopes are returned.
//
//	POST /v1/messages/{username}/ack { "ids": [...] }
//	    Drop the listed envelopes from the mailbox. Unknown ids are ignored,
//	    so acks are safe to retry.
//
//	GET /healthz
//	    Liveness probe.
//
// Every route except /healthz sits behind a per-client token bucket; over
// budget requests get a 429. Requests are logged structurally and counted
// in Prometheus collectors (see Metrics).
package relay
