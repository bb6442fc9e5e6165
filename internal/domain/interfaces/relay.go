package interfaces

import (
	"context"

	domaintypes "parley/internal/domain/types"
)

// RelayClient is how we talk to the directory and relay server, all with
// context.
type RelayClient interface {
	RegisterKey(ctx context.Context, profile domaintypes.Profile) error
	LookupKey(
		ctx context.Context,
		username domaintypes.Username,
	) (domaintypes.Profile, error)

	PushEnvelope(ctx context.Context, envelope domaintypes.Envelope) error
	FetchEnvelopes(
		ctx context.Context,
		username domaintypes.Username,
		max int,
	) ([]domaintypes.Envelope, error)
	AckEnvelopes(
		ctx context.Context,
		username domaintypes.Username,
		ids []domaintypes.MessageID,
	) error
}
