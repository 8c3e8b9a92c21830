package interfaces

import (
	"context"

	domaintypes "ristkey/internal/domain/types"
)

// DirectoryClient is how we talk to the key directory server, all with context.
type DirectoryClient interface {
	RegisterKey(ctx context.Context, record domaintypes.KeyRecord) (domaintypes.KeyRecord, error)
	LookupKey(ctx context.Context, username domaintypes.Username) (domaintypes.KeyRecord, error)
}
