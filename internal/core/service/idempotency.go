package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/weekly-exercises/catalog-api/internal/core/ports"
)

// replayID returns the id previously stored for key, or "" when there is none.
// Store failures are logged and treated as a miss.
func replayID(ctx context.Context, store ports.IdempotencyStore, scope, key string, log zerolog.Logger) string {
	if store == nil || key == "" {
		return ""
	}
	id, found, err := store.Lookup(ctx, scope, key)
	if err != nil {
		log.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency lookup failed, creating anyway")
		return ""
	}
	if !found {
		return ""
	}
	return id
}

func remember(ctx context.Context, store ports.IdempotencyStore, scope, key, id string, log zerolog.Logger) {
	if store == nil || key == "" {
		return
	}
	if err := store.Remember(ctx, scope, key, id); err != nil {
		log.Warn().Err(err).Str("idempotency_key", key).Msg("failed to store idempotency key")
	}
}
