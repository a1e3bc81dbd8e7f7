package ports

import "context"

// IdempotencyStore remembers which resource a client-supplied key created.
type IdempotencyStore interface {
	// Lookup returns the resource id stored for (scope, key).
	Lookup(ctx context.Context, scope, key string) (id string, found bool, err error)
	Remember(ctx context.Context, scope, key, id string) error
}
