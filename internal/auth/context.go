package auth

import (
	"context"

	"github.com/gofrs/uuid/v5"
)

// Identity is the acting user derived from a verified token.
type Identity struct {
	UserID uuid.UUID
	Email  string
}

type identityKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// OwnerFromContext returns the acting user id, or uuid.Nil when the request
// carries no identity.
func OwnerFromContext(ctx context.Context) uuid.UUID {
	id, ok := IdentityFromContext(ctx)
	if !ok {
		return uuid.Nil
	}
	return id.UserID
}
