package context

import (
	"context"

	"github.com/tasknest/tasknest/internal/store"
)

const keyUser = "user"

// User returns the authenticated user attached to the request context,
// or nil for anonymous requests.
func User(ctx context.Context) *store.User {
	user, ok := ctx.Value(keyUser).(*store.User)
	if !ok {
		return nil
	}

	return user
}

func SetUser(ctx context.Context, user *store.User) context.Context {
	return context.WithValue(ctx, keyUser, user)
}
