package user

import (
	"context"
	"errors"
)

type ctxKey struct{}

var ErrNoUser = errors.New("no user in context")

// WithUser attaches the user resolved from the X-User-Id header to ctx.
func WithUser(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// CurrentId returns the id of the user attached by WithUser, or ErrNoUser for anonymous requests.
func CurrentId(ctx context.Context) (int, error) {
	u, ok := ctx.Value(ctxKey{}).(User)
	if !ok {
		return 0, ErrNoUser
	}
	return u.Id, nil
}
