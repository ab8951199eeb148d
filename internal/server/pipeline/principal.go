package pipeline

import (
	"context"

	"github.com/dmitrijs2005/accountsvc/internal/server/users"
)

type ctxKey string

const (
	principalKey        ctxKey = "principal"
	impersonatedFromKey ctxKey = "impersonatedFrom"
)

// Principal is the authenticated identity of a request. The zero value is
// the anonymous principal; authentication is derived from whether a user is
// attached, not from a subtype.
type Principal struct {
	User *users.User
}

// Anonymous is the no-identity principal every request starts with.
var Anonymous = Principal{}

func (p Principal) IsAuthenticated() bool {
	return p.User != nil
}

// WithPrincipal attaches the principal to the request context.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext returns the request principal, anonymous when none
// was attached.
func PrincipalFromContext(ctx context.Context) Principal {
	if p, ok := ctx.Value(principalKey).(Principal); ok {
		return p
	}
	return Anonymous
}

// WithImpersonatedFrom records the original principal across an
// impersonation swap.
func WithImpersonatedFrom(ctx context.Context, user *users.User) context.Context {
	return context.WithValue(ctx, impersonatedFromKey, user)
}

// ImpersonatedFromContext returns the original principal of an impersonated
// request, nil when no swap occurred.
func ImpersonatedFromContext(ctx context.Context) *users.User {
	if u, ok := ctx.Value(impersonatedFromKey).(*users.User); ok {
		return u
	}
	return nil
}
