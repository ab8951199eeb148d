package pipeline

import (
	"context"
	"errors"
	"reflect"
	"strings"

	"google.golang.org/grpc/metadata"

	"github.com/dmitrijs2005/accountsvc/internal/common"
	"github.com/dmitrijs2005/accountsvc/internal/logging"
	"github.com/dmitrijs2005/accountsvc/internal/server/users"
)

// CredentialResolver turns transport credentials into users.
type CredentialResolver interface {
	ResolveBearer(ctx context.Context, token string) (*users.User, error)
	ResolveBasic(ctx context.Context, credentials string) (*users.User, error)
}

// UserLoader fetches a user by primary key for the impersonation swap.
type UserLoader interface {
	FindByID(ctx context.Context, id string) (*users.User, error)
}

// Projector is implemented by domain objects that expose a trimmed public
// representation for responses.
type Projector interface {
	PublicMessage() any
}

// AuthenticationHook resolves the authorization metadata into a principal.
// Every request leaves the hook with a principal attached; missing, malformed
// or unverifiable credentials leave it anonymous and never abort the request.
func AuthenticationHook(resolver CredentialResolver, logger logging.Logger) PreHook {
	return func(ctx context.Context, md metadata.MD) (context.Context, error) {
		ctx = WithPrincipal(ctx, Anonymous)

		value := firstValue(md, common.AuthorizationHeaderName)
		if value == "" {
			return ctx, nil
		}
		parts := strings.Fields(value)
		if len(parts) != 2 {
			logger.Info(ctx, "malformed authorization header")
			return ctx, nil
		}

		var (
			user *users.User
			err  error
		)
		switch parts[0] {
		case "Basic":
			user, err = resolver.ResolveBasic(ctx, parts[1])
		case "Bearer":
			user, err = resolver.ResolveBearer(ctx, parts[1])
		default:
			logger.Info(ctx, "unsupported authorization scheme", "scheme", parts[0])
			return ctx, nil
		}
		if err != nil {
			logger.Info(ctx, "credential resolution failed", "scheme", parts[0], "error", err)
			return ctx, nil
		}
		return WithPrincipal(ctx, Principal{User: user}), nil
	}
}

// ImpersonationHook lets a superuser act as another user by supplying the
// target id in request metadata. Naming a nonexistent user is a validation
// failure that aborts the request; transient lookup errors only log and the
// original principal stands.
func ImpersonationHook(loader UserLoader, logger logging.Logger) PreHook {
	return func(ctx context.Context, md metadata.MD) (context.Context, error) {
		p := PrincipalFromContext(ctx)
		if !p.IsAuthenticated() || !p.User.IsSuperuser {
			return ctx, nil
		}
		userID := firstValue(md, common.ImpersonateHeaderName)
		if userID == "" || userID == p.User.ID {
			return ctx, nil
		}

		target, err := loader.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return ctx, common.ErrValidationFailed
			}
			logger.Info(ctx, "impersonation lookup failed", "user_id", userID, "error", err)
			return ctx, nil
		}

		logger.Info(ctx, "impersonating user", "user_id", target.ID, "by", p.User.ID)
		ctx = WithImpersonatedFrom(ctx, p.User)
		return WithPrincipal(ctx, Principal{User: target}), nil
	}
}

// ShapingHook replaces domain objects in responses with their public
// projection, descending one level into slices.
func ShapingHook() PostHook {
	return func(_ context.Context, resp any) (any, error) {
		return shape(resp), nil
	}
}

func shape(v any) any {
	if v == nil {
		return v
	}
	if p, ok := v.(Projector); ok {
		return p.PublicMessage()
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice {
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = shape(rv.Index(i).Interface())
		}
		return out
	}
	return v
}

func firstValue(md metadata.MD, key string) string {
	values := md.Get(key)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
