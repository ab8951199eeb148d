// Package auth issues and resolves session credentials. Bearer tokens are
// HS256 JWTs embedding the public user projection; Basic credentials are
// verified directly against the primary store. Bearer resolution is backed
// by the cache gateway: decoded payloads live under "token:<raw>" and
// hydrated users under "user:<id>".
package auth

import (
	"context"
	"encoding/base64"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/accountsvc/internal/common"
	"github.com/dmitrijs2005/accountsvc/internal/logging"
	"github.com/dmitrijs2005/accountsvc/internal/server/cache"
	"github.com/dmitrijs2005/accountsvc/internal/server/rpc"
	"github.com/dmitrijs2005/accountsvc/internal/server/users"
)

// Claims embeds the public user projection alongside the registered JWT
// claims. Issue sets IssuedAt only; expiry, when present, is enforced by
// signature verification.
type Claims struct {
	jwt.RegisteredClaims
	User *rpc.User `json:"user"`
}

// UserSource is the slice of the users service the token service needs.
type UserSource interface {
	Get(ctx context.Context, id string) (*users.User, error)
	GetByUsername(ctx context.Context, username string) (*users.User, error)
	VerifyPassword(ctx context.Context, user *users.User, password string) bool
}

type Service struct {
	users  UserSource
	cache  *cache.Cache
	secret []byte
	logger logging.Logger
}

func NewService(source UserSource, c *cache.Cache, secretKey string, l logging.Logger) *Service {
	return &Service{
		users:  source,
		cache:  c,
		secret: []byte(secretKey),
		logger: l.With("module", "auth"),
	}
}

// Issue signs a bearer token carrying the user's public projection.
func (s *Service) Issue(user *users.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
		User: user.Public(),
	})

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ResolveBearer resolves a bearer token to the full user record. A cached
// payload under "token:<raw>" is trusted without re-verifying the signature;
// otherwise the signature is verified and the payload cached. The user is
// hydrated from "user:<id>" or, on a miss, from the primary store (the cache
// write is best-effort).
func (s *Service) ResolveBearer(ctx context.Context, token string) (*users.User, error) {

	claims := &Claims{}

	if !s.cache.Get(ctx, common.TokenCachePrefix+token, claims) {
		parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
			return s.secret, nil
		})
		if err != nil || !parsed.Valid {
			return nil, common.ErrInvalidToken
		}
		s.cache.Set(ctx, common.TokenCachePrefix+token, claims)
	}

	if claims.User == nil || claims.User.ID == "" {
		return nil, common.ErrInvalidToken
	}

	user := &users.User{}
	if s.cache.Get(ctx, common.UserCachePrefix+claims.User.ID, user) {
		return user, nil
	}

	user, err := s.users.Get(ctx, claims.User.ID)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, common.UserCachePrefix+user.ID, user)

	return user, nil
}

// ResolveBasic resolves base64 "username:password" credentials against the
// primary store. This path never touches the cache.
func (s *Service) ResolveBasic(ctx context.Context, credentials string) (*users.User, error) {

	raw, err := base64.StdEncoding.DecodeString(credentials)
	if err != nil {
		return nil, common.ErrAuthFailed
	}

	username, password, found := strings.Cut(string(raw), ":")
	if !found {
		return nil, common.ErrAuthFailed
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, common.ErrAuthFailed
	}

	if !s.users.VerifyPassword(ctx, user, password) {
		return nil, common.ErrAuthFailed
	}

	return user, nil
}

// Invalidate drops the user's hydration cache entry. Must be called after
// any mutation of persisted user fields; deletion failure is logged inside
// the gateway, never surfaced.
func (s *Service) Invalidate(ctx context.Context, user *users.User) {
	s.cache.Del(ctx, common.UserCachePrefix+user.ID)
}
