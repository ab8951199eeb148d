package common

// AuthorizationHeaderName is the gRPC/HTTP metadata key carrying the
// "<scheme> <credentials>" authorization value.
const AuthorizationHeaderName = "authorization"

// ImpersonateHeaderName is the metadata key naming the user a superuser
// wants to act as.
const ImpersonateHeaderName = "user-id"

// Cache key prefixes. Decoded token payloads live under TokenCachePrefix,
// hydrated user snapshots under UserCachePrefix.
const (
	TokenCachePrefix = "token:"
	UserCachePrefix  = "user:"
)
