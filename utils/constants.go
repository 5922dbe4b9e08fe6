package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
const AuthCacheTTL = 10 * time.Minute

// ProviderListCacheKey caches the public provider discovery payload.
const ProviderListCacheKey = "providers:public"

// ProviderListCacheTTL keeps the discovery payload briefly; provider
// profile writes invalidate it early.
const ProviderListCacheTTL = 5 * time.Minute

// TokenTTL is the lifetime of issued auth tokens.
const TokenTTL = 72 * time.Hour
