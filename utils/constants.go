package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
const AuthCacheTTL = time.Hour

// TokenTTL is how long an issued access token stays valid.
const TokenTTL = 7 * 24 * time.Hour

// SearchCachePrefix namespaces cached search results.
const SearchCachePrefix = "search:"

// SearchCacheTTL bounds how stale a cached search page may be.
const SearchCacheTTL = 60 * time.Second
