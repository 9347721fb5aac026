package common

// AuthHeaderName is the HTTP header used to carry the access token on
// outbound requests to the remote row store.
const AuthHeaderName = "Authorization"

// CacheKeyPrefix is prepended to a table name to form its cache storage key.
const CacheKeyPrefix = "cache_"

// CacheVersion is the envelope version tag written with every cache entry.
// Bump it when the cached record shape changes; entries carrying an older
// tag are treated as corrupt and rebuilt from the remote source.
const CacheVersion = "v2"
