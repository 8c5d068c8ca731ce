// Package cache provides Redis-backed caching for artwork API responses.
//
// The museum API is public, static between data releases, and polite
// clients avoid re-fetching identical listings. The cache manager
// implements:
//
// - TTL management from the Expires header (default 5 minutes without one)
// - ETag support for conditional requests (If-None-Match)
// - Last-Modified support (If-Modified-Since)
// - Prometheus metrics for observability
// - Deterministic cache key generation
//
// Only transport responses are cached. The in-memory record set built
// from them lives for the view session and is never persisted.
//
// # Basic Usage
//
//	redisClient := redis.NewClient(&redis.Options{
//		Addr: "localhost:6379",
//	})
//
//	manager := cache.NewManager(redisClient)
//
//	key := cache.CacheKey{
//		Endpoint:    "/artworks",
//		QueryParams: url.Values{"page": []string{"1"}},
//	}
//
//	entry, err := manager.Get(ctx, key)
//	if err == cache.ErrCacheMiss {
//		// fetch from the API
//	}
//
// # HTTP Response Caching
//
//	entry, err := cache.ResponseToEntry(resp)
//	if err != nil {
//		return err
//	}
//	if err := manager.Set(ctx, key, entry); err != nil {
//		return err
//	}
//
// # Conditional Requests
//
//	if cache.ShouldMakeConditionalRequest(entry) {
//		cache.AddConditionalHeaders(req, entry)
//		// the API returns 304 if the listing is unchanged
//	}
package cache
