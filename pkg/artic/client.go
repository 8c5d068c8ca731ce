// Package artic provides the HTTP client for the Art Institute of Chicago
// public API, with response caching and error handling.
package artic

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/apeissigma/artic-gallery/pkg/cache"
	"github.com/apeissigma/artic-gallery/pkg/gallery"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Prometheus metrics for API client operations.
var (
	articRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "artic_requests_total",
		Help: "Total artwork API requests by endpoint and status",
	}, []string{"endpoint", "status"})

	articRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "artic_request_duration_seconds",
		Help:    "Artwork API request duration in seconds by endpoint",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})

	articErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "artic_errors_total",
		Help: "Total artwork API errors by class",
	}, []string{"class"})
)

// ErrorClass represents a classification of HTTP errors.
type ErrorClass string

const (
	// ErrorClassClient represents 4xx client errors.
	ErrorClassClient ErrorClass = "client"

	// ErrorClassServer represents 5xx server errors.
	ErrorClassServer ErrorClass = "server"

	// ErrorClassNetwork represents network/timeout errors.
	ErrorClassNetwork ErrorClass = "network"
)

const (
	// DefaultBaseURL is the public API base URL.
	DefaultBaseURL = "https://api.artic.edu/api/v1"

	// DefaultPageLimit is the page size requested from the artworks listing.
	DefaultPageLimit = 100
)

// DefaultFields is the record projection requested from the artworks
// endpoint. Limiting the fields keeps the payload small.
var DefaultFields = []string{"id", "title", "artist_display", "date_display", "date_start", "image_id"}

// Client is the artwork API client.
type Client struct {
	httpClient *http.Client
	cache      *cache.Manager
	config     Config
	logger     zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// BaseURL of the API (default: DefaultBaseURL)
	BaseURL string

	// Redis client for the response cache (nil disables caching)
	Redis *redis.Client

	// User-Agent header, identifying the application to the museum API
	UserAgent string

	// Fields is the record projection (default: DefaultFields)
	Fields []string

	// PageLimit is the page size (default: DefaultPageLimit)
	PageLimit int

	// Timeout per HTTP request
	Timeout time.Duration

	// Retry policy; the default performs no retries because a failed
	// gallery load is terminal
	Retry RetryConfig
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig(userAgent string) Config {
	return Config{
		BaseURL:   DefaultBaseURL,
		UserAgent: userAgent,
		Fields:    DefaultFields,
		PageLimit: DefaultPageLimit,
		Timeout:   30 * time.Second,
		Retry:     DefaultRetryConfig(),
	}
}

// New creates a new artwork API client.
func New(cfg Config) (*Client, error) {
	if cfg.UserAgent == "" {
		return nil, fmt.Errorf("user-agent is required")
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if len(cfg.Fields) == 0 {
		cfg.Fields = DefaultFields
	}
	if cfg.PageLimit <= 0 {
		cfg.PageLimit = DefaultPageLimit
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Retry.MaxAttempts < 1 {
		cfg.Retry = DefaultRetryConfig()
	}

	logger := log.With().Str("component", "artic-client").Logger()

	var cacheManager *cache.Manager
	if cfg.Redis != nil {
		cacheManager = cache.NewManager(cfg.Redis)
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		cache:  cacheManager,
		config: cfg,
		logger: logger,
	}, nil
}

// Do performs an HTTP request with caching and error handling.
// This is the core request method.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	endpoint := req.URL.Path

	startTime := time.Now()
	defer func() {
		articRequestDuration.WithLabelValues(endpoint).Observe(time.Since(startTime).Seconds())
	}()

	// Step 1: Check cache
	cacheKey := cache.CacheKey{
		Endpoint:    endpoint,
		QueryParams: req.URL.Query(),
	}

	var cachedEntry *cache.CacheEntry
	if c.cache != nil {
		var err error
		cachedEntry, err = c.cache.Get(ctx, cacheKey)
		if err != nil && err != cache.ErrCacheMiss {
			c.logger.Warn().Err(err).Str("endpoint", endpoint).Msg("Cache get error")
		}
	}

	// Step 2: Make conditional request if cache hit
	if cachedEntry != nil && cache.ShouldMakeConditionalRequest(cachedEntry) {
		cache.AddConditionalHeaders(req, cachedEntry)
		cache.ConditionalRequestsSent.Inc()
		c.logger.Debug().
			Str("endpoint", endpoint).
			Str("etag", cachedEntry.ETag).
			Msg("Making conditional request")
	}

	// Step 3: Set headers
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")

	// Step 4: Execute with retry policy (default: single attempt)
	c.logger.Debug().
		Str("endpoint", endpoint).
		Str("method", req.Method).
		Msg("Executing API request")

	var resp *http.Response

	retryErr := retryWithBackoff(ctx, c.config.Retry, classifyRetryError, func() error {
		var reqErr error
		resp, reqErr = c.httpClient.Do(req)

		if reqErr != nil {
			c.logger.Error().Err(reqErr).Str("endpoint", endpoint).Msg("HTTP request failed")
			articErrorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
			articRequestsTotal.WithLabelValues(endpoint, "network_error").Inc()
			return reqErr
		}

		// 304 Not Modified is a success, the cached body is still valid
		if resp.StatusCode == http.StatusNotModified {
			return nil
		}

		if resp.StatusCode >= 400 {
			errClass := c.classifyError(resp, nil)
			articErrorsTotal.WithLabelValues(string(errClass)).Inc()
			articRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

			c.logger.Warn().
				Str("endpoint", endpoint).
				Int("status", resp.StatusCode).
				Str("error_class", string(errClass)).
				Msg("API request error")

			if shouldRetry(errClass) {
				lastErr := &APIError{
					StatusCode: resp.StatusCode,
					ErrorClass: errClass,
					Message:    resp.Status,
				}
				resp.Body.Close() // close before retrying
				return lastErr
			}

			// Client errors are returned as responses, the caller
			// inspects the status
			return nil
		}

		articRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()
		return nil
	})

	if retryErr != nil {
		return nil, retryErr
	}

	// Step 5: Serve from cache on 304
	if resp.StatusCode == http.StatusNotModified {
		c.logger.Debug().Str("endpoint", endpoint).Msg("304 Not Modified - using cache")
		articRequestsTotal.WithLabelValues(endpoint, "304").Inc()
		cache.NotModifiedResponses.Inc()

		if expiresStr := resp.Header.Get("Expires"); expiresStr != "" && c.cache != nil {
			if newExpires, err := http.ParseTime(expiresStr); err == nil {
				if err := c.cache.UpdateTTL(ctx, cacheKey, newExpires); err != nil {
					c.logger.Warn().Err(err).Msg("Failed to update cache TTL")
				}
			}
		}

		resp.Body.Close()
		return cache.EntryToResponse(cachedEntry), nil
	}

	// Step 6: Update cache on success
	if resp.StatusCode == http.StatusOK && c.cache != nil {
		entry, err := cache.ResponseToEntry(resp)
		if err != nil {
			c.logger.Warn().Err(err).Msg("Failed to create cache entry")
		} else if entry.TTL() > 0 {
			if err := c.cache.Set(ctx, cacheKey, entry); err != nil {
				c.logger.Warn().Err(err).Msg("Failed to cache response")
			} else {
				c.logger.Debug().
					Str("endpoint", endpoint).
					Dur("ttl", entry.TTL()).
					Msg("Cached response")
			}
		}
	}

	return resp, nil
}

// classifyError categorizes an error for observability and handling.
func (c *Client) classifyError(resp *http.Response, err error) ErrorClass {
	if err != nil {
		return ErrorClassNetwork
	}

	switch {
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return ErrorClassClient
	case resp.StatusCode >= 500:
		return ErrorClassServer
	default:
		return ""
	}
}

// classifyRetryError maps a request failure to an error class for the
// retry policy. Typed API errors carry their class, anything else is a
// transport failure.
func classifyRetryError(err error) ErrorClass {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr.ErrorClass
	}
	return ErrorClassNetwork
}

// Get performs a GET request against an API endpoint with query parameters.
func (c *Client) Get(ctx context.Context, endpoint string, query url.Values) (*http.Response, error) {
	rawURL := c.config.BaseURL + endpoint
	if len(query) > 0 {
		rawURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	return c.Do(req)
}

// FetchPage fetches one page of the artworks listing with the configured
// field projection and page size. It returns the page's records and the
// total page count reported by the API. A non-200 status fails the page
// with an *APIError carrying the status code; there is no retry beyond
// the configured policy and no partial result.
func (c *Client) FetchPage(ctx context.Context, page int) ([]gallery.Artwork, int, error) {
	query := url.Values{}
	query.Set("fields", strings.Join(c.config.Fields, ","))
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(c.config.PageLimit))

	resp, err := c.Get(ctx, "/artworks", query)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch artworks page %d: %w", page, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, 0, &APIError{
			StatusCode: resp.StatusCode,
			ErrorClass: c.classifyError(resp, nil),
			Message:    resp.Status,
		}
	}

	var body ArtworksPage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, 0, fmt.Errorf("decode artworks page %d: %w", page, err)
	}

	return body.Data, body.Pagination.TotalPages, nil
}

// Close closes the client and releases resources.
func (c *Client) Close() error {
	return nil
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

// GetCache returns the cache manager (for testing). Nil when caching is
// disabled.
func (c *Client) GetCache() *cache.Manager {
	return c.cache
}
