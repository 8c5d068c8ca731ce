// Package testutil provides testing utilities for the gallery service.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"

	"github.com/apeissigma/artic-gallery/pkg/gallery"
)

// MockResponse defines the behavior for a mock API endpoint response.
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
	Delay      time.Duration
}

// MockArtic is a configurable mock museum API server for testing.
type MockArtic struct {
	server        *httptest.Server
	mu            sync.RWMutex
	handlers      map[string]func(w http.ResponseWriter, r *http.Request)
	pageResponses map[int]MockResponse

	// Tracking
	RequestCount      int
	ConditionalCount  int
	PageRequests      map[int]int
	LastRequestHeader http.Header
}

// NewMockArtic creates a new mock museum API server.
func NewMockArtic() *MockArtic {
	mock := &MockArtic{
		handlers:      make(map[string]func(w http.ResponseWriter, r *http.Request)),
		pageResponses: make(map[int]MockResponse),
		PageRequests:  make(map[int]int),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.RequestCount++
		mock.LastRequestHeader = r.Header.Clone()

		// Track conditional requests
		if r.Header.Get("If-None-Match") != "" || r.Header.Get("If-Modified-Since") != "" {
			mock.ConditionalCount++
		}
		mock.mu.Unlock()

		// Check for custom handler
		mock.mu.RLock()
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.RUnlock()

		if exists {
			handler(w, r)
			return
		}

		if r.URL.Path == "/artworks" {
			mock.artworksHandler(w, r)
			return
		}

		mock.defaultHandler(w, r)
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockArtic) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockArtic) Close() {
	m.server.Close()
}

// Reset clears all tracking counters.
func (m *MockArtic) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCount = 0
	m.ConditionalCount = 0
	m.PageRequests = make(map[int]int)
	m.LastRequestHeader = nil
}

// SetHandler sets a custom handler for a specific path.
func (m *MockArtic) SetHandler(path string, handler func(w http.ResponseWriter, r *http.Request)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetResponse configures a simple response for a path.
func (m *MockArtic) SetResponse(path string, resp MockResponse) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		writeResponse(w, resp)
	})
}

// SetArtworksPage configures the response served for one page of the
// artworks listing.
func (m *MockArtic) SetArtworksPage(page int, resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pageResponses[page] = resp
}

// GetRequestCount returns the number of requests made to the server.
func (m *MockArtic) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

// GetConditionalCount returns the number of conditional requests.
func (m *MockArtic) GetConditionalCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ConditionalCount
}

// GetPageRequests returns how often the given listing page was requested.
func (m *MockArtic) GetPageRequests(page int) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.PageRequests[page]
}

// artworksHandler serves the /artworks listing, dispatching on the page
// query parameter.
func (m *MockArtic) artworksHandler(w http.ResponseWriter, r *http.Request) {
	page := 1
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if parsed, err := strconv.Atoi(pageStr); err == nil {
			page = parsed
		}
	}

	m.mu.Lock()
	m.PageRequests[page]++
	resp, exists := m.pageResponses[page]
	m.mu.Unlock()

	if !exists {
		m.defaultHandler(w, r)
		return
	}

	writeResponse(w, resp)
}

// defaultHandler provides default API-like responses.
func (m *MockArtic) defaultHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	// Handle conditional requests
	if r.Header.Get("If-None-Match") != "" {
		w.Header().Set("Expires", time.Now().Add(5*time.Minute).Format(http.TimeFormat))
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", `"default-etag"`)
	w.Header().Set("Expires", time.Now().Add(5*time.Minute).Format(http.TimeFormat))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(ArtworksPageBody(nil, 1)))
}

func writeResponse(w http.ResponseWriter, resp MockResponse) {
	if resp.Delay > 0 {
		time.Sleep(resp.Delay)
	}

	for key, value := range resp.Headers {
		w.Header().Set(key, value)
	}

	w.WriteHeader(resp.StatusCode)
	if resp.Body != "" {
		w.Write([]byte(resp.Body))
	}
}

// ArtworksPageBody builds a listing page body in the API's wire format.
func ArtworksPageBody(artworks []gallery.Artwork, totalPages int) string {
	body := struct {
		Data       []gallery.Artwork `json:"data"`
		Pagination struct {
			TotalPages  int `json:"total_pages"`
			CurrentPage int `json:"current_page"`
		} `json:"pagination"`
	}{}
	if artworks == nil {
		artworks = []gallery.Artwork{}
	}
	body.Data = artworks
	body.Pagination.TotalPages = totalPages
	body.Pagination.CurrentPage = 1

	encoded, err := json.Marshal(body)
	if err != nil {
		panic(err)
	}
	return string(encoded)
}

// NewArtwork builds an artwork record for tests.
func NewArtwork(id int, title string, dateStart int) gallery.Artwork {
	year := dateStart
	return gallery.Artwork{
		ID:        id,
		Title:     title,
		DateStart: &year,
	}
}

// NewHealthyResponse creates a standard 200 OK response with cache headers.
func NewHealthyResponse(data string) MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       data,
		Headers: map[string]string{
			"ETag":         `"test-etag-123"`,
			"Expires":      time.Now().Add(5 * time.Minute).Format(http.TimeFormat),
			"Content-Type": "application/json; charset=utf-8",
		},
	}
}

// NewNotModifiedResponse creates a 304 Not Modified response.
func NewNotModifiedResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusNotModified,
		Headers: map[string]string{
			"Expires": time.Now().Add(5 * time.Minute).Format(http.TimeFormat),
		},
	}
}

// NewServerErrorResponse creates a 500 Internal Server Error response.
func NewServerErrorResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       `{"error": "Internal server error"}`,
		Headers: map[string]string{
			"Content-Type": "application/json; charset=utf-8",
		},
	}
}

// NewNotFoundResponse creates a 404 Not Found response.
func NewNotFoundResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusNotFound,
		Body:       `{"error": "Not found"}`,
		Headers: map[string]string{
			"Content-Type": "application/json; charset=utf-8",
		},
	}
}

// NewConditionalHandler creates a handler that responds with 304 for
// conditional requests matching the etag.
func NewConditionalHandler(etag string, data string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")

		if r.Header.Get("If-None-Match") == etag {
			w.Header().Set("Expires", time.Now().Add(5*time.Minute).Format(http.TimeFormat))
			w.WriteHeader(http.StatusNotModified)
			return
		}

		w.Header().Set("ETag", etag)
		w.Header().Set("Expires", time.Now().Add(5*time.Minute).Format(http.TimeFormat))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(data))
	}
}
