package cache

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestResponse(body string, headers map[string]string) *http.Response {
	rec := httptest.NewRecorder()
	for key, value := range headers {
		rec.Header().Set(key, value)
	}
	rec.WriteHeader(http.StatusOK)
	rec.Body.WriteString(body)
	return rec.Result()
}

func TestResponseToEntry(t *testing.T) {
	expires := time.Now().Add(10 * time.Minute).UTC().Truncate(time.Second)
	lastModified := time.Now().Add(-1 * time.Hour).UTC().Truncate(time.Second)

	resp := newTestResponse(`{"data":[]}`, map[string]string{
		"ETag":          `"abc123"`,
		"Expires":       expires.Format(http.TimeFormat),
		"Last-Modified": lastModified.Format(http.TimeFormat),
	})

	entry, err := ResponseToEntry(resp)
	if err != nil {
		t.Fatalf("ResponseToEntry() failed: %v", err)
	}

	if string(entry.Data) != `{"data":[]}` {
		t.Errorf("Data = %q, want the response body", entry.Data)
	}
	if entry.ETag != `"abc123"` {
		t.Errorf("ETag = %q, want %q", entry.ETag, `"abc123"`)
	}
	if !entry.Expires.Equal(expires) {
		t.Errorf("Expires = %v, want %v", entry.Expires, expires)
	}
	if !entry.LastModified.Equal(lastModified) {
		t.Errorf("LastModified = %v, want %v", entry.LastModified, lastModified)
	}

	// The body must be restored for the caller.
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading restored body failed: %v", err)
	}
	if string(body) != `{"data":[]}` {
		t.Errorf("restored body = %q, want the original body", body)
	}
}

func TestResponseToEntry_NilResponse(t *testing.T) {
	if _, err := ResponseToEntry(nil); err == nil {
		t.Error("ResponseToEntry(nil) should fail")
	}
}

func TestParseExpires_Fallback(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
	}{
		{name: "missing header", headers: map[string]string{}},
		{name: "malformed header", headers: map[string]string{"Expires": "not-a-date"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := http.Header{}
			for key, value := range tt.headers {
				headers.Set(key, value)
			}

			expires := parseExpires(headers)
			ttl := time.Until(expires)
			if ttl <= 4*time.Minute || ttl > DefaultTTL {
				t.Errorf("fallback TTL = %v, want about %v", ttl, DefaultTTL)
			}
		})
	}
}

func TestEntryToResponse(t *testing.T) {
	entry := &CacheEntry{
		Data:       []byte(`{"data":[1]}`),
		StatusCode: http.StatusOK,
		Headers:    http.Header{"Content-Type": []string{"application/json"}},
	}

	resp := EntryToResponse(entry)
	if resp == nil {
		t.Fatal("EntryToResponse() returned nil")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", resp.StatusCode)
	}
	if !strings.Contains(resp.Status, "200") {
		t.Errorf("Status = %q, want it to contain 200", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body failed: %v", err)
	}
	if string(body) != `{"data":[1]}` {
		t.Errorf("body = %q, want the cached data", body)
	}

	if EntryToResponse(nil) != nil {
		t.Error("EntryToResponse(nil) should return nil")
	}
}

func TestShouldMakeConditionalRequest(t *testing.T) {
	tests := []struct {
		name     string
		entry    *CacheEntry
		expected bool
	}{
		{name: "nil entry", entry: nil, expected: false},
		{name: "etag present", entry: &CacheEntry{ETag: `"abc"`}, expected: true},
		{name: "last modified present", entry: &CacheEntry{LastModified: time.Now()}, expected: true},
		{name: "neither present", entry: &CacheEntry{}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldMakeConditionalRequest(tt.entry); got != tt.expected {
				t.Errorf("ShouldMakeConditionalRequest() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestAddConditionalHeaders(t *testing.T) {
	req, _ := http.NewRequest(http.MethodGet, "http://example.com/artworks", nil)

	AddConditionalHeaders(req, &CacheEntry{ETag: `"abc"`})
	if got := req.Header.Get("If-None-Match"); got != `"abc"` {
		t.Errorf("If-None-Match = %q, want %q", got, `"abc"`)
	}

	// ETag is preferred over Last-Modified.
	req2, _ := http.NewRequest(http.MethodGet, "http://example.com/artworks", nil)
	lastModified := time.Now().Add(-1 * time.Hour)
	AddConditionalHeaders(req2, &CacheEntry{LastModified: lastModified})
	if got := req2.Header.Get("If-Modified-Since"); got == "" {
		t.Error("If-Modified-Since should be set when only Last-Modified is known")
	}
	if got := req2.Header.Get("If-None-Match"); got != "" {
		t.Errorf("If-None-Match = %q, want empty", got)
	}
}
