package cache

import (
	"net/url"
	"testing"
)

func TestCacheKey_String(t *testing.T) {
	tests := []struct {
		name     string
		key      CacheKey
		expected string
	}{
		{
			name:     "endpoint only",
			key:      CacheKey{Endpoint: "/artworks"},
			expected: "artic:artworks",
		},
		{
			name: "endpoint with query params",
			key: CacheKey{
				Endpoint: "/artworks",
				QueryParams: url.Values{
					"page":  []string{"1"},
					"limit": []string{"100"},
				},
			},
			expected: "artic:artworks:limit=100:page=1",
		},
		{
			name: "query params sorted for determinism",
			key: CacheKey{
				Endpoint: "/artworks",
				QueryParams: url.Values{
					"page":   []string{"2"},
					"fields": []string{"id,title"},
					"limit":  []string{"50"},
				},
			},
			expected: "artic:artworks:fields=id,title:limit=50:page=2",
		},
		{
			name:     "empty endpoint",
			key:      CacheKey{},
			expected: "artic",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.key.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestCacheKey_Deterministic(t *testing.T) {
	key1 := CacheKey{
		Endpoint:    "/artworks",
		QueryParams: url.Values{"page": []string{"1"}, "limit": []string{"100"}},
	}
	key2 := CacheKey{
		Endpoint:    "/artworks",
		QueryParams: url.Values{"limit": []string{"100"}, "page": []string{"1"}},
	}

	if key1.String() != key2.String() {
		t.Errorf("equal keys stringify differently: %q vs %q", key1.String(), key2.String())
	}
}
