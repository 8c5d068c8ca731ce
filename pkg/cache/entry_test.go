package cache

import (
	"testing"
	"time"
)

func TestCacheEntry_IsExpired(t *testing.T) {
	tests := []struct {
		name     string
		expires  time.Time
		expected bool
	}{
		{
			name:     "future expiry",
			expires:  time.Now().Add(5 * time.Minute),
			expected: false,
		},
		{
			name:     "past expiry",
			expires:  time.Now().Add(-5 * time.Minute),
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := &CacheEntry{Expires: tt.expires}
			if got := entry.IsExpired(); got != tt.expected {
				t.Errorf("IsExpired() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCacheEntry_TTL(t *testing.T) {
	fresh := &CacheEntry{Expires: time.Now().Add(5 * time.Minute)}
	ttl := fresh.TTL()
	if ttl <= 4*time.Minute || ttl > 5*time.Minute {
		t.Errorf("TTL() = %v, want about 5 minutes", ttl)
	}

	stale := &CacheEntry{Expires: time.Now().Add(-1 * time.Minute)}
	if got := stale.TTL(); got != 0 {
		t.Errorf("TTL() for expired entry = %v, want 0", got)
	}
}
