package gallery

import "sync"

// Session holds the view-session state: the current bucket list, the
// selected bucket index, and the load flags. Loading, error, and loaded
// are mutually exclusive; exactly one of error/loaded becomes true when
// a load settles.
//
// The record set has a single writer (the load task); the mutex exists
// because HTTP handlers read the session concurrently.
type Session struct {
	mu       sync.RWMutex
	artworks []Artwork
	buckets  []DecadeBucket
	selected int
	loading  bool
	loaded   bool
	errMsg   string
}

// NewSession returns an empty session in the loading state.
func NewSession() *Session {
	return &Session{loading: true}
}

// Apply settles the session with a load result: the loading flag drops
// and exactly one of the error/loaded states becomes active. On success
// the selected index is clamped to the new bucket count.
func (s *Session) Apply(result LoadResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loading = false

	if result.Failed() {
		s.loaded = false
		s.errMsg = result.ErrorMessage()
		s.artworks = nil
		s.buckets = nil
		s.selected = 0
		return
	}

	s.loaded = true
	s.errMsg = ""
	s.artworks = result.Artworks
	s.buckets = result.Buckets
	s.selected = clampIndex(s.selected, len(s.buckets))
}

// Select moves the selection to the given bucket index, clamped to the
// valid range.
func (s *Session) Select(index int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selected = clampIndex(index, len(s.buckets))
	return s.selected
}

// Selected returns the current bucket index.
func (s *Session) Selected() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

// SelectedBucket returns the currently selected bucket, if any.
func (s *Session) SelectedBucket() (DecadeBucket, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.buckets) == 0 {
		return DecadeBucket{}, false
	}
	return s.buckets[s.selected], true
}

// Buckets returns the current bucket list.
func (s *Session) Buckets() []DecadeBucket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.buckets
}

// Artworks returns the current record set.
func (s *Session) Artworks() []Artwork {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.artworks
}

// Loading reports whether a load is in flight.
func (s *Session) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Loaded reports whether the session settled successfully.
func (s *Session) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Err returns the user-facing error message, or "" if the session is
// loading or loaded.
func (s *Session) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg
}

// clampIndex clamps a bucket index to [0, count-1]. An empty bucket
// list pins the index at zero.
func clampIndex(index, count int) int {
	if index >= count {
		index = count - 1
	}
	if index < 0 {
		index = 0
	}
	return index
}
