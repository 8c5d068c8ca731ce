package gallery

import (
	"fmt"
	"sort"
)

// DecadeBucket groups artworks sharing the same ten-year start-year floor.
// Artworks are sorted ascending by start year.
type DecadeBucket struct {
	Label     string    `json:"label"`
	StartYear int       `json:"start_year"`
	Artworks  []Artwork `json:"artworks"`
}

// Options controls bucket construction policy.
type Options struct {
	// MinimumBucketSize drops decades with fewer members, to avoid
	// presenting sparse decades. 0 keeps every decade; deployments
	// that want a dense slider use 20.
	MinimumBucketSize int
}

// DecadeStart returns the decade floor for a year, correct for years
// before the common era (floor division, not truncation).
func DecadeStart(year int) int {
	decade := year / 10
	if year < 0 && year%10 != 0 {
		decade--
	}
	return decade * 10
}

// Bucketize groups valid records into decade buckets, ordered ascending
// by decade start. It is a pure function: the input slice is not
// modified and buckets are built fresh on every call.
func Bucketize(records []Artwork, opts Options) []DecadeBucket {
	groups := make(map[int][]Artwork)
	for _, record := range records {
		if !record.Valid() {
			continue
		}
		start := DecadeStart(record.StartYear())
		groups[start] = append(groups[start], record)
	}

	buckets := make([]DecadeBucket, 0, len(groups))
	for start, members := range groups {
		if len(members) < opts.MinimumBucketSize {
			continue
		}
		sort.SliceStable(members, func(i, j int) bool {
			return members[i].StartYear() < members[j].StartYear()
		})
		buckets = append(buckets, DecadeBucket{
			Label:     fmt.Sprintf("%ds", start),
			StartYear: start,
			Artworks:  members,
		})
	}

	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].StartYear < buckets[j].StartYear
	})

	return buckets
}
