package gallery

// Merge concatenates fetched pages into a single record list.
// Page order is preserved: page 1 first, then page 2, and so on.
func Merge(pages [][]Artwork) []Artwork {
	total := 0
	for _, page := range pages {
		total += len(page)
	}

	merged := make([]Artwork, 0, total)
	for _, page := range pages {
		merged = append(merged, page...)
	}
	return merged
}

// Dedupe removes duplicate records by ID, keeping the first occurrence
// in merge order. Paginated endpoints can repeat records across page
// boundaries when the underlying result set shifts between requests.
func Dedupe(records []Artwork) []Artwork {
	seen := make(map[int]struct{}, len(records))
	out := make([]Artwork, 0, len(records))

	for _, record := range records {
		if _, ok := seen[record.ID]; ok {
			continue
		}
		seen[record.ID] = struct{}{}
		out = append(out, record)
	}
	return out
}

// Filter drops records that cannot be shown: missing title or unknown
// start year. Order is preserved.
func Filter(records []Artwork) []Artwork {
	out := make([]Artwork, 0, len(records))
	for _, record := range records {
		if record.Valid() {
			out = append(out, record)
		}
	}
	return out
}

// Valid merges the given pages, deduplicates by ID (first occurrence
// wins), and filters out unusable records. This is the full aggregation
// step between fetching and bucketing.
func Valid(pages [][]Artwork) []Artwork {
	return Filter(Dedupe(Merge(pages)))
}
