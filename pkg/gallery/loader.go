package gallery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// GenericLoadError is shown when a load fails for any reason other than
// an HTTP error status from the artwork service.
const GenericLoadError = "could not load artworks"

// PageSource fetches every page of the artwork listing.
// Pages are returned in page order; a single page failure fails the
// whole fetch (all-or-nothing).
type PageSource interface {
	FetchAll(ctx context.Context) ([][]Artwork, error)
}

// LoadResult is the one-shot outcome of a gallery load: either the full
// record set with its decade buckets, or an error. There is no partial
// success.
type LoadResult struct {
	Artworks []Artwork
	Buckets  []DecadeBucket
	Err      error
}

// Failed reports whether the load settled in the error state.
func (r LoadResult) Failed() bool {
	return r.Err != nil
}

// ErrorMessage returns the user-facing message for a failed load, or ""
// for a successful one. HTTP error statuses from the artwork service are
// surfaced with their status code; everything else collapses to a
// generic message.
func (r LoadResult) ErrorMessage() string {
	if r.Err == nil {
		return ""
	}

	var statusErr interface{ HTTPStatus() int }
	if errors.As(r.Err, &statusErr) {
		return fmt.Sprintf("%s (status %d)", GenericLoadError, statusErr.HTTPStatus())
	}
	return GenericLoadError
}

// Loader runs the full acquisition pipeline: fetch all pages, merge,
// deduplicate, filter, and bucket by decade.
type Loader struct {
	source PageSource
	opts   Options
	logger zerolog.Logger
}

// NewLoader creates a loader over the given page source.
func NewLoader(source PageSource, opts Options) *Loader {
	return &Loader{
		source: source,
		opts:   opts,
		logger: log.With().Str("component", "gallery-loader").Logger(),
	}
}

// Load fetches and aggregates the gallery once. The returned result is
// tagged: on failure Artworks and Buckets are empty and Err is set.
func (l *Loader) Load(ctx context.Context) LoadResult {
	start := time.Now()

	pages, err := l.source.FetchAll(ctx)
	if err != nil {
		l.logger.Error().Err(err).Msg("Gallery load failed")
		return LoadResult{Err: err}
	}

	artworks := Valid(pages)
	buckets := Bucketize(artworks, l.opts)

	l.logger.Info().
		Int("pages", len(pages)).
		Int("artworks", len(artworks)).
		Int("buckets", len(buckets)).
		Dur("duration", time.Since(start)).
		Msg("Gallery load complete")

	return LoadResult{Artworks: artworks, Buckets: buckets}
}
