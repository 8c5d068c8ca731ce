// Package gallery implements the artwork gallery domain: record validation,
// deduplication, decade bucketing, and the view session state.
package gallery

import "strings"

// IIIF image delivery constants for the Art Institute of Chicago.
const (
	// IIIFBaseURL is the base URL for full-size artwork images.
	IIIFBaseURL = "https://www.artic.edu/iiif/2"

	// FallbackImageID is used when an artwork has no image of its own.
	FallbackImageID = "2d484387-2509-5e8e-2c43-22f9981972eb"

	// UnknownArtist is the display label for artworks with no artist line.
	UnknownArtist = "Unknown artist"
)

// Artwork is a single artwork record as projected from the museum API.
// DateStart is a pointer because the API reports null for undated works.
type Artwork struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	ArtistDisplay string `json:"artist_display"`
	DateDisplay   string `json:"date_display"`
	DateStart     *int   `json:"date_start"`
	ImageID       string `json:"image_id"`
}

// Valid reports whether the record can be shown and bucketed.
// A record needs a non-empty title and a known start year.
func (a Artwork) Valid() bool {
	return a.Title != "" && a.DateStart != nil
}

// StartYear returns the start year, or 0 when unknown.
// Callers must check Valid before relying on the year.
func (a Artwork) StartYear() int {
	if a.DateStart == nil {
		return 0
	}
	return *a.DateStart
}

// ArtistLabel returns the first line of the artist display text.
// The API packs artist name, nationality, and dates into one multi-line
// field; only the name line is shown.
func (a Artwork) ArtistLabel() string {
	line, _, _ := strings.Cut(a.ArtistDisplay, "\n")
	line = strings.TrimSpace(line)
	if line == "" {
		return UnknownArtist
	}
	return line
}

// ImageURL builds the IIIF display URL for the artwork,
// falling back to a fixed placeholder image when no image is linked.
func (a Artwork) ImageURL() string {
	imageID := a.ImageID
	if imageID == "" {
		imageID = FallbackImageID
	}
	return IIIFBaseURL + "/" + imageID + "/full/843,/0/default.jpg"
}
