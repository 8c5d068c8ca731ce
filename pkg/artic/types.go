package artic

import "github.com/apeissigma/artic-gallery/pkg/gallery"

// ArtworksPage is the decoded body of a GET /artworks response.
type ArtworksPage struct {
	Data       []gallery.Artwork `json:"data"`
	Pagination Pagination        `json:"pagination"`
}

// Pagination is the paging block the API returns with every listing.
type Pagination struct {
	Total       int `json:"total"`
	Limit       int `json:"limit"`
	Offset      int `json:"offset"`
	TotalPages  int `json:"total_pages"`
	CurrentPage int `json:"current_page"`
}
