package artic

// ArtworksResponse is the envelope returned by GET /artworks
type ArtworksResponse struct {
	Pagination PaginationDTO `json:"pagination"`
	Data       []ArtworkDTO  `json:"data"`
	Info       *InfoDTO      `json:"info,omitempty"`
}

// PaginationDTO describes the page within the full collection
type PaginationDTO struct {
	Total       int    `json:"total"`
	Limit       int    `json:"limit"`
	Offset      int    `json:"offset"`
	TotalPages  int    `json:"total_pages"`
	CurrentPage int    `json:"current_page"`
	NextURL     string `json:"next_url,omitempty"`
	PrevURL     string `json:"prev_url,omitempty"`
}

// ArtworkDTO is one artwork record. Any field other than id may be null,
// which decodes to the zero value.
type ArtworkDTO struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	ArtistDisplay string `json:"artist_display"`
	PlaceOfOrigin string `json:"place_of_origin"`
	DateStart     int    `json:"date_start"`
	DateEnd       int    `json:"date_end"`
	Inscriptions  string `json:"inscriptions"`
}

// InfoDTO carries license information sent with every response
type InfoDTO struct {
	LicenseText string `json:"license_text,omitempty"`
	Version     string `json:"version,omitempty"`
}

// ErrorResponse is returned for 4xx/5xx responses
type ErrorResponse struct {
	Status int    `json:"status"`
	Error  string `json:"error"`
	Detail string `json:"detail"`
}
