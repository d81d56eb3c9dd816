package domain

import (
	"fmt"
	"strings"
)

// Artwork is one record of the remote catalog.
type Artwork struct {
	ID            int    `json:"id"`              // Stable catalog identifier
	Title         string `json:"title"`           // Display title
	ArtistDisplay string `json:"artist_display"`  // Artist, nationality and life dates, possibly multi-line
	PlaceOfOrigin string `json:"place_of_origin"` // Where the work was made
	DateStart     int    `json:"date_start"`      // Earliest year of creation (negative = BCE)
	DateEnd       int    `json:"date_end"`        // Latest year of creation
	Inscriptions  string `json:"inscriptions"`    // Marks and inscriptions, often empty
}

// Key returns the identifier used for selection.
func (a Artwork) Key() int { return a.ID }

// Artist returns the first line of ArtistDisplay, which is the artist name.
func (a Artwork) Artist() string {
	name, _, _ := strings.Cut(a.ArtistDisplay, "\n")
	return strings.TrimSpace(name)
}

// DateRange returns the creation dates as "1890", "1890-1892" or "" when unknown.
func (a Artwork) DateRange() string {
	switch {
	case a.DateStart == 0 && a.DateEnd == 0:
		return ""
	case a.DateEnd == 0 || a.DateStart == a.DateEnd:
		return formatYear(a.DateStart)
	case a.DateStart == 0:
		return formatYear(a.DateEnd)
	default:
		return formatYear(a.DateStart) + "-" + formatYear(a.DateEnd)
	}
}

func formatYear(y int) string {
	if y < 0 {
		return fmt.Sprintf("%d BCE", -y)
	}
	return fmt.Sprintf("%d", y)
}

// Pagination describes where a page sits in the remote dataset.
type Pagination struct {
	Total       int `json:"total"`        // Total records in the dataset
	Limit       int `json:"limit"`        // Page size used for this request
	Offset      int `json:"offset"`       // Offset of the first record
	TotalPages  int `json:"total_pages"`  // Number of pages at this limit
	CurrentPage int `json:"current_page"` // 1-based page number
}

// Page is the snapshot of records returned for one page number.
type Page struct {
	Number     int        `json:"number"`
	Artworks   []Artwork  `json:"artworks"`
	Pagination Pagination `json:"pagination"`
}

// TotalPages returns the page count, deriving it from Total and Limit when the
// server did not report it.
func (p *Page) TotalPages() int {
	if p == nil {
		return 0
	}
	if p.Pagination.TotalPages > 0 {
		return p.Pagination.TotalPages
	}
	if p.Pagination.Limit <= 0 {
		return 0
	}
	return (p.Pagination.Total + p.Pagination.Limit - 1) / p.Pagination.Limit
}

// Len returns the number of records in the page.
func (p *Page) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Artworks)
}
