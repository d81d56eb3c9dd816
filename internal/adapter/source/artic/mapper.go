package artic

import (
	"strings"

	"github.com/mmcdole/gallery/internal/domain"
)

// untitled is shown for artworks the API returns without a title
const untitled = "Untitled"

// MapArtworks converts API records to domain artworks, keeping API order.
// Records without an id cannot be selected and are dropped.
func MapArtworks(data []ArtworkDTO) []domain.Artwork {
	artworks := make([]domain.Artwork, 0, len(data))
	for _, d := range data {
		if d.ID == 0 {
			continue
		}
		artworks = append(artworks, mapArtwork(d))
	}
	return artworks
}

func mapArtwork(d ArtworkDTO) domain.Artwork {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		title = untitled
	}
	return domain.Artwork{
		ID:            d.ID,
		Title:         title,
		ArtistDisplay: strings.TrimSpace(d.ArtistDisplay),
		PlaceOfOrigin: strings.TrimSpace(d.PlaceOfOrigin),
		DateStart:     d.DateStart,
		DateEnd:       d.DateEnd,
		Inscriptions:  strings.TrimSpace(d.Inscriptions),
	}
}

// MapPagination converts the API pagination block
func MapPagination(p PaginationDTO) domain.Pagination {
	return domain.Pagination{
		Total:       p.Total,
		Limit:       p.Limit,
		Offset:      p.Offset,
		TotalPages:  p.TotalPages,
		CurrentPage: p.CurrentPage,
	}
}

// MapPage builds the domain page for the requested page number
func MapPage(page int, resp *ArtworksResponse) *domain.Page {
	pagination := MapPagination(resp.Pagination)
	if pagination.CurrentPage == 0 {
		pagination.CurrentPage = page
	}
	return &domain.Page{
		Number:     page,
		Artworks:   MapArtworks(resp.Data),
		Pagination: pagination,
	}
}
