package domain

import "context"

// ArtworkRepository provides paginated access to the remote catalog.
type ArtworkRepository interface {
	// GetArtworks returns one page of artworks. Page numbers are 1-based.
	GetArtworks(ctx context.Context, page, limit int) (*Page, error)
}
