package domain

import "time"

// PageStore caches fetched pages locally (BoltDB + memory).
// Pages are keyed by (page, limit) since the same page number holds
// different records at different page sizes.
type PageStore interface {
	GetPage(page, limit int) (*Page, bool)
	SavePage(p *Page, fetchedAt time.Time) error

	// FetchedAt returns when the page was last saved.
	FetchedAt(page, limit int) (time.Time, bool)

	InvalidatePage(page, limit int)
	InvalidateAll()

	Close() error
}
