package catalog

import "github.com/mmcdole/gallery/internal/domain"

// Queries provides synchronous, cache-only reads.
// Implements domain.PageQueries.
type Queries struct {
	store    domain.PageStore
	pageSize int
}

// NewQueries creates a new Queries instance.
func NewQueries(store domain.PageStore, pageSize int) *Queries {
	return &Queries{store: store, pageSize: pageSize}
}

func (q *Queries) GetCachedPage(page int) (*domain.Page, bool) {
	return q.store.GetPage(page, q.pageSize)
}

func (q *Queries) PageSize() int {
	return q.pageSize
}
