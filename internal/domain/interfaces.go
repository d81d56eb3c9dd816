package domain

import "context"

// PageQueries: Synchronous, cache-only reads.
// All methods return instantly. NEVER block on network.
// Safe to call from View() and navigation code.
type PageQueries interface {
	GetCachedPage(page int) (*Page, bool)
	PageSize() int
}

// PageCommands: Asynchronous operations that may hit network.
// Must be called from tea.Cmd functions, never from View().
type PageCommands interface {
	// Cached if fresh, otherwise fetched
	FetchPage(ctx context.Context, page int) (*Page, error)

	// Always fetch ('r' in the browser)
	RefreshPage(ctx context.Context, page int) (*Page, error)

	InvalidateAll()
}
