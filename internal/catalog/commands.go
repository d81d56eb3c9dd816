package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/mmcdole/gallery/internal/domain"
)

// Commands provides asynchronous operations that hit network.
// Implements domain.PageCommands.
type Commands struct {
	repo     domain.ArtworkRepository
	store    domain.PageStore
	pageSize int
	ttl      time.Duration
	now      func() time.Time
	logger   *slog.Logger
}

// NewCommands creates a new Commands instance. A ttl of zero disables cache
// reads so every FetchPage goes to the network.
func NewCommands(
	repo domain.ArtworkRepository,
	store domain.PageStore,
	pageSize int,
	ttl time.Duration,
	logger *slog.Logger,
) *Commands {
	if logger == nil {
		logger = slog.Default()
	}
	return &Commands{
		repo:     repo,
		store:    store,
		pageSize: pageSize,
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
	}
}

func (c *Commands) FetchPage(ctx context.Context, page int) (*domain.Page, error) {
	if page < 1 {
		return nil, domain.ErrInvalidPage
	}

	// 1. Freshness check
	if p, ok := c.freshPage(page); ok {
		c.logger.Debug("cache fresh", "page", page, "count", p.Len())
		return p, nil
	}

	// 2. Fetch
	c.logger.Debug("cache stale, fetching", "page", page)
	return c.fetch(ctx, page)
}

func (c *Commands) RefreshPage(ctx context.Context, page int) (*domain.Page, error) {
	if page < 1 {
		return nil, domain.ErrInvalidPage
	}
	// The cached copy stays until a fetch replaces it; it is the offline fallback
	c.logger.Info("refreshing page", "page", page)
	return c.fetch(ctx, page)
}

func (c *Commands) InvalidateAll() {
	c.store.InvalidateAll()
	c.logger.Info("invalidated all cache")
}

// --- Private helpers ---

func (c *Commands) freshPage(page int) (*domain.Page, bool) {
	if c.ttl <= 0 {
		return nil, false
	}
	fetchedAt, ok := c.store.FetchedAt(page, c.pageSize)
	if !ok || c.now().Sub(fetchedAt) >= c.ttl {
		return nil, false
	}
	return c.store.GetPage(page, c.pageSize)
}

func (c *Commands) fetch(ctx context.Context, page int) (*domain.Page, error) {
	p, err := c.repo.GetArtworks(ctx, page, c.pageSize)
	if err != nil {
		c.logger.Error("failed to fetch page", "error", err, "page", page)
		return nil, err
	}

	// Cache under the size we asked for so lookups hit
	p.Number = page
	p.Pagination.Limit = c.pageSize

	if err := c.store.SavePage(p, c.now()); err != nil {
		c.logger.Error("failed to save page", "error", err, "page", page)
	}
	c.logger.Debug("fetched page", "page", page, "count", p.Len(), "total", p.Pagination.Total)
	return p, nil
}
