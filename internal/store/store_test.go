package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/gallery/internal/domain"
)

func samplePage(number, limit int) *domain.Page {
	return &domain.Page{
		Number: number,
		Artworks: []domain.Artwork{
			{ID: 27992, Title: "A Sunday on La Grande Jatte", ArtistDisplay: "Georges Seurat", DateStart: 1884, DateEnd: 1886},
			{ID: 28560, Title: "The Bedroom", ArtistDisplay: "Vincent van Gogh", DateStart: 1889},
		},
		Pagination: domain.Pagination{Total: 40, Limit: limit, TotalPages: 4, CurrentPage: number},
	}
}

func openStores(t *testing.T) map[string]*PageStore {
	t.Helper()
	mem, err := NewPageStore("", "")
	require.NoError(t, err)

	disk, err := NewPageStore(t.TempDir(), "https://api.artic.edu/api/v1")
	require.NoError(t, err)
	t.Cleanup(func() { disk.Close() })

	return map[string]*PageStore{"memory": mem, "bolt": disk}
}

func TestPageStore_SaveAndGet(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			fetched := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
			require.NoError(t, s.SavePage(samplePage(2, 12), fetched))

			got, ok := s.GetPage(2, 12)
			require.True(t, ok)
			assert.Equal(t, samplePage(2, 12), got)

			ts, ok := s.FetchedAt(2, 12)
			require.True(t, ok)
			assert.True(t, fetched.Equal(ts))

			_, ok = s.GetPage(2, 24)
			assert.False(t, ok, "pages are keyed by limit")
			_, ok = s.GetPage(3, 12)
			assert.False(t, ok)
		})
	}
}

func TestPageStore_SaveRequiresLimit(t *testing.T) {
	s, err := NewPageStore("", "")
	require.NoError(t, err)

	err = s.SavePage(samplePage(1, 0), time.Now())
	assert.ErrorIs(t, err, ErrNoLimit)
	assert.Error(t, s.SavePage(nil, time.Now()))
}

func TestPageStore_Invalidate(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			now := time.Now()
			require.NoError(t, s.SavePage(samplePage(1, 12), now))
			require.NoError(t, s.SavePage(samplePage(2, 12), now))

			s.InvalidatePage(1, 12)
			_, ok := s.GetPage(1, 12)
			assert.False(t, ok)
			_, ok = s.FetchedAt(1, 12)
			assert.False(t, ok)
			_, ok = s.GetPage(2, 12)
			assert.True(t, ok)

			s.InvalidateAll()
			_, ok = s.GetPage(2, 12)
			assert.False(t, ok)
		})
	}
}

func TestPageStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	const baseURL = "https://api.artic.edu/api/v1"

	s, err := NewPageStore(dir, baseURL)
	require.NoError(t, err)
	require.NoError(t, s.SavePage(samplePage(5, 12), time.Now()))
	require.NoError(t, s.Close())

	reopened, err := NewPageStore(dir, baseURL+"/")
	require.NoError(t, err)
	defer reopened.Close()

	got, ok := reopened.GetPage(5, 12)
	require.True(t, ok, "trailing slash maps to the same database")
	assert.Len(t, got.Artworks, 2)

	other, err := NewPageStore(dir, "http://localhost:8080")
	require.NoError(t, err)
	defer other.Close()
	_, ok = other.GetPage(5, 12)
	assert.False(t, ok, "each base URL has its own database")
}

func TestHashBaseURL(t *testing.T) {
	assert.Equal(t, hashBaseURL("https://API.artic.edu/api/v1/"), hashBaseURL("https://api.artic.edu/api/v1"))
	assert.Len(t, hashBaseURL("x"), 12)
}
