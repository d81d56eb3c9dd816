package artic

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/gallery/internal/domain"
)

const pageOneBody = `{
  "pagination": {"total": 125000, "limit": 12, "offset": 0, "total_pages": 10417, "current_page": 1},
  "data": [
    {"id": 27992, "title": "A Sunday on La Grande Jatte — 1884", "artist_display": "Georges Seurat\nFrench, 1859-1891",
     "place_of_origin": "France", "date_start": 1884, "date_end": 1886, "inscriptions": null},
    {"id": 28560, "title": "The Bedroom", "artist_display": "Vincent van Gogh", "place_of_origin": "France",
     "date_start": 1889, "date_end": 1889, "inscriptions": ""},
    {"id": 0, "title": "broken record"},
    {"id": 111628, "title": null, "artist_display": null, "place_of_origin": null, "date_start": null, "date_end": null}
  ],
  "info": {"license_text": "CC0", "version": "1.10"}
}`

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", nil, WithFields([]string{"id", "title"}), WithUserAgent("Gallery-Test/1.0"))
}

func TestGetArtworks(t *testing.T) {
	var gotQuery map[string]string
	var gotUA string
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/artworks", r.URL.Path)
		gotQuery = map[string]string{
			"page":   r.URL.Query().Get("page"),
			"limit":  r.URL.Query().Get("limit"),
			"fields": r.URL.Query().Get("fields"),
		}
		gotUA = r.Header.Get("AIC-User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(pageOneBody))
	})

	page, err := client.GetArtworks(context.Background(), 1, 12)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"page": "1", "limit": "12", "fields": "id,title"}, gotQuery)
	assert.Equal(t, "Gallery-Test/1.0", gotUA)

	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 125000, page.Pagination.Total)
	assert.Equal(t, 10417, page.TotalPages())
	require.Len(t, page.Artworks, 3, "records without id are dropped")

	first := page.Artworks[0]
	assert.Equal(t, 27992, first.ID)
	assert.Equal(t, "Georges Seurat", first.Artist())
	assert.Equal(t, "1884-1886", first.DateRange())
	assert.Empty(t, first.Inscriptions)

	last := page.Artworks[2]
	assert.Equal(t, 111628, last.ID)
	assert.Equal(t, "Untitled", last.Title)
	assert.Empty(t, last.DateRange())
}

func TestGetArtworks_LimitIsCapped(t *testing.T) {
	var gotLimit string
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		_, _ = w.Write([]byte(`{"pagination": {}, "data": []}`))
	})

	_, err := client.GetArtworks(context.Background(), 1, 500)
	require.NoError(t, err)
	assert.Equal(t, "100", gotLimit)
}

func TestGetArtworks_InvalidPage(t *testing.T) {
	called := false
	client := newTestServer(t, func(http.ResponseWriter, *http.Request) { called = true })

	_, err := client.GetArtworks(context.Background(), 0, 12)
	assert.ErrorIs(t, err, domain.ErrInvalidPage)
	assert.False(t, called, "no request for an invalid page")
}

func TestGetArtworks_PastLastPage(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"pagination": {"total": 20, "limit": 12, "total_pages": 2, "current_page": 5}, "data": []}`))
	})

	_, err := client.GetArtworks(context.Background(), 5, 12)
	assert.ErrorIs(t, err, domain.ErrPageNotFound)
}

func TestGetArtworks_StatusErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
		wantMsg string
	}{
		{name: "not found", status: http.StatusNotFound, wantErr: domain.ErrPageNotFound},
		{name: "forbidden", status: http.StatusForbidden, wantErr: domain.ErrRateLimited},
		{name: "too many requests", status: http.StatusTooManyRequests, wantErr: domain.ErrRateLimited},
		{
			name:    "server error with detail",
			status:  http.StatusInternalServerError,
			body:    `{"status": 500, "error": "Internal", "detail": "search backend down"}`,
			wantMsg: "search backend down",
		},
		{name: "bad gateway", status: http.StatusBadGateway, wantMsg: "unexpected status code: 502"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.GetArtworks(context.Background(), 1, 12)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestGetArtworks_MalformedJSON(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data": [`))
	})

	_, err := client.GetArtworks(context.Background(), 1, 12)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse response")
}

func TestGetArtworks_ServerOffline(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := NewClient(srv.URL, nil, WithTimeout(time.Second))

	_, err := client.GetArtworks(context.Background(), 1, 12)
	assert.ErrorIs(t, err, domain.ErrServerOffline)
	assert.True(t, IsRetryable(err))
}

func TestGetArtworks_ContextCanceled(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(pageOneBody))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.GetArtworks(ctx, 1, 12)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, IsRetryable(err))
}

func TestMapPage_DefaultsCurrentPage(t *testing.T) {
	p := MapPage(3, &ArtworksResponse{
		Pagination: PaginationDTO{Total: 40, Limit: 12},
		Data:       []ArtworkDTO{{ID: 1, Title: " Nighthawks "}},
	})

	assert.Equal(t, 3, p.Pagination.CurrentPage)
	assert.Equal(t, 4, p.TotalPages(), "derived from total and limit")
	assert.Equal(t, "Nighthawks", p.Artworks[0].Title)
}
