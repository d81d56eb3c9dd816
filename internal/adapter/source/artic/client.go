package artic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gallery/internal/domain"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "Gallery/1.0"

	// maxLimit is the largest page size the API accepts
	maxLimit = 100
)

// Client implements domain.ArtworkRepository for the Art Institute of Chicago API
type Client struct {
	baseURL    string
	userAgent  string
	fields     []string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header. The API asks clients to identify themselves.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithFields limits the fields returned for each artwork
func WithFields(fields []string) Option {
	return func(c *Client) { c.fields = fields }
}

// NewClient creates a new catalog API client
func NewClient(baseURL string, logger *slog.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: defaultUserAgent,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// doRequest performs a GET request and returns the body of a 200 response
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL = reqURL + "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("AIC-User-Agent", c.userAgent)

	c.logger.Debug("catalog request", "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		c.logger.Error("catalog request failed", "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrServerOffline, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusNotFound:
		return nil, domain.ErrPageNotFound
	case http.StatusForbidden, http.StatusTooManyRequests:
		return nil, domain.ErrRateLimited
	}

	c.logger.Error("catalog request error", "status", resp.StatusCode, "body", string(body))
	var apiErr ErrorResponse
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Detail != "" {
		return nil, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, apiErr.Detail)
	}
	return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
}

// GetArtworks returns one page of artworks.
func (c *Client) GetArtworks(ctx context.Context, page, limit int) (*domain.Page, error) {
	if page < 1 {
		return nil, domain.ErrInvalidPage
	}

	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	if limit > 0 {
		query.Set("limit", strconv.Itoa(min(limit, maxLimit)))
	}
	if len(c.fields) > 0 {
		query.Set("fields", strings.Join(c.fields, ","))
	}

	body, err := c.doRequest(ctx, "/artworks", query)
	if err != nil {
		return nil, err
	}

	var resp ArtworksResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	// Past the last page the API answers 200 with an empty data array.
	if len(resp.Data) == 0 && resp.Pagination.TotalPages > 0 && page > resp.Pagination.TotalPages {
		return nil, fmt.Errorf("%w: page %d of %d", domain.ErrPageNotFound, page, resp.Pagination.TotalPages)
	}

	p := MapPage(page, &resp)
	c.logger.Debug("fetched artworks", "page", page, "count", p.Len(), "total", p.Pagination.Total)
	return p, nil
}

// IsRetryable reports whether a GetArtworks error is worth retrying.
func IsRetryable(err error) bool {
	return errors.Is(err, domain.ErrServerOffline) || errors.Is(err, domain.ErrRateLimited)
}
