package domain

import "errors"

// Sentinel errors for catalog operations
var (
	// ErrServerOffline indicates the catalog API is unreachable
	ErrServerOffline = errors.New("catalog server is unreachable")

	// ErrPageNotFound indicates the requested page lies past the end of the dataset
	ErrPageNotFound = errors.New("page not found")

	// ErrRateLimited indicates the API refused the request due to throttling
	ErrRateLimited = errors.New("catalog rate limit exceeded")

	// ErrInvalidPage indicates a page number below 1
	ErrInvalidPage = errors.New("page must be >= 1")

	// ErrInvalidCount indicates a selection count outside the allowed range
	ErrInvalidCount = errors.New("invalid selection count")
)
