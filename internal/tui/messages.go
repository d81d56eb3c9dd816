package tui

import (
	"github.com/mmcdole/gallery/internal/domain"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
	Page    int // Page being loaded when the error occurred, 0 if none
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

func (e ErrMsg) Unwrap() error { return e.Err }

// PageLoadedMsg signals that a page fetch completed
type PageLoadedMsg struct {
	Page *domain.Page
}

// ArtworkOpenedMsg signals that the browser was launched for an artwork
type ArtworkOpenedMsg struct {
	ID    int
	Title string
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}
