package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/gallery/internal/domain"
)

// pageTimeout bounds one page load including cache access
const pageTimeout = 30 * time.Second

// ArtworkOpener opens an artwork's page outside the terminal
type ArtworkOpener interface {
	OpenArtwork(id int) error
}

// Command factories for async operations

// LoadPageCmd loads a page, from cache when fresh
func LoadPageCmd(svc domain.PageCommands, page int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), pageTimeout)
		defer cancel()

		p, err := svc.FetchPage(ctx, page)
		if err != nil {
			return ErrMsg{Err: err, Context: fmt.Sprintf("loading page %d", page), Page: page}
		}
		return PageLoadedMsg{Page: p}
	}
}

// RefreshPageCmd reloads a page from the network
func RefreshPageCmd(svc domain.PageCommands, page int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), pageTimeout)
		defer cancel()

		p, err := svc.RefreshPage(ctx, page)
		if err != nil {
			return ErrMsg{Err: err, Context: fmt.Sprintf("reloading page %d", page), Page: page}
		}
		return PageLoadedMsg{Page: p}
	}
}

// OpenArtworkCmd opens the artwork page in the browser
func OpenArtworkCmd(opener ArtworkOpener, artwork domain.Artwork) tea.Cmd {
	return func() tea.Msg {
		if err := opener.OpenArtwork(artwork.ID); err != nil {
			return ErrMsg{Err: err, Context: "opening browser"}
		}
		return ArtworkOpenedMsg{ID: artwork.ID, Title: artwork.Title}
	}
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
