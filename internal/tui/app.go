package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/gallery/internal/domain"
	"github.com/mmcdole/gallery/internal/selection"
	"github.com/mmcdole/gallery/internal/tui/components"
	"github.com/mmcdole/gallery/internal/tui/styles"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateLoading  ApplicationState = iota // No page shown yet
	StateBrowsing                         // A page is shown
	StateError                            // Page load failed with nothing to fall back to
)

const (
	// Vertical layout: single footer line
	ChromeHeight = 1

	// Above this many pages the paginator shows "x/y" instead of dots
	maxPaginatorDots = 10

	statusTimeout = 3 * time.Second
)

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Ready bool

	// Services
	Pages  domain.PageCommands
	Cache  domain.PageQueries
	Opener ArtworkOpener

	// Selection across pages; only ever sees the page in Loaded
	Selection *selection.Manager[int, domain.Artwork]

	// UI Components
	Table      *components.ArtworkTable
	CountModal components.CountModal
	Inspector  components.Inspector
	Spinner    spinner.Model
	Paginator  paginator.Model
	Help       help.Model

	// Paging
	CurrentPage int          // Page shown or being loaded
	Loaded      *domain.Page // Last page handed to Selection
	Total       int          // Records in the dataset, 0 while unknown
	TotalPages  int

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg     string
	StatusIsErr   bool
	Loading       bool
	Err           error
	HelpVisible   bool
	ShowInspector bool
	ShowKeyHelp   bool // Key hints in the footer

	// Checkbox edits (toggle, select rows, clear) are refused while set.
	// Pending quotas still resolve as pages load.
	SelectionLocked bool

	logger *slog.Logger
}

// NewModel creates a new application model
func NewModel(
	pages domain.PageCommands,
	cache domain.PageQueries,
	opener ArtworkOpener,
	logger *slog.Logger,
) Model {
	if logger == nil {
		logger = slog.Default()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	pg := paginator.New()
	pg.Type = paginator.Dots
	pg.ActiveDot = styles.AccentStyle.Render("•")
	pg.InactiveDot = styles.DimStyle.Render("•")

	h := help.New()
	h.Styles.ShortKey = styles.HelpKeyStyle
	h.Styles.ShortDesc = styles.HelpDescStyle
	h.Styles.FullKey = styles.HelpKeyStyle
	h.Styles.FullDesc = styles.HelpDescStyle

	return Model{
		State:       StateLoading,
		Pages:       pages,
		Cache:       cache,
		Opener:      opener,
		Selection:   selection.NewManager(cache.PageSize(), domain.Artwork.Key, logger),
		Table:       components.NewArtworkTable(),
		CountModal:  components.NewCountModal(),
		Inspector:   components.NewInspector(),
		Spinner:     sp,
		Paginator:   pg,
		Help:        h,
		CurrentPage: 1,
		Loading:     true,
		ShowKeyHelp: true,
		logger:      logger,
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		LoadPageCmd(m.Pages, m.CurrentPage),
		m.Spinner.Tick,
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case spinner.TickMsg:
		if !m.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case PageLoadedMsg:
		if msg.Page == nil || msg.Page.Number != m.CurrentPage {
			// Superseded by later navigation
			return m, nil
		}
		m.applyPage(msg.Page)
		return m, nil

	case ErrMsg:
		return m.handleError(msg)

	case ArtworkOpenedMsg:
		m.StatusMsg = fmt.Sprintf("Opened %q", msg.Title)
		m.StatusIsErr = false
		return m, ClearStatusCmd(statusTimeout)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	// Cursor blink and other input messages for the active text field
	if m.CountModal.IsVisible() {
		var cmd tea.Cmd
		m.CountModal, cmd, _ = m.CountModal.Update(msg)
		return m, cmd
	}
	if m.Table.IsFilterTyping() {
		return m, m.Table.Update(msg)
	}
	return m, nil
}

// applyPage makes p the visible page and resolves its pending quota
func (m *Model) applyPage(p *domain.Page) {
	m.Loading = false
	m.State = StateBrowsing
	m.Err = nil
	m.Loaded = p
	m.CurrentPage = p.Number

	if p.Pagination.Total > 0 {
		m.Total = p.Pagination.Total
	}
	if tp := p.TotalPages(); tp > 0 {
		m.TotalPages = tp
	}
	m.updatePaginator()

	displayed := m.Selection.OnPageLoaded(p.Number, p.Artworks)
	m.Table.SetArtworks(p.Artworks)
	m.Table.SetChecked(displayed)
	m.Table.SetTitle(fmt.Sprintf("Artworks · page %d", p.Number))

	m.logger.Debug("page shown", "page", p.Number, "rows", p.Len(), "displayedSelected", len(displayed))
}

func (m *Model) updatePaginator() {
	m.Paginator.TotalPages = max(m.TotalPages, 1)
	m.Paginator.Page = m.CurrentPage - 1
	if m.TotalPages > maxPaginatorDots {
		m.Paginator.Type = paginator.Arabic
	} else {
		m.Paginator.Type = paginator.Dots
	}
}

// handleError routes an ErrMsg. Page load failures fall back to a stale
// cached copy when offline, then to the last shown page, then to the error screen.
func (m Model) handleError(msg ErrMsg) (tea.Model, tea.Cmd) {
	m.logger.Error("operation failed", "context", msg.Context, "error", msg.Err)

	if msg.Page == 0 {
		m.StatusMsg = msg.Error()
		m.StatusIsErr = true
		return m, ClearStatusCmd(statusTimeout)
	}
	if msg.Page != m.CurrentPage {
		return m, nil
	}

	m.Loading = false

	if errors.Is(msg.Err, domain.ErrServerOffline) {
		if cached, ok := m.Cache.GetCachedPage(msg.Page); ok {
			m.applyPage(cached)
			m.StatusMsg = "Offline: showing cached page"
			m.StatusIsErr = true
			return m, ClearStatusCmd(statusTimeout)
		}
	}

	if m.Loaded != nil {
		m.CurrentPage = m.Loaded.Number
		m.updatePaginator()
		m.StatusMsg = describeError(msg.Err)
		m.StatusIsErr = true
		return m, ClearStatusCmd(statusTimeout)
	}

	m.State = StateError
	m.Err = msg
	return m, nil
}

// gotoPage starts loading page, clamped to the known page range
func (m Model) gotoPage(page int) (tea.Model, tea.Cmd) {
	if m.TotalPages > 0 {
		page = min(page, m.TotalPages)
	}
	page = max(page, 1)

	if page == m.CurrentPage {
		return m, nil
	}

	m.CurrentPage = page
	m.Loading = true
	m.updatePaginator()
	return m, tea.Batch(LoadPageCmd(m.Pages, page), m.Spinner.Tick)
}

// reloadPage fetches the current page again, bypassing the cache
func (m Model) reloadPage() (tea.Model, tea.Cmd) {
	m.Loading = true
	if m.State == StateError {
		m.State = StateLoading
		m.Err = nil
	}
	return m, tea.Batch(RefreshPageCmd(m.Pages, m.CurrentPage), m.Spinner.Tick)
}

// applyManual hands the complete checked list of the shown page to Selection
func (m *Model) applyManual(checked []domain.Artwork) {
	if m.Loaded == nil {
		return
	}
	m.Selection.OnManualSelectionChanged(m.Loaded.Number, checked)
	m.Table.SetChecked(m.Selection.Displayed())
}

// bulkSelect replaces the selection with the first n records of the dataset
func (m *Model) bulkSelect(n int) tea.Cmd {
	if m.Loaded == nil {
		return nil
	}
	displayed := m.Selection.RequestBulkSelect(n, m.Loaded.Number, m.Loaded.Artworks, m.Total)
	m.Table.SetChecked(displayed)
	m.StatusMsg = fmt.Sprintf("Selected first %d artworks", n)
	m.StatusIsErr = false
	return ClearStatusCmd(statusTimeout)
}
