package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/gallery/internal/domain"
	"github.com/mmcdole/gallery/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.HelpVisible {
		return m.renderHelp()
	}

	var content string
	switch m.State {
	case StateLoading:
		content = lipgloss.Place(m.Width, m.Height-ChromeHeight,
			lipgloss.Center, lipgloss.Center,
			m.Spinner.View()+" "+styles.DimStyle.Render(fmt.Sprintf("Loading page %d...", m.CurrentPage)))
	case StateError:
		content = lipgloss.Place(m.Width, m.Height-ChromeHeight,
			lipgloss.Center, lipgloss.Center,
			m.renderError())
	default:
		content = m.renderBrowser()
	}

	view := lipgloss.JoinVertical(lipgloss.Left, content, m.renderFooter())

	if m.CountModal.IsVisible() {
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.CountModal.View())
	}

	return view
}

// renderBrowser renders the table, with the inspector beside it when shown
func (m Model) renderBrowser() string {
	layout := m.calculateColumnLayout(m.Width)
	if layout.inspectorWidth == 0 {
		return m.Table.View()
	}

	inspector := m.Inspector
	if a := m.Table.SelectedArtwork(); a != nil {
		inspector.SetArtwork(a, m.Table.IsChecked(a.ID))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, m.Table.View(), inspector.View())
}

// renderFooter renders a single-line footer: status on the left, paging and
// selection in the center, key hints on the right
func (m Model) renderFooter() string {
	var left string
	switch {
	case m.Loading:
		left = m.Spinner.View() + " " + styles.DimStyle.Render(fmt.Sprintf("Loading page %d...", m.CurrentPage))
	case m.StatusMsg != "":
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.SuccessStyle.Render(m.StatusMsg)
		}
	}

	center := m.renderSelectionSummary()

	right := styles.AccentStyle.Render("?") + styles.DimStyle.Render(" help")
	if m.ShowKeyHelp && m.Width >= 120 {
		right = m.Help.ShortHelpView(Keys.ShortHelp())
	}

	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(center)
	rightWidth := lipgloss.Width(right)

	if leftWidth+centerWidth+rightWidth >= m.Width {
		// Not enough space: drop the left side
		gap := max(m.Width-centerWidth-rightWidth, 1)
		return center + strings.Repeat(" ", gap) + right
	}

	available := m.Width - leftWidth - rightWidth
	leftPad := (available - centerWidth) / 2
	rightPad := available - centerWidth - leftPad

	return left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right
}

// renderSelectionSummary renders "page X of Y  ••  N selected · M pending"
func (m Model) renderSelectionSummary() string {
	pageInfo := fmt.Sprintf("page %d", m.CurrentPage)
	if m.TotalPages > 0 {
		pageInfo = fmt.Sprintf("page %d of %d", m.CurrentPage, m.TotalPages)
	}

	parts := []string{styles.SubtitleStyle.Render(pageInfo)}
	if m.TotalPages > 1 {
		parts = append(parts, m.Paginator.View())
	}

	count := m.Selection.Count()
	if count > 0 {
		parts = append(parts, styles.AccentStyle.Render(fmt.Sprintf("%d selected", count)))
	} else {
		parts = append(parts, styles.DimStyle.Render("none selected"))
	}

	if quota, n := m.Selection.PendingTotal(); n > 0 {
		pages := "pages"
		if n == 1 {
			pages = "page"
		}
		parts = append(parts, styles.PendingStyle.Render(
			fmt.Sprintf("+%d pending on %d %s", quota, n, pages)))
	}

	if m.SelectionLocked {
		parts = append(parts, styles.DimStyle.Render("locked"))
	}

	return strings.Join(parts, styles.DimStyle.Render("  ·  "))
}

// renderError renders the error screen shown when no page could be loaded
func (m Model) renderError() string {
	msg := "Something went wrong"
	if m.Err != nil {
		msg = describeError(m.Err)
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.ErrorStyle.Bold(true).Render(msg),
		"",
		styles.HelpKeyStyle.Render("r")+styles.HelpDescStyle.Render(" retry   ")+
			styles.HelpKeyStyle.Render("q")+styles.HelpDescStyle.Render(" quit"),
	)
	return styles.ModalStyle.Render(body)
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render("Keys"),
		m.Help.FullHelpView(Keys.FullHelp()),
		"",
		styles.DimStyle.Render("Selections are kept across pages. Press s to select the"),
		styles.DimStyle.Render("first N artworks of the whole collection; pages not yet"),
		styles.DimStyle.Render("visited are selected when you reach them."),
		"",
		styles.DimStyle.Render("Press esc to return..."),
	)

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(body))
}

// describeError turns a load error into a short user-facing message
func describeError(err error) string {
	switch {
	case errors.Is(err, domain.ErrServerOffline):
		return "Cannot reach the catalog server"
	case errors.Is(err, domain.ErrRateLimited):
		return "Rate limited by the catalog, wait a moment and retry"
	case errors.Is(err, domain.ErrPageNotFound):
		return "That page does not exist"
	case errors.Is(err, domain.ErrInvalidPage):
		return "Invalid page number"
	default:
		return err.Error()
	}
}
