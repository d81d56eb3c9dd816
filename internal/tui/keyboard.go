package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Route to active modal if any
	if m.CountModal.IsVisible() {
		var cmd tea.Cmd
		var submitted bool
		m.CountModal, cmd, submitted = m.CountModal.Update(msg)
		if submitted {
			n, _ := m.CountModal.Value()
			m.CountModal.Hide()
			cmd = m.bulkSelect(n)
			return m, cmd
		}
		return m, cmd
	}

	if m.HelpVisible {
		if key.Matches(msg, Keys.Escape, Keys.Help, Keys.Quit) {
			m.HelpVisible = false
		}
		return m, nil
	}

	// Filter typing swallows everything but ctrl+c
	if m.Table.IsFilterTyping() && msg.Type != tea.KeyCtrlC {
		return m, m.Table.Update(msg)
	}

	// Global keys
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.HelpVisible = true
		return m, nil
	}

	switch m.State {
	case StateLoading:
		return m, nil

	case StateError:
		if key.Matches(msg, Keys.Refresh) {
			return m.reloadPage()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, Keys.Escape):
		if m.Table.IsFiltering() {
			m.Table.ClearFilter()
		}
		return m, nil

	case key.Matches(msg, Keys.Filter):
		return m, m.Table.ToggleFilter()

	// Paging
	case key.Matches(msg, Keys.NextPage):
		return m.gotoPage(m.CurrentPage + 1)
	case key.Matches(msg, Keys.PrevPage):
		return m.gotoPage(m.CurrentPage - 1)
	case key.Matches(msg, Keys.FirstPage):
		return m.gotoPage(1)
	case key.Matches(msg, Keys.LastPage):
		if m.TotalPages > 0 {
			return m.gotoPage(m.TotalPages)
		}
		return m, nil

	// Selection
	case key.Matches(msg, Keys.Lock):
		m.SelectionLocked = !m.SelectionLocked
		m.StatusMsg = "Selection unlocked"
		if m.SelectionLocked {
			m.StatusMsg = "Selection locked"
		}
		m.StatusIsErr = false
		return m, ClearStatusCmd(statusTimeout)
	case m.SelectionLocked && key.Matches(msg, Keys.Toggle, Keys.ToggleAll, Keys.BulkSelect, Keys.Clear):
		m.StatusMsg = "Selection is locked, press L to unlock"
		m.StatusIsErr = true
		return m, ClearStatusCmd(statusTimeout)
	case key.Matches(msg, Keys.Toggle):
		if checked, ok := m.Table.ToggleCursor(); ok {
			m.applyManual(checked)
		}
		return m, nil
	case key.Matches(msg, Keys.ToggleAll):
		m.applyManual(m.Table.ToggleAll())
		return m, nil
	case key.Matches(msg, Keys.BulkSelect):
		if m.Total <= 0 {
			m.StatusMsg = "Total number of artworks is not known yet"
			m.StatusIsErr = true
			return m, ClearStatusCmd(statusTimeout)
		}
		cmd := m.CountModal.Show(m.Total)
		return m, cmd
	case key.Matches(msg, Keys.Clear):
		m.Selection.Clear()
		m.Table.SetChecked(nil)
		m.StatusMsg = "Selection cleared"
		m.StatusIsErr = false
		return m, ClearStatusCmd(statusTimeout)

	// Actions
	case key.Matches(msg, Keys.Inspect):
		m.ShowInspector = !m.ShowInspector
		m.updateLayout()
		return m, nil
	case key.Matches(msg, Keys.Open):
		if a := m.Table.SelectedArtwork(); a != nil && m.Opener != nil {
			return m, OpenArtworkCmd(m.Opener, *a)
		}
		return m, nil
	case key.Matches(msg, Keys.Refresh):
		return m.reloadPage()
	}

	// Row movement
	return m, m.Table.Update(msg)
}
