package components

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/gallery/internal/tui/styles"
)

// CountModal asks for the number of rows to select across the dataset
type CountModal struct {
	visible bool
	title   string
	max     int
	input   textinput.Model
}

// NewCountModal creates a new select rows modal
func NewCountModal() CountModal {
	ti := textinput.New()
	ti.Placeholder = "Number of rows..."
	ti.CharLimit = 9
	ti.Width = 30
	ti.Prompt = ""
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return CountModal{
		title: "Select rows",
		input: ti,
	}
}

// Show displays the modal. max is the number of records in the dataset.
func (m *CountModal) Show(max int) tea.Cmd {
	m.visible = true
	m.max = max
	m.input.SetValue("")
	return m.input.Focus()
}

// Hide dismisses the modal
func (m *CountModal) Hide() {
	m.visible = false
	m.input.Blur()
}

// IsVisible returns whether the modal is shown
func (m CountModal) IsVisible() bool {
	return m.visible
}

// Value returns the entered count and whether it can be submitted:
// a number in [1, max].
func (m CountModal) Value() (int, bool) {
	n, err := strconv.Atoi(m.input.Value())
	if err != nil {
		return 0, false
	}
	return n, n > 0 && n <= m.max
}

// Update handles input events, returns (modal, cmd, submitted).
// Enter only submits a valid count; the modal stays open otherwise.
func (m CountModal) Update(msg tea.Msg) (CountModal, tea.Cmd, bool) {
	if !m.visible {
		return m, nil, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, CountModalKeys.Submit):
			_, valid := m.Value()
			return m, nil, valid
		case key.Matches(keyMsg, CountModalKeys.Cancel):
			m.Hide()
			return m, nil, false
		case keyMsg.Type == tea.KeyRunes && !digitsOnly(keyMsg.Runes):
			return m, nil, false
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd, false
}

// View renders the modal
func (m CountModal) View() string {
	if !m.visible {
		return ""
	}

	const modalWidth = 36

	titleStyle := lipgloss.NewStyle().
		Foreground(styles.White).
		Bold(true).
		Width(modalWidth).
		Background(styles.Stone)

	lineStyle := lipgloss.NewStyle().
		Width(modalWidth).
		Background(styles.Stone)

	hint := styles.DimStyle.Render(fmt.Sprintf("1 - %d", m.max))
	if m.input.Value() != "" {
		if _, ok := m.Value(); !ok {
			hint = styles.ErrorStyle.Render(fmt.Sprintf("enter a number from 1 to %d", m.max))
		} else {
			hint = styles.DimStyle.Render("enter to select, esc to cancel")
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(m.title),
		lineStyle.Render(""),
		lineStyle.Render(m.input.View()),
		lineStyle.Render(hint),
	)

	return styles.ModalStyle.Render(content)
}

func digitsOnly(runes []rune) bool {
	for _, r := range runes {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
