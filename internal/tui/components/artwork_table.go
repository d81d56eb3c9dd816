package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/gallery/internal/domain"
	"github.com/mmcdole/gallery/internal/search"
	"github.com/mmcdole/gallery/internal/tui/styles"
)

// Layout constants
const (
	BorderWidth  = 2
	BorderHeight = 2

	// Title line plus column header, and the scroll indicators around the rows
	HeaderLines          = 2
	ScrollIndicatorLines = 2

	dateWidth = 11
)

// HeaderState is the state of the header checkbox
type HeaderState int

const (
	HeaderNone HeaderState = iota
	HeaderSome
	HeaderAll
)

// ArtworkTable renders one page of artworks with a checkbox per row.
// It only displays check state; the selection itself lives elsewhere.
type ArtworkTable struct {
	artworks []domain.Artwork
	checked  map[int]bool

	// Cursor
	cursor     int
	offset     int
	maxVisible int

	// Dimensions
	width   int
	height  int
	focused bool

	title string

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	matches      []search.Match // nil = not filtered
}

// NewArtworkTable creates an empty table
func NewArtworkTable() *ArtworkTable {
	ti := textinput.New()
	ti.Placeholder = "title, artist or place..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return &ArtworkTable{
		checked:     make(map[int]bool),
		filterInput: ti,
		focused:     true,
	}
}

// SetArtworks replaces the rows. An active filter is re-applied to the new rows.
func (t *ArtworkTable) SetArtworks(artworks []domain.Artwork) {
	t.artworks = artworks
	t.cursor = 0
	t.offset = 0
	if t.filterActive {
		t.applyFilter()
	}
}

// Artworks returns all rows of the page, filtered or not
func (t *ArtworkTable) Artworks() []domain.Artwork {
	return t.artworks
}

// SetChecked sets which rows show a checked box
func (t *ArtworkTable) SetChecked(checked []domain.Artwork) {
	t.checked = make(map[int]bool, len(checked))
	for _, a := range checked {
		t.checked[a.ID] = true
	}
}

// IsChecked reports whether the row with id shows a checked box
func (t *ArtworkTable) IsChecked(id int) bool {
	return t.checked[id]
}

// ToggleCursor returns the complete checked list of the page after flipping
// the row under the cursor. ok is false when there is no row.
func (t *ArtworkTable) ToggleCursor() (checked []domain.Artwork, ok bool) {
	a := t.SelectedArtwork()
	if a == nil {
		return nil, false
	}
	for _, row := range t.artworks {
		on := t.checked[row.ID]
		if row.ID == a.ID {
			on = !on
		}
		if on {
			checked = append(checked, row)
		}
	}
	return checked, true
}

// ToggleAll returns the checked list after clicking the header checkbox:
// every row when not all are checked, none otherwise.
func (t *ArtworkTable) ToggleAll() []domain.Artwork {
	if t.HeaderState() == HeaderAll {
		return []domain.Artwork{}
	}
	return append([]domain.Artwork(nil), t.artworks...)
}

// HeaderState summarizes the check state of the whole page
func (t *ArtworkTable) HeaderState() HeaderState {
	n := 0
	for _, a := range t.artworks {
		if t.checked[a.ID] {
			n++
		}
	}
	switch {
	case n == 0:
		return HeaderNone
	case n == len(t.artworks):
		return HeaderAll
	default:
		return HeaderSome
	}
}

// SelectedArtwork returns the row under the cursor
func (t *ArtworkTable) SelectedArtwork() *domain.Artwork {
	if t.ItemCount() == 0 {
		return nil
	}
	return &t.artworks[t.mapIndex(t.cursor)]
}

// SelectedIndex returns the cursor position among visible rows
func (t *ArtworkTable) SelectedIndex() int {
	return t.cursor
}

// ItemCount returns the number of visible rows
func (t *ArtworkTable) ItemCount() int {
	if t.matches != nil {
		return len(t.matches)
	}
	return len(t.artworks)
}

// SetTitle sets the header title
func (t *ArtworkTable) SetTitle(title string) {
	t.title = title
}

// SetFocused toggles the focused border
func (t *ArtworkTable) SetFocused(focused bool) {
	t.focused = focused
}

// SetSize sets the outer size of the table including its border
func (t *ArtworkTable) SetSize(width, height int) {
	t.width = width
	t.height = height
	t.recalcMaxVisible()
	t.ensureVisible()
}

// ToggleFilter activates the filter input
func (t *ArtworkTable) ToggleFilter() tea.Cmd {
	t.filterActive = true
	t.recalcMaxVisible()
	return t.filterInput.Focus()
}

// IsFiltering returns true if filter mode is active
func (t *ArtworkTable) IsFiltering() bool {
	return t.filterActive
}

// IsFilterTyping returns true if filter is active AND input is focused
func (t *ArtworkTable) IsFilterTyping() bool {
	return t.filterActive && t.filterInput.Focused()
}

// ClearFilter deactivates the filter and shows all rows
func (t *ArtworkTable) ClearFilter() {
	t.filterActive = false
	t.filterQuery = ""
	t.matches = nil
	t.filterInput.SetValue("")
	t.filterInput.Blur()
	t.recalcMaxVisible()
}

// Update handles cursor movement and filter typing
func (t *ArtworkTable) Update(msg tea.Msg) tea.Cmd {
	keyMsg, isKey := msg.(tea.KeyMsg)

	// Typing mode: keys go to the filter input
	if t.IsFilterTyping() {
		if isKey {
			switch {
			case key.Matches(keyMsg, TableKeys.Escape):
				t.ClearFilter()
				return nil
			case key.Matches(keyMsg, TableKeys.Enter):
				// Accept filter, blur input to allow navigation
				t.filterInput.Blur()
				return nil
			case keyMsg.Type == tea.KeyBackspace && t.filterInput.Value() == "":
				t.ClearFilter()
				return nil
			}
		}

		var cmd tea.Cmd
		t.filterInput, cmd = t.filterInput.Update(msg)
		t.applyFilter()
		return cmd
	}

	if !isKey {
		return nil
	}

	if t.filterActive {
		switch {
		case key.Matches(keyMsg, TableKeys.Escape):
			t.ClearFilter()
			return nil
		case key.Matches(keyMsg, TableKeys.Filter):
			return t.filterInput.Focus()
		}
	}

	count := t.ItemCount()
	if count == 0 {
		return nil
	}

	switch {
	case key.Matches(keyMsg, TableKeys.Down):
		if t.cursor < count-1 {
			t.cursor++
		}
	case key.Matches(keyMsg, TableKeys.Up):
		if t.cursor > 0 {
			t.cursor--
		}
	case key.Matches(keyMsg, TableKeys.Top):
		t.cursor = 0
	case key.Matches(keyMsg, TableKeys.Bottom):
		t.cursor = count - 1
	case key.Matches(keyMsg, TableKeys.HalfDown):
		t.cursor = min(t.cursor+max(t.maxVisible/2, 1), count-1)
	case key.Matches(keyMsg, TableKeys.HalfUp):
		t.cursor = max(t.cursor-max(t.maxVisible/2, 1), 0)
	}
	t.ensureVisible()
	return nil
}

// View renders the bordered table
func (t *ArtworkTable) View() string {
	style := styles.InactiveBorder
	if t.focused {
		style = styles.ActiveBorder
	}

	frameW, frameH := style.GetFrameSize()

	return style.
		Width(max(t.width-frameW, 0)).
		Height(max(t.height-frameH, 0)).
		Render(t.renderContent())
}

// Internal methods

func (t *ArtworkTable) recalcMaxVisible() {
	interiorHeight := t.height - BorderHeight
	t.maxVisible = interiorHeight - ScrollIndicatorLines - HeaderLines
	if t.filterActive {
		t.maxVisible--
	}
	if t.maxVisible < 1 {
		t.maxVisible = 1
	}
}

func (t *ArtworkTable) ensureVisible() {
	if t.maxVisible <= 0 {
		return
	}
	if t.cursor < t.offset {
		t.offset = t.cursor
	}
	if t.cursor >= t.offset+t.maxVisible {
		t.offset = t.cursor - t.maxVisible + 1
	}
}

func (t *ArtworkTable) applyFilter() {
	t.filterQuery = t.filterInput.Value()
	t.matches = search.Filter(t.filterQuery, t.artworks)

	// Reset cursor to first match
	t.cursor = 0
	t.offset = 0
}

func (t *ArtworkTable) mapIndex(i int) int {
	if t.matches != nil && i < len(t.matches) {
		return t.matches[i].Index
	}
	return i
}

func (t *ArtworkTable) matchedIndexes(i int) []int {
	if t.matches != nil && i < len(t.matches) {
		return t.matches[i].MatchedIndexes
	}
	return nil
}

// Rendering

func (t *ArtworkTable) renderContent() string {
	itemWidth := max(t.width-BorderWidth, 20)

	titleLine := styles.AccentStyle.Render(styles.Truncate(t.title, itemWidth))
	header := t.renderHeader(itemWidth)

	count := t.ItemCount()
	if count == 0 {
		emptyMsg := styles.DimStyle.Render("No artworks")
		if t.filterActive && t.filterQuery != "" {
			emptyMsg = styles.DimStyle.Render("No matches")
		}
		content := titleLine + "\n" + header + "\n" + " " + "\n" + emptyMsg
		if t.filterActive {
			content += "\n" + t.renderFilterBar()
		}
		return content
	}

	end := min(t.offset+t.maxVisible, count)

	lines := make([]string, 0, end-t.offset)
	for i := t.offset; i < end; i++ {
		idx := t.mapIndex(i)
		lines = append(lines, t.renderRow(t.artworks[idx], t.matchedIndexes(i), i == t.cursor, itemWidth))
	}

	// Always reserve the indicator lines to prevent layout shifts
	above := " "
	if t.offset > 0 {
		above = styles.DimStyle.Render("↑ more")
	}
	below := " "
	if end < count {
		below = styles.DimStyle.Render("↓ more")
	}

	content := titleLine + "\n" + header + "\n" + above + "\n" + strings.Join(lines, "\n") + "\n" + below

	if t.filterActive {
		content += "\n" + t.renderFilterBar()
	}

	return content
}

// columnWidths splits the row width into title and artist columns
func columnWidths(width int) (titleW, artistW int) {
	// margins(2) + checkbox(3) + 3 gaps
	avail := max(width-2-3-3-dateWidth, 10)
	titleW = avail * 55 / 100
	return titleW, avail - titleW
}

func (t *ArtworkTable) renderHeader(width int) string {
	var box string
	switch t.HeaderState() {
	case HeaderAll:
		box = styles.CheckedStyle.Render(styles.CheckedChar)
	case HeaderSome:
		box = styles.PartialStyle.Render(styles.PartialChar)
	default:
		box = styles.UncheckedStyle.Render(styles.UncheckedChar)
	}
	titleW, artistW := columnWidths(width)
	labels := fmt.Sprintf(" %s %s %s", styles.Pad("Title", titleW), styles.Pad("Artist", artistW), styles.Pad("Date", dateWidth))
	return " " + box + styles.SubtitleStyle.Bold(true).Render(labels)
}

func (t *ArtworkTable) renderRow(a domain.Artwork, matched []int, selected bool, width int) string {
	titleW, artistW := columnWidths(width)

	var boxChar string
	var boxFg lipgloss.Color
	if t.checked[a.ID] {
		boxChar, boxFg = styles.CheckedChar, styles.GalleryRed
	} else {
		boxChar, boxFg = styles.UncheckedChar, styles.DimGray
	}

	parts := []styles.RowPart{
		{Text: boxChar, Foreground: &boxFg},
		{Text: " "},
	}
	parts = append(parts, highlightParts(styles.Pad(styles.Truncate(a.Title, titleW), titleW), matched)...)

	dim := styles.LightGray
	parts = append(parts,
		styles.RowPart{Text: " " + styles.Pad(styles.Truncate(a.Artist(), artistW), artistW), Foreground: &dim},
		styles.RowPart{Text: " " + styles.Pad(a.DateRange(), dateWidth), Foreground: &dim},
	)

	return styles.RenderListRow(parts, selected, width)
}

// highlightParts splits title into runs so matched characters can be colored
func highlightParts(title string, matched []int) []styles.RowPart {
	if len(matched) == 0 {
		return []styles.RowPart{{Text: title}}
	}

	hit := make(map[int]bool, len(matched))
	for _, i := range matched {
		hit[i] = true
	}

	accent := styles.GalleryRed
	var parts []styles.RowPart
	var run strings.Builder
	runHit := false
	flush := func() {
		if run.Len() == 0 {
			return
		}
		part := styles.RowPart{Text: run.String()}
		if runHit {
			part.Foreground = &accent
		}
		parts = append(parts, part)
		run.Reset()
	}

	// Match indexes are rune positions, which truncation leaves intact
	n := 0
	for _, r := range title {
		if hit[n] != runHit {
			flush()
			runHit = hit[n]
		}
		run.WriteRune(r)
		n++
	}
	flush()
	return parts
}

func (t *ArtworkTable) renderFilterBar() string {
	input := t.filterInput.View()
	if t.filterQuery == "" {
		return input
	}
	return input + styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", t.ItemCount(), len(t.artworks)))
}
