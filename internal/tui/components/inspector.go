package components

import (
	"fmt"
	"strings"

	"github.com/mmcdole/gallery/internal/domain"
	"github.com/mmcdole/gallery/internal/tui/styles"
)

// Layout constants for inspector
const (
	InspectorBorderHeight     = 2
	InspectorScrollIndicators = 2

	// Body text wraps at this width even in wide panes
	maxBodyWidth = 72
)

// inspectorContent holds the three-zone layout content
type inspectorContent struct {
	header string // fixed top
	body   string // clipped middle
	footer string // fixed bottom
}

// Inspector displays the full record of the artwork under the cursor
type Inspector struct {
	artwork    *domain.Artwork
	selected   bool
	width      int
	height     int
	maxVisible int // max visible lines
}

// NewInspector creates a new inspector component
func NewInspector() Inspector {
	return Inspector{}
}

// SetArtwork sets the artwork to display and whether it is selected
func (i *Inspector) SetArtwork(a *domain.Artwork, selected bool) {
	i.artwork = a
	i.selected = selected
}

// SetSize updates the component dimensions
func (i *Inspector) SetSize(width, height int) {
	i.width = width
	i.height = height
	// Reserve border, scroll indicators, title and the blank line below it
	i.maxVisible = max(height-InspectorBorderHeight-InspectorScrollIndicators-2, 1)
}

// HasArtwork returns true if there is an artwork to display
func (i Inspector) HasArtwork() bool {
	return i.artwork != nil
}

// View renders the component
func (i Inspector) View() string {
	style := styles.InactiveBorder

	// Border takes 2 chars (1 each side), leave 1 char safety margin
	contentWidth := max(i.width-3, 10)
	content := i.render(contentWidth)

	titleLine := styles.AccentStyle.Render(styles.Truncate("Details", contentWidth))

	headerLines := splitLines(content.header)
	footerLines := splitLines(content.footer)
	bodyLines := splitLines(content.body)

	availableForBody := max(i.maxVisible-len(headerLines)-len(footerLines), 1)

	visibleBody := bodyLines
	more := " "
	if len(bodyLines) > availableForBody {
		visibleBody = bodyLines[:availableForBody]
		more = styles.DimStyle.Render("↓ more")
	}

	parts := []string{titleLine, ""}
	if len(headerLines) > 0 {
		parts = append(parts, headerLines...)
	}
	parts = append(parts, " ")
	parts = append(parts, visibleBody...)

	// Pin the footer to the bottom
	for j := len(visibleBody); j < availableForBody; j++ {
		parts = append(parts, "")
	}
	parts = append(parts, more)
	parts = append(parts, footerLines...)

	frameW, frameH := style.GetFrameSize()

	return style.
		Width(max(i.width-frameW, 0)).
		Height(max(i.height-frameH, 0)).
		Render(strings.Join(parts, "\n"))
}

func (i Inspector) render(width int) inspectorContent {
	if i.artwork == nil {
		return inspectorContent{body: styles.DimStyle.Render("No artwork under the cursor")}
	}
	a := *i.artwork
	return inspectorContent{
		header: renderArtworkHeader(a, i.selected, width),
		body:   renderArtworkBody(a, width),
		footer: renderArtworkFooter(a, width),
	}
}

func renderArtworkHeader(a domain.Artwork, selected bool, width int) string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(styles.Truncate(a.Title, width)))
	b.WriteString("\n")

	if artist := a.Artist(); artist != "" {
		b.WriteString(styles.SubtitleStyle.Render(styles.Truncate(artist, width)))
		b.WriteString("\n")
	}

	// Meta line: Date · Place
	var meta []string
	if d := a.DateRange(); d != "" {
		meta = append(meta, d)
	}
	if a.PlaceOfOrigin != "" {
		meta = append(meta, a.PlaceOfOrigin)
	}
	if len(meta) > 0 {
		b.WriteString(styles.DimStyle.Render(styles.Truncate(strings.Join(meta, " · "), width)))
		b.WriteString("\n")
	}

	status := "Not selected"
	if selected {
		status = "Selected"
	}
	b.WriteString(styles.RenderCheckbox(selected) + " " + styles.DimStyle.Render(status))

	return b.String()
}

func renderArtworkBody(a domain.Artwork, width int) string {
	bodyWidth := min(width-2, maxBodyWidth)

	var sections []string

	// Lines after the first carry nationality and life dates
	if _, rest, ok := strings.Cut(a.ArtistDisplay, "\n"); ok && strings.TrimSpace(rest) != "" {
		sections = append(sections, styles.SubtitleStyle.Render(wordWrap(rest, bodyWidth)))
	}

	if a.Inscriptions != "" {
		sections = append(sections,
			styles.DimStyle.Render("Inscriptions")+"\n"+
				styles.SubtitleStyle.Render(wordWrap(a.Inscriptions, bodyWidth)))
	}

	return strings.Join(sections, "\n\n")
}

func renderArtworkFooter(a domain.Artwork, width int) string {
	var b strings.Builder
	b.WriteString(styles.DimStyle.Render(strings.Repeat("─", width)))
	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render(fmt.Sprintf("#%d", a.ID)))
	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render(styles.Truncate(fmt.Sprintf("artic.edu/artworks/%d", a.ID), width)))
	return b.String()
}

// splitLines splits a string into lines, returning empty slice for empty string
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// wordWrap wraps text to the specified width
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	words := strings.Fields(text)
	lineLen := 0

	for i, word := range words {
		wordLen := len([]rune(word))

		if lineLen+wordLen+1 > width && lineLen > 0 {
			result.WriteString("\n")
			lineLen = 0
		}

		if i > 0 && lineLen > 0 {
			result.WriteString(" ")
			lineLen++
		}

		result.WriteString(word)
		lineLen += wordLen
	}

	return result.String()
}
