package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	GalleryRed = lipgloss.Color("#B50938")
	Stone      = lipgloss.Color("#1C1917")
	StoneLight = lipgloss.Color("#44403C")
	DimGray    = lipgloss.Color("#78716C")
	LightGray  = lipgloss.Color("#A8A29E")
	White      = lipgloss.Color("#FAFAF9")
	Green      = lipgloss.Color("#10B981")
	Red        = lipgloss.Color("#EF4444")
	Amber      = lipgloss.Color("#F59E0B")
)

// Borders
var (
	ActiveBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(GalleryRed)

	InactiveBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray)
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(GalleryRed)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)

	PendingStyle = lipgloss.NewStyle().
			Foreground(Amber)
)

// Raw checkbox characters (unstyled)
const (
	CheckedChar   = "[x]"
	UncheckedChar = "[ ]"
	PartialChar   = "[-]"
)

// Checkbox styles
var (
	CheckedStyle   = lipgloss.NewStyle().Foreground(GalleryRed).Bold(true)
	UncheckedStyle = lipgloss.NewStyle().Foreground(DimGray)
	PartialStyle   = lipgloss.NewStyle().Foreground(Amber)
)

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(GalleryRed).
			Padding(1, 2).
			Background(Stone)

	ModalTitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true).
			MarginBottom(1)
)

// Help styles
var (
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(GalleryRed)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// Spinner style
var (
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(GalleryRed)
)

// Filter styles
var (
	FilterStyle = lipgloss.NewStyle().
			Foreground(GalleryRed)

	FilterPromptStyle = lipgloss.NewStyle().
				Foreground(GalleryRed).
				Bold(true)
)

// Helper functions

// Truncate truncates a string to the given width with ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

// Pad pads a string to the given width
func Pad(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return string(runes[:width])
	}
	return s + strings.Repeat(" ", width-len(runes))
}

// RenderCheckbox renders a row checkbox
func RenderCheckbox(checked bool) string {
	if checked {
		return CheckedStyle.Render(CheckedChar)
	}
	return UncheckedStyle.Render(UncheckedChar)
}

// RenderListRow renders a complete list row with uniform background when selected.
// Each part is styled explicitly to avoid ANSI reset code issues.
func RenderListRow(parts []RowPart, selected bool, width int) string {
	bg := StoneLight
	defaultFg := LightGray
	selectedFg := White

	var b strings.Builder
	visibleLen := 0

	for _, part := range parts {
		style := lipgloss.NewStyle()
		if part.Foreground != nil {
			style = style.Foreground(*part.Foreground)
		} else if selected {
			style = style.Foreground(selectedFg)
		} else {
			style = style.Foreground(defaultFg)
		}
		if selected {
			style = style.Background(bg)
		}
		b.WriteString(style.Render(part.Text))
		visibleLen += lipgloss.Width(part.Text)
	}

	// Fill width (subtract 2 for left/right margin)
	paddingNeeded := width - visibleLen - 2
	if paddingNeeded > 0 {
		padStyle := lipgloss.NewStyle()
		if selected {
			padStyle = padStyle.Background(bg)
		}
		b.WriteString(padStyle.Render(strings.Repeat(" ", paddingNeeded)))
	}

	marginStyle := lipgloss.NewStyle()
	if selected {
		marginStyle = marginStyle.Background(bg)
	}
	margin := marginStyle.Render(" ")

	return margin + b.String() + margin
}

// RowPart represents a part of a row with optional foreground color
type RowPart struct {
	Text       string
	Foreground *lipgloss.Color
}
