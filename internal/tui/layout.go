package tui

// Layout constants
const (
	// Share of the width given to the inspector when shown
	InspectorColumnPercent = 35

	// Columns never shrink below this width
	MinColumnWidth = 30
)

// columnLayout holds calculated column widths for the View
type columnLayout struct {
	tableWidth     int
	inspectorWidth int // 0 if not shown
}

// calculateColumnLayout splits the width between table and inspector. The
// inspector is dropped when both cannot get MinColumnWidth.
func (m Model) calculateColumnLayout(availableWidth int) columnLayout {
	if !m.ShowInspector || availableWidth < 2*MinColumnWidth {
		return columnLayout{tableWidth: availableWidth}
	}

	inspectorWidth := max(availableWidth*InspectorColumnPercent/100, MinColumnWidth)
	tableWidth := availableWidth - inspectorWidth
	if tableWidth < MinColumnWidth {
		tableWidth = MinColumnWidth
		inspectorWidth = availableWidth - tableWidth
	}
	return columnLayout{tableWidth: tableWidth, inspectorWidth: inspectorWidth}
}

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}

	contentHeight := m.Height - ChromeHeight
	layout := m.calculateColumnLayout(m.Width)

	m.Table.SetSize(layout.tableWidth, contentHeight)
	if layout.inspectorWidth > 0 {
		m.Inspector.SetSize(layout.inspectorWidth, contentHeight)
	}
	m.Help.Width = m.Width
}
