// Package selection tracks which catalog records are selected across pages
// of a dataset that is only ever loaded one page at a time.
//
// A Manager owns two structures for the lifetime of a browsing session:
//   - the global Set of selected identifiers, independent of the visible page
//   - a Plan of per-page quotas left over from a bulk "select N" request,
//     resolved lazily as each page is loaded
//
// Manager is not safe for concurrent use. It is driven from a single event
// loop (the TUI Update method) and every method runs to completion.
package selection

import "log/slog"

// Manager reconciles the global Set, the Plan and the visible page.
// K is the record identifier, R the record type.
type Manager[K comparable, R any] struct {
	pageSize int
	key      func(R) K
	logger   *slog.Logger

	selected Set[K]
	plan     Plan
	pending  int // Sum of plan quotas

	// The snapshot currently displayed. Only one page is held at a time.
	page     int
	snapshot []R
}

// NewManager creates a Manager with an empty Set and Plan.
func NewManager[K comparable, R any](pageSize int, key func(R) K, logger *slog.Logger) *Manager[K, R] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager[K, R]{
		pageSize: pageSize,
		key:      key,
		logger:   logger,
		selected: make(Set[K]),
		plan:     make(Plan),
	}
}

// OnPageLoaded is called once a page fetch completes. A pending quota for
// the page is applied and consumed; otherwise the Set is left untouched.
// Returns the records of the page that should be shown as selected.
func (m *Manager[K, R]) OnPageLoaded(page int, snapshot []R) []R {
	m.page, m.snapshot = page, snapshot

	if quota, ok := m.plan[page]; ok {
		m.applyQuota(page, snapshot, quota)
	}
	return m.Displayed()
}

// OnManualSelectionChanged replaces the selection of the visible page with
// checked, the complete list of checked records on that page. Any pending
// quota for the page is discarded for good.
//
// If page is not the held snapshot's page, only the additions in checked
// are applied since the previous members of that page are unknown.
func (m *Manager[K, R]) OnManualSelectionChanged(page int, checked []R) {
	if page == m.page {
		for _, r := range m.snapshot {
			m.selected.Remove(m.key(r))
		}
	}
	for _, r := range checked {
		m.selected.Add(m.key(r))
	}

	if _, ok := m.plan[page]; ok {
		m.dropQuota(page)
		m.logger.Debug("manual selection overrode quota", "page", page)
	}
}

// RequestBulkSelect replaces the whole selection with the first n records of
// the dataset. total is the known or estimated dataset size (0 if unknown).
// The quota for the visible page is resolved at once against snapshot; the
// rest stays in the Plan until those pages load.
func (m *Manager[K, R]) RequestBulkSelect(n, page int, snapshot []R, total int) []R {
	m.selected = make(Set[K])
	m.plan = BuildPlan(n, total, m.pageSize)
	m.pending = m.plan.Total()
	m.page, m.snapshot = page, snapshot

	m.logger.Debug("built selection plan",
		"requested", n, "total", total, "pages", len(m.plan), "planned", m.pending)

	if quota, ok := m.plan[page]; ok {
		m.applyQuota(page, snapshot, quota)
	}
	return m.Displayed()
}

// applyQuota selects the first quota records of page, clearing whatever the
// Set held for that page before. The plan entry is consumed even when the
// snapshot is shorter than the quota.
func (m *Manager[K, R]) applyQuota(page int, snapshot []R, quota int) {
	take := snapshot[:min(quota, len(snapshot))]

	for _, r := range snapshot {
		m.selected.Remove(m.key(r))
	}
	for _, r := range take {
		m.selected.Add(m.key(r))
	}
	m.dropQuota(page)

	if len(take) < quota {
		m.logger.Debug("quota under-filled", "page", page, "quota", quota, "selected", len(take))
	}
}

// IsSelected reports whether id is in the global Set.
func (m *Manager[K, R]) IsSelected(id K) bool {
	return m.selected.Has(id)
}

// Displayed returns the selected records of the held snapshot.
func (m *Manager[K, R]) Displayed() []R {
	return DisplayedSelection(m.page, m.snapshot, m.key, m.selected, m.plan)
}

// Page returns the page number of the held snapshot, 0 before any load.
func (m *Manager[K, R]) Page() int { return m.page }

// Count returns the number of selected identifiers across all pages.
// Pending quotas are not included; see PendingTotal.
func (m *Manager[K, R]) Count() int { return m.selected.Len() }

// Selected returns the selected identifiers in unspecified order.
func (m *Manager[K, R]) Selected() []K { return m.selected.Slice() }

// PendingPlan returns a copy of the unresolved quotas.
func (m *Manager[K, R]) PendingPlan() Plan { return m.plan.Clone() }

// PendingTotal returns the sum of the unresolved quotas and the number of
// pages they are spread over. It neither copies nor walks the Plan.
func (m *Manager[K, R]) PendingTotal() (quota, pages int) {
	return m.pending, len(m.plan)
}

func (m *Manager[K, R]) dropQuota(page int) {
	m.pending -= m.plan[page]
	delete(m.plan, page)
}

// Clear drops the whole selection and any pending quotas.
func (m *Manager[K, R]) Clear() {
	m.selected = make(Set[K])
	m.plan = make(Plan)
	m.pending = 0
}

// DisplayedSelection derives which records of snapshot are shown as selected:
// the leading quota records if page still has a pending quota, otherwise the
// records whose identifiers are in set. Order follows snapshot.
func DisplayedSelection[K comparable, R any](page int, snapshot []R, key func(R) K, set Set[K], plan Plan) []R {
	if quota, ok := plan[page]; ok {
		out := make([]R, min(quota, len(snapshot)))
		copy(out, snapshot)
		return out
	}

	out := make([]R, 0, len(snapshot))
	for _, r := range snapshot {
		if set.Has(key(r)) {
			out = append(out, r)
		}
	}
	return out
}
