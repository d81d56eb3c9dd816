package selection

import (
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID    string
	Title string
}

func recordKey(r record) string { return r.ID }

// makePage returns records r{from}..r{to} inclusive.
func makePage(from, to int) []record {
	out := make([]record, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, record{ID: fmt.Sprintf("r%d", i), Title: fmt.Sprintf("Artwork %d", i)})
	}
	return out
}

func newTestManager() *Manager[string, record] {
	return NewManager[string, record](12, recordKey, nil)
}

func ids(records []record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func selectedIDs(m *Manager[string, record]) []string {
	out := m.Selected()
	sort.Strings(out)
	return out
}

func sorted(in ...string) []string {
	sort.Strings(in)
	return in
}

func TestNewManager_Empty(t *testing.T) {
	m := newTestManager()

	assert.Zero(t, m.Count())
	assert.Empty(t, m.PendingPlan())
	assert.Empty(t, m.Displayed())
	assert.Zero(t, m.Page())
	assert.False(t, m.IsSelected("r1"))
}

// Scenario A: bulk select spills into a page that is not loaded yet.
func TestRequestBulkSelect_SpillsToNextPage(t *testing.T) {
	m := newTestManager()
	page1 := makePage(1, 12)
	m.OnPageLoaded(1, page1)

	displayed := m.RequestBulkSelect(15, 1, page1, 100)

	assert.Equal(t, ids(page1), ids(displayed))
	assert.Equal(t, sorted(ids(page1)...), selectedIDs(m))
	assert.Equal(t, Plan{2: 3}, m.PendingPlan(), "page 1 resolved at once, page 2 still pending")

	displayed = m.OnPageLoaded(2, makePage(13, 24))

	assert.Equal(t, []string{"r13", "r14", "r15"}, ids(displayed))
	assert.Equal(t, 15, m.Count())
	assert.True(t, m.IsSelected("r1"))
	assert.True(t, m.IsSelected("r15"))
	assert.False(t, m.IsSelected("r16"))
	assert.Empty(t, m.PendingPlan())
}

// Scenario B: request fits inside the visible page.
func TestRequestBulkSelect_WithinPage(t *testing.T) {
	m := newTestManager()
	page1 := makePage(1, 12)

	displayed := m.RequestBulkSelect(5, 1, page1, 100)

	assert.Equal(t, []string{"r1", "r2", "r3", "r4", "r5"}, ids(displayed))
	assert.Equal(t, sorted("r1", "r2", "r3", "r4", "r5"), selectedIDs(m))
	assert.Empty(t, m.PendingPlan())
}

// Scenario C: a manual toggle replaces the page's selection.
func TestOnManualSelectionChanged_ReplacesPageSelection(t *testing.T) {
	m := newTestManager()
	page1 := makePage(1, 12)
	m.RequestBulkSelect(5, 1, page1, 100)

	m.OnManualSelectionChanged(1, []record{page1[2], page1[6]})

	assert.Equal(t, sorted("r3", "r7"), selectedIDs(m))
	assert.Empty(t, m.PendingPlan())
	assert.Equal(t, []string{"r3", "r7"}, ids(m.Displayed()))
}

// Scenario D: request larger than the dataset.
func TestRequestBulkSelect_ExceedsTotal(t *testing.T) {
	m := newTestManager()
	page1 := makePage(1, 10)

	displayed := m.RequestBulkSelect(30, 1, page1, 10)

	assert.Len(t, displayed, 10)
	assert.Equal(t, 10, m.Count())
	assert.Empty(t, m.PendingPlan())
}

func TestRequestBulkSelect_ReplacesPreviousState(t *testing.T) {
	m := newTestManager()
	m.OnPageLoaded(3, makePage(25, 36))
	m.OnManualSelectionChanged(3, makePage(25, 27))
	require.Equal(t, 3, m.Count())

	page1 := makePage(1, 12)
	m.OnPageLoaded(1, page1)
	m.RequestBulkSelect(2, 1, page1, 100)

	assert.Equal(t, sorted("r1", "r2"), selectedIDs(m))
	assert.False(t, m.IsSelected("r25"), "bulk select is not additive")
}

func TestRequestBulkSelect_VisiblePageOutsidePlan(t *testing.T) {
	m := newTestManager()
	page5 := makePage(49, 60)

	displayed := m.RequestBulkSelect(15, 5, page5, 100)

	assert.Empty(t, displayed)
	assert.Zero(t, m.Count())
	assert.Equal(t, Plan{1: 12, 2: 3}, m.PendingPlan())

	displayed = m.OnPageLoaded(1, makePage(1, 12))
	assert.Len(t, displayed, 12)
	assert.Equal(t, Plan{2: 3}, m.PendingPlan())
}

func TestRequestBulkSelect_UnknownTotal(t *testing.T) {
	m := newTestManager()
	page1 := makePage(1, 12)

	m.RequestBulkSelect(20, 1, page1, 0)

	assert.Equal(t, 12, m.Count())
	assert.Equal(t, Plan{2: 8}, m.PendingPlan())
}

func TestRequestBulkSelect_NonPositiveIsEmpty(t *testing.T) {
	m := newTestManager()
	page1 := makePage(1, 12)
	m.RequestBulkSelect(4, 1, page1, 100)

	displayed := m.RequestBulkSelect(0, 1, page1, 100)

	assert.Empty(t, displayed)
	assert.Zero(t, m.Count())
	assert.Empty(t, m.PendingPlan())
}

// P1: applying the same manual selection twice leaves the Set unchanged.
func TestOnManualSelectionChanged_Idempotent(t *testing.T) {
	m := newTestManager()
	page1 := makePage(1, 12)
	m.OnPageLoaded(1, page1)
	checked := []record{page1[0], page1[4], page1[11]}

	m.OnManualSelectionChanged(1, checked)
	first := selectedIDs(m)
	m.OnManualSelectionChanged(1, checked)

	assert.Equal(t, first, selectedIDs(m))
	assert.Equal(t, sorted("r1", "r5", "r12"), first)
}

// P2: sum of pending quotas plus resolved selections equals min(N, total).
func TestRequestBulkSelect_QuotaConservation(t *testing.T) {
	for _, n := range []int{1, 5, 12, 13, 40, 100, 500} {
		m := newTestManager()
		page1 := makePage(1, 12)

		m.RequestBulkSelect(n, 1, page1, 100)

		assert.Equal(t, min(n, 100), m.Count()+m.PendingPlan().Total(), "n=%d", n)
	}
}

// P3: a manual toggle on one page never touches another page's members.
func TestOnManualSelectionChanged_PageLocality(t *testing.T) {
	m := newTestManager()
	page1 := makePage(1, 12)
	page2 := makePage(13, 24)

	m.OnPageLoaded(1, page1)
	m.OnManualSelectionChanged(1, page1[:4])
	m.OnPageLoaded(2, page2)

	m.OnManualSelectionChanged(2, page2[:1])
	m.OnManualSelectionChanged(2, nil)

	for _, r := range page1[:4] {
		assert.True(t, m.IsSelected(r.ID), r.ID)
	}
	for _, r := range page2 {
		assert.False(t, m.IsSelected(r.ID), r.ID)
	}
	assert.Equal(t, 4, m.Count())
}

// P4: a pending quota is consumed by the first load of its page, even when
// the page under-fills.
func TestOnPageLoaded_ResolvesOnce(t *testing.T) {
	m := newTestManager()
	m.RequestBulkSelect(20, 1, makePage(1, 12), 0)
	require.Equal(t, Plan{2: 8}, m.PendingPlan())

	displayed := m.OnPageLoaded(2, makePage(13, 17))

	assert.Len(t, displayed, 5, "under-fill selects everything available")
	_, pending := m.PendingPlan().Quota(2)
	assert.False(t, pending)
	assert.Equal(t, 17, m.Count())

	// Revisiting the page keeps the earlier resolution, including later edits.
	m.OnManualSelectionChanged(2, nil)
	displayed = m.OnPageLoaded(2, makePage(13, 17))
	assert.Empty(t, displayed)
}

// P5: a manual toggle discards the pending quota for that page permanently.
func TestOnManualSelectionChanged_OverridesQuota(t *testing.T) {
	m := newTestManager()
	page1 := makePage(1, 12)
	page2 := makePage(13, 24)
	m.RequestBulkSelect(15, 1, page1, 100)
	require.Equal(t, Plan{2: 3}, m.PendingPlan())

	m.OnManualSelectionChanged(2, []record{page2[5]})

	assert.Empty(t, m.PendingPlan())

	displayed := m.OnPageLoaded(2, page2)
	assert.Equal(t, []string{"r18"}, ids(displayed))
	assert.False(t, m.IsSelected("r13"))
	assert.Equal(t, 13, m.Count())
}

func TestOnPageLoaded_PlanWinsOverExistingMembership(t *testing.T) {
	m := newTestManager()
	page2 := makePage(13, 24)

	m.RequestBulkSelect(15, 1, makePage(1, 12), 100)
	// Stale members for page 2 left behind by an earlier visit.
	m.selected.Add("r20")
	m.selected.Add("r21")

	displayed := m.OnPageLoaded(2, page2)

	assert.Equal(t, []string{"r13", "r14", "r15"}, ids(displayed))
	assert.False(t, m.IsSelected("r20"))
	assert.False(t, m.IsSelected("r21"))
}

func TestOnPageLoaded_NoPlanKeepsSelection(t *testing.T) {
	m := newTestManager()
	page1 := makePage(1, 12)
	page2 := makePage(13, 24)

	m.OnPageLoaded(1, page1)
	m.OnManualSelectionChanged(1, page1[2:5])
	m.OnPageLoaded(2, page2)

	displayed := m.OnPageLoaded(1, page1)

	assert.Equal(t, []string{"r3", "r4", "r5"}, ids(displayed))
	assert.Equal(t, 3, m.Count())
}

func TestOnManualSelectionChanged_OtherPageOnlyAdds(t *testing.T) {
	m := newTestManager()
	page1 := makePage(1, 12)
	m.OnPageLoaded(1, page1)
	m.OnManualSelectionChanged(1, page1[:2])

	m.OnManualSelectionChanged(4, []record{{ID: "r40"}})

	assert.Equal(t, sorted("r1", "r2", "r40"), selectedIDs(m))
}

func TestClear(t *testing.T) {
	m := newTestManager()
	m.RequestBulkSelect(30, 1, makePage(1, 12), 100)
	require.NotZero(t, m.Count())
	require.NotEmpty(t, m.PendingPlan())

	m.Clear()

	assert.Zero(t, m.Count())
	assert.Empty(t, m.PendingPlan())
	assert.Empty(t, m.Displayed())
}

func TestPendingPlan_IsACopy(t *testing.T) {
	m := newTestManager()
	m.RequestBulkSelect(30, 1, makePage(1, 12), 100)

	plan := m.PendingPlan()
	delete(plan, 2)

	_, ok := m.PendingPlan().Quota(2)
	assert.True(t, ok)
}

func TestPendingTotal_TracksPlan(t *testing.T) {
	m := newTestManager()
	m.RequestBulkSelect(30, 1, makePage(1, 12), 100)

	quota, pages := m.PendingTotal()
	assert.Equal(t, 18, quota)
	assert.Equal(t, 2, pages)

	m.OnPageLoaded(2, makePage(13, 24))
	quota, pages = m.PendingTotal()
	assert.Equal(t, 6, quota)
	assert.Equal(t, 1, pages)
	assert.Equal(t, m.PendingPlan().Total(), quota)

	m.OnManualSelectionChanged(3, nil)
	quota, pages = m.PendingTotal()
	assert.Zero(t, quota)
	assert.Zero(t, pages)

	m.RequestBulkSelect(20, 1, makePage(1, 12), 100)
	m.Clear()
	quota, pages = m.PendingTotal()
	assert.Zero(t, quota)
	assert.Zero(t, pages)
}

func TestDisplayedSelection(t *testing.T) {
	page := makePage(1, 6)

	t.Run("pending quota dictates prefix", func(t *testing.T) {
		got := DisplayedSelection(1, page, recordKey, NewSet("r6"), Plan{1: 2})
		assert.Equal(t, []string{"r1", "r2"}, ids(got))
	})

	t.Run("quota larger than page", func(t *testing.T) {
		got := DisplayedSelection(1, page, recordKey, NewSet[string](), Plan{1: 12})
		assert.Len(t, got, 6)
	})

	t.Run("intersection in snapshot order", func(t *testing.T) {
		got := DisplayedSelection(1, page, recordKey, NewSet("r5", "r2", "r99"), Plan{2: 3})
		assert.Equal(t, []string{"r2", "r5"}, ids(got))
	})

	t.Run("empty snapshot", func(t *testing.T) {
		got := DisplayedSelection(1, nil, recordKey, NewSet("r1"), Plan{})
		assert.Empty(t, got)
	})

	t.Run("does not alias snapshot", func(t *testing.T) {
		got := DisplayedSelection(1, page, recordKey, nil, Plan{1: 3})
		got[0] = record{ID: "changed"}
		assert.Equal(t, "r1", page[0].ID)
	})
}

func TestSet(t *testing.T) {
	s := NewSet(1, 2, 3)
	s.Add(4)
	s.Remove(2)

	assert.True(t, s.Has(1))
	assert.False(t, s.Has(2))
	assert.Equal(t, 3, s.Len())

	c := s.Clone()
	c.Remove(1)
	assert.True(t, s.Has(1))

	var nilSet Set[int]
	assert.False(t, nilSet.Has(1))
	assert.ElementsMatch(t, []int{1, 3, 4}, s.Slice())
}
