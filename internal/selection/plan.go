package selection

import "sort"

// Plan maps a page number to the count of leading records to select when
// that page is next loaded. An entry is removed once applied or once the
// user toggles that page by hand.
type Plan map[int]int

// Entry is one page quota of a Plan.
type Entry struct {
	Page  int `json:"page" yaml:"page"`
	Quota int `json:"quota" yaml:"quota"`
}

// BuildPlan splits a request for n selections into per-page quotas starting
// at page 1, each page taking min(remaining, pageSize).
//
// When total is known (> 0) the request is capped at total, so asking for
// more than the dataset holds never plans quotas past its end. The page walk
// is bounded by ceil(max(total, n) / pageSize).
func BuildPlan(n, total, pageSize int) Plan {
	plan := make(Plan)
	if n <= 0 || pageSize <= 0 {
		return plan
	}

	remaining := n
	if total > 0 && total < remaining {
		remaining = total
	}

	maxPages := (max(total, n) + pageSize - 1) / pageSize
	for page := 1; page <= maxPages && remaining > 0; page++ {
		quota := min(remaining, pageSize)
		plan[page] = quota
		remaining -= quota
	}
	return plan
}

// Quota returns the pending quota for page.
func (p Plan) Quota(page int) (int, bool) {
	q, ok := p[page]
	return q, ok
}

// Total returns the sum of all pending quotas.
func (p Plan) Total() int {
	sum := 0
	for _, q := range p {
		sum += q
	}
	return sum
}

// Entries returns the quotas in ascending page order.
func (p Plan) Entries() []Entry {
	entries := make([]Entry, 0, len(p))
	for page, quota := range p {
		entries = append(entries, Entry{Page: page, Quota: quota})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Page < entries[j].Page })
	return entries
}

// Clone returns an independent copy.
func (p Plan) Clone() Plan {
	out := make(Plan, len(p))
	for page, quota := range p {
		out[page] = quota
	}
	return out
}
