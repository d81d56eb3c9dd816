package search

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	sfuzzy "github.com/sahilm/fuzzy"

	"github.com/mmcdole/gallery/internal/domain"
)

// Match is one artwork that passed the filter
type Match struct {
	Index          int   // Index into the artworks passed to Filter
	MatchedIndexes []int // Rune positions in the original title that matched
	Score          int   // Higher is better; 0 for artist/origin matches
}

// titleSource implements sahilm/fuzzy.Source over lowercase titles
type titleSource []string

func (s titleSource) String(i int) string { return s[i] }
func (s titleSource) Len() int            { return len(s) }

func newTitleSource(artworks []domain.Artwork) titleSource {
	titles := make(titleSource, len(artworks))
	for i, a := range artworks {
		titles[i] = strings.ToLower(a.Title)
	}
	return titles
}

// Filter returns the artworks matching query. Title matches come first in
// rank order, then artworks whose artist or place of origin matches, in page
// order. An empty query returns nil, meaning no filter.
func Filter(query string, artworks []domain.Artwork) []Match {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	titles := newTitleSource(artworks)
	titleMatches := sfuzzy.FindFrom(strings.ToLower(query), titles)

	matches := make([]Match, 0, len(titleMatches))
	seen := make(map[int]bool, len(titleMatches))
	for _, m := range titleMatches {
		matches = append(matches, Match{
			Index:          m.Index,
			MatchedIndexes: runePositions(titles[m.Index], m.MatchedIndexes),
			Score:          m.Score,
		})
		seen[m.Index] = true
	}

	for i, a := range artworks {
		if seen[i] {
			continue
		}
		if fuzzy.MatchNormalizedFold(query, a.ArtistDisplay) || fuzzy.MatchNormalizedFold(query, a.PlaceOfOrigin) {
			matches = append(matches, Match{Index: i})
		}
	}

	return matches
}

// runePositions converts byte offsets into s to rune positions. Lowercasing
// maps rune to rune but can change byte widths (İ is two bytes, i is one), so
// only rune positions carry over to the original title.
func runePositions(s string, offsets []int) []int {
	if len(offsets) == 0 {
		return nil
	}
	want := make(map[int]bool, len(offsets))
	for _, o := range offsets {
		want[o] = true
	}
	pos := make([]int, 0, len(offsets))
	n := 0
	for i := range s {
		if want[i] {
			pos = append(pos, n)
		}
		n++
	}
	return pos
}

// Indexes returns the artwork indexes of matches in match order.
func Indexes(matches []Match) []int {
	idx := make([]int, len(matches))
	for i, m := range matches {
		idx[i] = m.Index
	}
	return idx
}
