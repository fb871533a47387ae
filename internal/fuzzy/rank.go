// Package fuzzy orders candidates against a typed query.
//
// A candidate matches when every query rune appears in its label, in order,
// ignoring case, and no rune after the first lands more than maxGap runes past
// the previous one unless it starts a word. Matches are scored by how tightly
// and where they land.
package fuzzy

import (
	"sort"
	"unicode"

	"tfocus/internal/domain"
)

const (
	scoreMatch        = 16
	bonusContiguous   = 8
	bonusLabelStart   = 10
	bonusAfterSep     = 6
	penaltyGapMax     = 6
	penaltyLeadingMax = 3
	bonusWholeLabel   = 100

	// maxGap is the widest skip allowed before a rune that is not at a word boundary
	maxGap = 3
)

// Match is one ranked candidate
type Match struct {
	Index     int // position in the originating CandidateSet
	Candidate domain.Candidate
	Score     int
	Positions []int // rune offsets in Candidate.Label that matched the query
}

// Rank filters and orders set against query. An empty query keeps every candidate
// in discovery order with score 0.
func Rank(set domain.CandidateSet, query string) []Match {
	q := lower([]rune(query))
	matches := make([]Match, 0, len(set))

	if len(q) == 0 {
		for i, c := range set {
			matches = append(matches, Match{Index: i, Candidate: c})
		}
		return matches
	}

	for i, c := range set {
		score, positions, ok := align(c.Label, q)
		if !ok {
			continue
		}
		matches = append(matches, Match{Index: i, Candidate: c, Score: score, Positions: positions})
	}

	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].Score > matches[b].Score
	})
	return matches
}

// align returns the best alignment of the lower-cased query runes q in label.
// ok is false when some query rune cannot be placed.
func align(label string, q []rune) (score int, positions []int, ok bool) {
	l := lower([]rune(label))
	n, m := len(l), len(q)
	if m == 0 {
		return 0, nil, true
	}
	if n < m {
		return 0, nil, false
	}

	// best[i][j]: best score with q[i] placed at l[j]; from[i][j]: position of q[i-1]
	const unset = -1 << 30
	best := make([][]int, m)
	from := make([][]int, m)
	for i := range best {
		best[i] = make([]int, n)
		from[i] = make([]int, n)
		for j := range best[i] {
			best[i][j] = unset
			from[i][j] = -1
		}
	}

	for j := 0; j <= n-m; j++ {
		if l[j] != q[0] {
			continue
		}
		best[0][j] = scoreMatch + boundary(l, j) - min(j, penaltyLeadingMax)
	}

	for i := 1; i < m; i++ {
		for j := i; j <= n-m+i; j++ {
			if l[j] != q[i] {
				continue
			}
			for k := i - 1; k < j; k++ {
				if best[i-1][k] == unset {
					continue
				}
				s := best[i-1][k] + scoreMatch
				if k == j-1 {
					s += max(bonusContiguous, boundary(l, j))
				} else {
					gap, b := j-k-1, boundary(l, j)
					if b == 0 && gap > maxGap {
						continue
					}
					s += b - min(gap, penaltyGapMax)
				}
				if s > best[i][j] {
					best[i][j] = s
					from[i][j] = k
				}
			}
		}
	}

	end := -1
	for j := m - 1; j < n; j++ {
		if best[m-1][j] == unset {
			continue
		}
		if end < 0 || best[m-1][j] > best[m-1][end] {
			end = j
		}
	}
	if end < 0 {
		return 0, nil, false
	}

	score = best[m-1][end]
	positions = make([]int, m)
	for i, j := m-1, end; i >= 0; i-- {
		positions[i] = j
		j = from[i][j]
	}

	if n == m && equal(l, q) {
		score += bonusWholeLabel
	}
	return score, positions, true
}

func boundary(l []rune, j int) int {
	if j == 0 {
		return bonusLabelStart
	}
	if isSeparator(l[j-1]) {
		return bonusAfterSep
	}
	return 0
}

func isSeparator(r rune) bool {
	switch r {
	case '-', '_', '.', '/':
		return true
	}
	return false
}

func lower(rs []rune) []rune {
	out := make([]rune, len(rs))
	for i, r := range rs {
		out[i] = unicode.ToLower(r)
	}
	return out
}

func equal(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
