package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tfocus/internal/domain"
)

func set(labels ...string) domain.CandidateSet {
	s := make(domain.CandidateSet, len(labels))
	for i, l := range labels {
		s[i] = domain.Candidate{Identifier: l, Label: l}
	}
	return s
}

func labels(ms []Match) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Candidate.Label
	}
	return out
}

func TestRankEmptyQueryKeepsDiscoveryOrder(t *testing.T) {
	s := set("module.vpc", "aws_instance.web", "aws_instance.db")

	got := Rank(s, "")
	require.Len(t, got, 3)
	for i, m := range got {
		assert.Equal(t, i, m.Index)
		assert.Equal(t, 0, m.Score)
		assert.Empty(t, m.Positions)
	}
	assert.Equal(t, []string{"module.vpc", "aws_instance.web", "aws_instance.db"}, labels(got))
}

func TestRankFiltersBySubsequence(t *testing.T) {
	s := set("aws_instance.web", "aws_instance.db", "aws_s3_bucket.logs")

	got := Rank(s, "web")
	require.Len(t, got, 1)
	assert.Equal(t, "aws_instance.web", got[0].Candidate.Identifier)
	assert.Equal(t, []int{13, 14, 15}, got[0].Positions, "should highlight the trailing web, not scattered runes")
}

func TestRankIsCaseInsensitive(t *testing.T) {
	s := set("AWS_Instance.Web")

	got := Rank(s, "inWEB")
	require.Len(t, got, 1)
	assert.Greater(t, got[0].Score, 0)
}

func TestRankNoMatchIsEmptyNotError(t *testing.T) {
	got := Rank(set("aws_instance.web", "module.vpc"), "zzz")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRankQueryLongerThanLabel(t *testing.T) {
	assert.Empty(t, Rank(set("db"), "dbx"))
	assert.Empty(t, Rank(set(""), "a"))
}

func TestRankExactMatchBeatsPartial(t *testing.T) {
	tests := []struct {
		query string
		extra []string
	}{
		{"web", []string{"webserver", "aws_instance.web", "w.e.b", "web-web"}},
		{"a.b", []string{"a.bc", "a.b.a.b", "xa.b"}},
		{"module.vpc", []string{"module.vpc_peering", "module.vpc2"}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			s := set(append(tt.extra, tt.query)...)
			got := Rank(s, tt.query)
			require.NotEmpty(t, got)
			assert.Equal(t, tt.query, got[0].Candidate.Label)
			for _, m := range got[1:] {
				assert.Less(t, m.Score, got[0].Score, "%q should score below the exact label", m.Candidate.Label)
			}
		})
	}
}

func TestRankPrefersContiguousAndBoundaries(t *testing.T) {
	s := set("axdxxb", "xxxdb", "aws_db_instance")

	got := Rank(s, "db")
	require.Len(t, got, 3)
	// word start beats a contiguous run mid-word, which beats a split match
	assert.Equal(t, []string{"aws_db_instance", "xxxdb", "axdxxb"}, labels(got))
}

func TestRankDropsScatteredMatches(t *testing.T) {
	tests := []struct {
		label string
		query string
		want  bool
	}{
		{"aws_instance.db", "web", false},
		{"axdxxxxxxxb", "db", false},
		{"aws_instance.web", "web", true},
		{"AWS_Instance.Web", "inWEB", true},
		{"w.e.b", "web", true},
		{"aws_security_group_rule.ingress", "sgri", true},
		{"axdxxxb", "db", true},
	}

	for _, tt := range tests {
		t.Run(tt.label+"/"+tt.query, func(t *testing.T) {
			got := Rank(set(tt.label), tt.query)
			if tt.want {
				assert.Len(t, got, 1)
			} else {
				assert.Empty(t, got)
			}
		})
	}
}

func TestRankWebOverResourceAddresses(t *testing.T) {
	got := Rank(set("aws_instance.web", "aws_instance.db"), "web")
	assert.Equal(t, []string{"aws_instance.web"}, labels(got))
}

func TestRankTiesKeepDiscoveryOrder(t *testing.T) {
	s := set("aws_instance.b", "aws_instance.a", "aws_instance.c")

	got := Rank(s, "aws")
	require.Len(t, got, 3)
	assert.Equal(t, got[0].Score, got[1].Score)
	assert.Equal(t, []int{0, 1, 2}, []int{got[0].Index, got[1].Index, got[2].Index})
}

func TestRankIsDeterministic(t *testing.T) {
	s := set("aws_instance.web", "aws_instance.db", "module.web_cluster", "aws_lb.web", "aws_route53_record.www")

	first := Rank(s, "web")
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Rank(s, "web"))
	}
}

func TestRankReferencesOriginatingSet(t *testing.T) {
	s := set("a", "ab", "abc", "b", "abc")

	got := Rank(s, "ab")
	seen := map[int]bool{}
	for _, m := range got {
		require.False(t, seen[m.Index], "duplicate index %d", m.Index)
		seen[m.Index] = true
		assert.Equal(t, s[m.Index], m.Candidate)
		for _, p := range m.Positions {
			assert.Less(t, p, len([]rune(m.Candidate.Label)))
		}
	}
	assert.Len(t, got, 3)
}

func TestRankPositionsAreIncreasing(t *testing.T) {
	got := Rank(set("aws_security_group_rule.ingress"), "sgri")
	require.Len(t, got, 1)
	pos := got[0].Positions
	require.Len(t, pos, 4)
	for i := 1; i < len(pos); i++ {
		assert.Greater(t, pos[i], pos[i-1])
	}
}
