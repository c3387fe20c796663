package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maxbaydi/guide-for-china/internal/domain"
)

func ptrInt(v int) *int { return &v }

func result(simplified string, mt domain.MatchType, score float64) domain.SearchResult {
	return domain.SearchResult{Simplified: simplified, MatchType: mt, MatchScore: score}
}

func TestScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   domain.SearchResult
		want float64
	}{
		{"exact", result("a", domain.MatchExact, 1), 1.0},
		{"prefix", result("a", domain.MatchPrefix, 1), 0.8},
		{"fuzzy", result("a", domain.MatchFuzzy, 0.5), 0.25},
		{"unknown match type", result("a", "other", 1), 0},
		{"frequency bonus", domain.SearchResult{MatchType: domain.MatchExact, MatchScore: 1, Frequency: ptrInt(5000)}, 1.1},
		{"frequency beyond scale", domain.SearchResult{MatchType: domain.MatchExact, MatchScore: 1, Frequency: ptrInt(20000)}, 1.0},
		{"zero frequency", domain.SearchResult{MatchType: domain.MatchExact, MatchScore: 1, Frequency: ptrInt(0)}, 1.0},
		{"hsk 1", domain.SearchResult{MatchType: domain.MatchExact, MatchScore: 1, HSKLevel: ptrInt(1)}, 1.15},
		{"hsk 3", domain.SearchResult{MatchType: domain.MatchExact, MatchScore: 1, HSKLevel: ptrInt(3)}, 1.05},
		{"hsk 4", domain.SearchResult{MatchType: domain.MatchExact, MatchScore: 1, HSKLevel: ptrInt(4)}, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, Score(tt.in), 1e-9)
		})
	}
}

func TestRank_MatchTypeMonotonic(t *testing.T) {
	t.Parallel()

	in := []domain.SearchResult{
		result("c", domain.MatchFuzzy, 0.9),
		result("b", domain.MatchPrefix, 0.9),
		result("a", domain.MatchExact, 0.9),
	}
	got := Rank(in)

	assert.Equal(t, []string{"a", "b", "c"}, simplifiedOf(got))
	assert.Equal(t, "c", in[0].Simplified, "input must not be reordered")
}

func TestRank_FrequencyMonotonic(t *testing.T) {
	t.Parallel()

	rare := result("rare", domain.MatchExact, 1)
	rare.Frequency = ptrInt(9000)
	common := result("common", domain.MatchExact, 1)
	common.Frequency = ptrInt(10)

	assert.Equal(t, []string{"common", "rare"}, simplifiedOf(Rank([]domain.SearchResult{rare, common})))
}

func TestRank_TieBreaks(t *testing.T) {
	t.Parallel()

	// Equal scores: exact beats fuzzy even though fuzzy has a higher raw score.
	exact := result("x", domain.MatchExact, 0.5)
	fuzzy := result("y", domain.MatchFuzzy, 1.0)
	assert.Equal(t, []string{"x", "y"}, simplifiedOf(Rank([]domain.SearchResult{fuzzy, exact})))

	// Frequencies beyond the bonus scale tie on score; lower rank wins, nil is last.
	withFreq := result("b", domain.MatchExact, 1)
	withFreq.Frequency = ptrInt(20000)
	noFreq := result("a", domain.MatchExact, 1)
	assert.Equal(t, []string{"b", "a"}, simplifiedOf(Rank([]domain.SearchResult{noFreq, withFreq})))

	// Everything equal: lexicographic by simplified.
	assert.Equal(t, []string{"一", "二"}, simplifiedOf(Rank([]domain.SearchResult{
		result("二", domain.MatchExact, 1),
		result("一", domain.MatchExact, 1),
	})))
}

func TestRank_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Rank(nil))
}

func simplifiedOf(rs []domain.SearchResult) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Simplified
	}
	return out
}
