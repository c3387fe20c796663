package search

import (
	"math"
	"slices"
	"strings"

	"github.com/maxbaydi/guide-for-china/internal/domain"
)

const (
	frequencyScale   = 10000.0
	frequencyWeight  = 0.2
	hskWeight        = 0.15
	missingFrequency = 999999
)

var matchTypeWeight = map[domain.MatchType]float64{
	domain.MatchExact:  1.0,
	domain.MatchPrefix: 0.8,
	domain.MatchFuzzy:  0.5,
}

// Score combines the store relevance, the match type, the frequency rank and
// the HSK level. Common and beginner-level words get a bonus.
func Score(r domain.SearchResult) float64 {
	score := r.MatchScore * matchTypeWeight[r.MatchType]

	if r.Frequency != nil && *r.Frequency > 0 {
		score += math.Max(0, 1-float64(*r.Frequency)/frequencyScale) * frequencyWeight
	}
	if r.HSKLevel != nil && *r.HSKLevel >= 1 && *r.HSKLevel <= 3 {
		score += hskWeight * float64(4-*r.HSKLevel) / 3
	}
	return score
}

// Rank returns a copy of results ordered by descending score. Equal scores are
// ordered by match type, then frequency (missing last), then simplified.
func Rank(results []domain.SearchResult) []domain.SearchResult {
	type scored struct {
		r     domain.SearchResult
		score float64
	}
	tmp := make([]scored, len(results))
	for i, r := range results {
		tmp[i] = scored{r: r, score: Score(r)}
	}

	slices.SortStableFunc(tmp, func(a, b scored) int {
		if a.score != b.score {
			if a.score > b.score {
				return -1
			}
			return 1
		}
		if d := a.r.MatchType.Rank() - b.r.MatchType.Rank(); d != 0 {
			return d
		}
		if d := frequencyOrDefault(a.r.Frequency) - frequencyOrDefault(b.r.Frequency); d != 0 {
			return d
		}
		return strings.Compare(a.r.Simplified, b.r.Simplified)
	})

	out := make([]domain.SearchResult, len(tmp))
	for i, s := range tmp {
		out[i] = s.r
	}
	return out
}

func frequencyOrDefault(f *int) int {
	if f == nil {
		return missingFrequency
	}
	return *f
}
