package dictionary

import (
	"context"
	"log/slog"

	"github.com/maxbaydi/guide-for-china/internal/domain"
	"github.com/maxbaydi/guide-for-china/internal/service/search"
	"github.com/maxbaydi/guide-for-china/pkg/ctxutil"
)

// SearchCharacters runs the ranked search and returns matching characters
// with their definitions attached. Store failures degrade to no results.
func (s *Service) SearchCharacters(ctx context.Context, query string, limit int) []domain.Character {
	limit = s.clampLimit(limit)
	q, ok := search.Prepare(query)
	if !ok {
		return []domain.Character{}
	}

	chars, err := cached(s, OpSearch, func() ([]domain.Character, error) {
		results, err := s.search.Search(ctx, query, limit)
		if err != nil {
			return nil, err
		}

		chars := make([]domain.Character, len(results))
		for i, r := range results {
			chars[i] = r.Character()
		}
		if err := s.hydrate(ctx, chars); err != nil {
			return nil, err
		}
		return chars, nil
	}, q.Normalized, q.Type, limit)
	if err != nil {
		s.log.ErrorContext(ctx, "search characters failed",
			slog.String("query", query),
			slog.String("error", err.Error()),
		)
		return []domain.Character{}
	}

	s.recordUsage(ctx, q, len(chars))
	return chars
}

// SearchDetailed exposes every match candidate for diagnostics. Not cached.
func (s *Service) SearchDetailed(ctx context.Context, query string, limit int) []domain.SearchResult {
	return s.search.SearchDetailed(ctx, query, s.clampLimit(limit))
}

// SearchPhrases searches the phrase book by Chinese or Russian text.
func (s *Service) SearchPhrases(ctx context.Context, query string, limit int) ([]domain.Phrase, error) {
	limit = s.clampLimit(limit)
	q, ok := search.Prepare(query)
	if !ok {
		return []domain.Phrase{}, nil
	}

	return cached(s, OpPhrases, func() ([]domain.Phrase, error) {
		return s.phrases.Search(ctx, q.Normalized, limit)
	}, q.Normalized, limit)
}

// recordUsage stores the search of an authenticated caller. Failures are
// logged only.
func (s *Service) recordUsage(ctx context.Context, q search.Query, results int) {
	if s.usage == nil {
		return
	}
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return
	}

	tier := ctxutil.TierFromCtx(ctx)
	if tier == "" {
		tier = domain.TierFree.String()
	}

	err := s.usage.RecordSearch(ctx, domain.SearchUsage{
		UserID:      userID,
		Tier:        tier,
		Query:       q.Raw,
		InputType:   q.Type,
		ResultCount: results,
	})
	if err != nil {
		s.log.WarnContext(ctx, "record search usage failed",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()),
		)
	}
}
