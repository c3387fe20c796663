// Package search classifies a query, normalizes it, dispatches it to the
// store-side search procedure and ranks the results.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/maxbaydi/guide-for-china/internal/domain"
	"github.com/maxbaydi/guide-for-china/internal/lang"
)

type searchStore interface {
	SearchEnhanced(ctx context.Context, query string, queryType domain.InputType, limit int) ([]domain.SearchResult, error)
	SearchEnhancedDetailed(ctx context.Context, query string, queryType domain.InputType, limit int) ([]domain.SearchResult, error)
}

// Config bounds search calls.
type Config struct {
	Timeout      time.Duration
	DefaultLimit int
	MaxLimit     int
}

// Service is the search strategy dispatcher.
type Service struct {
	log   *slog.Logger
	store searchStore
	cfg   Config
}

// NewService creates a search Service. Zero limits fall back to 20 and 100.
func NewService(logger *slog.Logger, store searchStore, cfg Config) *Service {
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = 20
	}
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = 100
	}
	return &Service{
		log:   logger.With("service", "search"),
		store: store,
		cfg:   cfg,
	}
}

// Query is a classified, normalized search request.
type Query struct {
	Raw        string
	Normalized string
	Type       domain.InputType
}

// Prepare classifies and normalizes raw. ok is false when nothing searchable
// is left.
func Prepare(raw string) (q Query, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Query{}, false
	}
	t := lang.Classify(raw)
	normalized := lang.SanitizeQuery(lang.NormalizerFor(t)(raw))
	if normalized == "" {
		return Query{}, false
	}
	return Query{Raw: raw, Normalized: normalized, Type: t}, true
}

// Search runs the ranked search and reports store failures. Empty queries
// yield an empty result.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	return s.run(ctx, query, limit, s.store.SearchEnhanced)
}

// SearchWithStrategy is Search with failures logged and degraded to no results.
func (s *Service) SearchWithStrategy(ctx context.Context, query string, limit int) []domain.SearchResult {
	results, err := s.Search(ctx, query, limit)
	if err != nil {
		s.log.ErrorContext(ctx, "search failed",
			slog.String("query", query),
			slog.String("error", err.Error()),
		)
		return []domain.SearchResult{}
	}
	return results
}

// SearchDetailed runs the same pipeline against the diagnostic procedure,
// which returns every candidate. Failures degrade to no results.
func (s *Service) SearchDetailed(ctx context.Context, query string, limit int) []domain.SearchResult {
	results, err := s.run(ctx, query, limit, s.store.SearchEnhancedDetailed)
	if err != nil {
		s.log.ErrorContext(ctx, "detailed search failed",
			slog.String("query", query),
			slog.String("error", err.Error()),
		)
		return []domain.SearchResult{}
	}
	return results
}

// ClampLimit applies the default and maximum result limits.
func (s *Service) ClampLimit(limit int) int {
	if limit <= 0 {
		return s.cfg.DefaultLimit
	}
	if limit > s.cfg.MaxLimit {
		return s.cfg.MaxLimit
	}
	return limit
}

type procedure func(ctx context.Context, query string, queryType domain.InputType, limit int) ([]domain.SearchResult, error)

func (s *Service) run(ctx context.Context, raw string, limit int, proc procedure) ([]domain.SearchResult, error) {
	q, ok := Prepare(raw)
	if !ok {
		return []domain.SearchResult{}, nil
	}
	limit = s.ClampLimit(limit)

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	start := time.Now()
	results, err := proc(ctx, q.Normalized, q.Type, limit)
	if err != nil {
		return nil, fmt.Errorf("search %s %q: %w", q.Type, q.Normalized, err)
	}

	ranked := Rank(results)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	s.log.DebugContext(ctx, "search completed",
		slog.String("query", q.Normalized),
		slog.String("type", q.Type.String()),
		slog.Int("results", len(ranked)),
		slog.Duration("took", time.Since(start)),
	)
	return ranked, nil
}
