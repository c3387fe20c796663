// Package dictionary is the query facade over search, characters and phrases.
package dictionary

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/maxbaydi/guide-for-china/internal/domain"
)

// Cache operation names. Each has its own TTL.
const (
	OpSearch    = "search"
	OpCharacter = "character"
	OpExamples  = "examples"
	OpAnalysis  = "analysis"
	OpWordOfDay = "word_of_day"
	OpSimilar   = "similar"
	OpReverse   = "reverse"
	OpPhrases   = "phrases"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type searcher interface {
	Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error)
	SearchDetailed(ctx context.Context, query string, limit int) []domain.SearchResult
}

type characterRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Character, error)
	GetBySimplifiedSet(ctx context.Context, set []string) ([]domain.Character, error)
	DefinitionsByCharacterIDs(ctx context.Context, ids []uuid.UUID, perCharacter int) (map[uuid.UUID][]domain.Definition, error)
	Examples(ctx context.Context, characterID uuid.UUID, limit int) ([]domain.Example, error)
	DailyCharacter(ctx context.Context, seed int, singleGlyph bool) (*domain.Character, error)
	SimilarWords(ctx context.Context, simplified string, limit int) ([]domain.SimilarWordPreview, error)
}

type phraseRepo interface {
	Search(ctx context.Context, query string, limit int) ([]domain.Phrase, error)
	ReverseTranslations(ctx context.Context, simplified string, limit int) ([]domain.ReverseTranslation, error)
}

type usageRecorder interface {
	RecordSearch(ctx context.Context, u domain.SearchUsage) error
}

type resultCache interface {
	Get(op string, args ...any) (any, bool)
	Set(op string, value any, args ...any)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Config bounds facade calls.
type Config struct {
	DefaultLimit int
	MaxLimit     int
	// AnalyzeMaxChars caps AnalyzeText input, in characters.
	AnalyzeMaxChars int
	// DefinitionsPerCharacter caps the definitions attached to a character.
	DefinitionsPerCharacter int
}

// Service implements the dictionary read operations.
type Service struct {
	log        *slog.Logger
	search     searcher
	characters characterRepo
	phrases    phraseRepo
	usage      usageRecorder
	cache      resultCache
	cfg        Config
	now        func() time.Time
}

// NewService creates a new Dictionary service.
func NewService(
	logger *slog.Logger,
	search searcher,
	characters characterRepo,
	phrases phraseRepo,
	cfg Config,
) *Service {
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = 20
	}
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = 100
	}
	if cfg.AnalyzeMaxChars <= 0 {
		cfg.AnalyzeMaxChars = 300
	}
	if cfg.DefinitionsPerCharacter <= 0 {
		cfg.DefinitionsPerCharacter = 10
	}
	return &Service{
		log:        logger.With("service", "dictionary"),
		search:     search,
		characters: characters,
		phrases:    phrases,
		cfg:        cfg,
		now:        time.Now,
	}
}

// SetCache injects the optional read-through cache.
func (s *Service) SetCache(c resultCache) {
	s.cache = c
}

// SetUsage injects the optional search-usage recorder.
func (s *Service) SetUsage(u usageRecorder) {
	s.usage = u
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (s *Service) clampLimit(limit int) int {
	if limit <= 0 {
		return s.cfg.DefaultLimit
	}
	if limit > s.cfg.MaxLimit {
		return s.cfg.MaxLimit
	}
	return limit
}

// cached returns the cached value of op(args) or calls load and caches its
// result. Errors are never cached.
func cached[T any](s *Service, op string, load func() (T, error), args ...any) (T, error) {
	if s.cache != nil {
		if v, ok := s.cache.Get(op, args...); ok {
			if typed, ok := v.(T); ok {
				return typed, nil
			}
		}
	}

	v, err := load()
	if err != nil {
		return v, err
	}
	if s.cache != nil {
		s.cache.Set(op, v, args...)
	}
	return v, nil
}
