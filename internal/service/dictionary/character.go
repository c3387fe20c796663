package dictionary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/maxbaydi/guide-for-china/internal/domain"
)

// GetCharacter returns a character with its first definitions, or nil when
// the id is unknown.
func (s *Service) GetCharacter(ctx context.Context, id uuid.UUID) (*domain.Character, error) {
	char, err := cached(s, OpCharacter, func() (*domain.Character, error) {
		var (
			char *domain.Character
			defs map[uuid.UUID][]domain.Definition
		)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			char, err = s.characters.GetByID(gctx, id)
			return err
		})
		g.Go(func() error {
			var err error
			defs, err = s.characters.DefinitionsByCharacterIDs(gctx, []uuid.UUID{id}, s.cfg.DefinitionsPerCharacter)
			return err
		})

		if err := g.Wait(); err != nil {
			return nil, err
		}

		char.Definitions = defs[id]
		if char.Definitions == nil {
			char.Definitions = []domain.Definition{}
		}
		return char, nil
	}, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get character %s: %w", id, err)
	}
	return char, nil
}

// GetCharacterExamples returns up to limit examples of a character.
func (s *Service) GetCharacterExamples(ctx context.Context, characterID uuid.UUID, limit int) ([]domain.Example, error) {
	limit = s.clampLimit(limit)
	return cached(s, OpExamples, func() ([]domain.Example, error) {
		examples, err := s.characters.Examples(ctx, characterID, limit)
		if err != nil {
			return nil, fmt.Errorf("get examples: %w", err)
		}
		return examples, nil
	}, characterID, limit)
}

// GetWordOfTheDay picks the same single-glyph character for every call on a
// given day. When no single glyph has a definition any defined character
// qualifies. Returns nil when the dictionary is empty.
func (s *Service) GetWordOfTheDay(ctx context.Context) (*domain.Character, error) {
	seed := dailySeed(s.now())

	char, err := cached(s, OpWordOfDay, func() (*domain.Character, error) {
		char, err := s.characters.DailyCharacter(ctx, seed, true)
		if errors.Is(err, domain.ErrNotFound) {
			s.log.DebugContext(ctx, "no single-glyph word of the day, falling back", slog.Int("seed", seed))
			char, err = s.characters.DailyCharacter(ctx, seed, false)
		}
		if err != nil {
			return nil, err
		}

		defs, err := s.characters.DefinitionsByCharacterIDs(ctx, []uuid.UUID{char.ID}, s.cfg.DefinitionsPerCharacter)
		if err != nil {
			return nil, err
		}
		char.Definitions = defs[char.ID]
		return char, nil
	}, seed)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("word of the day: %w", err)
	}
	return char, nil
}

// GetSimilarWords returns characters starting with or containing simplified.
func (s *Service) GetSimilarWords(ctx context.Context, simplified string, limit int) ([]domain.SimilarWordPreview, error) {
	if simplified == "" {
		return []domain.SimilarWordPreview{}, nil
	}
	limit = s.clampLimit(limit)
	return cached(s, OpSimilar, func() ([]domain.SimilarWordPreview, error) {
		return s.characters.SimilarWords(ctx, simplified, limit)
	}, simplified, limit)
}

// GetReverseTranslations returns phrases whose Chinese side contains
// simplified, newest first.
func (s *Service) GetReverseTranslations(ctx context.Context, simplified string, limit int) ([]domain.ReverseTranslation, error) {
	if simplified == "" {
		return []domain.ReverseTranslation{}, nil
	}
	limit = s.clampLimit(limit)
	return cached(s, OpReverse, func() ([]domain.ReverseTranslation, error) {
		return s.phrases.ReverseTranslations(ctx, simplified, limit)
	}, simplified, limit)
}

// dailySeed sums the calendar components of t in UTC.
func dailySeed(t time.Time) int {
	y, m, d := t.UTC().Date()
	return y + int(m) + d
}
