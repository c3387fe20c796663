package dictionary

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/graph-gophers/dataloader/v7"

	"github.com/maxbaydi/guide-for-china/internal/domain"
)

const (
	maxBatch = 100
	wait     = 2 * time.Millisecond
)

// definitionLoader batches definition lookups of one facade call into a
// single query per maxBatch characters. Created per call, so nothing is
// cached across requests.
func (s *Service) definitionLoader() *dataloader.Loader[uuid.UUID, []domain.Definition] {
	return dataloader.NewBatchedLoader(
		s.definitionsBatchFn(),
		dataloader.WithWait[uuid.UUID, []domain.Definition](wait),
		dataloader.WithBatchCapacity[uuid.UUID, []domain.Definition](maxBatch),
	)
}

func (s *Service) definitionsBatchFn() dataloader.BatchFunc[uuid.UUID, []domain.Definition] {
	return func(ctx context.Context, keys []uuid.UUID) []*dataloader.Result[[]domain.Definition] {
		grouped, err := s.characters.DefinitionsByCharacterIDs(ctx, keys, s.cfg.DefinitionsPerCharacter)
		results := make([]*dataloader.Result[[]domain.Definition], len(keys))
		for i, key := range keys {
			if err != nil {
				results[i] = &dataloader.Result[[]domain.Definition]{Error: err}
				continue
			}
			defs, ok := grouped[key]
			if !ok {
				defs = []domain.Definition{}
			}
			results[i] = &dataloader.Result[[]domain.Definition]{Data: defs}
		}
		return results
	}
}

// hydrate attaches definitions to every character in place.
func (s *Service) hydrate(ctx context.Context, chars []domain.Character) error {
	if len(chars) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(chars))
	for i, c := range chars {
		ids[i] = c.ID
	}

	defs, errs := s.definitionLoader().LoadMany(ctx, ids)()
	for _, err := range errs {
		if err != nil {
			return fmt.Errorf("load definitions: %w", err)
		}
	}
	for i := range chars {
		chars[i].Definitions = defs[i]
	}
	return nil
}
