// Package importer streams parsed DSL entries into the dictionary store in
// bounded batches.
package importer

import (
	"context"

	"github.com/google/uuid"

	"github.com/maxbaydi/guide-for-china/internal/domain"
	"github.com/maxbaydi/guide-for-china/internal/dsl"
)

// CharacterStore is the batch contract consumed by character, example and
// pinyin imports. Implemented by character.Repo.
type CharacterStore interface {
	Upsert(ctx context.Context, c domain.CharacterUpsert) (id uuid.UUID, created bool, err error)
	BulkInsertDefinitions(ctx context.Context, defs []domain.Definition) (int, error)
	BulkInsertExamples(ctx context.Context, examples []domain.Example) (int, error)
	GetIDsBySimplified(ctx context.Context, simplified []string) (map[string]uuid.UUID, error)
	BulkUpdatePinyin(ctx context.Context, updates []domain.PinyinUpdate) (int, error)
}

// PhraseStore is implemented by phrase.Repo.
type PhraseStore interface {
	BulkInsert(ctx context.Context, phrases []domain.Phrase) (int, error)
}

// EntrySource yields parsed entries one at a time. Implemented by *dsl.Scanner.
type EntrySource interface {
	Scan() bool
	Entry() dsl.Entry
	Err() error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
