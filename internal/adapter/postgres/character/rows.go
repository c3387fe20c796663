package character

import (
	"time"

	"github.com/google/uuid"

	"github.com/maxbaydi/guide-for-china/internal/domain"
)

type characterRow struct {
	ID          uuid.UUID `db:"id"`
	Simplified  string    `db:"simplified"`
	Traditional *string   `db:"traditional"`
	Pinyin      *string   `db:"pinyin"`
	HSKLevel    *int      `db:"hsk_level"`
	Frequency   *int      `db:"frequency"`
	CreatedAt   time.Time `db:"created_at"`
}

func (r characterRow) toDomain() domain.Character {
	return domain.Character{
		ID:          r.ID,
		Simplified:  r.Simplified,
		Traditional: r.Traditional,
		Pinyin:      r.Pinyin,
		HSKLevel:    r.HSKLevel,
		Frequency:   r.Frequency,
		CreatedAt:   r.CreatedAt,
	}
}

type definitionRow struct {
	ID           uuid.UUID `db:"id"`
	CharacterID  uuid.UUID `db:"character_id"`
	Translation  string    `db:"translation"`
	PartOfSpeech *string   `db:"part_of_speech"`
	Context      *string   `db:"context"`
	SortOrder    int       `db:"sort_order"`
	CreatedAt    time.Time `db:"created_at"`
}

func (r definitionRow) toDomain() domain.Definition {
	return domain.Definition{
		ID:           r.ID,
		CharacterID:  r.CharacterID,
		Translation:  r.Translation,
		PartOfSpeech: r.PartOfSpeech,
		Context:      r.Context,
		Order:        r.SortOrder,
		CreatedAt:    r.CreatedAt,
	}
}

type exampleRow struct {
	ID          uuid.UUID `db:"id"`
	CharacterID uuid.UUID `db:"character_id"`
	Chinese     string    `db:"chinese"`
	Pinyin      *string   `db:"pinyin"`
	Russian     string    `db:"russian"`
	Source      *string   `db:"source"`
	CreatedAt   time.Time `db:"created_at"`
}

func (r exampleRow) toDomain() domain.Example {
	return domain.Example{
		ID:          r.ID,
		CharacterID: r.CharacterID,
		Chinese:     r.Chinese,
		Pinyin:      r.Pinyin,
		Russian:     r.Russian,
		Source:      r.Source,
		CreatedAt:   r.CreatedAt,
	}
}

type similarRow struct {
	ID              uuid.UUID `db:"id"`
	Simplified      string    `db:"simplified"`
	Traditional     *string   `db:"traditional"`
	Pinyin          *string   `db:"pinyin"`
	HSKLevel        *int      `db:"hsk_level"`
	MainTranslation *string   `db:"main_translation"`
}

func (r similarRow) toDomain() domain.SimilarWordPreview {
	return domain.SimilarWordPreview{
		ID:              r.ID,
		Simplified:      r.Simplified,
		Traditional:     r.Traditional,
		Pinyin:          r.Pinyin,
		HSKLevel:        r.HSKLevel,
		MainTranslation: r.MainTranslation,
	}
}

func mapRows[R any, D any](rows []R, conv func(R) D) []D {
	out := make([]D, len(rows))
	for i, r := range rows {
		out[i] = conv(r)
	}
	return out
}
