package domain

import (
	"time"

	"github.com/google/uuid"
)

// Character is a dictionary headword: usually one glyph, sometimes a whole word.
// Simplified is the unique lookup key.
type Character struct {
	ID          uuid.UUID
	Simplified  string
	Traditional *string
	Pinyin      *string
	HSKLevel    *int
	Frequency   *int
	CreatedAt   time.Time

	// Definitions is populated by read paths that hydrate it; Examples are never
	// loaded together with a Character.
	Definitions []Definition
}

// Definition is one ordered translation of a Character.
type Definition struct {
	ID           uuid.UUID
	CharacterID  uuid.UUID
	Translation  string
	PartOfSpeech *string
	Context      *string
	Order        int
	CreatedAt    time.Time
}

// Example is a usage sentence attached to a Character.
type Example struct {
	ID          uuid.UUID
	CharacterID uuid.UUID
	Chinese     string
	Pinyin      *string
	Russian     string
	Source      *string
	CreatedAt   time.Time
}

// Phrase is a phrase-book entry that is not owned by any Character.
type Phrase struct {
	ID        uuid.UUID
	Russian   string
	Chinese   string
	Pinyin    *string
	CreatedAt time.Time
}

// CharacterAnalysis is one CJK position of an analyzed text.
// Details is nil when the character is not in the dictionary.
type CharacterAnalysis struct {
	Character string
	Position  int
	Found     bool
	Details   *Character
}

// SimilarWordPreview is a Character with the translation of its first definition.
type SimilarWordPreview struct {
	ID              uuid.UUID
	Simplified      string
	Traditional     *string
	Pinyin          *string
	HSKLevel        *int
	MainTranslation *string
}

// ReverseTranslation is a phrase whose Chinese side contains a given headword.
type ReverseTranslation struct {
	ID        uuid.UUID
	Russian   string
	Chinese   string
	Pinyin    *string
	CreatedAt time.Time
}

// CharacterUpsert carries the fields the importer writes for one headword.
type CharacterUpsert struct {
	Simplified  string
	Traditional *string
	Pinyin      *string
	PinyinPlain *string
}

// PinyinUpdate backfills the romanization of an existing Character.
type PinyinUpdate struct {
	Simplified  string
	Pinyin      string
	PinyinPlain string
}

// SearchUsage is one recorded search made by an authenticated caller.
type SearchUsage struct {
	UserID      uuid.UUID
	Tier        string
	Query       string
	InputType   InputType
	ResultCount int
}
