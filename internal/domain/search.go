package domain

import "github.com/google/uuid"

// InputType is the script classification of a raw query.
type InputType string

const (
	InputChinese InputType = "chinese"
	InputPinyin  InputType = "pinyin"
	InputRussian InputType = "russian"
	InputMixed   InputType = "mixed"
)

func (t InputType) String() string { return string(t) }

func (t InputType) IsValid() bool {
	switch t {
	case InputChinese, InputPinyin, InputRussian, InputMixed:
		return true
	}
	return false
}

// MatchType is the kind of match a search procedure reports for a row.
type MatchType string

const (
	MatchExact  MatchType = "exact"
	MatchPrefix MatchType = "prefix"
	MatchFuzzy  MatchType = "fuzzy"
)

func (m MatchType) String() string { return string(m) }

// Rank orders match types best-first: exact < prefix < fuzzy < unknown.
func (m MatchType) Rank() int {
	switch m {
	case MatchExact:
		return 0
	case MatchPrefix:
		return 1
	case MatchFuzzy:
		return 2
	}
	return 3
}

// SearchResult is one row produced by the store-side search procedure.
type SearchResult struct {
	ID          uuid.UUID
	Simplified  string
	Traditional *string
	Pinyin      *string
	HSKLevel    *int
	Frequency   *int
	MatchScore  float64
	MatchType   MatchType
}

// Character converts a search row into a Character without definitions.
func (r SearchResult) Character() Character {
	return Character{
		ID:          r.ID,
		Simplified:  r.Simplified,
		Traditional: r.Traditional,
		Pinyin:      r.Pinyin,
		HSKLevel:    r.HSKLevel,
		Frequency:   r.Frequency,
	}
}
