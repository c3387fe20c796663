package rest

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/maxbaydi/guide-for-china/internal/domain"
)

type characterResponse struct {
	ID          string               `json:"id"`
	Simplified  string               `json:"simplified"`
	Traditional *string              `json:"traditional"`
	Pinyin      *string              `json:"pinyin"`
	HSKLevel    *int                 `json:"hskLevel"`
	Frequency   *int                 `json:"frequency"`
	Definitions []definitionResponse `json:"definitions"`
}

type definitionResponse struct {
	ID           string  `json:"id"`
	Translation  string  `json:"translation"`
	PartOfSpeech *string `json:"partOfSpeech"`
	Context      *string `json:"context"`
	Order        int     `json:"order"`
}

type exampleResponse struct {
	ID      string  `json:"id"`
	Chinese string  `json:"chinese"`
	Pinyin  *string `json:"pinyin"`
	Russian string  `json:"russian"`
	Source  *string `json:"source"`
}

type searchResultResponse struct {
	ID          string  `json:"id"`
	Simplified  string  `json:"simplified"`
	Traditional *string `json:"traditional"`
	Pinyin      *string `json:"pinyin"`
	HSKLevel    *int    `json:"hskLevel"`
	Frequency   *int    `json:"frequency"`
	MatchScore  float64 `json:"matchScore"`
	MatchType   string  `json:"matchType"`
}

type analysisResponse struct {
	Character string             `json:"character"`
	Position  int                `json:"position"`
	Found     bool               `json:"found"`
	Details   *characterResponse `json:"details"`
}

type similarWordResponse struct {
	ID              string  `json:"id"`
	Simplified      string  `json:"simplified"`
	Traditional     *string `json:"traditional"`
	Pinyin          *string `json:"pinyin"`
	HSKLevel        *int    `json:"hskLevel"`
	MainTranslation *string `json:"mainTranslation"`
}

type phraseResponse struct {
	ID        string    `json:"id"`
	Russian   string    `json:"russian"`
	Chinese   string    `json:"chinese"`
	Pinyin    *string   `json:"pinyin"`
	CreatedAt time.Time `json:"createdAt"`
}

func toCharacterResponse(c domain.Character) characterResponse {
	defs := make([]definitionResponse, len(c.Definitions))
	for i, d := range c.Definitions {
		defs[i] = definitionResponse{
			ID:           d.ID.String(),
			Translation:  d.Translation,
			PartOfSpeech: d.PartOfSpeech,
			Context:      d.Context,
			Order:        d.Order,
		}
	}
	return characterResponse{
		ID:          c.ID.String(),
		Simplified:  c.Simplified,
		Traditional: c.Traditional,
		Pinyin:      c.Pinyin,
		HSKLevel:    c.HSKLevel,
		Frequency:   c.Frequency,
		Definitions: defs,
	}
}

func toCharacterResponses(chars []domain.Character) []characterResponse {
	out := make([]characterResponse, len(chars))
	for i, c := range chars {
		out[i] = toCharacterResponse(c)
	}
	return out
}

func toExampleResponses(examples []domain.Example) []exampleResponse {
	out := make([]exampleResponse, len(examples))
	for i, e := range examples {
		out[i] = exampleResponse{
			ID:      e.ID.String(),
			Chinese: e.Chinese,
			Pinyin:  e.Pinyin,
			Russian: e.Russian,
			Source:  e.Source,
		}
	}
	return out
}

func toSearchResultResponses(results []domain.SearchResult) []searchResultResponse {
	out := make([]searchResultResponse, len(results))
	for i, r := range results {
		out[i] = searchResultResponse{
			ID:          r.ID.String(),
			Simplified:  r.Simplified,
			Traditional: r.Traditional,
			Pinyin:      r.Pinyin,
			HSKLevel:    r.HSKLevel,
			Frequency:   r.Frequency,
			MatchScore:  r.MatchScore,
			MatchType:   r.MatchType.String(),
		}
	}
	return out
}

func toAnalysisResponses(items []domain.CharacterAnalysis) []analysisResponse {
	out := make([]analysisResponse, len(items))
	for i, a := range items {
		out[i] = analysisResponse{
			Character: a.Character,
			Position:  a.Position,
			Found:     a.Found,
		}
		if a.Details != nil {
			details := toCharacterResponse(*a.Details)
			out[i].Details = &details
		}
	}
	return out
}

func toSimilarWordResponses(words []domain.SimilarWordPreview) []similarWordResponse {
	out := make([]similarWordResponse, len(words))
	for i, w := range words {
		out[i] = similarWordResponse{
			ID:              w.ID.String(),
			Simplified:      w.Simplified,
			Traditional:     w.Traditional,
			Pinyin:          w.Pinyin,
			HSKLevel:        w.HSKLevel,
			MainTranslation: w.MainTranslation,
		}
	}
	return out
}

func toPhraseResponses(phrases []domain.Phrase) []phraseResponse {
	out := make([]phraseResponse, len(phrases))
	for i, p := range phrases {
		out[i] = phraseResponse{
			ID:        p.ID.String(),
			Russian:   p.Russian,
			Chinese:   p.Chinese,
			Pinyin:    p.Pinyin,
			CreatedAt: p.CreatedAt,
		}
	}
	return out
}

func toReverseResponses(items []domain.ReverseTranslation) []phraseResponse {
	out := make([]phraseResponse, len(items))
	for i, p := range items {
		out[i] = phraseResponse{
			ID:        p.ID.String(),
			Russian:   p.Russian,
			Chinese:   p.Chinese,
			Pinyin:    p.Pinyin,
			CreatedAt: p.CreatedAt,
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
