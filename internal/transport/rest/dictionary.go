package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/maxbaydi/guide-for-china/internal/domain"
)

const maxAnalyzeBody = 64 << 10

// dictionaryService is the facade surface the handlers expose.
type dictionaryService interface {
	SearchCharacters(ctx context.Context, query string, limit int) []domain.Character
	SearchDetailed(ctx context.Context, query string, limit int) []domain.SearchResult
	GetCharacter(ctx context.Context, id uuid.UUID) (*domain.Character, error)
	GetCharacterExamples(ctx context.Context, characterID uuid.UUID, limit int) ([]domain.Example, error)
	AnalyzeText(ctx context.Context, text string) ([]domain.CharacterAnalysis, error)
	GetWordOfTheDay(ctx context.Context) (*domain.Character, error)
	GetSimilarWords(ctx context.Context, simplified string, limit int) ([]domain.SimilarWordPreview, error)
	GetReverseTranslations(ctx context.Context, simplified string, limit int) ([]domain.ReverseTranslation, error)
	SearchPhrases(ctx context.Context, query string, limit int) ([]domain.Phrase, error)
}

// DictionaryHandler serves the read-only dictionary endpoints.
type DictionaryHandler struct {
	svc dictionaryService
	log *slog.Logger
}

// NewDictionaryHandler creates a DictionaryHandler.
func NewDictionaryHandler(svc dictionaryService, logger *slog.Logger) *DictionaryHandler {
	return &DictionaryHandler{svc: svc, log: logger.With("handler", "dictionary")}
}

type analyzeRequest struct {
	Text string `json:"text"`
}

// Search handles GET /search?q=&limit=.
func (h *DictionaryHandler) Search(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	chars := h.svc.SearchCharacters(r.Context(), r.URL.Query().Get("q"), limit)
	writeJSON(w, http.StatusOK, toCharacterResponses(chars))
}

// SearchDetailed handles GET /search/detailed?q=&limit=.
func (h *DictionaryHandler) SearchDetailed(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	results := h.svc.SearchDetailed(r.Context(), r.URL.Query().Get("q"), limit)
	writeJSON(w, http.StatusOK, toSearchResultResponses(results))
}

// GetCharacter handles GET /characters/{id}.
func (h *DictionaryHandler) GetCharacter(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	char, err := h.svc.GetCharacter(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	if char == nil {
		writeError(w, http.StatusNotFound, "character not found")
		return
	}

	writeJSON(w, http.StatusOK, toCharacterResponse(*char))
}

// GetCharacterExamples handles GET /characters/{id}/examples?limit=.
func (h *DictionaryHandler) GetCharacterExamples(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	limit, err := parseLimit(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	examples, err := h.svc.GetCharacterExamples(r.Context(), id, limit)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toExampleResponses(examples))
}

// Analyze handles POST /analyze.
func (h *DictionaryHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAnalyzeBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	items, err := h.svc.AnalyzeText(r.Context(), req.Text)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toAnalysisResponses(items))
}

// WordOfTheDay handles GET /word-of-the-day.
func (h *DictionaryHandler) WordOfTheDay(w http.ResponseWriter, r *http.Request) {
	char, err := h.svc.GetWordOfTheDay(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	if char == nil {
		writeJSON(w, http.StatusOK, nil)
		return
	}

	writeJSON(w, http.StatusOK, toCharacterResponse(*char))
}

// SimilarWords handles GET /words/{simplified}/similar?limit=.
func (h *DictionaryHandler) SimilarWords(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	words, err := h.svc.GetSimilarWords(r.Context(), chi.URLParam(r, "simplified"), limit)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSimilarWordResponses(words))
}

// ReverseTranslations handles GET /words/{simplified}/reverse?limit=.
func (h *DictionaryHandler) ReverseTranslations(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	items, err := h.svc.GetReverseTranslations(r.Context(), chi.URLParam(r, "simplified"), limit)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toReverseResponses(items))
}

// Phrases handles GET /phrases?q=&limit=.
func (h *DictionaryHandler) Phrases(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	phrases, err := h.svc.SearchPhrases(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toPhraseResponses(phrases))
}

func (h *DictionaryHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// parseLimit reads the optional limit query parameter. Zero means the
// service default; the service clamps anything above its maximum.
func parseLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return 0, domain.NewValidationError("limit", "must be a positive integer")
	}
	return limit, nil
}

func parseID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, domain.NewValidationError("id", "must be a UUID")
	}
	return id, nil
}
