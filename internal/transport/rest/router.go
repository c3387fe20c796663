package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter mounts the health probes at the root and the dictionary API
// under /api/v1. Cross-cutting middleware is applied by the caller.
func NewRouter(health *HealthHandler, dict *DictionaryHandler, api ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/live", health.Live)
	r.Get("/ready", health.Ready)
	r.Get("/health", health.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(api...)

		r.Get("/search", dict.Search)
		r.Get("/search/detailed", dict.SearchDetailed)
		r.Get("/characters/{id}", dict.GetCharacter)
		r.Get("/characters/{id}/examples", dict.GetCharacterExamples)
		r.Post("/analyze", dict.Analyze)
		r.Get("/word-of-the-day", dict.WordOfTheDay)
		r.Get("/words/{simplified}/similar", dict.SimilarWords)
		r.Get("/words/{simplified}/reverse", dict.ReverseTranslations)
		r.Get("/phrases", dict.Phrases)
	})

	return r
}
