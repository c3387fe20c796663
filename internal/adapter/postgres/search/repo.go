// Package search calls the store-side search procedures.
package search

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/maxbaydi/guide-for-china/internal/adapter/postgres"
	"github.com/maxbaydi/guide-for-china/internal/domain"
)

const (
	enhancedSQL = `SELECT id, simplified, traditional, pinyin, hsk_level, frequency, match_score, match_type
		FROM search_enhanced($1, $2, $3)`
	detailedSQL = `SELECT id, simplified, traditional, pinyin, hsk_level, frequency, match_score, match_type
		FROM search_enhanced_detailed($1, $2, $3)`
	readySQL = `SELECT to_regproc('search_enhanced') IS NOT NULL
		AND to_regproc('search_enhanced_detailed') IS NOT NULL`
)

// ErrNotInstalled is returned by Ready when the search procedures are missing.
var ErrNotInstalled = errors.New("search procedures are not installed")

type resultRow struct {
	ID          uuid.UUID `db:"id"`
	Simplified  string    `db:"simplified"`
	Traditional *string   `db:"traditional"`
	Pinyin      *string   `db:"pinyin"`
	HSKLevel    *int      `db:"hsk_level"`
	Frequency   *int      `db:"frequency"`
	MatchScore  float64   `db:"match_score"`
	MatchType   string    `db:"match_type"`
}

// Repo runs search_enhanced and search_enhanced_detailed.
type Repo struct {
	db postgres.Querier
}

// New creates a new search repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// SearchEnhanced returns the best match per character for query.
func (r *Repo) SearchEnhanced(ctx context.Context, query string, queryType domain.InputType, limit int) ([]domain.SearchResult, error) {
	return r.call(ctx, enhancedSQL, query, queryType, limit)
}

// SearchEnhancedDetailed returns every match candidate for query.
func (r *Repo) SearchEnhancedDetailed(ctx context.Context, query string, queryType domain.InputType, limit int) ([]domain.SearchResult, error) {
	return r.call(ctx, detailedSQL, query, queryType, limit)
}

// Ready reports whether both search procedures exist in the database.
func (r *Repo) Ready(ctx context.Context) error {
	var ok bool
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, readySQL).Scan(&ok); err != nil {
		return fmt.Errorf("check search procedures: %w", err)
	}
	if !ok {
		return ErrNotInstalled
	}
	return nil
}

func (r *Repo) call(ctx context.Context, sql, query string, queryType domain.InputType, limit int) ([]domain.SearchResult, error) {
	var rows []resultRow
	err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, query, queryType.String(), limit)
	if err != nil {
		return nil, fmt.Errorf("call search procedure: %w", err)
	}

	out := make([]domain.SearchResult, len(rows))
	for i, row := range rows {
		out[i] = domain.SearchResult{
			ID:          row.ID,
			Simplified:  row.Simplified,
			Traditional: row.Traditional,
			Pinyin:      row.Pinyin,
			HSKLevel:    row.HSKLevel,
			Frequency:   row.Frequency,
			MatchScore:  row.MatchScore,
			MatchType:   domain.MatchType(row.MatchType),
		}
	}
	return out, nil
}
