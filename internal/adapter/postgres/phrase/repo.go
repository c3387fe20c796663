// Package phrase implements the phrase-book store on PostgreSQL.
package phrase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/maxbaydi/guide-for-china/internal/adapter/postgres"
	"github.com/maxbaydi/guide-for-china/internal/domain"
	"github.com/maxbaydi/guide-for-china/internal/lang"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var phraseColumns = []string{"id", "russian", "chinese", "pinyin", "created_at"}

type phraseRow struct {
	ID        uuid.UUID `db:"id"`
	Russian   string    `db:"russian"`
	Chinese   string    `db:"chinese"`
	Pinyin    *string   `db:"pinyin"`
	CreatedAt time.Time `db:"created_at"`
}

// Repo provides phrase persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new phrase repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Search finds phrases containing query: on the Chinese side when query has
// CJK characters, otherwise case-insensitively on the Russian side. Exact
// matches come first, then shorter phrases.
func (r *Repo) Search(ctx context.Context, query string, limit int) ([]domain.Phrase, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.Phrase{}, nil
	}

	column := "lower(russian)"
	if lang.ContainsCJK(query) {
		column = "chinese"
	} else {
		query = strings.ToLower(query)
	}

	sql, args, err := psql.Select(phraseColumns...).
		From("phrases").
		Where(column+" LIKE ?", "%"+escapeLike(query)+"%").
		OrderByClause("CASE WHEN "+column+" = ? THEN 0 ELSE 1 END", query).
		OrderBy("char_length("+column+")", "created_at DESC").
		Limit(uint64(max(limit, 1))).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build phrase search: %w", err)
	}

	var rows []phraseRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("search phrases %q: %w", query, err)
	}

	out := make([]domain.Phrase, len(rows))
	for i, row := range rows {
		out[i] = domain.Phrase(row)
	}
	return out, nil
}

// ReverseTranslations returns phrases whose Chinese side contains simplified,
// most recent first.
func (r *Repo) ReverseTranslations(ctx context.Context, simplified string, limit int) ([]domain.ReverseTranslation, error) {
	sql, args, err := psql.Select(phraseColumns...).
		From("phrases").
		Where("chinese LIKE ?", "%"+escapeLike(simplified)+"%").
		OrderBy("created_at DESC", "id").
		Limit(uint64(max(limit, 1))).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build reverse translations: %w", err)
	}

	var rows []phraseRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("reverse translations of %q: %w", simplified, err)
	}

	out := make([]domain.ReverseTranslation, len(rows))
	for i, row := range rows {
		out[i] = domain.ReverseTranslation(row)
	}
	return out, nil
}

// BulkInsert inserts phrases using pgx.Batch. A phrase with the same russian
// and chinese text is skipped via ON CONFLICT DO NOTHING.
// Returns the number of actually inserted rows.
func (r *Repo) BulkInsert(ctx context.Context, phrases []domain.Phrase) (int, error) {
	if len(phrases) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, p := range phrases {
		batch.Queue(
			`INSERT INTO phrases (russian, chinese, pinyin)
			 VALUES ($1, $2, $3)
			 ON CONFLICT DO NOTHING`,
			p.Russian, p.Chinese, p.Pinyin,
		)
	}

	q := postgres.QuerierFromCtx(ctx, r.db)
	results := q.SendBatch(ctx, batch)
	defer results.Close()

	var inserted int
	for range batch.Len() {
		tag, err := results.Exec()
		if err != nil {
			return inserted, fmt.Errorf("batch exec: %w", err)
		}
		inserted += int(tag.RowsAffected())
	}

	return inserted, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
