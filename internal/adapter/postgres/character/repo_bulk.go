package character

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/maxbaydi/guide-for-china/internal/adapter/postgres"
	"github.com/maxbaydi/guide-for-china/internal/domain"
)

// ---------------------------------------------------------------------------
// Import operations
// ---------------------------------------------------------------------------

// Upsert inserts a character or returns the existing one with the same
// simplified form. Missing traditional/pinyin fields of an existing row are
// filled in; present values are never replaced. created reports whether the
// row was inserted.
func (r *Repo) Upsert(ctx context.Context, c domain.CharacterUpsert) (id uuid.UUID, created bool, err error) {
	err = postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx,
		`INSERT INTO characters (simplified, traditional, pinyin, pinyin_plain)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (simplified) DO UPDATE SET
		     traditional  = COALESCE(characters.traditional, EXCLUDED.traditional),
		     pinyin       = COALESCE(characters.pinyin, EXCLUDED.pinyin),
		     pinyin_plain = COALESCE(characters.pinyin_plain, EXCLUDED.pinyin_plain)
		 RETURNING id, (xmax = 0) AS inserted`,
		c.Simplified, c.Traditional, c.Pinyin, c.PinyinPlain,
	).Scan(&id, &created)
	if err != nil {
		return uuid.Nil, false, postgres.MapError(err, "character", c.Simplified)
	}
	return id, created, nil
}

// BulkInsertDefinitions inserts definitions using pgx.Batch. A definition with
// the same character and translation is skipped via ON CONFLICT DO NOTHING.
// Returns the number of actually inserted rows.
func (r *Repo) BulkInsertDefinitions(ctx context.Context, defs []domain.Definition) (int, error) {
	if len(defs) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, d := range defs {
		batch.Queue(
			`INSERT INTO definitions (character_id, translation, part_of_speech, context, sort_order)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT DO NOTHING`,
			d.CharacterID, d.Translation, d.PartOfSpeech, d.Context, d.Order,
		)
	}

	return r.sendBatchExec(ctx, batch)
}

// BulkInsertExamples inserts examples using pgx.Batch. An example with the same
// character, chinese and russian text is skipped via ON CONFLICT DO NOTHING.
func (r *Repo) BulkInsertExamples(ctx context.Context, examples []domain.Example) (int, error) {
	if len(examples) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, ex := range examples {
		batch.Queue(
			`INSERT INTO examples (character_id, chinese, pinyin, russian, source)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT DO NOTHING`,
			ex.CharacterID, ex.Chinese, ex.Pinyin, ex.Russian, ex.Source,
		)
	}

	return r.sendBatchExec(ctx, batch)
}

// GetIDsBySimplified returns a map of simplified → id for all matching characters.
func (r *Repo) GetIDsBySimplified(ctx context.Context, simplified []string) (map[string]uuid.UUID, error) {
	if len(simplified) == 0 {
		return map[string]uuid.UUID{}, nil
	}

	q := postgres.QuerierFromCtx(ctx, r.db)
	rows, err := q.Query(ctx,
		`SELECT simplified, id FROM characters WHERE simplified = ANY($1)`,
		simplified,
	)
	if err != nil {
		return nil, fmt.Errorf("get character IDs by simplified: %w", err)
	}
	defer rows.Close()

	result := make(map[string]uuid.UUID, len(simplified))
	for rows.Next() {
		var s string
		var id uuid.UUID
		if err := rows.Scan(&s, &id); err != nil {
			return nil, fmt.Errorf("scan character ID: %w", err)
		}
		result[s] = id
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate character IDs: %w", err)
	}

	return result, nil
}

// BulkUpdatePinyin backfills pinyin onto existing characters. Updates with an
// empty pinyin are skipped so a present value is never blanked; rows that
// already hold the same value are left untouched. Returns the number of
// updated rows.
func (r *Repo) BulkUpdatePinyin(ctx context.Context, updates []domain.PinyinUpdate) (int, error) {
	batch := &pgx.Batch{}
	for _, u := range updates {
		if u.Pinyin == "" {
			continue
		}
		sql, args, err := psql.Update("characters").
			Set("pinyin", u.Pinyin).
			Set("pinyin_plain", squirrel.Expr("COALESCE(NULLIF(?, ''), pinyin_plain)", u.PinyinPlain)).
			Where(squirrel.Eq{"simplified": u.Simplified}).
			Where("pinyin IS DISTINCT FROM ?", u.Pinyin).
			ToSql()
		if err != nil {
			return 0, fmt.Errorf("build pinyin update: %w", err)
		}
		batch.Queue(sql, args...)
	}
	if batch.Len() == 0 {
		return 0, nil
	}

	return r.sendBatchExec(ctx, batch)
}

func (r *Repo) sendBatchExec(ctx context.Context, batch *pgx.Batch) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)
	results := q.SendBatch(ctx, batch)
	defer results.Close()

	var affected int
	for range batch.Len() {
		tag, err := results.Exec()
		if err != nil {
			return affected, fmt.Errorf("batch exec: %w", err)
		}
		affected += int(tag.RowsAffected())
	}

	return affected, nil
}
