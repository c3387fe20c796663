// Package character implements the Character aggregate store (characters,
// definitions and examples) on PostgreSQL.
package character

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/maxbaydi/guide-for-china/internal/adapter/postgres"
	"github.com/maxbaydi/guide-for-china/internal/domain"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var characterColumns = []string{
	"c.id", "c.simplified", "c.traditional", "c.pinyin", "c.hsk_level", "c.frequency", "c.created_at",
}

const definitionOrder = "sort_order, created_at, id"

// Repo provides character persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new character repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a character without definitions.
// Returns domain.ErrNotFound if not found.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Character, error) {
	sql, args, err := psql.Select(characterColumns...).
		From("characters c").
		Where(squirrel.Eq{"c.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get character: %w", err)
	}

	var row characterRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "character", id)
	}

	c := row.toDomain()
	return &c, nil
}

// GetBySimplifiedSet returns every character whose simplified form is in set,
// in one query.
func (r *Repo) GetBySimplifiedSet(ctx context.Context, set []string) ([]domain.Character, error) {
	if len(set) == 0 {
		return []domain.Character{}, nil
	}

	var rows []characterRow
	err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows,
		`SELECT c.id, c.simplified, c.traditional, c.pinyin, c.hsk_level, c.frequency, c.created_at
		 FROM characters c
		 WHERE c.simplified = ANY($1)`,
		set,
	)
	if err != nil {
		return nil, fmt.Errorf("get characters by simplified: %w", err)
	}

	return mapRows(rows, characterRow.toDomain), nil
}

// DefinitionsByCharacterIDs returns up to perCharacter ordered definitions for
// each character id (all of them when perCharacter <= 0), in one query.
func (r *Repo) DefinitionsByCharacterIDs(ctx context.Context, ids []uuid.UUID, perCharacter int) (map[uuid.UUID][]domain.Definition, error) {
	result := make(map[uuid.UUID][]domain.Definition, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var rows []definitionRow
	err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows,
		`SELECT id, character_id, translation, part_of_speech, context, sort_order, created_at
		 FROM (
		     SELECT d.*, row_number() OVER (PARTITION BY d.character_id ORDER BY `+definitionOrder+`) AS rn
		     FROM definitions d
		     WHERE d.character_id = ANY($1)
		 ) ranked
		 WHERE $2 <= 0 OR rn <= $2
		 ORDER BY character_id, `+definitionOrder,
		ids, perCharacter,
	)
	if err != nil {
		return nil, fmt.Errorf("get definitions by character ids: %w", err)
	}

	for _, row := range rows {
		result[row.CharacterID] = append(result[row.CharacterID], row.toDomain())
	}
	return result, nil
}

// Examples returns up to limit examples of a character, oldest first.
func (r *Repo) Examples(ctx context.Context, characterID uuid.UUID, limit int) ([]domain.Example, error) {
	sql, args, err := psql.Select("id", "character_id", "chinese", "pinyin", "russian", "source", "created_at").
		From("examples").
		Where(squirrel.Eq{"character_id": characterID}).
		OrderBy("created_at", "id").
		Limit(uint64(max(limit, 1))).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list examples: %w", err)
	}

	var rows []exampleRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list examples of %s: %w", characterID, err)
	}

	return mapRows(rows, exampleRow.toDomain), nil
}

// DailyCharacter returns the character with at least one definition that sorts
// first by md5(simplified || seed). With singleGlyph only one-glyph headwords
// qualify. Returns domain.ErrNotFound when nothing qualifies.
func (r *Repo) DailyCharacter(ctx context.Context, seed int, singleGlyph bool) (*domain.Character, error) {
	q := psql.Select(characterColumns...).
		From("characters c").
		Where("EXISTS (SELECT 1 FROM definitions d WHERE d.character_id = c.id)")
	if singleGlyph {
		q = q.Where("char_length(c.simplified) = 1")
	}
	sql, args, err := q.OrderByClause("md5(c.simplified || ?)", strconv.Itoa(seed)).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build daily character: %w", err)
	}

	var row characterRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "daily character", seed)
	}

	c := row.toDomain()
	return &c, nil
}

// SimilarWords returns characters whose simplified form starts with or
// contains simplified, excluding simplified itself. Prefix matches come first.
func (r *Repo) SimilarWords(ctx context.Context, simplified string, limit int) ([]domain.SimilarWordPreview, error) {
	pattern := escapeLike(simplified)

	sql, args, err := psql.Select(
		"c.id", "c.simplified", "c.traditional", "c.pinyin", "c.hsk_level",
		"(SELECT d.translation FROM definitions d WHERE d.character_id = c.id ORDER BY d.sort_order, d.created_at, d.id LIMIT 1) AS main_translation",
	).
		From("characters c").
		Where(squirrel.Like{"c.simplified": "%" + pattern + "%"}).
		Where(squirrel.NotEq{"c.simplified": simplified}).
		OrderByClause("CASE WHEN c.simplified LIKE ? THEN 0 ELSE 1 END", pattern+"%").
		OrderBy("c.frequency ASC NULLS LAST", "char_length(c.simplified)", "c.simplified").
		Limit(uint64(max(limit, 1))).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build similar words: %w", err)
	}

	var rows []similarRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("similar words of %q: %w", simplified, err)
	}

	return mapRows(rows, similarRow.toDomain), nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
