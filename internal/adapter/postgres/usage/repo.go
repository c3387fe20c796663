// Package usage records search statistics of authenticated callers.
package usage

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/maxbaydi/guide-for-china/internal/adapter/postgres"
	"github.com/maxbaydi/guide-for-china/internal/domain"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repo writes search_history rows.
type Repo struct {
	db postgres.Querier
}

// New creates a new usage repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// RecordSearch stores one search made by an authenticated caller.
func (r *Repo) RecordSearch(ctx context.Context, u domain.SearchUsage) error {
	sql, args, err := psql.Insert("search_history").
		Columns("user_id", "tier", "query", "input_type", "result_count").
		Values(u.UserID, u.Tier, u.Query, u.InputType.String(), u.ResultCount).
		ToSql()
	if err != nil {
		return fmt.Errorf("build record search: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "search_history", u.UserID)
	}
	return nil
}
