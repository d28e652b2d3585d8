package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/recordapi/internal/common"
	"github.com/dmitrijs2005/recordapi/internal/dbx"
	"github.com/dmitrijs2005/recordapi/internal/server/models"
	"github.com/dmitrijs2005/recordapi/internal/server/query"
)

type PostgresRepository struct {
	db      dbx.DBTX
	builder *query.Builder

	insertSQL string
	deleteSQL string
}

func NewPostgresRepository(db dbx.DBTX, table string) *PostgresRepository {
	return &PostgresRepository{
		db:        db,
		builder:   query.NewBuilder(query.Postgres, table, "id", "owner_id", "text"),
		insertSQL: fmt.Sprintf("INSERT INTO %s (owner_id, text) VALUES ($1, $2) RETURNING id", table),
		deleteSQL: fmt.Sprintf("DELETE FROM %s WHERE id = $1 AND owner_id = $2 RETURNING id, owner_id, text", table),
	}
}

func (r *PostgresRepository) Create(ctx context.Context, ownerID int64, text string) (*models.Note, error) {
	note := &models.Note{OwnerID: ownerID, Text: text}

	if err := r.db.QueryRowContext(ctx, r.insertSQL, ownerID, text).Scan(&note.ID); err != nil {
		return nil, fmt.Errorf("db error: %w", dbx.Classify(err))
	}

	return note, nil
}

func (r *PostgresRepository) List(ctx context.Context, spec query.Spec, page query.Pagination) ([]models.Note, error) {
	plan := r.builder.DataPlan(spec, page)

	rows, err := r.db.QueryContext(ctx, plan.SQL, plan.Args()...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	defer rows.Close()

	out := make([]models.Note, 0)
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.ID, &n.OwnerID, &n.Text); err != nil {
			return nil, fmt.Errorf("db error: %w", dbx.Classify(err))
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", dbx.Classify(err))
	}

	return out, nil
}

func (r *PostgresRepository) Count(ctx context.Context, spec query.Spec) (int64, error) {
	plan := r.builder.CountPlan(spec)

	var n int64
	if err := r.db.QueryRowContext(ctx, plan.SQL, plan.Args()...).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	return n, nil
}

// Delete removes note id only if it belongs to ownerID.
// common.ErrNoRowsAffected otherwise.
func (r *PostgresRepository) Delete(ctx context.Context, ownerID, id int64) (*models.Note, error) {
	var n models.Note

	err := r.db.QueryRowContext(ctx, r.deleteSQL, id, ownerID).Scan(&n.ID, &n.OwnerID, &n.Text)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNoRowsAffected
		}
		return nil, fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	return &n, nil
}
