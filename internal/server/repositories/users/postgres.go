package users

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

	insertSQL      string
	byIDSQL        string
	credentialsSQL string
	deleteSQL      string
	updateRoleSQL  string
}

// NewPostgresRepository binds the repository to db and table. The table name
// is a validated identifier from configuration.
func NewPostgresRepository(db dbx.DBTX, table string) *PostgresRepository {
	return &PostgresRepository{
		db:      db,
		builder: query.NewBuilder(query.Postgres, table, "id", "username", "role"),

		insertSQL:      fmt.Sprintf("INSERT INTO %s (username, password, role) VALUES ($1, $2, $3) RETURNING id", table),
		byIDSQL:        fmt.Sprintf("SELECT id, username, role FROM %s WHERE id = $1", table),
		credentialsSQL: fmt.Sprintf("SELECT id, username, role, password FROM %s WHERE username = $1", table),
		deleteSQL:      fmt.Sprintf("DELETE FROM %s WHERE username = $1 RETURNING id, username, role", table),
		updateRoleSQL:  fmt.Sprintf("UPDATE %s SET role = $1 WHERE id = $2 RETURNING id, username, role", table),
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner, extra ...any) (*models.User, error) {
	var (
		u    models.User
		role int16
	)
	dest := append([]any{&u.ID, &u.UserName, &role}, extra...)
	if err := s.Scan(dest...); err != nil {
		return nil, err
	}
	r, err := models.ParseRole(int64(role))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrQueryFailed, err)
	}
	u.Role = r
	return &u, nil
}

func (r *PostgresRepository) Create(ctx context.Context, username, passwordDigest string, role models.Role) (*models.User, error) {
	user := &models.User{UserName: username, Role: role}

	err := r.db.QueryRowContext(ctx, r.insertSQL, username, passwordDigest, int16(role)).Scan(&user.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", dbx.Classify(err))
	}

	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, r.byIDSQL, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	return user, nil
}

func (r *PostgresRepository) GetCredentials(ctx context.Context, username string) (*models.Credentials, error) {
	var digest string
	user, err := scanUser(r.db.QueryRowContext(ctx, r.credentialsSQL, username), &digest)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	return &models.Credentials{User: *user, PasswordDigest: digest}, nil
}

func (r *PostgresRepository) List(ctx context.Context, spec query.Spec, page query.Pagination) ([]models.User, error) {
	plan := r.builder.DataPlan(spec, page)

	rows, err := r.db.QueryContext(ctx, plan.SQL, plan.Args()...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	defer rows.Close()

	out := make([]models.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", dbx.Classify(err))
		}
		out = append(out, *u)
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

// DeleteByUsername removes the user and returns the deleted row.
// common.ErrNoRowsAffected if no such user exists.
func (r *PostgresRepository) DeleteByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, r.deleteSQL, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNoRowsAffected
		}
		return nil, fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	return user, nil
}

// UpdateRole sets the user's role and returns the updated row.
// common.ErrNoRowsAffected if no such user exists.
func (r *PostgresRepository) UpdateRole(ctx context.Context, id int64, role models.Role) (*models.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, r.updateRoleSQL, int16(role), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNoRowsAffected
		}
		return nil, fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	return user, nil
}
