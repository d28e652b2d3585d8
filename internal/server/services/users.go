package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/recordapi/internal/common"
	"github.com/dmitrijs2005/recordapi/internal/dbx"
	"github.com/dmitrijs2005/recordapi/internal/server/auth"
	"github.com/dmitrijs2005/recordapi/internal/server/models"
	"github.com/dmitrijs2005/recordapi/internal/server/query"
	"github.com/dmitrijs2005/recordapi/internal/server/repositories/repomanager"
	usersrepo "github.com/dmitrijs2005/recordapi/internal/server/repositories/users"
)

type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      *auth.PasswordHasher
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher *auth.PasswordHasher) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
	}
}

// SignUp registers a Basic user.
func (s *UserService) SignUp(ctx context.Context, username, password string) (*models.User, error) {
	return s.Create(ctx, username, password, models.RoleBasic)
}

// Create stores a user with the given role. Duplicate usernames yield
// common.ErrAlreadyExists.
func (s *UserService) Create(ctx context.Context, username, password string, role models.Role) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", common.ErrValidation)
	}

	user, err := s.repomanager.Users(s.db).Create(ctx, username, s.hasher.Digest(password), role)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return user, nil
}

// Me re-reads the caller's row.
func (s *UserService) Me(ctx context.Context, id int64) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, id)
}

// List returns one page of users matching f together with the total count.
func (s *UserService) List(ctx context.Context, f usersrepo.Filters, page query.Pagination) (*Page[models.User], error) {
	repo := s.repomanager.Users(s.db)
	spec := f.Spec()

	return fetchPage(ctx,
		func(ctx context.Context) ([]models.User, error) { return repo.List(ctx, spec, page) },
		func(ctx context.Context) (int64, error) { return repo.Count(ctx, spec) },
	)
}

// Delete removes a user by username and returns it.
func (s *UserService) Delete(ctx context.Context, username string) (*models.User, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", common.ErrValidation)
	}
	return s.repomanager.Users(s.db).DeleteByUsername(ctx, username)
}

// Promote sets the role of user id. A missing user yields
// common.ErrNoRowsAffected.
func (s *UserService) Promote(ctx context.Context, id int64, role models.Role) (*models.User, error) {
	var updated *models.User

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		current, err := repo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrNoRowsAffected
			}
			return err
		}
		if current.Role == role {
			updated = current
			return nil
		}

		updated, err = repo.UpdateRole(ctx, id, role)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}
