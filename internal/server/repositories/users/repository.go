package users

import (
	"context"

	"github.com/dmitrijs2005/recordapi/internal/server/models"
	"github.com/dmitrijs2005/recordapi/internal/server/query"
)

// Predicates accepted in a users listing spec.
const (
	RoleEquals       query.Predicate = "role=?"
	UsernameContains query.Predicate = "username LIKE ?"
)

type Repository interface {
	Create(ctx context.Context, username, passwordDigest string, role models.Role) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetCredentials(ctx context.Context, username string) (*models.Credentials, error)
	List(ctx context.Context, spec query.Spec, page query.Pagination) ([]models.User, error)
	Count(ctx context.Context, spec query.Spec) (int64, error)
	DeleteByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateRole(ctx context.Context, id int64, role models.Role) (*models.User, error)
}
