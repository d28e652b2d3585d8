package notes

import (
	"context"

	"github.com/dmitrijs2005/recordapi/internal/server/models"
	"github.com/dmitrijs2005/recordapi/internal/server/query"
)

// Predicates accepted in a notes listing spec.
const (
	OwnerEquals  query.Predicate = "owner_id=?"
	TextContains query.Predicate = "text LIKE ?"
)

type Repository interface {
	Create(ctx context.Context, ownerID int64, text string) (*models.Note, error)
	List(ctx context.Context, spec query.Spec, page query.Pagination) ([]models.Note, error)
	Count(ctx context.Context, spec query.Spec) (int64, error)
	Delete(ctx context.Context, ownerID, id int64) (*models.Note, error)
}
