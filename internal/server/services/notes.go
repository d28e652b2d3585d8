package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/recordapi/internal/common"
	"github.com/dmitrijs2005/recordapi/internal/server/models"
	"github.com/dmitrijs2005/recordapi/internal/server/query"
	notesrepo "github.com/dmitrijs2005/recordapi/internal/server/repositories/notes"
	"github.com/dmitrijs2005/recordapi/internal/server/repositories/repomanager"
)

// NoteService scopes every operation to the owning user.
type NoteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewNoteService(db *sql.DB, m repomanager.RepositoryManager) *NoteService {
	return &NoteService{db: db, repomanager: m}
}

func (s *NoteService) Create(ctx context.Context, ownerID int64, text string) (*models.Note, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text is required", common.ErrValidation)
	}
	return s.repomanager.Notes(s.db).Create(ctx, ownerID, text)
}

func (s *NoteService) List(ctx context.Context, ownerID int64, search *string, page query.Pagination) (*Page[models.Note], error) {
	repo := s.repomanager.Notes(s.db)
	spec := notesrepo.Filters{OwnerID: &ownerID, Search: search}.Spec()

	return fetchPage(ctx,
		func(ctx context.Context) ([]models.Note, error) { return repo.List(ctx, spec, page) },
		func(ctx context.Context) (int64, error) { return repo.Count(ctx, spec) },
	)
}

func (s *NoteService) Delete(ctx context.Context, ownerID, id int64) (*models.Note, error) {
	return s.repomanager.Notes(s.db).Delete(ctx, ownerID, id)
}
