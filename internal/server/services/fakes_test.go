package services

import (
	"context"
	"database/sql"
	"sync"

	"github.com/dmitrijs2005/recordapi/internal/common"
	"github.com/dmitrijs2005/recordapi/internal/dbx"
	"github.com/dmitrijs2005/recordapi/internal/server/models"
	"github.com/dmitrijs2005/recordapi/internal/server/query"
	notesrepo "github.com/dmitrijs2005/recordapi/internal/server/repositories/notes"
	usersrepo "github.com/dmitrijs2005/recordapi/internal/server/repositories/users"
)

// --- fake repomanager ---

type fakeManager struct {
	users *fakeUsersRepo
	notes *fakeNotesRepo

	mu      sync.Mutex
	handles []dbx.DBTX
}

func (m *fakeManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *fakeManager) Users(db dbx.DBTX) usersrepo.Repository {
	m.mu.Lock()
	m.handles = append(m.handles, db)
	m.mu.Unlock()
	return m.users
}

func (m *fakeManager) Notes(db dbx.DBTX) notesrepo.Repository {
	m.mu.Lock()
	m.handles = append(m.handles, db)
	m.mu.Unlock()
	return m.notes
}

// --- fake users repo ---

type fakeUsersRepo struct {
	created struct {
		username, digest string
		role             models.Role
	}
	createErr error

	byID    map[int64]*models.User
	getErr  error
	updated []models.Role

	listOut  []models.User
	listErr  error
	listSpec query.Spec
	listPage query.Pagination
	listFn   func(ctx context.Context) ([]models.User, error)

	countOut  int64
	countErr  error
	countSpec query.Spec

	deleteOut *models.User
	deleteErr error
}

func (f *fakeUsersRepo) Create(_ context.Context, username, digest string, role models.Role) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created.username, f.created.digest, f.created.role = username, digest, role
	return &models.User{ID: 1, UserName: username, Role: role}, nil
}

func (f *fakeUsersRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsersRepo) GetCredentials(context.Context, string) (*models.Credentials, error) {
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) List(ctx context.Context, spec query.Spec, page query.Pagination) ([]models.User, error) {
	f.listSpec, f.listPage = spec, page
	if f.listFn != nil {
		return f.listFn(ctx)
	}
	return f.listOut, f.listErr
}

func (f *fakeUsersRepo) Count(_ context.Context, spec query.Spec) (int64, error) {
	f.countSpec = spec
	return f.countOut, f.countErr
}

func (f *fakeUsersRepo) DeleteByUsername(context.Context, string) (*models.User, error) {
	return f.deleteOut, f.deleteErr
}

func (f *fakeUsersRepo) UpdateRole(_ context.Context, id int64, role models.Role) (*models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrNoRowsAffected
	}
	f.updated = append(f.updated, role)
	u.Role = role
	cp := *u
	return &cp, nil
}

// --- fake notes repo ---

type fakeNotesRepo struct {
	notes []models.Note

	listSpec  query.Spec
	countSpec query.Spec
	countErr  error
}

func (f *fakeNotesRepo) Create(_ context.Context, ownerID int64, text string) (*models.Note, error) {
	n := models.Note{ID: int64(len(f.notes) + 1), OwnerID: ownerID, Text: text}
	f.notes = append(f.notes, n)
	return &n, nil
}

func (f *fakeNotesRepo) List(_ context.Context, spec query.Spec, _ query.Pagination) ([]models.Note, error) {
	f.listSpec = spec
	return f.notes, nil
}

func (f *fakeNotesRepo) Count(_ context.Context, spec query.Spec) (int64, error) {
	f.countSpec = spec
	return int64(len(f.notes)), f.countErr
}

func (f *fakeNotesRepo) Delete(_ context.Context, ownerID, id int64) (*models.Note, error) {
	for i, n := range f.notes {
		if n.ID == id && n.OwnerID == ownerID {
			f.notes = append(f.notes[:i], f.notes[i+1:]...)
			return &n, nil
		}
	}
	return nil, common.ErrNoRowsAffected
}
