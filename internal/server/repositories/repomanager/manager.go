package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/recordapi/internal/dbx"
	"github.com/dmitrijs2005/recordapi/internal/server/repositories/notes"
	"github.com/dmitrijs2005/recordapi/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Notes(db dbx.DBTX) notes.Repository
}
