package server

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/recordapi/internal/dbx"
	"github.com/dmitrijs2005/recordapi/internal/server/repositories/notes"
	"github.com/dmitrijs2005/recordapi/internal/server/repositories/users"
)

type repomanagerStub struct{}

func (repomanagerStub) RunMigrations(context.Context, *sql.DB) error { return nil }
func (repomanagerStub) Users(db dbx.DBTX) users.Repository          { return users.NewPostgresRepository(db, "users") }
func (repomanagerStub) Notes(db dbx.DBTX) notes.Repository          { return notes.NewPostgresRepository(db, "notes") }

func (failingMigrations) RunMigrations(context.Context, *sql.DB) error {
	return errors.New("no schema")
}
