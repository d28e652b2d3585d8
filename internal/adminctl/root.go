// Package adminctl implements recordctl, the operator CLI that applies
// migrations and manages privileged accounts directly against the database.
package adminctl

import (
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/recordapi/internal/server/auth"
	"github.com/dmitrijs2005/recordapi/internal/server/config"
	"github.com/dmitrijs2005/recordapi/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/recordapi/internal/server/services"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"
)

// Seams for tests.
var (
	openDB = func(dsn string) (*sql.DB, error) {
		return sql.Open("pgx", dsn)
	}
	newManager = func(t repomanager.Tables) repomanager.RepositoryManager {
		return repomanager.NewPostgresRepositoryManager(t)
	}
)

// RootOptions holds the connection flags shared by every command.
type RootOptions struct {
	DSN        string
	Salt       string
	UsersTable string
	NotesTable string
}

// NewRootCommand creates the recordctl command tree.
func NewRootCommand() *cobra.Command {
	defaults := &config.Config{}
	defaults.LoadDefaults()

	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "recordctl",
		Short: "Administrative tasks for the record API",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.validate()
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.DSN, "dsn", "d", defaults.DatabaseDSN, "database connection string")
	cmd.PersistentFlags().StringVar(&opts.Salt, "salt", defaults.PasswordSalt, "password salt, must match the server")
	cmd.PersistentFlags().StringVar(&opts.UsersTable, "users-table", defaults.UsersTable, "users table name")
	cmd.PersistentFlags().StringVar(&opts.NotesTable, "notes-table", defaults.NotesTable, "notes table name")

	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewCreateAdminCommand(opts))
	cmd.AddCommand(NewPromoteCommand(opts))

	return cmd
}

// validate runs the server's own config checks over the subset of settings
// recordctl uses.
func (o *RootOptions) validate() error {
	c := &config.Config{}
	c.LoadDefaults()
	c.PasswordSalt = o.Salt
	c.UsersTable = o.UsersTable
	c.NotesTable = o.NotesTable

	if o.DSN == "" {
		return fmt.Errorf("dsn is required")
	}
	return c.Validate()
}

// env is the opened database plus the collaborators built over it.
type env struct {
	db      *sql.DB
	manager repomanager.RepositoryManager
	users   *services.UserService
}

func (o *RootOptions) open() (*env, error) {
	db, err := openDB(o.DSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	m := newManager(repomanager.Tables{Users: o.UsersTable, Notes: o.NotesTable})
	return &env{
		db:      db,
		manager: m,
		users:   services.NewUserService(db, m, auth.NewPasswordHasher(o.Salt)),
	}, nil
}

func (e *env) close() {
	_ = e.db.Close()
}
