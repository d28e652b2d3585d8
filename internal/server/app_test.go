package server

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/recordapi/internal/logging"
	"github.com/dmitrijs2005/recordapi/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.EndpointAddrHTTP = "127.0.0.1:0"
	c.EndpointAddrGRPC = ""
	c.LogLevel = "error"
	return c
}

func withDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	orig := openDB
	openDB = func(string) (*sql.DB, error) { return db, nil }
	t.Cleanup(func() { openDB = orig })
	return mock
}

func TestNewApp_Wiring(t *testing.T) {
	withDB(t)

	c := testConfig()
	c.EndpointAddrGRPC = "127.0.0.1:0"
	c.RedisAddr = "127.0.0.1:6379"

	app, err := NewApp(c)
	require.NoError(t, err)
	assert.NotNil(t, app.httpServer)
	assert.NotNil(t, app.grpcServer)
	assert.NotNil(t, app.redis)
	app.close(context.Background())
}

func TestNewApp_NoOptionalListeners(t *testing.T) {
	withDB(t)

	app, err := NewApp(testConfig())
	require.NoError(t, err)
	assert.Nil(t, app.grpcServer)
	assert.Nil(t, app.redis)
}

func TestNewApp_BadSameSite(t *testing.T) {
	c := testConfig()
	c.CookieSameSite = "sometimes"

	_, err := NewApp(c)
	assert.Error(t, err)
}

func TestNewApp_OpenError(t *testing.T) {
	orig := openDB
	openDB = func(string) (*sql.DB, error) { return nil, errors.New("bad dsn") }
	defer func() { openDB = orig }()

	_, err := NewApp(testConfig())
	assert.ErrorContains(t, err, "db init error")
}

type failingMigrations struct{ repomanagerStub }

func TestRun_MigrationFailureStops(t *testing.T) {
	mock := withDB(t)
	mock.ExpectClose()

	app, err := NewApp(testConfig())
	require.NoError(t, err)
	app.repomanager = failingMigrations{}
	var logs bytes.Buffer
	app.logger = logging.New(&logs, "text", "info")

	err = app.Run(context.Background())
	assert.ErrorContains(t, err, "migrations")
	assert.Contains(t, logs.String(), "migrations failed")
	assert.Contains(t, logs.String(), "no schema")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRun_StopsOnCancel(t *testing.T) {
	withDB(t)

	app, err := NewApp(testConfig())
	require.NoError(t, err)
	app.repomanager = repomanagerStub{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, app.Run(ctx))
}
