// Package server assembles the record API: it opens the database, applies
// migrations, and runs the HTTP API and the gRPC health listener until a
// termination signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/recordapi/internal/logging"
	"github.com/dmitrijs2005/recordapi/internal/server/auth"
	"github.com/dmitrijs2005/recordapi/internal/server/config"
	"github.com/dmitrijs2005/recordapi/internal/server/metrics"
	"github.com/dmitrijs2005/recordapi/internal/server/ratelimit"
	"github.com/dmitrijs2005/recordapi/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/recordapi/internal/server/rest"
	"github.com/dmitrijs2005/recordapi/internal/server/services"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/recordapi/internal/server/grpc"
)

// openDB is a seam for tests.
var openDB = func(dsn string) (*sql.DB, error) {
	return sql.Open("pgx", dsn)
}

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	redis       *redis.Client
	repomanager repomanager.RepositoryManager
	httpServer  *rest.HTTPServer
	grpcServer  *gs.GRPCServer
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.New(os.Stdout, c.LogFormat, c.LogLevel)

	sameSite, err := config.ParseSameSite(c.CookieSameSite)
	if err != nil {
		return nil, err
	}

	db, err := openDB(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager(repomanager.Tables{Users: c.UsersTable, Notes: c.NotesTable})
	usersRepo := rm.Users(db)

	codec := auth.NewSessionCodec([]byte(c.SecretKey), c.SessionTTL)
	hasher := auth.NewPasswordHasher(c.PasswordSalt)

	app := &App{config: c, logger: logger, db: db, repomanager: rm}

	var limiter ratelimit.Limiter = ratelimit.Unlimited{}
	if c.RedisAddr != "" {
		app.redis = redis.NewClient(&redis.Options{Addr: c.RedisAddr})
		limiter = ratelimit.NewRedis(app.redis, c.SignInAttempts, c.SignInWindow)
	}

	router := rest.NewRouter(rest.Deps{
		Users:         services.NewUserService(db, rm, hasher),
		Notes:         services.NewNoteService(db, rm),
		Issuer:        auth.NewIssuer(codec, hasher, usersRepo, auth.CookieSettings{Secure: c.CookieSecure, SameSite: sameSite}),
		Authenticator: auth.NewAuthenticator(codec, usersRepo),
		Limiter:       limiter,
		Metrics:       metrics.New(),
		DB:            db,
		Logger:        logger,
	})

	app.httpServer = rest.NewHTTPServer(c.EndpointAddrHTTP, router, logger)
	if c.EndpointAddrGRPC != "" {
		app.grpcServer = gs.NewGRPCServer(c.EndpointAddrGRPC, logger, db, 0)
	}

	return app, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run migrates the schema and serves until ctx is cancelled, a signal
// arrives, or one of the listeners fails.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)
	defer app.close(ctx)

	if err := app.repomanager.RunMigrations(ctx, app.db); err != nil {
		app.logger.Error(ctx, "migrations failed", "error", err)
		return fmt.Errorf("migrations: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return app.httpServer.Run(gctx)
	})
	if app.grpcServer != nil {
		g.Go(func() error {
			return app.grpcServer.Run(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		app.logger.Error(ctx, "server stopped", "error", err)
		return err
	}

	app.logger.Info(ctx, "App stopped")
	return nil
}

func (app *App) close(ctx context.Context) {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Warn(ctx, "closing redis", "error", err)
		}
	}
	if err := app.db.Close(); err != nil {
		app.logger.Warn(ctx, "closing database", "error", err)
	}
}
