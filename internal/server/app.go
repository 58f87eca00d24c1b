// Package server initializes and runs the linekeeper server: it opens the
// store, applies migrations, creates the bootstrap administrator and
// serves the UserAdmin gRPC service until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/linekeeper/internal/dbx"
	"github.com/dmitrijs2005/linekeeper/internal/logging"
	"github.com/dmitrijs2005/linekeeper/internal/server/config"
	"github.com/dmitrijs2005/linekeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/linekeeper/internal/server/services"

	gs "github.com/dmitrijs2005/linekeeper/internal/server/grpc"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	userService *services.UserService
	authService *services.AuthService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(c.LogFormat, c.LogLevel)

	d, err := dbx.DialectFor(c.DatabaseDriver)
	if err != nil {
		return nil, err
	}
	db, err := dbx.Open(ctx, d, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewRegistry(d, db, repomanager.Names{Staff: c.StaffTable, Operators: c.OperatorTable})
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	app := &App{
		config:      c,
		logger:      logger,
		db:          db,
		userService: services.NewUserService(db, rm, c, logger.With("module", "users")),
		authService: services.NewAuthService(db, rm, c, logger.With("module", "auth")),
	}

	if c.BootstrapAdminEmail != "" {
		created, err := app.userService.Bootstrap(ctx, c.BootstrapAdminEmail, c.BootstrapAdminSecret)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		if created {
			logger.Info(ctx, "bootstrap administrator created", "email", c.BootstrapAdminEmail)
		}
	}

	return app, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.userService, app.authService, app.config.SecretKey)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a shutdown signal arrives, then
// closes the store.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "driver", app.config.DatabaseDriver)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(context.Background(), "closing database", "error", err)
	}
}
