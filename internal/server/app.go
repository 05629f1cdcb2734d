// Package server wires configuration, storage, services and both transports
// (gRPC and REST) into one application and runs it until a shutdown signal.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/tasktracker/internal/logging"
	"github.com/dmitrijs2005/tasktracker/internal/server/auth"
	"github.com/dmitrijs2005/tasktracker/internal/server/config"
	"github.com/dmitrijs2005/tasktracker/internal/server/httpapi"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/tasktracker/internal/server/services"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/tasktracker/internal/server/grpc"
)

type App struct {
	config        *config.Config
	logger        logging.Logger
	db            *sql.DB
	userService   *services.UserService
	taskService   *services.TaskService
	exportService *services.ExportService
}

// NewApp opens the configured database, applies migrations and builds the
// services.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	rm, err := repomanager.New(c.DatabaseDriver)
	if err != nil {
		return nil, err
	}

	db, err := repomanager.Open(ctx, c.DatabaseDriver, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	a := auth.NewAuthenticator(c.SecretKey, c.TokenValidityDuration)

	return &App{
		config:        c,
		logger:        logger,
		db:            db,
		userService:   services.NewUserService(db, rm, a, logger),
		taskService:   services.NewTaskService(db, rm, logger),
		exportService: services.NewExportService(db, rm, c, logger),
	}, nil
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

// Run serves gRPC and HTTP until ctx is cancelled, a signal arrives or one
// of the servers fails; the other server is then stopped too.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "driver", app.config.DatabaseDriver)

	app.initSignalHandler(cancelFunc)

	grpcServer := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.userService, app.taskService, app.exportService)
	httpServer := httpapi.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.userService, app.taskService, app.exportService)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return grpcServer.Run(gctx) })
	g.Go(func() error { return httpServer.Run(gctx) })

	err := g.Wait()
	if err != nil {
		app.logger.Error(ctx, err.Error())
	}

	if cerr := app.db.Close(); cerr != nil {
		app.logger.Error(ctx, "closing database", "error", cerr.Error())
	}

	app.logger.Info(ctx, "App stopped")
	return err
}
