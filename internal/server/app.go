// Package server initializes and runs the taskkeeper server: storage,
// migrations, services, the HTTP API, and graceful shutdown on signals.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/config"
	"github.com/dmitrijs2005/taskkeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/taskkeeper/internal/server/services"
	"github.com/dmitrijs2005/taskkeeper/internal/server/shared/db"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	repoManager db.RepositoryManager
	userService *services.UserService
	taskService *services.TaskService
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	m, err := db.NewPostgresRepositoryManager(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	us, err := services.NewUserService(m.Users(), cfg)
	if err != nil {
		return nil, fmt.Errorf("user service init error: %w", err)
	}
	ts := services.NewTaskService(m.Tasks())

	return &App{
		config:      cfg,
		logger:      logger,
		repoManager: m,
		userService: us,
		taskService: ts,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewServer(app.config.EndpointAddr, app.logger, app.userService, app.taskService, app.config.SecretKey)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.repoManager.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}
}
