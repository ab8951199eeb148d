// Package server initializes and runs the accounts server.
// It wires the stores, the shared cache and the request pipeline, handles
// graceful shutdown, and starts the gRPC endpoint.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/accountsvc/internal/logging"
	"github.com/dmitrijs2005/accountsvc/internal/server/auth"
	"github.com/dmitrijs2005/accountsvc/internal/server/cache"
	"github.com/dmitrijs2005/accountsvc/internal/server/config"
	"github.com/dmitrijs2005/accountsvc/internal/server/pipeline"
	"github.com/dmitrijs2005/accountsvc/internal/server/shared/db"
	"github.com/dmitrijs2005/accountsvc/internal/server/users"

	gs "github.com/dmitrijs2005/accountsvc/internal/server/grpc"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	userService *users.Service
	authService *auth.Service
	pipeline    *pipeline.Pipeline
}

func NewApp(c *config.Config) (*App, error) {

	slog := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slog)

	m, err := db.NewPostgresRepositoryManager(c.DatabaseDSN, c.FallbackDatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if c.UseFallback && m.Fallback() == nil {
		return nil, fmt.Errorf("fallback enabled but no fallback DSN configured")
	}

	cc := cache.New(cache.NewClient(c.RedisAddr, c.RedisPassword, c.RedisDB), c.CacheTTL, logger)

	us := users.NewService(m.Users(), m.Fallback(), cc, c, logger)
	as := auth.NewService(us, cc, c.SecretKey, logger)

	p := pipeline.New(logger,
		[]pipeline.PreHook{
			pipeline.AuthenticationHook(as, logger),
			pipeline.ImpersonationHook(m.Users(), logger),
		},
		[]pipeline.PostHook{
			pipeline.ShapingHook(),
		},
	)

	return &App{config: c, logger: logger, userService: us, authService: as, pipeline: p}, nil
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

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s, err := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.userService, app.authService, app.pipeline)

	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	} else {

		if err := s.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

}
