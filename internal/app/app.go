package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/GlebRadaev/squadhelp/internal/config"
	"github.com/GlebRadaev/squadhelp/internal/domain"
	"github.com/GlebRadaev/squadhelp/internal/handlers"
	"github.com/GlebRadaev/squadhelp/internal/notify"
	"github.com/GlebRadaev/squadhelp/internal/pg"
	"github.com/GlebRadaev/squadhelp/internal/repo"
	"github.com/GlebRadaev/squadhelp/internal/service"
	"github.com/GlebRadaev/squadhelp/pkg/auth"
	"github.com/GlebRadaev/squadhelp/pkg/clients"
	"github.com/GlebRadaev/squadhelp/pkg/logger"
	"github.com/GlebRadaev/squadhelp/pkg/telemetry"
	"github.com/GlebRadaev/squadhelp/pkg/upload"
)

const shutdownTimeout = 5 * time.Second

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

type Application struct {
	cfg      *config.Config
	api      *handlers.Handlers
	srv      *service.Services
	repo     *repo.Repositories
	notifier *notify.Notifier

	pool              *pgxpool.Pool
	shutdownTelemetry telemetry.ShutdownFunc

	errCh chan error
	wg    sync.WaitGroup
	ready bool
}

func New() *Application {
	return &Application{
		errCh: make(chan error),
	}
}

func (a *Application) Start(ctx context.Context) error {
	cfg := config.New()

	err := logger.InitLogger(cfg.LogLvl, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}

	a.shutdownTelemetry, err = telemetry.Init(ctx, cfg.OTLPEndpoint, cfg.ServiceName)
	if err != nil {
		zap.L().Error("telemetry init failed: ", zap.Error(err))
		return fmt.Errorf("can't init telemetry: %w", err)
	}

	pool, err := getPgxpool(ctx, cfg)
	if err != nil {
		zap.L().Error("build pgx pool failed: ", zap.Error(err))
		return fmt.Errorf("can't build pgx pool: %w", err)
	}
	a.pool = pool
	if err := pg.RunMigrations(ctx, pool); err != nil {
		zap.L().Error("migrations failed: ", zap.Error(err))
		return fmt.Errorf("can't run migrations: %w", err)
	}
	txManager := pg.NewTXManager(pool)

	conn := pg.New(pool)
	a.cfg = cfg
	a.repo = repo.New(conn, txManager)

	reserve := reserveCard(cfg)
	if err := a.repo.AccountRepo.EnsureAccount(ctx, reserve); err != nil {
		zap.L().Error("reserve account setup failed: ", zap.Error(err))
		return fmt.Errorf("can't ensure reserve account: %w", err)
	}

	files, err := upload.New(cfg.UploadDir)
	if err != nil {
		return fmt.Errorf("can't prepare upload dir: %w", err)
	}

	jwtService := auth.NewJWTService(cfg.JWTSecret)
	a.notifier = notify.New(newSink(cfg), cfg.NotifyWorkers, cfg.NotifyBuffer)
	a.srv = service.New(a.repo, txManager, service.Deps{
		JWTService: jwtService,
		TokenTTL:   cfg.TokenTTL,
		HashCost:   cfg.HashCost,
		Reserve:    reserve,
		Publisher:  a.notifier,
		Files:      files,
	})
	a.api = handlers.New(a.srv, jwtService)

	if err = a.startHTTPServer(ctx); err != nil {
		return fmt.Errorf("can't start http server: %w", err)
	}

	a.startNotifier(ctx)
	a.closeOnDone(ctx)

	a.ready = true
	zap.L().Info("all systems started successfully")
	return nil
}

func getPgxpool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	cfgpool, err := pgxpool.ParseConfig(cfg.Database)
	if err != nil {
		return nil, err
	}
	dbpool, err := pgxpool.NewWithConfig(ctx, cfgpool)
	if err != nil {
		return nil, err
	}
	if err = dbpool.Ping(ctx); err != nil {
		return nil, err
	}
	return dbpool, nil
}

func reserveCard(cfg *config.Config) domain.Card {
	return domain.NewCard(cfg.ReserveCardNumber, cfg.ReserveCardCVC, cfg.ReserveCardExpiry)
}

func newSink(cfg *config.Config) notify.Sink {
	if cfg.NotifyWebhookURL == "" {
		return notify.LogSink{}
	}
	return notify.NewWebhookSink(cfg.NotifyWebhookURL, clients.NewHTTPClient())
}

func shutdownServer(server *http.Server, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		zap.L().Warn("http server shutdown failed", zap.Error(err))
		return err
	}
	return nil
}

func (a *Application) startHTTPServer(ctx context.Context) error {
	router := chi.NewRouter()
	a.api.InitRoutes(router)
	server := http.Server{
		Addr:    a.cfg.Address,
		Handler: router,
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()
		_ = shutdownServer(&server, shutdownTimeout)
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		zap.L().Info("starting http server on port", zap.String("port", a.cfg.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.errCh <- fmt.Errorf("http server exited with error: %w", err)
		}
	}()

	return nil
}

func (a *Application) startNotifier(ctx context.Context) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.notifier.Run(ctx); err != nil {
			a.errCh <- fmt.Errorf("notifier exited with error: %w", err)
		}
	}()
}

// closeOnDone releases the pool and flushes telemetry once the app context is cancelled.
func (a *Application) closeOnDone(ctx context.Context) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()

		sCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if a.shutdownTelemetry != nil {
			if err := a.shutdownTelemetry(sCtx); err != nil {
				zap.L().Warn("telemetry shutdown failed", zap.Error(err))
			}
		}
		if a.pool != nil {
			a.pool.Close()
		}
	}()
}

func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	var appErr error

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		for err := range a.errCh {
			cancel()
			zap.L().Error(err.Error())
			appErr = err
		}
	}()

	<-ctx.Done()
	a.wg.Wait()
	close(a.errCh)
	wg.Wait()

	return appErr
}
