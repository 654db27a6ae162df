package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"

	cacheadapter "github.com/LordLuktor/fundraiser-blocks-theme/internal/adapters/cache"
	eventadapter "github.com/LordLuktor/fundraiser-blocks-theme/internal/adapters/events"
	grpcadapter "github.com/LordLuktor/fundraiser-blocks-theme/internal/adapters/grpc"
	httpadapter "github.com/LordLuktor/fundraiser-blocks-theme/internal/adapters/http"
	"github.com/LordLuktor/fundraiser-blocks-theme/internal/adapters/memory"
	"github.com/LordLuktor/fundraiser-blocks-theme/internal/adapters/postgres"
	"github.com/LordLuktor/fundraiser-blocks-theme/internal/application"
	"github.com/LordLuktor/fundraiser-blocks-theme/internal/ports"
)

type Runtime struct {
	cfg        Config
	logger     *slog.Logger
	httpServer *http.Server
	grpcServer *grpc.Server
	grpcLis    net.Listener
	worker     *eventadapter.Worker
}

func NewRuntime(ctx context.Context, configPath string) (*Runtime, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})).With("service", cfg.ServiceID)
	slog.SetDefault(logger)

	var (
		campaigns    ports.CampaignRepository
		raffles      ports.RaffleRepository
		transactions ports.TransactionRepository
		outbox       ports.OutboxRepository
		eventDedup   ports.EventDedupRepository
	)
	if cfg.DatabaseURL != "" {
		db, err := postgres.Connect(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := postgres.RunMigrations(ctx, db); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		repos := postgres.NewRepositories(db)
		campaigns, raffles, transactions = repos.Campaigns, repos.Raffles, repos.Transactions
		outbox, eventDedup = repos.Outbox, repos.EventDedup
	} else {
		logger.InfoContext(ctx, "database_url not set, using in-memory repositories")
		repos := memory.NewRepositories()
		campaigns, raffles, transactions = repos.Campaigns, repos.Raffles, repos.Transactions
		outbox, eventDedup = repos.Outbox, repos.EventDedup
	}

	var (
		snapshots ports.SnapshotCache
		views     ports.ViewCounter
	)
	if cfg.RedisURL != "" {
		client, err := cacheadapter.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		snapshots = cacheadapter.NewRedisSnapshotCache(client, cfg.SnapshotTTL)
		views = cacheadapter.NewRedisViewCounter(client)
	} else {
		logger.InfoContext(ctx, "redis_url not set, using in-memory caches")
		snapshots = memory.NewSnapshotCache()
		views = memory.NewViewCounter()
	}

	domainPublisher := eventadapter.NewMemoryDomainPublisher()
	analyticsPublisher := eventadapter.NewMemoryAnalyticsPublisher()

	service := application.NewService(application.Dependencies{
		Config: application.Config{
			ServiceName:           cfg.ServiceID,
			AllowDraftPresales:    cfg.AllowDraftPresales,
			AllocationRetryBudget: cfg.AllocationRetryBudget,
			DefaultCurrency:       cfg.DefaultCurrency,
			EventDedupTTL:         cfg.EventDedupTTL,
			OutboxFlushBatchSize:  cfg.OutboxFlushBatchSize,
		},
		Campaigns:    campaigns,
		Raffles:      raffles,
		Transactions: transactions,
		Outbox:       outbox,
		EventDedup:   eventDedup,
		Snapshots:    snapshots,
		Views:        views,
		DomainEvents: domainPublisher,
		Analytics:    analyticsPublisher,
	})

	handler := httpadapter.NewHandler(service)
	router := httpadapter.NewRouter(handler, cfg.JWTSecret)
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	grpcServer := grpc.NewServer()
	grpcadapter.Register(grpcServer, grpcadapter.NewFundraiserInternalServer(service))
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		return nil, err
	}

	worker := eventadapter.NewWorker(logger, service, cfg.OutboxPollInterval)

	return &Runtime{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpServer,
		grpcServer: grpcServer,
		grpcLis:    lis,
		worker:     worker,
	}, nil
}

func (r *Runtime) RunAPI(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	errCh := make(chan error, 2)

	go func() {
		if err := r.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	go func() {
		if err := r.grpcServer.Serve(r.grpcLis); err != nil {
			errCh <- err
		}
	}()
	go r.worker.Run(ctx)

	select {
	case <-ctx.Done():
	case err := <-errCh:
		r.logger.ErrorContext(ctx, "runtime failure", "error", err)
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = r.httpServer.Shutdown(shutdownCtx)
	r.grpcServer.GracefulStop()
	return nil
}

func (r *Runtime) RunWorker(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := r.worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
