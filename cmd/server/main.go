package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hubrwa/internal/credential/cache"
	credmetrics "hubrwa/internal/credential/metrics"
	credservice "hubrwa/internal/credential/service"
	"hubrwa/internal/ledger"
	"hubrwa/internal/platform/config"
	"hubrwa/internal/platform/httpserver"
	"hubrwa/internal/platform/logger"
	"hubrwa/internal/platform/metrics"
	"hubrwa/internal/platform/redis"
	settlementmetrics "hubrwa/internal/settlement/metrics"
	settlementservice "hubrwa/internal/settlement/service"
	httptransport "hubrwa/internal/transport/http"
	"hubrwa/pkg/platform/audit/publisher"
	"hubrwa/pkg/platform/audit/publishers/kafka"
	"hubrwa/pkg/platform/audit/store/memory"
	outbox "hubrwa/pkg/platform/audit/store/postgres"
	"hubrwa/pkg/platform/audit/worker"
	"hubrwa/pkg/platform/middleware/auth"
	"hubrwa/pkg/platform/middleware/ratelimit"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

func main() {
	configFile := flag.String("config", "", "optional YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// backend is the ledger plus the components that live and die with it.
type backend struct {
	ledger ledger.Ledger
	events httptransport.EventLog
	relay  *worker.Worker
	close  func()
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	b, err := openBackend(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer b.close()

	credOpts := []credservice.Option{
		credservice.WithLogger(log),
		credservice.WithMetrics(credmetrics.New()),
	}
	var replay auth.ReplayGuard = auth.NewMemoryReplayGuard()
	rdb, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
		credOpts = append(credOpts, credservice.WithCache(cache.NewRedisCache(rdb.Client, cache.WithTTL(cfg.Redis.CacheTTL))))
		replay = auth.NewRedisReplayGuard(rdb.Client)
		log.Info("credential cache enabled", "ttl", cfg.Redis.CacheTTL)
	}
	credentials := credservice.New(b.ledger, credOpts...)
	settlement := settlementservice.New(b.ledger, credentials,
		settlementservice.WithLogger(log),
		settlementservice.WithMetrics(settlementmetrics.New()),
	)

	handlerOpts := []httptransport.HandlerOption{httptransport.WithEventLog(b.events)}
	if cfg.Server.AdminToken != "" {
		handlerOpts = append(handlerOpts, httptransport.WithFunder(b.ledger))
		log.Warn("development faucet enabled")
	}
	readLimit := newWindow(cfg.Server.ReadRateLimit, cfg.Server.RateWindow)
	writeLimit := newWindow(cfg.Server.WriteRateLimit, cfg.Server.RateWindow)
	router := httptransport.NewRouter(
		httptransport.NewHandler(credentials, settlement, log, handlerOpts...),
		httptransport.RouterConfig{
			Tokens:     auth.NewSignerTokens(cfg.Server.JWTMaxAge, auth.WithReplayGuard(replay)),
			AdminToken: cfg.Server.AdminToken,
			Timeout:    cfg.Server.RequestTimeout,
			Metrics:    metrics.New(),
			ReadLimit:  readLimit,
			WriteLimit: writeLimit,
		},
	)
	srv := httpserver.New(cfg.Server.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting hubrwa", "addr", cfg.Server.Addr, "ledger", cfg.LedgerBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return sweep(gctx, cfg.Server.RateWindow, readLimit, writeLimit)
	})
	if b.relay != nil {
		g.Go(func() error {
			return b.relay.Run(gctx)
		})
	}
	return g.Wait()
}

func newWindow(limit int, window time.Duration) *ratelimit.Window {
	if limit <= 0 {
		return nil
	}
	return ratelimit.NewWindow(limit, window)
}

// sweep evicts idle rate-limit buckets once per window until ctx ends.
func sweep(ctx context.Context, every time.Duration, windows ...*ratelimit.Window) error {
	if every <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			for _, w := range windows {
				if w != nil {
					w.Sweep()
				}
			}
		}
	}
}

func openBackend(ctx context.Context, cfg config.Config, log *slog.Logger) (*backend, error) {
	ledgerOpts := []ledger.Option{ledger.WithLogger(log), ledger.WithTimeout(cfg.LedgerTimeout)}

	if cfg.LedgerBackend == config.BackendMemory {
		sink := publisher.NewPublisher(memory.NewInMemoryStore(),
			publisher.WithAsyncBuffer(1024),
			publisher.WithLogger(log),
		)
		return &backend{
			ledger: ledger.NewInMemory(append(ledgerOpts, ledger.WithSink(sink))...),
			events: sink,
			close:  sink.Close,
		}, nil
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := ledger.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	b := &backend{
		ledger: ledger.NewPostgres(db, ledgerOpts...),
		events: outbox.New(db),
		close:  func() { _ = db.Close() },
	}
	if len(cfg.Kafka.Brokers) == 0 {
		return b, nil
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		b.close()
		return nil, fmt.Errorf("open outbox pool: %w", err)
	}
	producer, err := kafka.New(cfg.Kafka.Brokers, cfg.Kafka.Topic, kafka.WithLogger(log))
	if err != nil {
		pool.Close()
		b.close()
		return nil, err
	}
	if err := producer.EnsureTopic(ctx, cfg.Kafka.Partitions, cfg.Kafka.ReplicationFactor); err != nil {
		producer.Close()
		pool.Close()
		b.close()
		return nil, err
	}
	b.relay = worker.NewWorker(worker.NewPgxOutbox(pool), producer,
		worker.WithInterval(cfg.Kafka.PollInterval),
		worker.WithBatchSize(cfg.Kafka.BatchSize),
		worker.WithLogger(log),
		worker.WithBreaker(5, 30*time.Second),
		worker.WithMetrics(worker.NewMetrics()),
	)
	closeDB := b.close
	b.close = func() {
		producer.Close()
		pool.Close()
		closeDB()
	}
	log.Info("ledger event relay enabled", "topic", cfg.Kafka.Topic, "brokers", cfg.Kafka.Brokers)
	return b, nil
}
