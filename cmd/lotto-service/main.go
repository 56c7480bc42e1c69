package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	svccache "github.com/radieske/lotto-analyzer-poc/internal/lotto-service/cache"
	httpapi "github.com/radieske/lotto-analyzer-poc/internal/lotto-service/http"
	"github.com/radieske/lotto-analyzer-poc/internal/lotto-service/repo"
	"github.com/radieske/lotto-analyzer-poc/internal/lotto-service/ws"
	"github.com/radieske/lotto-analyzer-poc/internal/lotto/rules"
	"github.com/radieske/lotto-analyzer-poc/internal/lotto/scraper"
	"github.com/radieske/lotto-analyzer-poc/internal/shared/cache"
	"github.com/radieske/lotto-analyzer-poc/internal/shared/config"
	"github.com/radieske/lotto-analyzer-poc/internal/shared/db"
	"github.com/radieske/lotto-analyzer-poc/internal/shared/logger"
	"github.com/radieske/lotto-analyzer-poc/internal/shared/metrics"
)

func main() {
	// carrega config
	cfg := config.Load()

	// inicia logger
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(fmt.Errorf("logger init: %w", err))
	}
	defer log.Sync()

	log.Info("starting service", zap.String("service", cfg.ServiceName), zap.String("env", cfg.Env))

	// conecta com db Postgres (leitura dos sorteios persistidos)
	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()
	log.Info("postgres connected")

	// conecta com cache Redis
	redisClient, err := cache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("failed to connect redis", zap.Error(err))
	}
	defer redisClient.Close()
	log.Info("redis connected")

	// tabela de regras e fetcher da fonte oficial
	table := rules.DefaultTable()
	fetcher := &scraper.Fetcher{
		Client:  &http.Client{Timeout: 30 * time.Second},
		Log:     log,
		Rules:   table,
		BaseURL: cfg.LottoBaseURL,
		Pacing:  cfg.FetchPacing,
		Source:  cfg.ServiceName,
	}

	// hub WebSocket alimentado pelo Redis Pub/Sub (sorteios persistidos)
	hub := ws.NewHub(func(r *http.Request) bool { return true })

	api := &httpapi.API{
		Log:      log,
		Rules:    table,
		Fetcher:  fetcher,
		Cache:    svccache.New(redisClient),
		ReadRepo: &repo.ReadRepo{DB: pg},
		Hub:      hub,
		Years:    cfg.YearsToFetch,
		CacheTTL: cfg.ResultsCacheTTL,
	}

	// sinalização para shutdown gracioso (SIGINT/SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	ws.StartRedisSubscriber(ctx, redisClient, hub)

	// servidor de métricas e health em porta separada
	msrv := metrics.StartMetricsServer(cfg.MetricsPort, func(hctx context.Context) error {
		if err := pg.PingContext(hctx); err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
		if err := redisClient.Ping(hctx).Err(); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		return nil
	})
	log.Info("metrics/health server started", zap.String("port", cfg.MetricsPort))

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: api.Router(),
	}

	go func() {
		log.Info("http server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
	_ = msrv.Shutdown(shutdownCtx)
}
