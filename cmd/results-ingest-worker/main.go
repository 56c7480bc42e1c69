package main

import (
	"context"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/radieske/lotto-analyzer-poc/internal/lotto/rules"
	"github.com/radieske/lotto-analyzer-poc/internal/lotto/scraper"
	"github.com/radieske/lotto-analyzer-poc/internal/results-ingest/publisher"
	"github.com/radieske/lotto-analyzer-poc/internal/results-ingest/service"
	"github.com/radieske/lotto-analyzer-poc/internal/shared/config"
	"github.com/radieske/lotto-analyzer-poc/internal/shared/logger"
	"github.com/radieske/lotto-analyzer-poc/internal/shared/metrics"
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	log.Info("kafka brokers", zap.String("brokers", cfg.KafkaBrokers))

	// Métricas Prometheus para monitoramento da raspagem
	scraped := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "lotto_ingest_rows_scraped_total", Help: "sorteios extraídos por jogo",
	}, []string{"game"})
	published := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "lotto_ingest_rows_published_total", Help: "sorteios publicados no Kafka",
	})
	errorsBy := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "lotto_ingest_errors_total", Help: "erros por estágio",
	}, []string{"stage"})
	prometheus.MustRegister(scraped, published, errorsBy)

	// Kafka Publisher
	pub := publisher.NewKafkaPublisher(
		strings.Split(cfg.KafkaBrokers, ","),
		cfg.TopicDrawResults,
		log,
	)
	defer pub.Close()

	// Fetcher da fonte oficial, com pacing obrigatório entre anos
	table := rules.DefaultTable()
	fetcher := &scraper.Fetcher{
		Client:  &http.Client{Timeout: 30 * time.Second},
		Log:     log,
		Rules:   table,
		BaseURL: cfg.LottoBaseURL,
		Pacing:  cfg.FetchPacing,
		Source:  cfg.ServiceName,
	}

	svc := &service.ScrapeService{
		Log:       log,
		Fetcher:   fetcher,
		Publisher: pub,
		Years:     cfg.YearsToFetch,
		Interval:  cfg.RefreshInterval,

		OnScraped:   func(game string, rows int) { scraped.WithLabelValues(game).Add(float64(rows)) },
		OnPublished: func() { published.Inc() },
		OnError:     func(stage string) { errorsBy.WithLabelValues(stage).Inc() },
	}

	// Metrics e health
	msrv := metrics.StartMetricsServer(cfg.MetricsPort, nil)
	log.Info("metrics/health server started", zap.String("port", cfg.MetricsPort))

	// graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info("results-ingest started",
		zap.Int("years", cfg.YearsToFetch),
		zap.Duration("interval", cfg.RefreshInterval),
	)
	if err := svc.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatal("ingest stopped with error", zap.Error(err))
	}
	log.Info("results-ingest stopped")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer shutdownCancel()
	_ = msrv.Shutdown(shutdownCtx)
}
