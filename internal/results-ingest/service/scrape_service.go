package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/lotto-analyzer-poc/internal/lotto/rules"
	"github.com/radieske/lotto-analyzer-poc/internal/lotto/scraper"
	"github.com/radieske/lotto-analyzer-poc/pkg/contracts/events"
)

// Publisher é o destino dos sorteios raspados (Kafka em produção).
type Publisher interface {
	Publish(ctx context.Context, d events.DrawResult) error
}

// ScrapeService varre periodicamente a fonte de resultados e publica cada
// sorteio encontrado. A varredura é sequencial por jogo e por ano — o pacing
// entre requisições fica a cargo do Fetcher.
type ScrapeService struct {
	Log       *zap.Logger
	Fetcher   *scraper.Fetcher
	Publisher Publisher
	Games     []rules.GameType // jogos a varrer; vazio usa os com URL configurada
	Years     int              // anos de histórico por jogo
	Interval  time.Duration    // intervalo entre varreduras completas

	OnScraped   func(game string, rows int) // métricas
	OnPublished func()                      // métricas
	OnError     func(stage string)          // métricas por fase
}

// Run executa uma varredura imediata e repete a cada Interval até o contexto
// ser cancelado.
func (s *ScrapeService) Run(ctx context.Context) error {
	s.sweep(ctx)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// sweep varre todos os jogos configurados uma vez.
func (s *ScrapeService) sweep(ctx context.Context) {
	games := s.Games
	if len(games) == 0 {
		games = s.Fetcher.Rules.FetchableGames()
	}

	for _, game := range games {
		if ctx.Err() != nil {
			return
		}

		results, err := s.Fetcher.FetchYears(ctx, game, s.Years)
		if err != nil {
			// FetchYears absorve falhas por ano; erro aqui é jogo não
			// configurado ou cancelamento
			s.Log.Warn("sweep fetch failed", zap.String("game", game.String()), zap.Error(err))
			if s.OnError != nil {
				s.OnError("fetch")
			}
			continue
		}

		if s.OnScraped != nil {
			s.OnScraped(game.String(), len(results))
		}

		for _, d := range results {
			if err := s.Publisher.Publish(ctx, d); err != nil {
				s.Log.Warn("publish failed",
					zap.String("game", d.GameType),
					zap.Int("draw", d.DrawNumber),
					zap.Error(err),
				)
				if s.OnError != nil {
					s.OnError("publish")
				}
				continue
			}
			if s.OnPublished != nil {
				s.OnPublished()
			}
		}

		s.Log.Info("game sweep done",
			zap.String("game", game.String()),
			zap.Int("draws", len(results)),
		)
	}
}
