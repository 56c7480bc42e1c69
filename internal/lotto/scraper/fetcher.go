package scraper

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/lotto-analyzer-poc/internal/lotto/rules"
	"github.com/radieske/lotto-analyzer-poc/pkg/contracts/events"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// Fetcher busca páginas de resultados na fonte oficial e delega o parse.
// A busca multi-ano é sequencial com pausa obrigatória entre requisições:
// a fonte é um serviço externo compartilhado, sem garantia de concorrência.
type Fetcher struct {
	Client  *http.Client
	Log     *zap.Logger
	Rules   rules.Table
	BaseURL string        // prefixo da fonte, ex: https://australia.national-lottery.com
	Pacing  time.Duration // pausa entre requisições de anos consecutivos
	Now     func() time.Time
	Source  string // identificação gravada em cada DrawResult
}

func (f *Fetcher) client() *http.Client {
	if f.Client != nil {
		return f.Client
	}
	return http.DefaultClient
}

func (f *Fetcher) now() time.Time {
	if f.Now != nil {
		return f.Now()
	}
	return time.Now()
}

// FetchYear busca e interpreta a página de resultados de um jogo em um ano.
func (f *Fetcher) FetchYear(ctx context.Context, game rules.GameType, year int) ([]events.DrawResult, error) {
	rs, err := f.Rules.Lookup(game)
	if err != nil {
		return nil, err
	}
	path, err := f.Rules.ResultsPath(game)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s%s%d", f.BaseURL, path, year)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	results, err := ParseResults(resp.Body, rs)
	if err != nil {
		return nil, err
	}

	scrapedAt := f.now()
	for i := range results {
		results[i].Source = f.Source
		results[i].ScrapedAt = scrapedAt
	}
	return results, nil
}

// FetchYears busca do ano corrente até n-1 anos anteriores, concatenando tudo.
// Falha em um ano (rede, página ilegível) é registrada e tratada como zero
// resultados daquele ano; os demais anos seguem normalmente.
func (f *Fetcher) FetchYears(ctx context.Context, game rules.GameType, years int) ([]events.DrawResult, error) {
	if _, err := f.Rules.Lookup(game); err != nil {
		return nil, err
	}

	currentYear := f.now().Year()
	var all []events.DrawResult

	for i := 0; i < years; i++ {
		if i > 0 {
			// pausa obrigatória entre anos consecutivos; respeita cancelamento
			if err := f.pace(ctx); err != nil {
				return all, err
			}
		}

		year := currentYear - i
		results, err := f.FetchYear(ctx, game, year)
		if err != nil {
			if ctx.Err() != nil {
				return all, ctx.Err()
			}
			f.log().Warn("year fetch failed, treating as empty",
				zap.String("game", game.String()),
				zap.Int("year", year),
				zap.Error(err),
			)
			continue
		}
		all = append(all, results...)
	}

	return all, nil
}

// NextDrawTime calcula o próximo sorteio do jogo a partir do relógio injetado.
// Não exige rede.
func (f *Fetcher) NextDrawTime(game rules.GameType) (time.Time, error) {
	rs, err := f.Rules.Lookup(game)
	if err != nil {
		return time.Time{}, err
	}
	return NextDraw(rs, f.now()), nil
}

func (f *Fetcher) pace(ctx context.Context) error {
	if f.Pacing <= 0 {
		return nil
	}
	t := time.NewTimer(f.Pacing)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (f *Fetcher) log() *zap.Logger {
	if f.Log != nil {
		return f.Log
	}
	return zap.NewNop()
}
