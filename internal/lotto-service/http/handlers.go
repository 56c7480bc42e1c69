package httpapi

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/radieske/lotto-analyzer-poc/internal/lotto-service/dto"
	"github.com/radieske/lotto-analyzer-poc/internal/lotto/analyzer"
	"github.com/radieske/lotto-analyzer-poc/internal/lotto/rules"
	"github.com/radieske/lotto-analyzer-poc/pkg/contracts/events"
)

// gameParam resolve o jogo da URL contra a tabela de regras.
// Jogo desconhecido ou sem regras configuradas nunca cai num default.
func (a *API) gameParam(w http.ResponseWriter, r *http.Request) (rules.Ruleset, bool) {
	game, err := rules.ParseGameType(chi.URLParam(r, "game"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return rules.Ruleset{}, false
	}
	rs, err := a.Rules.Lookup(game)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return rules.Ruleset{}, false
	}
	return rs, true
}

// listGames retorna todos os jogos configurados e suas regras
func (a *API) listGames(w http.ResponseWriter, r *http.Request) {
	games := a.Rules.GameTypes()
	out := make([]dto.GameInfo, 0, len(games))
	for _, g := range games {
		rs, err := a.Rules.Lookup(g)
		if err != nil {
			continue
		}
		out = append(out, dto.FromRuleset(rs))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GameType < out[j].GameType })
	writeJSON(w, http.StatusOK, out)
}

// getGame retorna as regras de um jogo e o horário do próximo sorteio
func (a *API) getGame(w http.ResponseWriter, r *http.Request) {
	rs, ok := a.gameParam(w, r)
	if !ok {
		return
	}
	next, err := a.Fetcher.NextDrawTime(rs.Type)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, dto.GameDetail{Game: dto.FromRuleset(rs), NextDraw: next})
}

// getNextDraw calcula o próximo sorteio a partir do calendário do jogo
func (a *API) getNextDraw(w http.ResponseWriter, r *http.Request) {
	rs, ok := a.gameParam(w, r)
	if !ok {
		return
	}
	next, err := a.Fetcher.NextDrawTime(rs.Type)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, dto.NextDrawResponse{GameType: rs.Type.String(), NextDraw: next})
}

// getAnalysis roda o pipeline completo: busca histórico, calcula estatísticas
// e gera a recomendação para o próximo sorteio
func (a *API) getAnalysis(w http.ResponseWriter, r *http.Request) {
	rs, ok := a.gameParam(w, r)
	if !ok {
		return
	}
	years := a.yearsParam(r)

	results, err := a.loadResults(r.Context(), rs.Type, years)
	if err != nil {
		if errors.Is(err, rules.ErrUnknownGame) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	an, err := analyzer.New(results, rs, a.now())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	next, err := a.Fetcher.NextDrawTime(rs.Type)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	pred := a.predictor().Recommend(an, next, rs.NumbersDrawn)

	writeJSON(w, http.StatusOK, dto.AnalysisResponse{
		Game:       dto.FromRuleset(rs),
		Statistics: an.Summary(),
		Prediction: dto.PredictionResponse{
			PredictionID: uuid.NewString(),
			Prediction:   pred,
		},
		LastResults: lastN(results, 10),
	})
}

// getPrediction gera apenas a recomendação para o próximo sorteio
func (a *API) getPrediction(w http.ResponseWriter, r *http.Request) {
	rs, ok := a.gameParam(w, r)
	if !ok {
		return
	}
	years := a.yearsParam(r)

	results, err := a.loadResults(r.Context(), rs.Type, years)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	an, err := analyzer.New(results, rs, a.now())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	next, err := a.Fetcher.NextDrawTime(rs.Type)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, dto.PredictionResponse{
		PredictionID: uuid.NewString(),
		Prediction:   a.predictor().Recommend(an, next, rs.NumbersDrawn),
	})
}

// listResults retorna os sorteios persistidos pelo processor
func (a *API) listResults(w http.ResponseWriter, r *http.Request) {
	rs, ok := a.gameParam(w, r)
	if !ok {
		return
	}
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	results, err := a.ReadRepo.ListRecent(r.Context(), rs.Type.String(), limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, dto.ResultsResponse{GameType: rs.Type.String(), Results: results})
}

// loadResults busca o histórico do jogo, preferencialmente do cache
func (a *API) loadResults(ctx context.Context, game rules.GameType, years int) ([]events.DrawResult, error) {
	if a.Cache != nil {
		var cached []events.DrawResult
		if ok, err := a.Cache.GetResults(ctx, game.String(), years, &cached); err == nil && ok {
			return cached, nil
		}
	}

	results, err := a.Fetcher.FetchYears(ctx, game, years)
	if err != nil {
		return nil, err
	}

	if a.Cache != nil {
		if err := a.Cache.SetResults(ctx, game.String(), years, results, a.CacheTTL); err != nil {
			a.Log.Warn("results cache set failed", zap.String("game", game.String()), zap.Error(err))
		}
	}
	return results, nil
}

func (a *API) yearsParam(r *http.Request) int {
	years := a.Years
	if v := r.URL.Query().Get("years"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 10 {
			years = n
		}
	}
	return years
}

// lastN retorna os n sorteios mais recentes, do mais novo para o mais antigo
func lastN(results []events.DrawResult, n int) []events.DrawResult {
	out := make([]events.DrawResult, len(results))
	copy(out, results)
	sort.Slice(out, func(i, j int) bool { return out[i].DrawDate.After(out[j].DrawDate) })
	if n < len(out) {
		out = out[:n]
	}
	return out
}
