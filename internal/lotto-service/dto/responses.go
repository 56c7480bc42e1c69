package dto

import (
	"time"

	"github.com/radieske/lotto-analyzer-poc/internal/lotto/analyzer"
	"github.com/radieske/lotto-analyzer-poc/internal/lotto/rules"
	"github.com/radieske/lotto-analyzer-poc/pkg/contracts/events"
)

// GameInfo é a visão pública das regras de um jogo.
type GameInfo struct {
	GameType           string  `json:"game_type"`
	Name               string  `json:"name"`
	NumbersDrawn       int     `json:"numbers_drawn"`
	MaxNumber          int     `json:"max_number"`
	SupplementaryCount int     `json:"supplementary_count"`
	PowerballCount     int     `json:"powerball_count,omitempty"`
	PowerballMax       int     `json:"powerball_max,omitempty"`
	StandardGameCost   float64 `json:"standard_game_cost"`
	DrawDay            string  `json:"draw_day"`
	DrawTime           string  `json:"draw_time"` // "19:30", horário AEST/AEDT
	MinDivision1Prize  float64 `json:"min_division1_prize"`
}

// FromRuleset converte as regras internas para a resposta da API.
func FromRuleset(rs rules.Ruleset) GameInfo {
	return GameInfo{
		GameType:           rs.Type.String(),
		Name:               rs.Name,
		NumbersDrawn:       rs.NumbersDrawn,
		MaxNumber:          rs.MaxNumber,
		SupplementaryCount: rs.SupplementaryCount,
		PowerballCount:     rs.PowerballCount,
		PowerballMax:       rs.PowerballMax,
		StandardGameCost:   rs.StandardGameCost,
		DrawDay:            rs.DrawDay.String(),
		DrawTime:           drawTime(rs),
		MinDivision1Prize:  rs.MinDivision1Prize,
	}
}

func drawTime(rs rules.Ruleset) string {
	return time.Date(0, 1, 1, rs.DrawHour, rs.DrawMinute, 0, 0, time.UTC).Format("15:04")
}

// GameDetail agrega regras e próximo sorteio.
type GameDetail struct {
	Game     GameInfo  `json:"game"`
	NextDraw time.Time `json:"next_draw"`
}

// NextDrawResponse responde /next-draw.
type NextDrawResponse struct {
	GameType string    `json:"game_type"`
	NextDraw time.Time `json:"next_draw"`
}

// PredictionResponse embrulha a recomendação com um id por requisição.
type PredictionResponse struct {
	PredictionID string              `json:"prediction_id"`
	Prediction   analyzer.Prediction `json:"prediction"`
}

// AnalysisResponse é a resposta completa de /analysis: regras, estatísticas,
// recomendação e últimos resultados.
type AnalysisResponse struct {
	Game        GameInfo                `json:"game"`
	Statistics  analyzer.DrawStatistics `json:"statistics"`
	Prediction  PredictionResponse      `json:"prediction"`
	LastResults []events.DrawResult     `json:"last_results"`
}

// ResultsResponse lista sorteios persistidos.
type ResultsResponse struct {
	GameType string              `json:"game_type"`
	Results  []events.DrawResult `json:"results"`
}
