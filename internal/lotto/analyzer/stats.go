package analyzer

import (
	"fmt"
	"sort"
	"time"

	"github.com/radieske/lotto-analyzer-poc/internal/lotto/rules"
	"github.com/radieske/lotto-analyzer-poc/pkg/contracts/events"
)

// Limiares do modelo quente/atrasado. Heurística descritiva, sem pretensão
// de validade estatística.
const (
	hotThreshold = 0.15
	dueAfterDays = 60
)

// NumberStats agrega as métricas de um número sobre o conjunto analisado.
// LastAppearance zerado significa "nunca sorteado no período".
type NumberStats struct {
	Number         int       `json:"number"`
	Frequency      int       `json:"frequency"`
	LastAppearance time.Time `json:"last_appearance,omitempty"`
	Probability    float64   `json:"probability"` // Frequency / TotalDraws; 0 sem sorteios
}

// Hot indica número frequente (probabilidade estritamente acima de 15%).
func (s NumberStats) Hot() bool { return s.Probability > hotThreshold }

// Due indica número atrasado: mais de 60 dias sem aparecer em relação a now.
// Números nunca sorteados contam como atrasados.
func (s NumberStats) Due(now time.Time) bool {
	return now.Sub(s.LastAppearance) > dueAfterDays*24*time.Hour
}

// Never indica que o número não apareceu no período analisado.
func (s NumberStats) Never() bool { return s.LastAppearance.IsZero() }

// Analyzer calcula estatísticas descritivas sobre um conjunto de sorteios.
// Recalculado por inteiro a cada construção; nunca atualizado incrementalmente.
type Analyzer struct {
	results []events.DrawResult
	rules   rules.Ruleset
	now     time.Time

	stats  map[int]NumberStats
	pbFreq map[int]int
	latest *events.DrawResult
}

// New valida os sorteios contra as regras do jogo e calcula as estatísticas.
// Um DrawResult com número duplicado ou fora da faixa é violação de contrato
// e falha a construção (diferente de linha malformada, absorvida no parser).
func New(results []events.DrawResult, rs rules.Ruleset, now time.Time) (*Analyzer, error) {
	a := &Analyzer{
		results: results,
		rules:   rs,
		now:     now,
		stats:   make(map[int]NumberStats, rs.MaxNumber),
		pbFreq:  make(map[int]int),
	}

	// todo número da faixa ganha uma entrada, mesmo com frequência zero
	for n := 1; n <= rs.MaxNumber; n++ {
		a.stats[n] = NumberStats{Number: n}
	}

	for i := range results {
		r := &results[i]
		if err := validateDraw(r, rs); err != nil {
			return nil, err
		}

		for _, n := range r.WinningNumbers {
			s := a.stats[n]
			s.Frequency++
			if r.DrawDate.After(s.LastAppearance) {
				s.LastAppearance = r.DrawDate
			}
			a.stats[n] = s
		}

		if r.Powerball != nil {
			a.pbFreq[*r.Powerball]++
		}

		if a.latest == nil || r.DrawDate.After(a.latest.DrawDate) {
			a.latest = r
		}
	}

	if total := len(results); total > 0 {
		for n, s := range a.stats {
			s.Probability = float64(s.Frequency) / float64(total)
			a.stats[n] = s
		}
	}

	return a, nil
}

func validateDraw(r *events.DrawResult, rs rules.Ruleset) error {
	seen := make(map[int]struct{}, len(r.WinningNumbers))
	for _, n := range r.WinningNumbers {
		if n < 1 || n > rs.MaxNumber {
			return fmt.Errorf("draw %d: number %d outside [1,%d]", r.DrawNumber, n, rs.MaxNumber)
		}
		if _, dup := seen[n]; dup {
			return fmt.Errorf("draw %d: duplicate number %d", r.DrawNumber, n)
		}
		seen[n] = struct{}{}
	}
	return nil
}

// Rules retorna as regras do jogo analisado.
func (a *Analyzer) Rules() rules.Ruleset { return a.rules }

// Now retorna o instante de referência usado para o cálculo de atraso.
func (a *Analyzer) Now() time.Time { return a.now }

// TotalDraws retorna a quantidade de sorteios analisados.
func (a *Analyzer) TotalDraws() int { return len(a.results) }

// Stat retorna as métricas de um número da faixa do jogo.
func (a *Analyzer) Stat(n int) (NumberStats, bool) {
	s, ok := a.stats[n]
	return s, ok
}

// All retorna as estatísticas de todos os números, ordenadas pelo número.
func (a *Analyzer) All() []NumberStats {
	out := make([]NumberStats, 0, len(a.stats))
	for _, s := range a.stats {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// Top retorna os n números de maior probabilidade.
// Empate é resolvido pelo número ascendente, para resultado determinístico.
func (a *Analyzer) Top(n int) []NumberStats {
	out := a.All()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Probability != out[j].Probability {
			return out[i].Probability > out[j].Probability
		}
		return out[i].Number < out[j].Number
	})
	return clip(out, n)
}

// Bottom retorna os n números de menor probabilidade (mesmo critério de empate).
func (a *Analyzer) Bottom(n int) []NumberStats {
	out := a.All()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Probability != out[j].Probability {
			return out[i].Probability < out[j].Probability
		}
		return out[i].Number < out[j].Number
	})
	return clip(out, n)
}

// PowerballFrequency retorna a frequência por número de powerball.
func (a *Analyzer) PowerballFrequency() map[int]int {
	out := make(map[int]int, len(a.pbFreq))
	for n, c := range a.pbFreq {
		out[n] = c
	}
	return out
}

// LatestResult retorna o sorteio mais recente do conjunto, ou nil se vazio.
func (a *Analyzer) LatestResult() *events.DrawResult { return a.latest }

func clip(s []NumberStats, n int) []NumberStats {
	if n < len(s) {
		return s[:n]
	}
	return s
}
