package analyzer

import (
	"fmt"
	"math/rand"
	"sort"
	"time"
)

// Prediction é a recomendação heurística para o próximo sorteio.
// Não é previsão: combina frequência, atraso e aleatoriedade, mais um rótulo
// com a data do próximo sorteio e uma estimativa de prêmio.
type Prediction struct {
	GameType                string          `json:"game_type"`
	NextDrawDate            time.Time       `json:"next_draw_date"`
	RecommendedNumbers      []int           `json:"recommended_numbers"`
	RecommendedPowerball    *int            `json:"recommended_powerball,omitempty"`
	NumberConfidence        map[int]float64 `json:"number_confidence"`
	Reasoning               []string        `json:"reasoning"`
	EstimatedDivision1Prize float64         `json:"estimated_division1_prize"`
}

// Predictor gera recomendações a partir de um Analyzer.
// A fonte de aleatoriedade é injetada para reprodutibilidade em teste.
type Predictor struct {
	Rand *rand.Rand
}

// Recommend aplica a heurística em três fases, nesta ordem:
//  1. até 2 números quentes, por probabilidade decrescente (empate: número asc);
//  2. até 2 números atrasados ainda não escolhidos, do maior atraso para o
//     menor (empate: número asc);
//  3. preenchimento aleatório uniforme em [1, MaxNumber], sem repetição.
//
// O resultado final é ordenado ascendente; a confiança de cada número é a sua
// probabilidade histórica, sem tratamento especial para os aleatórios.
// target <= 0 usa a quantidade de números do jogo.
func (p *Predictor) Recommend(a *Analyzer, nextDraw time.Time, target int) Prediction {
	rs := a.Rules()
	if target <= 0 {
		target = rs.NumbersDrawn
	}

	pred := Prediction{
		GameType:         rs.Type.String(),
		NextDrawDate:     nextDraw,
		NumberConfidence: make(map[int]float64, target),
	}

	chosen := make(map[int]bool, target)
	pick := func(n int, reason string) {
		chosen[n] = true
		pred.RecommendedNumbers = append(pred.RecommendedNumbers, n)
		s, _ := a.Stat(n)
		pred.NumberConfidence[n] = s.Probability
		pred.Reasoning = append(pred.Reasoning, reason)
	}

	// fases 1 e 2 só fazem sentido com histórico; conjunto vazio cai direto
	// no preenchimento aleatório
	if a.TotalDraws() > 0 {
		for _, s := range hotPicks(a, 2) {
			if len(pred.RecommendedNumbers) >= target {
				break
			}
			pick(s.Number, fmt.Sprintf("number %d is hot: drawn in %.1f%% of the last %d draws",
				s.Number, s.Probability*100, a.TotalDraws()))
		}

		for _, s := range duePicks(a, chosen, 2) {
			if len(pred.RecommendedNumbers) >= target {
				break
			}
			reason := fmt.Sprintf("number %d is due: not drawn in the analyzed period", s.Number)
			if !s.Never() {
				days := int(a.Now().Sub(s.LastAppearance).Hours() / 24)
				reason = fmt.Sprintf("number %d is due: last drawn %d days ago", s.Number, days)
			}
			pick(s.Number, reason)
		}
	}

	for len(pred.RecommendedNumbers) < target {
		n := p.Rand.Intn(rs.MaxNumber) + 1
		if chosen[n] {
			continue
		}
		pick(n, fmt.Sprintf("number %d picked at random to complete the game", n))
	}

	sort.Ints(pred.RecommendedNumbers)

	if rs.HasPowerball() {
		pb := p.recommendPowerball(a)
		pred.RecommendedPowerball = &pb
	}

	pred.EstimatedDivision1Prize = estimatePrize(a)

	return pred
}

// hotPicks retorna até n números quentes, por probabilidade decrescente.
func hotPicks(a *Analyzer, n int) []NumberStats {
	var hot []NumberStats
	for _, s := range a.Top(a.Rules().MaxNumber) {
		if !s.Hot() {
			break // Top já vem ordenado por probabilidade
		}
		hot = append(hot, s)
	}
	if n < len(hot) {
		hot = hot[:n]
	}
	return hot
}

// duePicks retorna até n números atrasados não escolhidos, do maior atraso
// para o menor (LastAppearance ascendente, nunca-sorteados primeiro).
func duePicks(a *Analyzer, chosen map[int]bool, n int) []NumberStats {
	var due []NumberStats
	for _, s := range a.All() {
		if chosen[s.Number] || !s.Due(a.Now()) {
			continue
		}
		due = append(due, s)
	}
	sort.SliceStable(due, func(i, j int) bool {
		if !due[i].LastAppearance.Equal(due[j].LastAppearance) {
			return due[i].LastAppearance.Before(due[j].LastAppearance)
		}
		return due[i].Number < due[j].Number
	})
	if n < len(due) {
		due = due[:n]
	}
	return due
}

// recommendPowerball escolhe o powerball mais frequente do período
// (empate: número ascendente); sem histórico, sorteia na faixa do jogo.
func (p *Predictor) recommendPowerball(a *Analyzer) int {
	freq := a.PowerballFrequency()
	best, bestCount := 0, 0
	for n := 1; n <= a.Rules().PowerballMax; n++ {
		if c := freq[n]; c > bestCount {
			best, bestCount = n, c
		}
	}
	if best == 0 {
		return p.Rand.Intn(a.Rules().PowerballMax) + 1
	}
	return best
}

// estimatePrize estima o prêmio da divisão 1 do próximo sorteio: o mínimo
// garantido do jogo, somado ao último prêmio quando houve rollover (último
// sorteio sem ganhadores acumula o pote).
func estimatePrize(a *Analyzer) float64 {
	est := a.Rules().MinDivision1Prize
	if last := a.LatestResult(); last != nil && !last.HasWinners() && last.Division1Prize > 0 {
		est += last.Division1Prize
	}
	return est
}
