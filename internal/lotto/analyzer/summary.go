package analyzer

import "time"

// DrawStatistics é a visão agregada exposta à camada de apresentação:
// totais, faixa de datas, prêmios de divisão 1 e mapas de frequência.
type DrawStatistics struct {
	GameType              string      `json:"game_type"`
	TotalDraws            int         `json:"total_draws"`
	FirstDrawDate         time.Time   `json:"first_draw_date,omitempty"`
	LastDrawDate          time.Time   `json:"last_draw_date,omitempty"`
	AverageDivision1Prize float64     `json:"average_division1_prize"`
	HighestDivision1Prize float64     `json:"highest_division1_prize"`
	HighestPrizeDate      time.Time   `json:"highest_prize_date,omitempty"`
	TotalDivision1Winners int         `json:"total_division1_winners"`
	NumberFrequency       map[int]int `json:"number_frequency"`
	PowerballFrequency    map[int]int `json:"powerball_frequency,omitempty"`
	CommonPairs           []PairCount `json:"common_pairs"`
}

// Summary monta o agregado do período analisado. Conjunto vazio produz um
// agregado zerado (frequências em zero, sem datas), nunca erro.
func (a *Analyzer) Summary() DrawStatistics {
	st := DrawStatistics{
		GameType:        a.rules.Type.String(),
		TotalDraws:      len(a.results),
		NumberFrequency: make(map[int]int, a.rules.MaxNumber),
		CommonPairs:     a.CommonPairs(10),
	}

	for n, s := range a.stats {
		st.NumberFrequency[n] = s.Frequency
	}
	if a.rules.HasPowerball() {
		st.PowerballFrequency = a.PowerballFrequency()
	}

	var prizeSum float64
	for i := range a.results {
		r := &a.results[i]

		if st.FirstDrawDate.IsZero() || r.DrawDate.Before(st.FirstDrawDate) {
			st.FirstDrawDate = r.DrawDate
		}
		if r.DrawDate.After(st.LastDrawDate) {
			st.LastDrawDate = r.DrawDate
		}

		prizeSum += r.Division1Prize
		if r.Division1Prize > st.HighestDivision1Prize {
			st.HighestDivision1Prize = r.Division1Prize
			st.HighestPrizeDate = r.DrawDate
		}
		st.TotalDivision1Winners += r.Division1Winners
	}

	if st.TotalDraws > 0 {
		st.AverageDivision1Prize = prizeSum / float64(st.TotalDraws)
	}

	return st
}
