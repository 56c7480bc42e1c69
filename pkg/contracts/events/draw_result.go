package events

import "time"

// Evento publicado no tópico "draw_results".
// Um registro por sorteio histórico raspado da fonte oficial.
type DrawResult struct {
	GameType             string    `json:"game_type"` // "SaturdayLotto", "Powerball", ...
	DrawNumber           int       `json:"draw_number"`
	DrawDate             time.Time `json:"draw_date"` // data + horário do sorteio (Australia/Sydney)
	WinningNumbers       []int     `json:"winning_numbers"`
	SupplementaryNumbers []int     `json:"supplementary_numbers,omitempty"`
	Powerball            *int      `json:"powerball,omitempty"` // presente apenas em jogos com powerball
	Division1Prize       float64   `json:"division1_prize"`
	Division1Winners     int       `json:"division1_winners"`
	Source               string    `json:"source"`     // ex: "results-ingest-worker"
	ScrapedAt            time.Time `json:"scraped_at"` // quando a página foi raspada
}

// HasWinners indica se houve ganhador da divisão 1 neste sorteio.
func (d DrawResult) HasWinners() bool { return d.Division1Winners > 0 }
