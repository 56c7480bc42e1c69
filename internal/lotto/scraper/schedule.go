package scraper

import (
	"time"

	"github.com/radieske/lotto-analyzer-poc/internal/lotto/rules"
)

// NextDraw calcula o próximo sorteio de um jogo: mesma hora configurada,
// avançando dia a dia até cair no dia da semana do sorteio, estritamente
// no futuro. Termina em no máximo 8 iterações (pior caso: hoje é o dia do
// sorteio mas o horário já passou).
func NextDraw(rs rules.Ruleset, now time.Time) time.Time {
	candidate := time.Date(now.Year(), now.Month(), now.Day(),
		rs.DrawHour, rs.DrawMinute, 0, 0, now.Location())

	for !candidate.After(now) || candidate.Weekday() != rs.DrawDay {
		candidate = candidate.AddDate(0, 0, 1)
	}

	return candidate
}
