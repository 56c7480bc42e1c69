package scraper

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/radieske/lotto-analyzer-poc/internal/lotto/rules"
	"github.com/radieske/lotto-analyzer-poc/pkg/contracts/events"
)

// A fonte publica datas no formato "Saturday 27th Jan 2024", sempre em
// horário do leste australiano. O sufixo ordinal é removido antes do parse.
var (
	ordinalRe  = regexp.MustCompile(`(\d+)(st|nd|rd|th)`)
	nonDigitRe = regexp.MustCompile(`[^0-9]`)
	nonMoneyRe = regexp.MustCompile(`[^0-9.]`)
)

const dateLayout = "Monday 2 Jan 2006"

// sydneyTZ carrega o fuso da fonte; fallback fixo AEST quando o tzdata não
// estiver disponível no host.
var sydneyTZ = func() *time.Location {
	loc, err := time.LoadLocation("Australia/Sydney")
	if err != nil {
		return time.FixedZone("AEST", 10*60*60)
	}
	return loc
}()

// ParseResults extrai os sorteios de uma página de resultados.
// Linhas malformadas (menos de 4 células ou token numérico irrecuperável)
// são descartadas individualmente; a página nunca falha por causa de uma linha.
func ParseResults(r io.Reader, rs rules.Ruleset) ([]events.DrawResult, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse results page: %w", err)
	}

	var out []events.DrawResult
	doc.Find("table.table.table-striped tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return // cabeçalho
		}
		cells := row.Find("td")
		if cells.Length() < 4 {
			return // linha malformada, descarta
		}

		res, err := parseRow(cells, rs)
		if err != nil {
			return // falha restrita à linha
		}
		out = append(out, res)
	})

	return out, nil
}

// parseRow converte as células de uma linha em um DrawResult.
// Colunas: [data, número do sorteio, números sorteados, suplementares-ou-powerball,
// prêmio divisão 1, ganhadores divisão 1 (opcional)].
func parseRow(cells *goquery.Selection, rs rules.Ruleset) (events.DrawResult, error) {
	text := func(i int) string { return strings.TrimSpace(cells.Eq(i).Text()) }

	drawDate, err := parseDrawDate(text(0), rs)
	if err != nil {
		return events.DrawResult{}, err
	}

	drawNumber, err := parseIntToken(text(1))
	if err != nil {
		return events.DrawResult{}, fmt.Errorf("draw number: %w", err)
	}

	winning, err := parseNumberList(text(2))
	if err != nil {
		return events.DrawResult{}, fmt.Errorf("winning numbers: %w", err)
	}

	res := events.DrawResult{
		GameType:       rs.Type.String(),
		DrawNumber:     drawNumber,
		DrawDate:       drawDate,
		WinningNumbers: winning,
	}

	// Em jogos com powerball a 4ª célula carrega um único número;
	// nos demais, a lista de suplementares.
	extra, err := parseNumberList(text(3))
	if err != nil {
		return events.DrawResult{}, fmt.Errorf("supplementary cell: %w", err)
	}
	if rs.HasPowerball() {
		if len(extra) > 0 {
			pb := extra[0]
			res.Powerball = &pb
		}
	} else {
		res.SupplementaryNumbers = extra
	}

	// Prêmio e ganhadores são best-effort: célula ausente ou ilegível vira zero.
	if cells.Length() > 4 {
		res.Division1Prize = parsePrize(text(4))
	}
	if cells.Length() > 5 {
		if n, err := parseIntToken(text(5)); err == nil {
			res.Division1Winners = n
		}
	}

	return res, nil
}

// parseDrawDate interpreta "Saturday 27th Jan 2024" no fuso Australia/Sydney
// e fixa o horário do sorteio definido nas regras do jogo.
func parseDrawDate(s string, rs rules.Ruleset) (time.Time, error) {
	clean := ordinalRe.ReplaceAllString(s, "$1")
	d, err := time.ParseInLocation(dateLayout, clean, sydneyTZ)
	if err != nil {
		return time.Time{}, fmt.Errorf("draw date %q: %w", s, err)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), rs.DrawHour, rs.DrawMinute, 0, 0, sydneyTZ), nil
}

// parseIntToken remove tudo que não for dígito e converte.
// Token que reduz a vazio é erro (não vira zero silencioso).
func parseIntToken(s string) (int, error) {
	digits := nonDigitRe.ReplaceAllString(s, "")
	if digits == "" {
		return 0, fmt.Errorf("no digits in token %q", s)
	}
	return strconv.Atoi(digits)
}

// parseNumberList quebra a célula por espaço/vírgula e converte cada token.
func parseNumberList(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\n' || r == '\t'
	})

	out := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := parseIntToken(f)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// parsePrize remove símbolo de moeda e separadores de milhar; valor ilegível vira 0.
func parsePrize(s string) float64 {
	clean := nonMoneyRe.ReplaceAllString(s, "")
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0
	}
	return v
}
