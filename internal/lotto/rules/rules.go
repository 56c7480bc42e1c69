package rules

import (
	"fmt"
	"time"
)

// GameType identifica um jogo de loteria australiano suportado.
type GameType string

const (
	MondayLotto    GameType = "MondayLotto"    // Monday X Lotto (SA), Monday Gold Lotto (QLD)
	WednesdayLotto GameType = "WednesdayLotto" // Wednesday X Lotto (SA), Wednesday Gold Lotto (QLD)
	SaturdayLotto  GameType = "SaturdayLotto"  // Saturday TattsLotto, Saturday X Lotto, Saturday Gold Lotto
	OzLotto        GameType = "OzLotto"        // terça-feira
	Powerball      GameType = "Powerball"      // quinta-feira
	SetForLife     GameType = "SetForLife"     // diário
	Strike         GameType = "Strike"         // NSW apenas, jogo suplementar
)

func (g GameType) String() string { return string(g) }

// ErrUnknownGame indica um tipo de jogo sem regras/URL configuradas.
// Nunca há fallback silencioso para um jogo padrão.
var ErrUnknownGame = fmt.Errorf("unknown game type")

// Ruleset descreve as regras fixas de um jogo: quantidade e faixa de números,
// suplementares, powerball (quando houver), custo, dia e horário do sorteio.
// Imutável; construído uma vez no início do processo.
type Ruleset struct {
	Type               GameType
	Name               string
	NumbersDrawn       int // números principais por sorteio
	MaxNumber          int // faixa [1, MaxNumber], sem repetição
	SupplementaryCount int
	PowerballCount     int // 0 quando o jogo não tem powerball
	PowerballMax       int
	StandardGameCost   float64 // custo por jogo padrão, em AUD
	DrawDay            time.Weekday
	DrawHour           int // horário do sorteio (AEST/AEDT)
	DrawMinute         int
	MinDivision1Prize  float64 // prêmio mínimo garantido da divisão 1, em AUD
}

// HasPowerball indica se o jogo sorteia um número de powerball separado.
func (r Ruleset) HasPowerball() bool { return r.PowerballCount > 0 }

// Table é a tabela imutável de regras por jogo, passada explicitamente para
// fetcher/analisador na construção (sem lookup global, substituível em teste).
type Table struct {
	games map[GameType]Ruleset
	urls  map[GameType]string // caminho da página de resultados por jogo
}

// DefaultTable retorna a tabela com os jogos suportados.
// SetForLife e Strike existem na enumeração mas não têm regras nem URL de
// resultados configuradas; Lookup e ResultsPath falham explicitamente.
func DefaultTable() Table {
	games := map[GameType]Ruleset{
		MondayLotto: {
			Type:               MondayLotto,
			Name:               "Monday Lotto",
			NumbersDrawn:       6,
			MaxNumber:          45,
			SupplementaryCount: 2,
			StandardGameCost:   0.60,
			DrawDay:            time.Monday,
			DrawHour:           19,
			DrawMinute:         30,
			MinDivision1Prize:  1_000_000,
		},
		WednesdayLotto: {
			Type:               WednesdayLotto,
			Name:               "Wednesday Lotto",
			NumbersDrawn:       6,
			MaxNumber:          45,
			SupplementaryCount: 2,
			StandardGameCost:   0.60,
			DrawDay:            time.Wednesday,
			DrawHour:           19,
			DrawMinute:         30,
			MinDivision1Prize:  1_000_000,
		},
		SaturdayLotto: {
			Type:               SaturdayLotto,
			Name:               "Saturday TattsLotto",
			NumbersDrawn:       6,
			MaxNumber:          45,
			SupplementaryCount: 2,
			StandardGameCost:   0.70,
			DrawDay:            time.Saturday,
			DrawHour:           19,
			DrawMinute:         30,
			MinDivision1Prize:  5_000_000,
		},
		OzLotto: {
			Type:               OzLotto,
			Name:               "Oz Lotto",
			NumbersDrawn:       7,
			MaxNumber:          47,
			SupplementaryCount: 2,
			StandardGameCost:   1.30,
			DrawDay:            time.Tuesday,
			DrawHour:           19,
			DrawMinute:         30,
			MinDivision1Prize:  2_000_000,
		},
		Powerball: {
			Type:               Powerball,
			Name:               "Powerball",
			NumbersDrawn:       7,
			MaxNumber:          35,
			PowerballCount:     1,
			PowerballMax:       20,
			StandardGameCost:   1.35,
			DrawDay:            time.Thursday,
			DrawHour:           19,
			DrawMinute:         30,
			MinDivision1Prize:  4_000_000,
		},
	}

	urls := map[GameType]string{
		MondayLotto:    "/monday-lotto/past-results/",
		WednesdayLotto: "/wednesday-lotto/past-results/",
		SaturdayLotto:  "/saturday-lotto/past-results/",
		OzLotto:        "/oz-lotto/past-results/",
		Powerball:      "/powerball/past-results/",
	}

	return Table{games: games, urls: urls}
}

// NewTable monta uma tabela customizada (usada em testes).
func NewTable(games map[GameType]Ruleset, urls map[GameType]string) Table {
	return Table{games: games, urls: urls}
}

// Lookup retorna as regras do jogo; falha com ErrUnknownGame quando não configurado.
func (t Table) Lookup(g GameType) (Ruleset, error) {
	rs, ok := t.games[g]
	if !ok {
		return Ruleset{}, fmt.Errorf("%w: %s", ErrUnknownGame, g)
	}
	return rs, nil
}

// ResultsPath retorna o caminho relativo da página de resultados do jogo.
func (t Table) ResultsPath(g GameType) (string, error) {
	p, ok := t.urls[g]
	if !ok {
		return "", fmt.Errorf("%w: no results URL for %s", ErrUnknownGame, g)
	}
	return p, nil
}

// GameTypes retorna os jogos com regras configuradas, sem ordem garantida.
func (t Table) GameTypes() []GameType {
	out := make([]GameType, 0, len(t.games))
	for g := range t.games {
		out = append(out, g)
	}
	return out
}

// FetchableGames retorna os jogos que têm URL de resultados configurada.
func (t Table) FetchableGames() []GameType {
	out := make([]GameType, 0, len(t.urls))
	for g := range t.urls {
		out = append(out, g)
	}
	return out
}

// ParseGameType valida um valor vindo da URL/API contra a enumeração.
func ParseGameType(s string) (GameType, error) {
	switch GameType(s) {
	case MondayLotto, WednesdayLotto, SaturdayLotto, OzLotto, Powerball, SetForLife, Strike:
		return GameType(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownGame, s)
}
