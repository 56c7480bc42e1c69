package analyzer

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radieske/lotto-analyzer-poc/internal/lotto/rules"
	"github.com/radieske/lotto-analyzer-poc/pkg/contracts/events"
)

func seededPredictor() *Predictor {
	return &Predictor{Rand: rand.New(rand.NewSource(42))}
}

func TestRecommendEmptyHistoryIsAllRandom(t *testing.T) {
	rs := testRules()
	a, err := New(nil, rs, testNow)
	require.NoError(t, err)

	next := time.Date(2024, time.March, 2, 19, 30, 0, 0, time.UTC)
	pred := seededPredictor().Recommend(a, next, 0)

	assert.Equal(t, "SaturdayLotto", pred.GameType)
	assert.True(t, pred.NextDrawDate.Equal(next))
	require.Len(t, pred.RecommendedNumbers, rs.NumbersDrawn)
	require.Len(t, pred.Reasoning, rs.NumbersDrawn)

	seen := make(map[int]bool)
	for i, n := range pred.RecommendedNumbers {
		assert.GreaterOrEqual(t, n, 1)
		assert.LessOrEqual(t, n, rs.MaxNumber)
		assert.False(t, seen[n], "número repetido %d", n)
		seen[n] = true
		if i > 0 {
			assert.Greater(t, n, pred.RecommendedNumbers[i-1], "resultado deve vir ordenado")
		}
		assert.Equal(t, 0.0, pred.NumberConfidence[n])
	}
	for _, r := range pred.Reasoning {
		assert.Contains(t, r, "picked at random")
	}

	assert.Nil(t, pred.RecommendedPowerball)
	assert.Equal(t, float64(5_000_000), pred.EstimatedDivision1Prize)
}

func TestRecommendHotThenDueThenRandom(t *testing.T) {
	rs := smallRules()
	// 1 e 2 são quentes (duas aparições em três sorteios); 9 e 10 nunca saíram
	results := []events.DrawResult{
		draw(1, testNow.AddDate(0, 0, -10), 1, 2, 3, 4, 5),
		draw(2, testNow.AddDate(0, 0, -5), 1, 2, 6, 7, 8),
		draw(3, testNow.AddDate(0, 0, -3), 3, 4, 5, 6, 7),
	}

	a, err := New(results, rs, testNow)
	require.NoError(t, err)

	pred := seededPredictor().Recommend(a, testNow.AddDate(0, 0, 1), 0)
	require.Len(t, pred.RecommendedNumbers, rs.NumbersDrawn)

	assert.Contains(t, pred.RecommendedNumbers, 1)
	assert.Contains(t, pred.RecommendedNumbers, 2)
	assert.Contains(t, pred.RecommendedNumbers, 9)
	assert.Contains(t, pred.RecommendedNumbers, 10)

	assert.Contains(t, pred.Reasoning[0], "number 1 is hot")
	assert.Contains(t, pred.Reasoning[1], "number 2 is hot")
	assert.Contains(t, pred.Reasoning[2], "number 9 is due")
	assert.Contains(t, pred.Reasoning[2], "not drawn in the analyzed period")
	assert.Contains(t, pred.Reasoning[3], "number 10 is due")
	assert.Contains(t, pred.Reasoning[4], "picked at random")

	assert.InDelta(t, 2.0/3.0, pred.NumberConfidence[1], 1e-9)
	assert.Equal(t, 0.0, pred.NumberConfidence[9])
}

func TestRecommendDuePrefersOldestAppearance(t *testing.T) {
	rs := smallRules()
	// todos os números aparecem pelo menos uma vez: 6 a 10 há muito tempo,
	// em datas distintas, para exercitar a ordenação por último sorteio
	results := []events.DrawResult{
		draw(1, testNow.AddDate(0, 0, -100), 6, 1, 2, 3, 4),
		draw(2, testNow.AddDate(0, 0, -80), 7, 1, 2, 3, 4),
		draw(3, testNow.AddDate(0, 0, -70), 8, 1, 2, 3, 4),
		draw(4, testNow.AddDate(0, 0, -65), 9, 1, 2, 3, 4),
		draw(5, testNow.AddDate(0, 0, -62), 10, 1, 2, 3, 4),
	}
	for i := 0; i < 20; i++ {
		results = append(results, draw(10+i, testNow.AddDate(0, 0, -i-1), 1, 2, 3, 4, 5))
	}

	a, err := New(results, rs, testNow)
	require.NoError(t, err)

	pred := seededPredictor().Recommend(a, testNow.AddDate(0, 0, 1), 0)

	// fase 1: 1 e 2 (probabilidade máxima, empate pelo número);
	// fase 2: 6 (há 100 dias) e depois 7 (há 80)
	assert.Contains(t, pred.RecommendedNumbers, 1)
	assert.Contains(t, pred.RecommendedNumbers, 2)
	assert.Contains(t, pred.RecommendedNumbers, 6)
	assert.Contains(t, pred.RecommendedNumbers, 7)
	assert.Contains(t, pred.Reasoning[2], "number 6 is due: last drawn 100 days ago")
	assert.Contains(t, pred.Reasoning[3], "number 7 is due: last drawn 80 days ago")
}

func TestRecommendDeterministicWithSameSeed(t *testing.T) {
	a, err := New(nil, testRules(), testNow)
	require.NoError(t, err)

	next := testNow.AddDate(0, 0, 1)
	first := seededPredictor().Recommend(a, next, 0)
	second := seededPredictor().Recommend(a, next, 0)

	assert.Equal(t, first.RecommendedNumbers, second.RecommendedNumbers)
	assert.Equal(t, first.Reasoning, second.Reasoning)
}

func TestRecommendTargetOverride(t *testing.T) {
	a, err := New(nil, testRules(), testNow)
	require.NoError(t, err)

	pred := seededPredictor().Recommend(a, testNow.AddDate(0, 0, 1), 10)
	assert.Len(t, pred.RecommendedNumbers, 10)
}

func TestRecommendPowerballMostFrequent(t *testing.T) {
	rs := rules.Ruleset{
		Type:           rules.Powerball,
		NumbersDrawn:   7,
		MaxNumber:      35,
		PowerballCount: 1,
		PowerballMax:   20,
	}

	pb5a, pb5b, pb9 := 5, 5, 9
	results := []events.DrawResult{
		{GameType: "Powerball", DrawNumber: 1, DrawDate: testNow.AddDate(0, 0, -21),
			WinningNumbers: []int{1, 2, 3, 4, 5, 6, 7}, Powerball: &pb5a},
		{GameType: "Powerball", DrawNumber: 2, DrawDate: testNow.AddDate(0, 0, -14),
			WinningNumbers: []int{8, 9, 10, 11, 12, 13, 14}, Powerball: &pb5b},
		{GameType: "Powerball", DrawNumber: 3, DrawDate: testNow.AddDate(0, 0, -7),
			WinningNumbers: []int{15, 16, 17, 18, 19, 20, 21}, Powerball: &pb9},
	}

	a, err := New(results, rs, testNow)
	require.NoError(t, err)

	pred := seededPredictor().Recommend(a, testNow.AddDate(0, 0, 1), 0)
	require.NotNil(t, pred.RecommendedPowerball)
	assert.Equal(t, 5, *pred.RecommendedPowerball)
}

func TestRecommendPowerballTieBreakAndFallback(t *testing.T) {
	rs := rules.Ruleset{
		Type:           rules.Powerball,
		NumbersDrawn:   7,
		MaxNumber:      35,
		PowerballCount: 1,
		PowerballMax:   20,
	}

	pb7, pb3 := 7, 3
	results := []events.DrawResult{
		{GameType: "Powerball", DrawNumber: 1, DrawDate: testNow.AddDate(0, 0, -14),
			WinningNumbers: []int{1, 2, 3, 4, 5, 6, 7}, Powerball: &pb7},
		{GameType: "Powerball", DrawNumber: 2, DrawDate: testNow.AddDate(0, 0, -7),
			WinningNumbers: []int{8, 9, 10, 11, 12, 13, 14}, Powerball: &pb3},
	}

	a, err := New(results, rs, testNow)
	require.NoError(t, err)

	// empate em frequência: vence o menor número
	pred := seededPredictor().Recommend(a, testNow.AddDate(0, 0, 1), 0)
	require.NotNil(t, pred.RecommendedPowerball)
	assert.Equal(t, 3, *pred.RecommendedPowerball)

	// sem histórico o powerball é sorteado na faixa do jogo
	empty, err := New(nil, rs, testNow)
	require.NoError(t, err)
	pred = seededPredictor().Recommend(empty, testNow.AddDate(0, 0, 1), 0)
	require.NotNil(t, pred.RecommendedPowerball)
	assert.GreaterOrEqual(t, *pred.RecommendedPowerball, 1)
	assert.LessOrEqual(t, *pred.RecommendedPowerball, 20)
}

func TestEstimatedPrizeRollover(t *testing.T) {
	rs := testRules()

	// último sorteio sem ganhadores acumula o pote
	rolled := draw(1, testNow.AddDate(0, 0, -7), 1, 2, 3, 4, 5, 6)
	rolled.Division1Prize = 10_000_000

	a, err := New([]events.DrawResult{rolled}, rs, testNow)
	require.NoError(t, err)
	pred := seededPredictor().Recommend(a, testNow.AddDate(0, 0, 1), 0)
	assert.Equal(t, float64(15_000_000), pred.EstimatedDivision1Prize)

	// com ganhadores o prêmio volta ao mínimo garantido
	won := rolled
	won.Division1Winners = 3
	a, err = New([]events.DrawResult{won}, rs, testNow)
	require.NoError(t, err)
	pred = seededPredictor().Recommend(a, testNow.AddDate(0, 0, 1), 0)
	assert.Equal(t, float64(5_000_000), pred.EstimatedDivision1Prize)
}
