package analyzer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radieske/lotto-analyzer-poc/internal/lotto/rules"
	"github.com/radieske/lotto-analyzer-poc/pkg/contracts/events"
)

var testNow = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

func testRules() rules.Ruleset {
	return rules.Ruleset{
		Type:              rules.SaturdayLotto,
		NumbersDrawn:      6,
		MaxNumber:         45,
		MinDivision1Prize: 5_000_000,
	}
}

func draw(num int, date time.Time, numbers ...int) events.DrawResult {
	return events.DrawResult{
		GameType:       string(rules.SaturdayLotto),
		DrawNumber:     num,
		DrawDate:       date,
		WinningNumbers: numbers,
	}
}

func TestFrequencyAndProbability(t *testing.T) {
	results := []events.DrawResult{
		draw(1, testNow.AddDate(0, 0, -14), 1, 2, 3, 4, 5, 6),
		draw(2, testNow.AddDate(0, 0, -7), 1, 2, 7, 8, 9, 10),
	}

	a, err := New(results, testRules(), testNow)
	require.NoError(t, err)

	assert.Equal(t, 2, a.TotalDraws())

	s1, ok := a.Stat(1)
	require.True(t, ok)
	assert.Equal(t, 2, s1.Frequency)
	assert.Equal(t, 1.0, s1.Probability)
	assert.True(t, s1.LastAppearance.Equal(testNow.AddDate(0, 0, -7)))

	s3, _ := a.Stat(3)
	assert.Equal(t, 1, s3.Frequency)
	assert.Equal(t, 0.5, s3.Probability)

	// número dentro da faixa que nunca saiu tem entrada zerada
	s11, ok := a.Stat(11)
	require.True(t, ok)
	assert.Equal(t, 0, s11.Frequency)
	assert.Equal(t, 0.0, s11.Probability)
	assert.True(t, s11.Never())
}

func TestFrequencySumEqualsDrawnNumbers(t *testing.T) {
	rs := testRules()
	results := []events.DrawResult{
		draw(1, testNow.AddDate(0, 0, -21), 1, 2, 3, 4, 5, 6),
		draw(2, testNow.AddDate(0, 0, -14), 40, 41, 42, 43, 44, 45),
		draw(3, testNow.AddDate(0, 0, -7), 1, 10, 20, 30, 40, 45),
	}

	a, err := New(results, rs, testNow)
	require.NoError(t, err)

	sum := 0
	for _, s := range a.All() {
		sum += s.Frequency
	}
	assert.Equal(t, rs.NumbersDrawn*a.TotalDraws(), sum)
	assert.Len(t, a.All(), rs.MaxNumber)
}

func TestHotThresholdIsStrict(t *testing.T) {
	assert.False(t, NumberStats{Probability: 0.15}.Hot())
	assert.True(t, NumberStats{Probability: 0.151}.Hot())
	assert.False(t, NumberStats{Probability: 0.10}.Hot())
}

func TestDueWindow(t *testing.T) {
	recent := NumberStats{Number: 1, LastAppearance: testNow.AddDate(0, 0, -59)}
	stale := NumberStats{Number: 2, LastAppearance: testNow.AddDate(0, 0, -61)}
	never := NumberStats{Number: 3}

	assert.False(t, recent.Due(testNow))
	assert.True(t, stale.Due(testNow))
	assert.True(t, never.Due(testNow), "número nunca sorteado conta como atrasado")
	assert.True(t, never.Never())
	assert.False(t, stale.Never())
}

func TestNewRejectsInvalidDraws(t *testing.T) {
	rs := testRules()

	_, err := New([]events.DrawResult{
		draw(1, testNow, 1, 2, 3, 4, 5, 46),
	}, rs, testNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside [1,45]")

	_, err = New([]events.DrawResult{
		draw(2, testNow, 1, 2, 3, 4, 5, 5),
	}, rs, testNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate number 5")
}

func TestTopAndBottomTieBreakByNumber(t *testing.T) {
	results := []events.DrawResult{
		draw(1, testNow.AddDate(0, 0, -14), 5, 10, 15, 20, 25, 30),
		draw(2, testNow.AddDate(0, 0, -7), 5, 10, 31, 32, 33, 34),
	}

	a, err := New(results, testRules(), testNow)
	require.NoError(t, err)

	top := a.Top(4)
	require.Len(t, top, 4)
	// 5 e 10 saíram duas vezes; os demais empatam em uma, número ascendente
	assert.Equal(t, 5, top[0].Number)
	assert.Equal(t, 10, top[1].Number)
	assert.Equal(t, 15, top[2].Number)
	assert.Equal(t, 20, top[3].Number)

	bottom := a.Bottom(3)
	require.Len(t, bottom, 3)
	// frequência zero empata em quase toda a faixa, número ascendente
	assert.Equal(t, 1, bottom[0].Number)
	assert.Equal(t, 2, bottom[1].Number)
	assert.Equal(t, 3, bottom[2].Number)
}

func TestEmptyResultSet(t *testing.T) {
	a, err := New(nil, testRules(), testNow)
	require.NoError(t, err)

	assert.Equal(t, 0, a.TotalDraws())
	assert.Nil(t, a.LatestResult())
	for _, s := range a.All() {
		assert.Equal(t, 0, s.Frequency)
		assert.Equal(t, 0.0, s.Probability)
	}
}

func TestLatestResultAndPowerballFrequency(t *testing.T) {
	rs := rules.Ruleset{
		Type:           rules.Powerball,
		NumbersDrawn:   7,
		MaxNumber:      35,
		PowerballCount: 1,
		PowerballMax:   20,
	}

	pb5, pb7 := 5, 7
	older := events.DrawResult{
		GameType:       string(rules.Powerball),
		DrawNumber:     100,
		DrawDate:       testNow.AddDate(0, 0, -14),
		WinningNumbers: []int{1, 2, 3, 4, 5, 6, 7},
		Powerball:      &pb5,
	}
	newer := events.DrawResult{
		GameType:       string(rules.Powerball),
		DrawNumber:     101,
		DrawDate:       testNow.AddDate(0, 0, -7),
		WinningNumbers: []int{8, 9, 10, 11, 12, 13, 14},
		Powerball:      &pb7,
	}

	a, err := New([]events.DrawResult{older, newer}, rs, testNow)
	require.NoError(t, err)

	require.NotNil(t, a.LatestResult())
	assert.Equal(t, 101, a.LatestResult().DrawNumber)

	freq := a.PowerballFrequency()
	assert.Equal(t, 1, freq[5])
	assert.Equal(t, 1, freq[7])
}

func TestSummaryAggregates(t *testing.T) {
	d1 := draw(1, testNow.AddDate(0, 0, -21), 1, 2, 3, 4, 5, 6)
	d1.Division1Prize = 4_000_000
	d1.Division1Winners = 2
	d2 := draw(2, testNow.AddDate(0, 0, -7), 1, 2, 7, 8, 9, 10)
	d2.Division1Prize = 10_000_000

	a, err := New([]events.DrawResult{d1, d2}, testRules(), testNow)
	require.NoError(t, err)

	st := a.Summary()
	assert.Equal(t, "SaturdayLotto", st.GameType)
	assert.Equal(t, 2, st.TotalDraws)
	assert.True(t, st.FirstDrawDate.Equal(d1.DrawDate))
	assert.True(t, st.LastDrawDate.Equal(d2.DrawDate))
	assert.Equal(t, float64(7_000_000), st.AverageDivision1Prize)
	assert.Equal(t, float64(10_000_000), st.HighestDivision1Prize)
	assert.True(t, st.HighestPrizeDate.Equal(d2.DrawDate))
	assert.Equal(t, 2, st.TotalDivision1Winners)
	assert.Equal(t, 2, st.NumberFrequency[1])
	assert.Equal(t, 1, st.NumberFrequency[3])
	require.NotEmpty(t, st.CommonPairs)
	assert.Equal(t, PairCount{A: 1, B: 2, Count: 2}, st.CommonPairs[0])
}

func TestSummaryEmptySet(t *testing.T) {
	a, err := New(nil, testRules(), testNow)
	require.NoError(t, err)

	st := a.Summary()
	assert.Equal(t, 0, st.TotalDraws)
	assert.True(t, st.FirstDrawDate.IsZero())
	assert.Equal(t, 0.0, st.AverageDivision1Prize)
	assert.Empty(t, st.CommonPairs)
	assert.Len(t, st.NumberFrequency, 45)
}
