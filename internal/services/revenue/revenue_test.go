package revenue

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merchantfeeadvocate/backend/internal/models"
)

func dealAt(stage models.DealStage, value, rate float64, createdAt time.Time) models.Deal {
	d := models.Deal{
		Value:            value,
		CommissionRate:   rate,
		CommissionAmount: value * rate / 100,
		Stage:            stage,
	}
	d.CreatedAt = createdAt
	return d
}

func TestSummarizeEmptyInput(t *testing.T) {
	s := Summarize(nil, 12, time.Now())

	assert.Zero(t, s.TotalRevenue)
	assert.Zero(t, s.TotalCommission)
	assert.Zero(t, s.PipelineValue)
	assert.Zero(t, s.DealsWon)
	assert.Zero(t, s.MonthlyGrowth)
	assert.Zero(t, s.AverageDealSize)
	require.Len(t, s.Monthly, 12)
	for _, b := range s.Monthly {
		assert.Zero(t, b.TotalRevenue)
		assert.Zero(t, b.CommissionEarned)
		assert.Zero(t, b.DealsWon)
		assert.Zero(t, b.AverageDealSize)
	}
}

func TestSummarizeClosedWonTotals(t *testing.T) {
	now := time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)
	deals := []models.Deal{
		dealAt(models.DealStageClosedWon, 1000, 10, now),
		dealAt(models.DealStageClosedWon, 2000, 10, now),
	}

	s := Summarize(deals, 6, now)

	assert.InDelta(t, 3000, s.TotalRevenue, 1e-9)
	assert.InDelta(t, 300, s.TotalCommission, 1e-9)
	assert.Equal(t, 2, s.DealsWon)
	assert.InDelta(t, 150, s.AverageDealSize, 1e-9)
}

func TestSummarizePipelineExcludesClosed(t *testing.T) {
	now := time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)
	deals := []models.Deal{
		dealAt(models.DealStageQualified, 5000, 20, now),
		dealAt(models.DealStageNegotiation, 1000, 10, now),
		dealAt(models.DealStageClosedWon, 2000, 10, now),
		dealAt(models.DealStageClosedLost, 9000, 50, now),
	}

	s := Summarize(deals, 6, now)

	// 5000*20% + 1000*10%; won and lost deals stay out of the pipeline
	assert.InDelta(t, 1100, s.PipelineValue, 1e-9)
	assert.InDelta(t, 2000, s.TotalRevenue, 1e-9)
}

func TestSummarizeMonthlyBuckets(t *testing.T) {
	now := time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)
	may := time.Date(2026, time.May, 3, 9, 0, 0, 0, time.UTC)
	deals := []models.Deal{
		dealAt(models.DealStageClosedWon, 1000, 10, may),
		dealAt(models.DealStageClosedWon, 3000, 10, now),
		dealAt(models.DealStageClosedWon, 1000, 10, now),
	}

	s := Summarize(deals, 3, now)

	require.Len(t, s.Monthly, 3)
	assert.Equal(t, "2026-04", s.Monthly[0].Month)
	assert.Equal(t, "2026-05", s.Monthly[1].Month)
	assert.Equal(t, "2026-06", s.Monthly[2].Month)

	assert.Equal(t, 1, s.Monthly[1].DealsWon)
	assert.InDelta(t, 100, s.Monthly[1].CommissionEarned, 1e-9)

	assert.Equal(t, 2, s.Monthly[2].DealsWon)
	assert.InDelta(t, 4000, s.Monthly[2].TotalRevenue, 1e-9)
	assert.InDelta(t, 400, s.Monthly[2].CommissionEarned, 1e-9)
	assert.InDelta(t, 200, s.Monthly[2].AverageDealSize, 1e-9)

	// +300% commission month over month
	assert.InDelta(t, 300, s.MonthlyGrowth, 1e-9)
}

func TestSummarizeGrowthGuardsDivideByZero(t *testing.T) {
	now := time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)
	deals := []models.Deal{
		dealAt(models.DealStageClosedWon, 3000, 10, now),
	}

	s := Summarize(deals, 6, now)

	assert.False(t, math.IsNaN(s.MonthlyGrowth))
	assert.False(t, math.IsInf(s.MonthlyGrowth, 0))
	assert.Zero(t, s.MonthlyGrowth)
}

func TestSummarizeDealsOutsideWindowStillCountTotals(t *testing.T) {
	now := time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)
	old := now.AddDate(-2, 0, 0)
	deals := []models.Deal{
		dealAt(models.DealStageClosedWon, 1000, 10, old),
	}

	s := Summarize(deals, 3, now)

	assert.InDelta(t, 1000, s.TotalRevenue, 1e-9)
	for _, b := range s.Monthly {
		assert.Zero(t, b.DealsWon)
	}
}

func TestConversionRate(t *testing.T) {
	assert.Zero(t, ConversionRate(nil))

	leads := []models.Lead{
		{Status: models.LeadStatusClosedWon},
		{Status: models.LeadStatusSubmitted},
		{Status: models.LeadStatusClosedLost},
		{Status: models.LeadStatusClosedWon},
	}
	assert.InDelta(t, 50, ConversionRate(leads), 1e-9)
}
