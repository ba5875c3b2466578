// Package revenue reduces a partner's deals into the totals, monthly buckets
// and ratios shown on the dashboard, pipeline and revenue views. Everything
// here is pure computation over records already loaded from the database.
package revenue

import (
	"time"

	"github.com/merchantfeeadvocate/backend/internal/models"
)

// MonthlyBucket aggregates the closed-won deals of one calendar month
type MonthlyBucket struct {
	Month            string  `json:"month"` // YYYY-MM
	TotalRevenue     float64 `json:"total_revenue"`
	CommissionEarned float64 `json:"commission_earned"`
	DealsWon         int     `json:"deals_won"`
	AverageDealSize  float64 `json:"average_deal_size"`
}

// Summary is the full rollup for one partner over a trailing window
type Summary struct {
	TotalRevenue    float64         `json:"total_revenue"`
	TotalCommission float64         `json:"total_commission"`
	PipelineValue   float64         `json:"pipeline_value"`
	DealsWon        int             `json:"deals_won"`
	MonthlyGrowth   float64         `json:"monthly_growth"`
	AverageDealSize float64         `json:"average_deal_size"`
	Monthly         []MonthlyBucket `json:"monthly"`
}

// monthKey buckets a timestamp by calendar month
func monthKey(t time.Time) string {
	return t.Format("2006-01")
}

// Summarize rolls a partner's deals up into totals and trailing monthly
// buckets. months selects the window (the UI offers 3/6/12/24) counted back
// from now inclusive. Deals are bucketed by CreatedAt, not close date.
// An empty slice yields an all-zero summary.
func Summarize(deals []models.Deal, months int, now time.Time) Summary {
	if months <= 0 {
		months = 12
	}

	s := Summary{Monthly: make([]MonthlyBucket, months)}

	// oldest bucket first
	index := make(map[string]*MonthlyBucket, months)
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for i := 0; i < months; i++ {
		m := start.AddDate(0, i-(months-1), 0)
		s.Monthly[i].Month = monthKey(m)
		index[s.Monthly[i].Month] = &s.Monthly[i]
	}

	for _, d := range deals {
		switch d.Stage {
		case models.DealStageClosedWon:
			s.TotalRevenue += d.Value
			s.TotalCommission += d.CommissionAmount
			s.DealsWon++
			if b, ok := index[monthKey(d.CreatedAt)]; ok {
				b.TotalRevenue += d.Value
				b.CommissionEarned += d.CommissionAmount
				b.DealsWon++
			}
		case models.DealStageClosedLost:
			// lost deals contribute nothing
		default:
			s.PipelineValue += d.CommissionAmount
		}
	}

	for i := range s.Monthly {
		b := &s.Monthly[i]
		if b.DealsWon > 0 {
			b.AverageDealSize = b.CommissionEarned / float64(b.DealsWon)
		}
	}

	if s.DealsWon > 0 {
		s.AverageDealSize = s.TotalCommission / float64(s.DealsWon)
	}
	s.MonthlyGrowth = growth(s.Monthly)

	return s
}

// growth compares the two most recent buckets, yielding 0 rather than an
// infinity when the previous month earned nothing.
func growth(monthly []MonthlyBucket) float64 {
	if len(monthly) < 2 {
		return 0
	}
	current := monthly[len(monthly)-1]
	previous := monthly[len(monthly)-2]
	if previous.CommissionEarned == 0 {
		return 0
	}
	return (current.CommissionEarned - previous.CommissionEarned) / previous.CommissionEarned * 100
}

// ConversionRate is the percentage of a partner's leads that have closed won
func ConversionRate(leads []models.Lead) float64 {
	if len(leads) == 0 {
		return 0
	}
	won := 0
	for _, l := range leads {
		if l.Status == models.LeadStatusClosedWon {
			won++
		}
	}
	return float64(won) / float64(len(leads)) * 100
}
