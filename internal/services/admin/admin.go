// Package admin builds the global rollups behind the admin overview. Like the
// revenue package it is pure reduction over already-loaded records; the admin
// views are the only consumer.
package admin

import (
	"time"

	"github.com/google/uuid"

	"github.com/merchantfeeadvocate/backend/internal/models"
	"github.com/merchantfeeadvocate/backend/internal/services/revenue"
)

// PartnerRollup summarizes one partner's book of business
type PartnerRollup struct {
	UserID                  uuid.UUID         `json:"user_id"`
	Name                    string            `json:"name"`
	Email                   string            `json:"email"`
	Status                  models.UserStatus `json:"status"`
	CommissionRate          float64           `json:"commission_rate"`
	LeadCount               int               `json:"lead_count"`
	DealCount               int               `json:"deal_count"`
	DealsWon                int               `json:"deals_won"`
	TotalRevenue            float64           `json:"total_revenue"`
	TotalCommission         float64           `json:"total_commission"`
	PotentialMonthlyRevenue float64           `json:"potential_monthly_revenue"`
}

// Overview is the global summary across every partner
type Overview struct {
	TotalPartners        int                              `json:"total_partners"`
	PartnersByStatus     map[models.UserStatus]int        `json:"partners_by_status"`
	TotalLeads           int                              `json:"total_leads"`
	LeadsByStatus        map[models.LeadStatus]int        `json:"leads_by_status"`
	TotalApplications    int                              `json:"total_applications"`
	ApplicationsByStatus map[models.ApplicationStatus]int `json:"applications_by_status"`
	TotalPurchases       int                              `json:"total_purchases"`
	CompletedPurchases   float64                          `json:"completed_purchase_total"`
	TotalRevenue         float64                          `json:"total_revenue"`
	TotalCommission      float64                          `json:"total_commission"`
	Partners             []PartnerRollup                  `json:"partners"`
}

// BuildOverview reduces the global record lists into the admin summary.
// Per-partner figures reuse the same aggregation the partner dashboard shows,
// so the two screens can never disagree.
func BuildOverview(partners []models.User, purchases []models.Purchase, leads []models.Lead, deals []models.Deal, applications []models.ReferralApplication, now time.Time) Overview {
	o := Overview{
		TotalPartners:        len(partners),
		PartnersByStatus:     make(map[models.UserStatus]int),
		TotalLeads:           len(leads),
		LeadsByStatus:        make(map[models.LeadStatus]int),
		TotalApplications:    len(applications),
		ApplicationsByStatus: make(map[models.ApplicationStatus]int),
		TotalPurchases:       len(purchases),
		Partners:             make([]PartnerRollup, 0, len(partners)),
	}

	for _, l := range leads {
		o.LeadsByStatus[l.Status]++
	}
	for _, a := range applications {
		o.ApplicationsByStatus[a.Status]++
	}
	for _, p := range purchases {
		if p.Status == models.PurchaseStatusCompleted {
			o.CompletedPurchases += p.Amount
		}
	}

	leadsByOwner := make(map[uuid.UUID][]models.Lead)
	for _, l := range leads {
		leadsByOwner[l.UserID] = append(leadsByOwner[l.UserID], l)
	}
	dealsByOwner := make(map[uuid.UUID][]models.Deal)
	for _, d := range deals {
		dealsByOwner[d.UserID] = append(dealsByOwner[d.UserID], d)
	}

	for _, p := range partners {
		o.PartnersByStatus[p.Status]++

		summary := revenue.Summarize(dealsByOwner[p.ID], 12, now)
		rollup := PartnerRollup{
			UserID:          p.ID,
			Name:            p.FullName(),
			Email:           p.Email,
			Status:          p.Status,
			CommissionRate:  p.CommissionRate,
			LeadCount:       len(leadsByOwner[p.ID]),
			DealCount:       len(dealsByOwner[p.ID]),
			DealsWon:        summary.DealsWon,
			TotalRevenue:    summary.TotalRevenue,
			TotalCommission: summary.TotalCommission,
		}
		for _, l := range leadsByOwner[p.ID] {
			rollup.PotentialMonthlyRevenue += l.PotentialMonthlyRevenue
		}

		o.TotalRevenue += summary.TotalRevenue
		o.TotalCommission += summary.TotalCommission
		o.Partners = append(o.Partners, rollup)
	}

	return o
}
