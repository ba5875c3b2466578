package admin

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merchantfeeadvocate/backend/internal/models"
)

func partner(id uuid.UUID, email string, status models.UserStatus) models.User {
	u := models.User{
		Email:          email,
		FirstName:      "Test",
		LastName:       "Partner",
		Role:           models.RolePartner,
		Status:         status,
		CommissionRate: 30,
	}
	u.ID = id
	return u
}

func TestBuildOverviewEmpty(t *testing.T) {
	o := BuildOverview(nil, nil, nil, nil, nil, time.Now())

	assert.Zero(t, o.TotalPartners)
	assert.Zero(t, o.TotalLeads)
	assert.Zero(t, o.CompletedPurchases)
	assert.Empty(t, o.Partners)
}

func TestBuildOverviewCountsAndRollups(t *testing.T) {
	now := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)
	p1 := uuid.New()
	p2 := uuid.New()

	partners := []models.User{
		partner(p1, "one@example.com", models.UserStatusActive),
		partner(p2, "two@example.com", models.UserStatusPending),
	}

	leads := []models.Lead{
		{UserID: p1, Status: models.LeadStatusSubmitted, PotentialMonthlyRevenue: 500},
		{UserID: p1, Status: models.LeadStatusClosedWon, PotentialMonthlyRevenue: 250},
		{UserID: p2, Status: models.LeadStatusContacted, PotentialMonthlyRevenue: 100},
	}

	won := models.Deal{UserID: p1, Value: 2000, CommissionRate: 10, CommissionAmount: 200, Stage: models.DealStageClosedWon}
	won.CreatedAt = now
	open := models.Deal{UserID: p1, Value: 1000, CommissionRate: 10, CommissionAmount: 100, Stage: models.DealStageQualified}
	open.CreatedAt = now
	deals := []models.Deal{won, open}

	purchases := []models.Purchase{
		{UserID: p1, Amount: 499, Status: models.PurchaseStatusCompleted},
		{UserID: p2, Amount: 499, Status: models.PurchaseStatusPending},
	}

	applications := []models.ReferralApplication{
		{UserID: p1, Status: models.ApplicationStatusSubmitted},
	}

	o := BuildOverview(partners, purchases, leads, deals, applications, now)

	assert.Equal(t, 2, o.TotalPartners)
	assert.Equal(t, 1, o.PartnersByStatus[models.UserStatusActive])
	assert.Equal(t, 1, o.PartnersByStatus[models.UserStatusPending])
	assert.Equal(t, 3, o.TotalLeads)
	assert.Equal(t, 1, o.LeadsByStatus[models.LeadStatusClosedWon])
	assert.Equal(t, 1, o.ApplicationsByStatus[models.ApplicationStatusSubmitted])
	assert.InDelta(t, 499, o.CompletedPurchases, 1e-9)
	assert.InDelta(t, 2000, o.TotalRevenue, 1e-9)
	assert.InDelta(t, 200, o.TotalCommission, 1e-9)

	require.Len(t, o.Partners, 2)
	first := o.Partners[0]
	assert.Equal(t, p1, first.UserID)
	assert.Equal(t, 2, first.LeadCount)
	assert.Equal(t, 2, first.DealCount)
	assert.Equal(t, 1, first.DealsWon)
	assert.InDelta(t, 750, first.PotentialMonthlyRevenue, 1e-9)

	second := o.Partners[1]
	assert.Equal(t, 1, second.LeadCount)
	assert.Zero(t, second.DealCount)
}
