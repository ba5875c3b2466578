package models

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestLeadTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    LeadStatus
		to      LeadStatus
		allowed bool
	}{
		{"submitted to contacted", LeadStatusSubmitted, LeadStatusContacted, true},
		{"contacted back to submitted", LeadStatusContacted, LeadStatusSubmitted, true},
		{"qualified straight to closed won", LeadStatusQualified, LeadStatusClosedWon, true},
		{"submitted straight to closed lost", LeadStatusSubmitted, LeadStatusClosedLost, true},
		{"closed won is terminal", LeadStatusClosedWon, LeadStatusSubmitted, false},
		{"closed lost is terminal", LeadStatusClosedLost, LeadStatusContacted, false},
		{"closed won cannot flip to closed lost", LeadStatusClosedWon, LeadStatusClosedLost, false},
		{"unknown target rejected", LeadStatusSubmitted, LeadStatus("archived"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransitionLead(tt.from, tt.to))
		})
	}
}

func TestLeadTransitionFromLegacyStatus(t *testing.T) {
	// Rows written before status validation may hold anything; they can
	// always move to a known status.
	assert.True(t, CanTransitionLead(LeadStatus("new"), LeadStatusContacted))
	assert.False(t, CanTransitionLead(LeadStatus("new"), LeadStatus("also-unknown")))
}

func TestDealTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    DealStage
		to      DealStage
		allowed bool
	}{
		{"qualified to negotiation", DealStageQualified, DealStageNegotiation, true},
		{"negotiation back to proposal", DealStageNegotiation, DealStageProposalSent, true},
		{"proposal to closed won", DealStageProposalSent, DealStageClosedWon, true},
		{"closed won is terminal", DealStageClosedWon, DealStageQualified, false},
		{"closed lost is terminal", DealStageClosedLost, DealStageNegotiation, false},
		{"unknown target rejected", DealStageQualified, DealStage("paused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransitionDeal(tt.from, tt.to))
		})
	}
}

func TestClosedStage(t *testing.T) {
	assert.True(t, ClosedStage(DealStageClosedWon))
	assert.True(t, ClosedStage(DealStageClosedLost))
	assert.False(t, ClosedStage(DealStageNegotiation))
}

func TestLeadStatusForStage(t *testing.T) {
	assert.Equal(t, LeadStatusProposalSent, LeadStatusForStage(DealStageProposalSent))
	assert.Equal(t, LeadStatusClosedWon, LeadStatusForStage(DealStageClosedWon))
	// negotiation has no lead counterpart
	assert.Equal(t, LeadStatusQualified, LeadStatusForStage(DealStageNegotiation))
}

func TestValidDocumentType(t *testing.T) {
	assert.True(t, ValidDocumentType(DocumentReferralAgreement))
	assert.True(t, ValidDocumentType(DocumentScheduleA))
	assert.False(t, ValidDocumentType("nda"))
}

func TestDealCommissionRecomputedOnSave(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Deal{}))

	deal := Deal{
		UserID:         uuid.New(),
		BusinessName:   "Harbor Coffee",
		Value:          1000,
		CommissionRate: 10,
		// Client-supplied amount is ignored
		CommissionAmount: 999999,
		Stage:            DealStageQualified,
	}
	require.NoError(t, db.Create(&deal).Error)
	assert.InDelta(t, 100, deal.CommissionAmount, 1e-9)

	deal.Value = 2500
	require.NoError(t, db.Save(&deal).Error)

	var stored Deal
	require.NoError(t, db.First(&stored, "id = ?", deal.ID).Error)
	assert.InDelta(t, 250, stored.CommissionAmount, 1e-9)
}

func TestBaseAssignsUUIDOnCreate(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&ForumPost{}))

	post := ForumPost{Title: "Welcome", Slug: "welcome", Body: "hello", Category: "general", UserID: uuid.New()}
	require.NoError(t, db.Create(&post).Error)
	assert.NotEqual(t, uuid.Nil, post.ID)
}

func TestUserFullName(t *testing.T) {
	u := User{FirstName: "Pat", LastName: "Partner"}
	assert.Equal(t, "Pat Partner", u.FullName())
}
