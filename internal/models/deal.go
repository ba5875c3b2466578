package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DealStage represents the pipeline stage of a commission-bearing opportunity
type DealStage string

const (
	DealStageQualified    DealStage = "qualified"
	DealStageProposalSent DealStage = "proposal_sent"
	DealStageNegotiation  DealStage = "negotiation"
	DealStageClosedWon    DealStage = "closed_won"
	DealStageClosedLost   DealStage = "closed_lost"
)

// dealTransitions is the allowed stage graph. Open stages may move among
// themselves; closed stages are terminal.
var dealTransitions = map[DealStage]map[DealStage]bool{
	DealStageQualified: {
		DealStageProposalSent: true, DealStageNegotiation: true,
		DealStageClosedWon: true, DealStageClosedLost: true,
	},
	DealStageProposalSent: {
		DealStageQualified: true, DealStageNegotiation: true,
		DealStageClosedWon: true, DealStageClosedLost: true,
	},
	DealStageNegotiation: {
		DealStageQualified: true, DealStageProposalSent: true,
		DealStageClosedWon: true, DealStageClosedLost: true,
	},
	DealStageClosedWon:  {},
	DealStageClosedLost: {},
}

// ClosedStage reports whether a stage is terminal
func ClosedStage(s DealStage) bool {
	return s == DealStageClosedWon || s == DealStageClosedLost
}

// ValidDealStage reports whether s is one of the known stages
func ValidDealStage(s DealStage) bool {
	_, ok := dealTransitions[s]
	return ok
}

// CanTransitionDeal reports whether a deal may move from one stage to another
func CanTransitionDeal(from, to DealStage) bool {
	if !ValidDealStage(to) {
		return false
	}
	nexts, ok := dealTransitions[from]
	if !ok {
		return true
	}
	return nexts[to]
}

// LeadStatusForStage maps a deal stage onto the lead status recorded when a
// lead is converted. Stages without a lead counterpart fall back to qualified.
func LeadStatusForStage(s DealStage) LeadStatus {
	if ValidLeadStatus(LeadStatus(s)) {
		return LeadStatus(s)
	}
	return LeadStatusQualified
}

// Deal represents an opportunity in the sales pipeline, optionally derived
// from a Lead. The lead survives conversion; LeadID is a weak back-reference.
type Deal struct {
	Base
	UserID           uuid.UUID  `gorm:"type:uuid;index;not null" json:"user_id"`
	User             User       `gorm:"foreignKey:UserID" json:"-"`
	LeadID           *uuid.UUID `gorm:"type:uuid;index" json:"lead_id,omitempty"`
	BusinessName     string     `gorm:"type:varchar(255);not null" json:"business_name"`
	ContactName      string     `gorm:"type:varchar(255)" json:"contact_name"`
	ContactEmail     string     `gorm:"type:varchar(255)" json:"contact_email"`
	Value            float64    `gorm:"type:decimal(20,2);not null" json:"value"`
	CommissionRate   float64    `gorm:"type:decimal(5,2);not null" json:"commission_rate"`
	CommissionAmount float64    `gorm:"type:decimal(20,2);not null" json:"commission_amount"`
	Stage            DealStage  `gorm:"type:varchar(20);not null;default:'qualified'" json:"stage"`
	ExpectedCloseDate *time.Time `json:"expected_close_date,omitempty"`
	Notes            string     `gorm:"type:text" json:"notes"`
}

// BeforeSave recomputes the derived commission so the stored amount can never
// drift from value × rate, no matter what the caller sent.
func (d *Deal) BeforeSave(tx *gorm.DB) error {
	d.CommissionAmount = d.Value * d.CommissionRate / 100
	return nil
}
