package models

import (
	"time"

	"github.com/google/uuid"
)

// LeadStatus represents where a referred merchant sits in qualification
type LeadStatus string

const (
	LeadStatusSubmitted    LeadStatus = "submitted"
	LeadStatusContacted    LeadStatus = "contacted"
	LeadStatusQualified    LeadStatus = "qualified"
	LeadStatusProposalSent LeadStatus = "proposal_sent"
	LeadStatusClosedWon    LeadStatus = "closed_won"
	LeadStatusClosedLost   LeadStatus = "closed_lost"
)

// leadTransitions is the allowed status graph. Open statuses may move among
// themselves in any direction; closed statuses are terminal.
var leadTransitions = map[LeadStatus]map[LeadStatus]bool{
	LeadStatusSubmitted: {
		LeadStatusContacted: true, LeadStatusQualified: true,
		LeadStatusProposalSent: true, LeadStatusClosedWon: true, LeadStatusClosedLost: true,
	},
	LeadStatusContacted: {
		LeadStatusSubmitted: true, LeadStatusQualified: true,
		LeadStatusProposalSent: true, LeadStatusClosedWon: true, LeadStatusClosedLost: true,
	},
	LeadStatusQualified: {
		LeadStatusSubmitted: true, LeadStatusContacted: true,
		LeadStatusProposalSent: true, LeadStatusClosedWon: true, LeadStatusClosedLost: true,
	},
	LeadStatusProposalSent: {
		LeadStatusSubmitted: true, LeadStatusContacted: true,
		LeadStatusQualified: true, LeadStatusClosedWon: true, LeadStatusClosedLost: true,
	},
	LeadStatusClosedWon:  {},
	LeadStatusClosedLost: {},
}

// ValidLeadStatus reports whether s is one of the known statuses
func ValidLeadStatus(s LeadStatus) bool {
	_, ok := leadTransitions[s]
	return ok
}

// CanTransitionLead reports whether a lead may move from one status to another
func CanTransitionLead(from, to LeadStatus) bool {
	if !ValidLeadStatus(to) {
		return false
	}
	nexts, ok := leadTransitions[from]
	if !ok {
		// unset status on a legacy row may move anywhere
		return true
	}
	return nexts[to]
}

// Lead represents a prospective referred merchant, owned by the submitting partner
type Lead struct {
	Base
	UserID                  uuid.UUID  `gorm:"type:uuid;index;not null" json:"user_id"`
	User                    User       `gorm:"foreignKey:UserID" json:"-"`
	BusinessName            string     `gorm:"type:varchar(255);not null" json:"business_name"`
	ContactName             string     `gorm:"type:varchar(255);not null" json:"contact_name"`
	ContactEmail            string     `gorm:"type:varchar(255);not null" json:"contact_email"`
	ContactPhone            *string    `gorm:"type:varchar(30)" json:"contact_phone,omitempty"`
	BusinessType            *string    `gorm:"type:varchar(100)" json:"business_type,omitempty"`
	CurrentProcessor        *string    `gorm:"type:varchar(100)" json:"current_processor,omitempty"`
	MonthlyVolume           float64    `gorm:"type:decimal(20,2);default:0" json:"monthly_volume"`
	AverageTicket           float64    `gorm:"type:decimal(20,2);default:0" json:"average_ticket"`
	PotentialMonthlyRevenue float64    `gorm:"type:decimal(20,2);default:0" json:"potential_monthly_revenue"`
	EstimatedMonthlyRevenue *float64   `gorm:"type:decimal(20,2)" json:"estimated_monthly_revenue,omitempty"`
	Status                  LeadStatus `gorm:"type:varchar(20);not null;default:'submitted'" json:"status"`
	Notes                   string     `gorm:"type:text" json:"notes"`
	SubmittedAt             time.Time  `json:"submitted_at"`
}
