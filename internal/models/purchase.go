package models

import "github.com/google/uuid"

// PurchaseStatus represents the state of a funnel checkout
type PurchaseStatus string

const (
	PurchaseStatusPending   PurchaseStatus = "pending"
	PurchaseStatusCompleted PurchaseStatus = "completed"
	PurchaseStatusRefunded  PurchaseStatus = "refunded"
)

// Purchase represents a completed (or pending) checkout from the funnel
type Purchase struct {
	Base
	UserID    uuid.UUID      `gorm:"type:uuid;index;not null" json:"user_id"`
	User      User           `gorm:"foreignKey:UserID" json:"-"`
	Reference string         `gorm:"type:varchar(50);uniqueIndex;not null" json:"reference"`
	PlanName  string         `gorm:"type:varchar(100);not null" json:"plan_name"`
	Amount    float64        `gorm:"type:decimal(20,2);not null" json:"amount"`
	Status    PurchaseStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
}

// DocumentType identifies the enrollment documents a partner must sign
type DocumentType string

const (
	DocumentReferralAgreement DocumentType = "referral_agreement"
	DocumentScheduleA         DocumentType = "schedule_a"
)

// RequiredDocuments are the signatures a partner needs before activation
var RequiredDocuments = []DocumentType{DocumentReferralAgreement, DocumentScheduleA}

// SignatureStatus represents the per-document signing state
type SignatureStatus string

const (
	SignatureStatusPending SignatureStatus = "pending"
	SignatureStatusSigned  SignatureStatus = "signed"
)

// DocumentSignature tracks one enrollment document for one partner.
// Both required documents signed moves the partner from pending to active.
type DocumentSignature struct {
	Base
	UserID   uuid.UUID       `gorm:"type:uuid;index:idx_signatures_user_document,unique;not null" json:"user_id"`
	User     User            `gorm:"foreignKey:UserID" json:"-"`
	Document DocumentType    `gorm:"type:varchar(50);index:idx_signatures_user_document,unique;not null" json:"document"`
	Status   SignatureStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	SignedName string        `gorm:"type:varchar(255)" json:"signed_name"`
	SignedIP   string        `gorm:"type:varchar(45)" json:"-"`
}

// ValidDocumentType reports whether d is a known enrollment document
func ValidDocumentType(d DocumentType) bool {
	for _, doc := range RequiredDocuments {
		if doc == d {
			return true
		}
	}
	return false
}
