package models

import "github.com/google/uuid"

// ApplicationStatus represents the review state of a referral application
type ApplicationStatus string

const (
	ApplicationStatusSubmitted ApplicationStatus = "submitted"
	ApplicationStatusInReview  ApplicationStatus = "in_review"
	ApplicationStatusApproved  ApplicationStatus = "approved"
	ApplicationStatusDeclined  ApplicationStatus = "declined"
)

// ReferralApplication is the full merchant application a partner submits on
// behalf of a referred business: business, owner and banking details plus
// uploaded supporting documents. Independent of Lead/Deal records.
type ReferralApplication struct {
	Base
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	Reference string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"reference"`

	BusinessName    string `gorm:"type:varchar(255);not null" json:"business_name"`
	DBAName         string `gorm:"type:varchar(255)" json:"dba_name"`
	BusinessType    string `gorm:"type:varchar(100)" json:"business_type"`
	TaxID           string `gorm:"type:varchar(50)" json:"tax_id"`
	BusinessPhone   string `gorm:"type:varchar(30)" json:"business_phone"`
	BusinessEmail   string `gorm:"type:varchar(255)" json:"business_email"`
	BusinessAddress string `gorm:"type:varchar(255)" json:"business_address"`
	City            string `gorm:"type:varchar(100)" json:"city"`
	State           string `gorm:"type:varchar(50)" json:"state"`
	ZipCode         string `gorm:"type:varchar(20)" json:"zip_code"`

	OwnerName   string `gorm:"type:varchar(255)" json:"owner_name"`
	OwnerSSN    string `gorm:"type:varchar(20)" json:"-"`
	OwnerDOB    string `gorm:"type:varchar(20)" json:"owner_dob"`
	OwnerEmail  string `gorm:"type:varchar(255)" json:"owner_email"`
	OwnerPhone  string `gorm:"type:varchar(30)" json:"owner_phone"`
	HomeAddress string `gorm:"type:varchar(255)" json:"home_address"`

	MonthlyVolume float64 `gorm:"type:decimal(20,2);default:0" json:"monthly_volume"`
	AverageTicket float64 `gorm:"type:decimal(20,2);default:0" json:"average_ticket"`

	BankName          string `gorm:"type:varchar(255)" json:"bank_name"`
	BankRoutingNumber string `gorm:"type:varchar(20)" json:"-"`
	BankAccountNumber string `gorm:"type:varchar(30)" json:"-"`

	VoidedCheckURL    string `gorm:"type:text" json:"voided_check_url"`
	BankStatementURL  string `gorm:"type:text" json:"bank_statement_url"`
	DriversLicenseURL string `gorm:"type:text" json:"drivers_license_url"`

	Status ApplicationStatus `gorm:"type:varchar(20);not null;default:'submitted'" json:"status"`
}
