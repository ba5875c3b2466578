package models

import (
	"time"

	"github.com/google/uuid"
)

// UserRole distinguishes partners from the operator account
type UserRole string

const (
	RolePartner UserRole = "partner"
	RoleAdmin   UserRole = "admin"
)

// UserStatus represents the enrollment state of a partner account
type UserStatus string

const (
	UserStatusPending   UserStatus = "pending"
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
)

// User represents a partner (or the admin) account
type User struct {
	Base
	Email          string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash   string     `gorm:"type:varchar(255);not null" json:"-"`
	Role           UserRole   `gorm:"type:varchar(20);not null;default:'partner'" json:"role"`
	FirstName      string     `gorm:"type:varchar(100)" json:"first_name"`
	LastName       string     `gorm:"type:varchar(100)" json:"last_name"`
	Phone          *string    `gorm:"type:varchar(30)" json:"phone,omitempty"`
	CompanyName    *string    `gorm:"type:varchar(255)" json:"company_name,omitempty"`
	Status         UserStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CommissionRate float64    `gorm:"type:decimal(5,2);not null;default:30" json:"commission_rate"`
	LastLoginAt    *time.Time `json:"last_login_at,omitempty"`
}

// PartnerProfile holds the extended business and banking fields collected
// during enrollment. Optional 1:1 companion to User.
type PartnerProfile struct {
	Base
	UserID            uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	User              User      `gorm:"foreignKey:UserID" json:"-"`
	BusinessName      string    `gorm:"type:varchar(255)" json:"business_name"`
	BusinessType      string    `gorm:"type:varchar(100)" json:"business_type"`
	TaxID             string    `gorm:"type:varchar(50)" json:"tax_id"`
	Website           string    `gorm:"type:varchar(255)" json:"website"`
	AddressLine1      string    `gorm:"type:varchar(255)" json:"address_line1"`
	AddressLine2      string    `gorm:"type:varchar(255)" json:"address_line2"`
	City              string    `gorm:"type:varchar(100)" json:"city"`
	State             string    `gorm:"type:varchar(50)" json:"state"`
	ZipCode           string    `gorm:"type:varchar(20)" json:"zip_code"`
	BankName          string    `gorm:"type:varchar(255)" json:"bank_name"`
	BankRoutingNumber string    `gorm:"type:varchar(20)" json:"bank_routing_number"`
	BankAccountNumber string    `gorm:"type:varchar(30)" json:"bank_account_number"`
	W9DocumentURL     string    `gorm:"type:text" json:"w9_document_url"`
	VoidedCheckURL    string    `gorm:"type:text" json:"voided_check_url"`
}

// FullName returns the partner's display name
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
