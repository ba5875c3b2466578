// Package enrollment owns the funnel's multi-step writes: checkout creates
// the partner account, profile, purchase and pending signature rows in one
// transaction, and document signing drives the pending→active state machine.
package enrollment

import (
	"errors"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/merchantfeeadvocate/backend/internal/models"
	"github.com/merchantfeeadvocate/backend/internal/queue"
	"github.com/merchantfeeadvocate/backend/internal/utils"
)

var (
	// ErrEmailTaken is returned when the checkout email already has an account
	ErrEmailTaken = errors.New("email already in use")
	// ErrUnknownDocument is returned for a document outside the required set
	ErrUnknownDocument = errors.New("unknown enrollment document")
	// ErrAlreadySigned is returned when a signature is recorded twice
	ErrAlreadySigned = errors.New("document already signed")
)

// Service runs the enrollment flows
type Service struct {
	db                    *gorm.DB
	jobs                  queue.Enqueuer
	defaultCommissionRate float64
}

// NewService creates an enrollment service
func NewService(db *gorm.DB, jobs queue.Enqueuer, defaultCommissionRate float64) *Service {
	return &Service{db: db, jobs: jobs, defaultCommissionRate: defaultCommissionRate}
}

// CheckoutParams carries everything the funnel's checkout step collected
type CheckoutParams struct {
	Email        string
	Password     string
	FirstName    string
	LastName     string
	Phone        string
	CompanyName  string
	PlanName     string
	Amount       float64
	BusinessName string
	BusinessType string
}

// WelcomeEmailPayload is the queued payload for the post-checkout email
type WelcomeEmailPayload struct {
	UserID uuid.UUID `json:"user_id"`
}

// Checkout creates the partner account and every companion record in a
// single transaction. A failure anywhere leaves no partial state behind.
func (s *Service) Checkout(params CheckoutParams) (*models.User, *models.Purchase, error) {
	var existing models.User
	if result := s.db.Where("email = ?", params.Email).First(&existing); result.RowsAffected > 0 {
		return nil, nil, ErrEmailTaken
	}

	hash, err := utils.HashPassword(params.Password)
	if err != nil {
		return nil, nil, err
	}

	user := models.User{
		Email:          params.Email,
		PasswordHash:   hash,
		Role:           models.RolePartner,
		FirstName:      params.FirstName,
		LastName:       params.LastName,
		Status:         models.UserStatusPending,
		CommissionRate: s.defaultCommissionRate,
	}
	if params.Phone != "" {
		user.Phone = &params.Phone
	}
	if params.CompanyName != "" {
		user.CompanyName = &params.CompanyName
	}

	purchase := models.Purchase{
		Reference: utils.GenerateReference("PUR"),
		PlanName:  params.PlanName,
		Amount:    params.Amount,
		Status:    models.PurchaseStatusCompleted,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		profile := models.PartnerProfile{
			UserID:       user.ID,
			BusinessName: params.BusinessName,
			BusinessType: params.BusinessType,
		}
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}

		purchase.UserID = user.ID
		if err := tx.Create(&purchase).Error; err != nil {
			return err
		}

		for _, doc := range models.RequiredDocuments {
			sig := models.DocumentSignature{
				UserID:   user.ID,
				Document: doc,
				Status:   models.SignatureStatusPending,
			}
			if err := tx.Create(&sig).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	if s.jobs != nil {
		if _, err := s.jobs.EnqueueJob(queue.JobTypeSendWelcomeEmail, WelcomeEmailPayload{UserID: user.ID}); err != nil {
			// notification only; enrollment itself already committed
			log.Printf("Failed to enqueue welcome email for %s: %v", user.Email, err)
		}
	}

	return &user, &purchase, nil
}

// RecordSignature marks one enrollment document signed. When the last
// required document lands the partner flips pending→active inside the same
// transaction, so a crash can never strand a fully signed but inactive
// account. Returns whether the partner was activated by this signature.
func (s *Service) RecordSignature(userID uuid.UUID, doc models.DocumentType, signedName, signedIP string) (bool, error) {
	if !models.ValidDocumentType(doc) {
		return false, ErrUnknownDocument
	}

	activated := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var sig models.DocumentSignature
		if err := tx.Where("user_id = ? AND document = ?", userID, doc).First(&sig).Error; err != nil {
			return err
		}
		if sig.Status == models.SignatureStatusSigned {
			return ErrAlreadySigned
		}

		sig.Status = models.SignatureStatusSigned
		sig.SignedName = signedName
		sig.SignedIP = signedIP
		if err := tx.Save(&sig).Error; err != nil {
			return err
		}

		var signed int64
		if err := tx.Model(&models.DocumentSignature{}).
			Where("user_id = ? AND status = ?", userID, models.SignatureStatusSigned).
			Count(&signed).Error; err != nil {
			return err
		}

		if int(signed) == len(models.RequiredDocuments) {
			result := tx.Model(&models.User{}).
				Where("id = ? AND status = ?", userID, models.UserStatusPending).
				Update("status", models.UserStatusActive)
			if result.Error != nil {
				return result.Error
			}
			activated = result.RowsAffected > 0
		}

		return nil
	})
	if err != nil {
		return false, err
	}

	return activated, nil
}

// SignatureProgress lists the partner's signature rows in document order
func (s *Service) SignatureProgress(userID uuid.UUID) ([]models.DocumentSignature, error) {
	var sigs []models.DocumentSignature
	err := s.db.Where("user_id = ?", userID).Order("document asc").Find(&sigs).Error
	return sigs, err
}
