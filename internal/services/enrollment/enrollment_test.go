package enrollment

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/merchantfeeadvocate/backend/internal/models"
	"github.com/merchantfeeadvocate/backend/internal/queue"
)

type recordingEnqueuer struct {
	types []queue.JobType
}

func (r *recordingEnqueuer) EnqueueJob(jobType queue.JobType, payload interface{}) (string, error) {
	r.types = append(r.types, jobType)
	return "job-id", nil
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.PartnerProfile{}, &models.Purchase{}, &models.DocumentSignature{},
	))
	return db
}

func checkoutParams() CheckoutParams {
	return CheckoutParams{
		Email:        "partner@example.com",
		Password:     "password1234",
		FirstName:    "Pat",
		LastName:     "Partner",
		PlanName:     "standard",
		Amount:       499,
		BusinessName: "Pat Consulting",
	}
}

func TestCheckoutCreatesAllRecords(t *testing.T) {
	db := setupTestDB(t)
	jobs := &recordingEnqueuer{}
	svc := NewService(db, jobs, 30)

	user, purchase, err := svc.Checkout(checkoutParams())
	require.NoError(t, err)

	assert.Equal(t, models.UserStatusPending, user.Status)
	assert.Equal(t, models.RolePartner, user.Role)
	assert.InDelta(t, 30, user.CommissionRate, 1e-9)
	assert.NotEmpty(t, purchase.Reference)
	assert.Equal(t, models.PurchaseStatusCompleted, purchase.Status)

	var profile models.PartnerProfile
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&profile).Error)
	assert.Equal(t, "Pat Consulting", profile.BusinessName)

	var sigs []models.DocumentSignature
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&sigs).Error)
	require.Len(t, sigs, 2)
	for _, sig := range sigs {
		assert.Equal(t, models.SignatureStatusPending, sig.Status)
	}

	require.Len(t, jobs.types, 1)
	assert.Equal(t, queue.JobTypeSendWelcomeEmail, jobs.types[0])
}

func TestCheckoutRejectsDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, nil, 30)

	_, _, err := svc.Checkout(checkoutParams())
	require.NoError(t, err)

	_, _, err = svc.Checkout(checkoutParams())
	assert.ErrorIs(t, err, ErrEmailTaken)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRecordSignatureActivatesAfterBothDocuments(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, nil, 30)

	user, _, err := svc.Checkout(checkoutParams())
	require.NoError(t, err)

	activated, err := svc.RecordSignature(user.ID, models.DocumentReferralAgreement, "Pat Partner", "127.0.0.1")
	require.NoError(t, err)
	assert.False(t, activated)

	var midway models.User
	require.NoError(t, db.First(&midway, "id = ?", user.ID).Error)
	assert.Equal(t, models.UserStatusPending, midway.Status)

	activated, err = svc.RecordSignature(user.ID, models.DocumentScheduleA, "Pat Partner", "127.0.0.1")
	require.NoError(t, err)
	assert.True(t, activated)

	var done models.User
	require.NoError(t, db.First(&done, "id = ?", user.ID).Error)
	assert.Equal(t, models.UserStatusActive, done.Status)
}

func TestRecordSignatureRejectsUnknownDocument(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, nil, 30)

	user, _, err := svc.Checkout(checkoutParams())
	require.NoError(t, err)

	_, err = svc.RecordSignature(user.ID, "nda", "Pat Partner", "127.0.0.1")
	assert.ErrorIs(t, err, ErrUnknownDocument)
}

func TestRecordSignatureRejectsDoubleSigning(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, nil, 30)

	user, _, err := svc.Checkout(checkoutParams())
	require.NoError(t, err)

	_, err = svc.RecordSignature(user.ID, models.DocumentReferralAgreement, "Pat Partner", "127.0.0.1")
	require.NoError(t, err)

	_, err = svc.RecordSignature(user.ID, models.DocumentReferralAgreement, "Pat Partner", "127.0.0.1")
	assert.ErrorIs(t, err, ErrAlreadySigned)
}

func TestSignatureProgress(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, nil, 30)

	user, _, err := svc.Checkout(checkoutParams())
	require.NoError(t, err)

	sigs, err := svc.SignatureProgress(user.ID)
	require.NoError(t, err)
	assert.Len(t, sigs, 2)
}
