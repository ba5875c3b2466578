package jobs

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/merchantfeeadvocate/backend/internal/models"
	"github.com/merchantfeeadvocate/backend/internal/queue"
)

type recordingEnqueuer struct {
	jobs []queue.JobType
}

func (r *recordingEnqueuer) EnqueueJob(jobType queue.JobType, payload interface{}) (string, error) {
	r.jobs = append(r.jobs, jobType)
	return "job-id", nil
}

func setupReminderDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Lead{}))
	return db
}

func createLeadAged(t *testing.T, db *gorm.DB, user *models.User, status models.LeadStatus, age time.Duration) {
	lead := models.Lead{
		UserID:       user.ID,
		BusinessName: "Harbor Coffee",
		ContactName:  "Jo Smith",
		ContactEmail: "jo@harborcoffee.com",
		Status:       status,
		SubmittedAt:  time.Now().Add(-age),
	}
	require.NoError(t, db.Create(&lead).Error)
	// backdate past gorm's automatic timestamping
	require.NoError(t, db.Model(&lead).UpdateColumn("updated_at", time.Now().Add(-age)).Error)
}

func TestEnqueueRemindersFindsStaleOpenLeads(t *testing.T) {
	db := setupReminderDB(t)
	user := &models.User{Email: "p@example.com", Role: models.RolePartner, Status: models.UserStatusActive}
	require.NoError(t, db.Create(user).Error)

	createLeadAged(t, db, user, models.LeadStatusSubmitted, 20*24*time.Hour)
	createLeadAged(t, db, user, models.LeadStatusContacted, 30*24*time.Hour)
	// fresh and closed leads are not reminder material
	createLeadAged(t, db, user, models.LeadStatusSubmitted, 24*time.Hour)
	createLeadAged(t, db, user, models.LeadStatusClosedWon, 60*24*time.Hour)

	enqueuer := &recordingEnqueuer{}
	scheduler := NewLeadReminderScheduler(db, enqueuer)

	require.NoError(t, scheduler.EnqueueReminders())

	// two stale leads, one owner, one reminder
	require.Len(t, enqueuer.jobs, 1)
	assert.Equal(t, queue.JobTypeSendLeadReminder, enqueuer.jobs[0])
}

func TestEnqueueRemindersNoStaleLeads(t *testing.T) {
	db := setupReminderDB(t)
	user := &models.User{Email: "p@example.com", Role: models.RolePartner, Status: models.UserStatusActive}
	require.NoError(t, db.Create(user).Error)

	createLeadAged(t, db, user, models.LeadStatusSubmitted, 24*time.Hour)

	enqueuer := &recordingEnqueuer{}
	scheduler := NewLeadReminderScheduler(db, enqueuer)

	require.NoError(t, scheduler.EnqueueReminders())
	assert.Empty(t, enqueuer.jobs)
}
