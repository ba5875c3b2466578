package jobs

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/merchantfeeadvocate/backend/internal/models"
	"github.com/merchantfeeadvocate/backend/internal/queue"
)

// staleLeadAge is how long a lead can sit untouched in an open status
// before its owner gets a reminder.
const staleLeadAge = 14 * 24 * time.Hour

// LeadReminderScheduler periodically finds stale open leads and enqueues
// reminder emails for their owners.
type LeadReminderScheduler struct {
	db        *gorm.DB
	jobs      queue.Enqueuer
	scheduler *gocron.Scheduler
}

// NewLeadReminderScheduler creates the scheduler
func NewLeadReminderScheduler(db *gorm.DB, jobs queue.Enqueuer) *LeadReminderScheduler {
	return &LeadReminderScheduler{
		db:        db,
		jobs:      jobs,
		scheduler: gocron.NewScheduler(time.UTC),
	}
}

// Start begins the daily sweep
func (s *LeadReminderScheduler) Start() {
	s.scheduler.Every(1).Day().At("09:00").Do(func() {
		if err := s.EnqueueReminders(); err != nil {
			log.Printf("Lead reminder sweep failed: %v", err)
		}
	})
	s.scheduler.StartAsync()
}

// Stop stops the scheduler
func (s *LeadReminderScheduler) Stop() {
	s.scheduler.Stop()
}

// EnqueueReminders finds leads untouched past the stale threshold in an
// open status and enqueues one reminder per owner.
func (s *LeadReminderScheduler) EnqueueReminders() error {
	cutoff := time.Now().Add(-staleLeadAge)
	openStatuses := []models.LeadStatus{
		models.LeadStatusSubmitted,
		models.LeadStatusContacted,
		models.LeadStatusQualified,
		models.LeadStatusProposalSent,
	}

	var leads []models.Lead
	if err := s.db.Where("status IN ? AND updated_at < ?", openStatuses, cutoff).Find(&leads).Error; err != nil {
		return err
	}

	staleByOwner := make(map[uuid.UUID]int)
	for _, lead := range leads {
		staleByOwner[lead.UserID]++
	}

	for userID, count := range staleByOwner {
		_, err := s.jobs.EnqueueJob(queue.JobTypeSendLeadReminder, LeadReminderPayload{
			UserID:     userID.String(),
			StaleCount: count,
		})
		if err != nil {
			log.Printf("Failed to enqueue lead reminder for user %s: %v", userID, err)
		}
	}

	return nil
}
