package jobs

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/merchantfeeadvocate/backend/internal/config"
	"github.com/merchantfeeadvocate/backend/internal/models"
	"github.com/merchantfeeadvocate/backend/internal/queue"
	"github.com/merchantfeeadvocate/backend/internal/services/email"
)

// WelcomeEmailPayload identifies the newly enrolled partner
type WelcomeEmailPayload struct {
	UserID string `json:"user_id"`
}

// ApplicationEmailPayload identifies the submitted application
type ApplicationEmailPayload struct {
	ApplicationID string `json:"application_id"`
}

// LeadReminderPayload identifies a partner with stale leads
type LeadReminderPayload struct {
	UserID     string `json:"user_id"`
	StaleCount int    `json:"stale_count"`
}

// NotificationJobs sends transactional email off the job queue
type NotificationJobs struct {
	db    *gorm.DB
	email *email.EmailService
	cfg   *config.Config
}

// NewNotificationJobs creates the notification job handlers
func NewNotificationJobs(db *gorm.DB, emailService *email.EmailService, cfg *config.Config) *NotificationJobs {
	return &NotificationJobs{
		db:    db,
		email: emailService,
		cfg:   cfg,
	}
}

// Register attaches the handlers to the queue
func (n *NotificationJobs) Register(q *queue.Queue) {
	q.RegisterHandler(queue.JobTypeSendWelcomeEmail, n.handleWelcomeEmail)
	q.RegisterHandler(queue.JobTypeSendApplicationEmail, n.handleApplicationEmail)
	q.RegisterHandler(queue.JobTypeSendLeadReminder, n.handleLeadReminder)
}

func (n *NotificationJobs) handleWelcomeEmail(ctx context.Context, job queue.Job) error {
	var payload WelcomeEmailPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	var user models.User
	if err := n.db.WithContext(ctx).First(&user, "id = ?", payload.UserID).Error; err != nil {
		return fmt.Errorf("failed to find user %s: %w", payload.UserID, err)
	}

	return n.email.SendWelcomeEmail(user.Email, user.FirstName)
}

func (n *NotificationJobs) handleApplicationEmail(ctx context.Context, job queue.Job) error {
	var payload ApplicationEmailPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	var app models.ReferralApplication
	if err := n.db.WithContext(ctx).First(&app, "id = ?", payload.ApplicationID).Error; err != nil {
		return fmt.Errorf("failed to find application %s: %w", payload.ApplicationID, err)
	}

	var partner models.User
	if err := n.db.WithContext(ctx).First(&partner, "id = ?", app.UserID).Error; err != nil {
		return fmt.Errorf("failed to find partner %s: %w", app.UserID, err)
	}

	return n.email.SendApplicationSubmittedEmail(n.cfg.NotifyEmail, partner.FullName(), app.BusinessName, app.Reference)
}

func (n *NotificationJobs) handleLeadReminder(ctx context.Context, job queue.Job) error {
	var payload LeadReminderPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	var user models.User
	if err := n.db.WithContext(ctx).First(&user, "id = ?", payload.UserID).Error; err != nil {
		return fmt.Errorf("failed to find user %s: %w", payload.UserID, err)
	}

	return n.email.SendLeadReminderEmail(user.Email, user.FirstName, payload.StaleCount)
}
