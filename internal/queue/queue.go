package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JobType defines the type of job
type JobType string

const (
	JobTypeSendWelcomeEmail     JobType = "send_welcome_email"
	JobTypeSendApplicationEmail JobType = "send_application_email"
	JobTypeSendLeadReminder     JobType = "send_lead_reminder"
)

// JobStatus defines the status of a job
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// Job represents a background job persisted alongside the business data, so
// a queued notification survives a process restart.
type Job struct {
	ID         uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	Type       JobType         `json:"type"`
	Payload    json.RawMessage `json:"payload"`
	Status     JobStatus       `json:"status"`
	RetryCount int             `json:"retry_count" gorm:"default:0"`
	MaxRetries int             `json:"max_retries" gorm:"default:3"`
	NextRetry  *time.Time      `json:"next_retry,omitempty"`
	Error      string          `json:"error,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// JobHandler is a function that processes a job
type JobHandler func(ctx context.Context, job Job) error

// Enqueuer is the narrow interface services use to schedule background work
type Enqueuer interface {
	EnqueueJob(jobType JobType, payload interface{}) (string, error)
}

// Queue is a database-backed job queue
type Queue struct {
	db       *gorm.DB
	handlers map[JobType]JobHandler
	quit     chan struct{}
}

// NewQueue creates a new queue
func NewQueue(db *gorm.DB) *Queue {
	return &Queue{
		db:       db,
		handlers: make(map[JobType]JobHandler),
		quit:     make(chan struct{}),
	}
}

// RegisterHandler registers a handler for a job type
func (q *Queue) RegisterHandler(jobType JobType, handler JobHandler) {
	q.handlers[jobType] = handler
}

// EnqueueJob adds a job to the queue
func (q *Queue) EnqueueJob(jobType JobType, payload interface{}) (string, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}

	job := Job{
		ID:         uuid.New(),
		Type:       jobType,
		Payload:    payloadBytes,
		Status:     JobStatusPending,
		MaxRetries: 3,
	}

	if err := q.db.Create(&job).Error; err != nil {
		return "", fmt.Errorf("failed to enqueue job: %w", err)
	}

	return job.ID.String(), nil
}

// ProcessJobs polls for pending jobs and runs them until Stop is called.
// Intended to run in its own goroutine.
func (q *Queue) ProcessJobs() {
	log.Println("Job queue processor started")

	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-q.quit:
			log.Println("Job queue processor stopped")
			return
		case <-ticker.C:
			q.processNextBatch()
		}
	}
}

// Stop signals the processor loop to exit
func (q *Queue) Stop() {
	close(q.quit)
}

// processNextBatch claims and runs up to ten due jobs
func (q *Queue) processNextBatch() {
	var jobs []Job
	now := time.Now()

	err := q.db.
		Where("status = ? AND (next_retry IS NULL OR next_retry <= ?)", JobStatusPending, now).
		Order("created_at asc").
		Limit(10).
		Find(&jobs).Error
	if err != nil {
		log.Printf("Error fetching pending jobs: %v", err)
		return
	}

	for _, job := range jobs {
		q.processJob(job)
	}
}

// processJob runs a single job through its registered handler
func (q *Queue) processJob(job Job) {
	handler, ok := q.handlers[job.Type]
	if !ok {
		log.Printf("No handler registered for job type %s", job.Type)
		q.markFailed(job, fmt.Sprintf("no handler for job type %s", job.Type))
		return
	}

	if err := q.db.Model(&Job{}).Where("id = ? AND status = ?", job.ID, JobStatusPending).
		Update("status", JobStatusProcessing).Error; err != nil {
		log.Printf("Error claiming job %s: %v", job.ID, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := handler(ctx, job); err != nil {
		log.Printf("Job %s (%s) failed: %v", job.ID, job.Type, err)
		q.retryOrFail(job, err)
		return
	}

	if err := q.db.Model(&Job{}).Where("id = ?", job.ID).
		Update("status", JobStatusCompleted).Error; err != nil {
		log.Printf("Error completing job %s: %v", job.ID, err)
	}
}

// retryOrFail reschedules the job with backoff or marks it failed for good
func (q *Queue) retryOrFail(job Job, jobErr error) {
	if job.RetryCount+1 >= job.MaxRetries {
		q.markFailed(job, jobErr.Error())
		return
	}

	// simple exponential backoff: 1m, 2m, 4m, ...
	delay := time.Duration(1<<uint(job.RetryCount)) * time.Minute
	nextRetry := time.Now().Add(delay)

	err := q.db.Model(&Job{}).Where("id = ?", job.ID).Updates(map[string]interface{}{
		"status":      JobStatusPending,
		"retry_count": job.RetryCount + 1,
		"next_retry":  nextRetry,
		"error":       jobErr.Error(),
	}).Error
	if err != nil {
		log.Printf("Error scheduling retry for job %s: %v", job.ID, err)
	}
}

// markFailed records a terminal failure
func (q *Queue) markFailed(job Job, message string) {
	err := q.db.Model(&Job{}).Where("id = ?", job.ID).Updates(map[string]interface{}{
		"status": JobStatusFailed,
		"error":  message,
	}).Error
	if err != nil {
		log.Printf("Error marking job %s failed: %v", job.ID, err)
	}
}
