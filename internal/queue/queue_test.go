package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testPayload struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Job{}))
	return db
}

func TestEnqueueJob(t *testing.T) {
	db := setupTestDB(t)
	q := NewQueue(db)

	payload := testPayload{ID: "test-123", Message: "Test message"}
	jobID, err := q.EnqueueJob(JobTypeSendWelcomeEmail, payload)

	require.NoError(t, err)
	assert.NotEmpty(t, jobID)

	var job Job
	require.NoError(t, db.Where("id = ?", jobID).First(&job).Error)
	assert.Equal(t, JobTypeSendWelcomeEmail, job.Type)
	assert.Equal(t, JobStatusPending, job.Status)

	var stored testPayload
	require.NoError(t, json.Unmarshal(job.Payload, &stored))
	assert.Equal(t, payload, stored)
}

func TestProcessJobCompletes(t *testing.T) {
	db := setupTestDB(t)
	q := NewQueue(db)

	handled := 0
	q.RegisterHandler(JobTypeSendWelcomeEmail, func(ctx context.Context, job Job) error {
		handled++
		return nil
	})

	jobID, err := q.EnqueueJob(JobTypeSendWelcomeEmail, testPayload{ID: "1"})
	require.NoError(t, err)

	q.processNextBatch()

	assert.Equal(t, 1, handled)
	var job Job
	require.NoError(t, db.Where("id = ?", jobID).First(&job).Error)
	assert.Equal(t, JobStatusCompleted, job.Status)
}

func TestProcessJobRetriesOnFailure(t *testing.T) {
	db := setupTestDB(t)
	q := NewQueue(db)

	q.RegisterHandler(JobTypeSendApplicationEmail, func(ctx context.Context, job Job) error {
		return errors.New("smtp unavailable")
	})

	jobID, err := q.EnqueueJob(JobTypeSendApplicationEmail, testPayload{ID: "1"})
	require.NoError(t, err)

	q.processNextBatch()

	var job Job
	require.NoError(t, db.Where("id = ?", jobID).First(&job).Error)
	assert.Equal(t, JobStatusPending, job.Status)
	assert.Equal(t, 1, job.RetryCount)
	require.NotNil(t, job.NextRetry)
	assert.Equal(t, "smtp unavailable", job.Error)
}

func TestProcessJobFailsAfterMaxRetries(t *testing.T) {
	db := setupTestDB(t)
	q := NewQueue(db)

	q.RegisterHandler(JobTypeSendApplicationEmail, func(ctx context.Context, job Job) error {
		return errors.New("smtp unavailable")
	})

	jobID, err := q.EnqueueJob(JobTypeSendApplicationEmail, testPayload{ID: "1"})
	require.NoError(t, err)

	// drive the job through its retry budget
	for i := 0; i < 3; i++ {
		require.NoError(t, db.Model(&Job{}).Where("id = ?", jobID).
			Update("next_retry", nil).Error)
		q.processNextBatch()
	}

	var job Job
	require.NoError(t, db.Where("id = ?", jobID).First(&job).Error)
	assert.Equal(t, JobStatusFailed, job.Status)
}

func TestProcessJobWithoutHandlerFails(t *testing.T) {
	db := setupTestDB(t)
	q := NewQueue(db)

	jobID, err := q.EnqueueJob(JobTypeSendLeadReminder, testPayload{ID: "1"})
	require.NoError(t, err)

	q.processNextBatch()

	var job Job
	require.NoError(t, db.Where("id = ?", jobID).First(&job).Error)
	assert.Equal(t, JobStatusFailed, job.Status)
}
