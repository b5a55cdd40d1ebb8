package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// FailedJobRecord is the document persisted to the failed_jobs collection.
type FailedJobRecord struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	JobType  string             `bson:"jobType"`
	Payload  string             `bson:"payload"`
	Error    string             `bson:"error"`
	Attempts int                `bson:"attempts"`
	FailedAt time.Time          `bson:"failedAt"`
}

// failedJobsColl is the optional store backend for persisting failed jobs.
// Set via UseDB() — nil means in-memory only.
var failedJobsColl *mongo.Collection

// UseDB configures the queue to persist failed jobs to the store.
// Call once at boot, after connecting:
//
//	queue.UseDB(db)
func UseDB(db *mongo.Database) {
	failedJobsColl = db.Collection("failed_jobs")
}

// persistFailed writes a failed job record to the store (if configured)
// and also appends to the in-memory slice as a fallback.
func (m *Manager) persistFailed(job Job, typeName string, lastErr error, attempts int) {
	m.mu.Lock()
	m.failed = append(m.failed, FailedJob{
		Job: job, Err: lastErr, FailedAt: time.Now(), Attempts: attempts,
	})
	m.mu.Unlock()

	if failedJobsColl == nil {
		return
	}

	payload, err := json.Marshal(job)
	if err != nil {
		payload = []byte(fmt.Sprintf(`{"error": "could not marshal: %v"}`, err))
	}

	record := FailedJobRecord{
		JobType:  typeName,
		Payload:  string(payload),
		Error:    lastErr.Error(),
		Attempts: attempts,
		FailedAt: time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := failedJobsColl.InsertOne(ctx, record); err != nil {
		// Non-fatal — the in-memory slice still has it.
		fmt.Printf("queue: failed to persist failed job %s: %v\n", typeName, err)
	}
}
