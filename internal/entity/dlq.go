package entity

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// DLQJob is the durable record of a fan-out job that exhausted its retries.
// A retry consumer re-runs pending/failed records with backoff.
type DLQJob struct {
	ID                 bson.ObjectID   `bson:"_id,omitempty"`
	JobID              string          `bson:"job_id"`
	Type               string          `bson:"type"`
	Payload            json.RawMessage `bson:"payload"`
	Status             string          `bson:"status"`
	RetryCount         int             `bson:"retry_count"`
	OriginalRetryCount int             `bson:"original_retry_count"`
	ErrorMsg           string          `bson:"error_msg,omitempty"`
	NextRetryAt        *time.Time      `bson:"next_retry_at,omitempty"`
	CompletedAt        *time.Time      `bson:"completed_at,omitempty"`
	CreatedAt          time.Time       `bson:"created_at"`
	UpdatedAt          time.Time       `bson:"updated_at"`
	ExpireAt           time.Time       `bson:"expire_at"`
}
