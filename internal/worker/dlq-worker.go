package worker

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"github.com/Alpha4Coders/AlphaChat-V2/internal/entity"
	"github.com/Alpha4Coders/AlphaChat-V2/internal/queue"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func (wp *WorkerPool) dlqCollection() *mongo.Collection {
	return wp.AppState.Messages().Collection(wp.DLQConfig.CollectionName)
}

// StartDLQDrain moves dead jobs from the Redis list into Mongo so they
// survive restarts and can be retried later.
func (wp *WorkerPool) StartDLQDrain(ctx context.Context) {
	wp.wg.Add(1)
	go func() {
		defer wp.wg.Done()

		log.Info().Msg("DLQ drain worker started")
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("DLQ drain worker stopping")
				return
			default:
				result, err := wp.Redis.BLPop(ctx, 10*time.Second, queue.DLQKey).Result()
				if err == redis.Nil {
					continue
				} else if err != nil {
					if ctx.Err() != nil {
						return
					}
					log.Error().Err(err).Msg("DLQ drain pop failed")
					continue
				}

				payload := result[1]
				var job queue.Job
				if err := json.Unmarshal([]byte(payload), &job); err != nil {
					log.Warn().Err(err).Msg("DLQ drain: invalid job payload")
					continue
				}

				now := time.Now().UTC()
				dlqDoc := entity.DLQJob{
					JobID:              job.ID,
					Type:               job.Type,
					Payload:            job.Payload,
					Status:             "pending",
					RetryCount:         0,
					OriginalRetryCount: job.Retry,
					ErrorMsg:           job.ErrorMsg,
					CreatedAt:          now,
					UpdatedAt:          now,
					ExpireAt:           now.Add(7 * 24 * time.Hour),
				}

				if _, err := wp.dlqCollection().InsertOne(ctx, dlqDoc); err != nil {
					log.Error().Err(err).Msg("Failed to persist DLQ job")
					wp.Redis.RPush(ctx, queue.DLQKey, payload)
				} else {
					log.Info().Str("job_id", job.ID).Str("type", job.Type).Msg("DLQ job persisted")
				}
			}
		}
	}()
}

// StartDLQRetryConsumer periodically re-runs persisted DLQ jobs.
func (wp *WorkerPool) StartDLQRetryConsumer(ctx context.Context) {
	wp.wg.Add(1)
	go func() {
		defer wp.wg.Done()

		log.Info().Msg("DLQ retry consumer started")
		ticker := time.NewTicker(wp.DLQConfig.RetryInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("DLQ retry consumer stopping")
				return
			case <-ticker.C:
				wp.processDLQJobs(ctx)
			}
		}
	}()
}

func (wp *WorkerPool) processDLQJobs(ctx context.Context) {
	filter := bson.M{
		"status":      bson.M{"$in": []string{"pending", "failed"}},
		"retry_count": bson.M{"$lt": wp.DLQConfig.MaxRetryCount},
		"$or": []bson.M{
			{"next_retry_at": bson.M{"$exists": false}},
			{"next_retry_at": bson.M{"$lte": time.Now().UTC()}},
		},
	}

	opts := options.Find().SetSort(bson.M{"created_at": 1}).SetLimit(int64(wp.DLQConfig.BatchSize))

	cursor, err := wp.dlqCollection().Find(ctx, filter, opts)
	if err != nil {
		log.Error().Err(err).Msg("Failed to query DLQ jobs")
		return
	}
	defer cursor.Close(ctx)

	var dlqJobs []entity.DLQJob
	if err := cursor.All(ctx, &dlqJobs); err != nil {
		log.Error().Err(err).Msg("Failed to decode DLQ jobs")
		return
	}

	if len(dlqJobs) == 0 {
		return
	}

	log.Info().Int("count", len(dlqJobs)).Msg("Processing DLQ jobs")
	for i := range dlqJobs {
		wp.retryDLQJob(ctx, &dlqJobs[i])
	}
}

func (wp *WorkerPool) retryDLQJob(ctx context.Context, dlqJob *entity.DLQJob) {
	collection := wp.dlqCollection()

	_, err := collection.UpdateOne(ctx, bson.M{"_id": dlqJob.ID}, bson.M{"$set": bson.M{
		"status":     "processing",
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		log.Error().Err(err).Str("job_id", dlqJob.JobID).Msg("Failed to update DLQ job status")
		return
	}

	job := queue.Job{
		ID:      dlqJob.JobID,
		Type:    dlqJob.Type,
		Payload: dlqJob.Payload,
	}

	if err := HandleJob(ctx, job, wp.AppState, wp.ws); err != nil {
		wp.handleDLQRetryFailure(ctx, dlqJob, err.Error())
		return
	}

	now := time.Now().UTC()
	_, err = collection.UpdateOne(ctx, bson.M{"_id": dlqJob.ID}, bson.M{"$set": bson.M{
		"status":       "completed",
		"completed_at": now,
		"updated_at":   now,
	}})
	if err != nil {
		log.Error().Err(err).Str("job_id", dlqJob.JobID).Msg("Failed to mark DLQ job completed")
		return
	}

	log.Info().Str("job_id", dlqJob.JobID).Str("type", dlqJob.Type).Int("dlq_retry_count", dlqJob.RetryCount).Msg("DLQ job successfully retried")
}

func (wp *WorkerPool) handleDLQRetryFailure(ctx context.Context, dlqJob *entity.DLQJob, errorMsg string) {
	collection := wp.dlqCollection()
	newRetryCount := dlqJob.RetryCount + 1
	now := time.Now().UTC()

	if newRetryCount >= wp.DLQConfig.MaxRetryCount {
		_, err := collection.UpdateOne(ctx, bson.M{"_id": dlqJob.ID}, bson.M{"$set": bson.M{
			"status":     "permanently_failed",
			"error_msg":  errorMsg,
			"updated_at": now,
		}})
		if err != nil {
			log.Error().Err(err).Str("job_id", dlqJob.JobID).Msg("Failed to mark DLQ job permanently failed")
		}
		log.Error().Str("job_id", dlqJob.JobID).Str("type", dlqJob.Type).Int("dlq_retry_count", newRetryCount).Msg("DLQ job permanently failed after max retries")
		return
	}

	backoff := time.Duration(float64(wp.DLQConfig.RetryInterval) *
		math.Pow(wp.DLQConfig.BackoffFactor, float64(newRetryCount)))
	nextRetryAt := now.Add(backoff)

	_, err := collection.UpdateOne(ctx, bson.M{"_id": dlqJob.ID}, bson.M{"$set": bson.M{
		"status":        "failed",
		"retry_count":   newRetryCount,
		"error_msg":     errorMsg,
		"next_retry_at": nextRetryAt,
		"updated_at":    now,
	}})
	if err != nil {
		log.Error().Err(err).Str("job_id", dlqJob.JobID).Msg("Failed to update DLQ job retry info")
		return
	}

	log.Warn().Str("job_id", dlqJob.JobID).Str("type", dlqJob.Type).Int("dlq_retry_count", newRetryCount).Time("next_retry_at", nextRetryAt).Msg("DLQ job scheduled for retry")
}

// GetDLQStats aggregates DLQ records by status for the stats endpoint.
func (wp *WorkerPool) GetDLQStats(ctx context.Context) (map[string]int64, error) {
	pipeline := bson.A{
		bson.M{"$group": bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
		}},
	}

	cursor, err := wp.dlqCollection().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	stats := make(map[string]int64)
	for cursor.Next(ctx) {
		var result struct {
			Status string `bson:"_id"`
			Count  int64  `bson:"count"`
		}
		if err := cursor.Decode(&result); err != nil {
			continue
		}
		stats[result.Status] = result.Count
	}

	return stats, nil
}
