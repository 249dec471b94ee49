package queue

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProducer(t *testing.T) (Producer, *redis.Client, *miniredis.Miniredis) {
	mockRedis := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mockRedis.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewProducer(client), client, mockRedis
}

func TestEnqueue_AddsToQueue(t *testing.T) {
	producer, client, _ := newTestProducer(t)
	ctx := context.Background()

	job := Job{
		ID:        "job-1",
		Type:      JobBroadcastChannelMessage,
		Payload:   MustMarshal(map[string]string{"message_id": "m1"}),
		Priority:  1,
		MaxRetry:  3,
		CreatedAt: time.Now().Unix(),
		ExpireAt:  time.Now().Add(time.Minute).Unix(),
	}

	require.NoError(t, producer.Enqueue(ctx, job))

	members, err := client.ZRange(ctx, QueueKey, 0, -1).Result()
	require.NoError(t, err)
	require.Len(t, members, 1)

	var got Job
	require.NoError(t, json.Unmarshal([]byte(members[0]), &got))
	assert.Equal(t, "job-1", got.ID)
	assert.Equal(t, JobBroadcastChannelMessage, got.Type)
}

func TestEnqueue_PriorityBreaksSameSecondTies(t *testing.T) {
	producer, client, _ := newTestProducer(t)
	ctx := context.Background()

	now := time.Now().Unix()
	urgent := Job{ID: "urgent", Type: JobBroadcastDirectMessage, Priority: 1, CreatedAt: now}
	routine := Job{ID: "routine", Type: JobBroadcastStatusUpdate, Priority: 2, CreatedAt: now}

	require.NoError(t, producer.Enqueue(ctx, routine))
	require.NoError(t, producer.Enqueue(ctx, urgent))

	members, err := client.ZRange(ctx, QueueKey, 0, -1).Result()
	require.NoError(t, err)
	require.Len(t, members, 2)

	var first Job
	require.NoError(t, json.Unmarshal([]byte(members[0]), &first))
	assert.Equal(t, "urgent", first.ID, "lower priority number sorts first within the same second")
}

func TestScore_ReadyTimeDominatesPriority(t *testing.T) {
	earlyLowPriority := Score(100, 3)
	lateHighPriority := Score(200, 1)

	assert.Less(t, earlyLowPriority, lateHighPriority, "an earlier ready time always pops first")
	assert.Less(t, Score(100, 1), Score(100, 2))
}

func TestEnqueue_SameJobTwiceKeepsOneMember(t *testing.T) {
	producer, client, _ := newTestProducer(t)
	ctx := context.Background()

	job := Job{ID: "job-1", Type: JobBroadcastChannelMessage, Priority: 1, ExpireAt: 100}
	require.NoError(t, producer.Enqueue(ctx, job))
	require.NoError(t, producer.Enqueue(ctx, job))

	count, err := client.ZCard(ctx, QueueKey).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "identical payloads collapse in the sorted set")
}

func TestMustMarshal(t *testing.T) {
	raw := MustMarshal(map[string]int{"n": 1})
	assert.JSONEq(t, `{"n":1}`, string(raw))

	// Unmarshalable values degrade to nil instead of panicking.
	assert.Nil(t, MustMarshal(make(chan int)))
}
