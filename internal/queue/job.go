package queue

import "encoding/json"

const (
	QueueKey = "fanout_queue"
	DLQKey   = "fanout_queue_dlq"
)

// Job types consumed by the worker pool.
const (
	JobBroadcastChannelMessage = "broadcast_channel_message"
	JobBroadcastDirectMessage  = "broadcast_direct_message"
	JobBroadcastEdit           = "broadcast_message_edited"
	JobBroadcastDelete         = "broadcast_message_deleted"
	JobBroadcastReaction       = "broadcast_message_reaction"
	JobBroadcastPin            = "broadcast_message_pinned"
	JobBroadcastStatusUpdate   = "broadcast_status_update"
)

type Job struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Priority  int             `json:"priority"`
	Retry     int             `json:"retry"`
	MaxRetry  int             `json:"max_retry"`
	ErrorMsg  string          `json:"error_msg,omitempty"`
	CreatedAt int64           `json:"created_at"`
	ExpireAt  int64           `json:"expired_at"`
}

// Score maps (ready-at unix seconds, priority) onto the sorted-set score.
// Retry scheduling reuses it with a future ready-at.
func Score(readyAt int64, priority int) float64 {
	return float64(readyAt) + float64(priority)/1000
}

func MustMarshal(payload any) json.RawMessage {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil
	}

	return b
}
