package worker

import (
	"context"
	"fmt"

	"github.com/Alpha4Coders/AlphaChat-V2/internal/queue"
	"github.com/Alpha4Coders/AlphaChat-V2/internal/websocket"
	"github.com/Alpha4Coders/AlphaChat-V2/state"
	worker_handler "github.com/Alpha4Coders/AlphaChat-V2/internal/worker/worker-handler"
)

func HandleJob(ctx context.Context, job queue.Job, appState *state.AppState, ws *websocket.Hub) error {
	workerHandler := worker_handler.NewWorkerHandler(ctx, appState, ws)
	switch job.Type {
	case queue.JobBroadcastChannelMessage:
		return workerHandler.HandleBroadcastChannelMessage(job.Payload)
	case queue.JobBroadcastDirectMessage:
		return workerHandler.HandleBroadcastDirectMessage(job.Payload)
	case queue.JobBroadcastEdit:
		return workerHandler.HandleBroadcastMutation(job.Payload, websocket.EventMessageEdited)
	case queue.JobBroadcastDelete:
		return workerHandler.HandleBroadcastMutation(job.Payload, websocket.EventMessageDeleted)
	case queue.JobBroadcastReaction:
		return workerHandler.HandleBroadcastMutation(job.Payload, websocket.EventMessageReaction)
	case queue.JobBroadcastPin:
		return workerHandler.HandleBroadcastMutation(job.Payload, websocket.EventMessagePinned)
	case queue.JobBroadcastStatusUpdate:
		return workerHandler.HandleBroadcastStatusUpdate(job.Payload)
	default:
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
}
