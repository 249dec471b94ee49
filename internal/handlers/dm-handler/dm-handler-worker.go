package dm_handler

import (
	"time"

	"github.com/Alpha4Coders/AlphaChat-V2/internal/dtos/message_dto"
	"github.com/Alpha4Coders/AlphaChat-V2/internal/queue"
	"github.com/Alpha4Coders/AlphaChat-V2/internal/utils/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

func (h *DMHandler) broadcastDirectMessage(resp *message_dto.DirectMessageResponse) error {
	jobPayload := &types.DirectMessageBroadcast{
		MessageID:      resp.MessageID,
		ConversationID: resp.ConversationID,
		SenderID:       resp.SenderID,
		ReceiverID:     resp.ReceiverID,
		Content:        resp.Content,
		MessageType:    resp.MessageType,
		CreatedAt:      resp.CreatedAt,
	}
	if resp.ReplyTo != nil {
		jobPayload.ReplyTo = &types.ReplyTo{
			MessageID: resp.ReplyTo.MessageID,
			Content:   resp.ReplyTo.Content,
			SenderID:  resp.ReplyTo.SenderID,
		}
	}

	job := queue.Job{
		ID:        uuid.New().String(),
		Type:      queue.JobBroadcastDirectMessage,
		Payload:   queue.MustMarshal(jobPayload),
		Priority:  1,
		Retry:     0,
		MaxRetry:  3,
		CreatedAt: time.Now().Unix(),
		ExpireAt:  time.Now().Add(1 * time.Minute).Unix(),
	}

	if err := h.Producer.Enqueue(h.State.Ctx, job); err != nil {
		log.Error().Err(err).Msg("Failed to enqueue job")
		return err
	}

	log.Info().Str("job_id", job.ID).Str("message_id", resp.MessageID).Msg("Broadcast job enqueued successfully")
	return nil
}
