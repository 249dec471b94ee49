package message_handler

import (
	"time"

	"github.com/Alpha4Coders/AlphaChat-V2/internal/dtos/message_dto"
	"github.com/Alpha4Coders/AlphaChat-V2/internal/queue"
	"github.com/Alpha4Coders/AlphaChat-V2/internal/utils/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

func (h *MessageHandler) broadcastChannelMessage(resp *message_dto.ChannelMessageResponse) error {
	jobPayload := &types.ChannelMessageBroadcast{
		MessageID:   resp.MessageID,
		ChannelID:   resp.ChannelID,
		SenderID:    resp.Sender.ID,
		SenderName:  resp.Sender.DisplayName,
		Content:     resp.Content,
		MessageType: resp.MessageType,
		CreatedAt:   resp.CreatedAt,
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
		Type:      queue.JobBroadcastChannelMessage,
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

func (h *MessageHandler) broadcastEdit(resp *message_dto.EditMessageResponse, actorID string) {
	payload := &types.MessageMutationBroadcast{
		MessageID:      resp.MessageID,
		Kind:           resp.Kind,
		ChannelID:      resp.ChannelID,
		ConversationID: resp.ConversationID,
		TargetUserID:   dmTarget(resp.SenderID, resp.ReceiverID, actorID),
		ActorID:        actorID,
		Content:        resp.Content,
	}
	h.enqueueMutation(queue.JobBroadcastEdit, payload)
}

func (h *MessageHandler) broadcastDelete(resp *message_dto.DeleteMessageResponse, actorID string) {
	payload := &types.MessageMutationBroadcast{
		MessageID:      resp.MessageID,
		Kind:           resp.Kind,
		ChannelID:      resp.ChannelID,
		ConversationID: resp.ConversationID,
		TargetUserID:   dmTarget(resp.SenderID, resp.ReceiverID, actorID),
		ActorID:        actorID,
	}
	h.enqueueMutation(queue.JobBroadcastDelete, payload)
}

func (h *MessageHandler) broadcastReaction(resp *message_dto.ToggleReactionResponse, actorID string) {
	payload := &types.MessageMutationBroadcast{
		MessageID:      resp.MessageID,
		Kind:           resp.Kind,
		ChannelID:      resp.ChannelID,
		ConversationID: resp.ConversationID,
		TargetUserID:   dmTarget(resp.SenderID, resp.ReceiverID, actorID),
		ActorID:        actorID,
		Reactions:      resp.Reactions,
	}
	h.enqueueMutation(queue.JobBroadcastReaction, payload)
}

func (h *MessageHandler) broadcastPin(resp *message_dto.TogglePinResponse, actorID string) {
	pinned := resp.IsPinned
	payload := &types.MessageMutationBroadcast{
		MessageID: resp.MessageID,
		Kind:      "channel",
		ChannelID: resp.ChannelID,
		ActorID:   actorID,
		IsPinned:  &pinned,
	}
	h.enqueueMutation(queue.JobBroadcastPin, payload)
}

func (h *MessageHandler) enqueueMutation(jobType string, payload *types.MessageMutationBroadcast) {
	job := queue.Job{
		ID:        uuid.New().String(),
		Type:      jobType,
		Payload:   queue.MustMarshal(payload),
		Priority:  2,
		Retry:     0,
		MaxRetry:  3,
		CreatedAt: time.Now().Unix(),
		ExpireAt:  time.Now().Add(1 * time.Minute).Unix(),
	}

	if err := h.Producer.Enqueue(h.State.Ctx, job); err != nil {
		log.Error().Err(err).Str("type", jobType).Msg("Failed to enqueue job")
	}
}

// dmTarget picks the participant that should receive a dm mutation event:
// whichever side of the message the actor is not.
func dmTarget(senderID, receiverID, actorID string) string {
	if receiverID == "" {
		return ""
	}
	if actorID == senderID {
		return receiverID
	}
	return senderID
}
