package worker_handler

import (
	"encoding/json"
	"fmt"

	"github.com/Alpha4Coders/AlphaChat-V2/internal/utils/types"
	"github.com/Alpha4Coders/AlphaChat-V2/internal/websocket"
	"github.com/rs/zerolog/log"
)

func (wh *WorkerHandler) HandleBroadcastChannelMessage(raw json.RawMessage) error {
	var payload types.ChannelMessageBroadcast

	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("invalid broadcast payload: %w", err)
	}

	ev := websocket.NewEvent(websocket.EventChannelMessage, payload)
	wh.Ws.PublishChannelEvent(payload.ChannelID, ev, nil)

	return nil
}

// HandleBroadcastDirectMessage pushes the message to the recipient's live
// connection and confirms delivery back to the sender. An offline recipient
// is not an error; the durable store already has the message.
func (wh *WorkerHandler) HandleBroadcastDirectMessage(raw json.RawMessage) error {
	var payload types.DirectMessageBroadcast

	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("invalid broadcast payload: %w", err)
	}

	ev := websocket.NewEvent(websocket.EventDirectMessage, payload)
	delivered := wh.Ws.PublishDirectEvent(payload.ReceiverID, ev)
	if !delivered {
		log.Debug().Str("receiverID", payload.ReceiverID).Msg("recipient offline, skipping live delivery")
		return nil
	}

	if err := wh.DM.MarkDelivered(wh.Ctx, payload.MessageID); err != nil {
		log.Warn().Str("messageID", payload.MessageID).Msg("failed to persist delivered flag")
	}

	wh.Ws.PublishDirectEvent(payload.SenderID, websocket.NewEvent(websocket.EventMessageDelivered, websocket.MessageDeliveredPayload{
		MessageID:   payload.MessageID,
		RecipientID: payload.ReceiverID,
	}))

	return nil
}

// HandleBroadcastMutation routes edit/delete/reaction/pin events: channel
// mutations to the channel room, dm mutations to the other participant.
func (wh *WorkerHandler) HandleBroadcastMutation(raw json.RawMessage, event string) error {
	var payload types.MessageMutationBroadcast

	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("invalid mutation payload: %w", err)
	}

	ev := websocket.NewEvent(event, payload)

	if payload.Kind == "channel" {
		if payload.ChannelID == "" {
			return fmt.Errorf("channel mutation without channel id")
		}
		wh.Ws.PublishChannelEvent(payload.ChannelID, ev, nil)
		return nil
	}

	if payload.TargetUserID != "" {
		wh.Ws.PublishDirectEvent(payload.TargetUserID, ev)
	}
	return nil
}

func (wh *WorkerHandler) HandleBroadcastStatusUpdate(raw json.RawMessage) error {
	var payload types.StatusBroadcast

	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("invalid status payload: %w", err)
	}

	wh.Ws.BroadcastAll(websocket.NewEvent(websocket.EventUserStatusUpdate, websocket.UserStatusPayload{
		UserID:   payload.UserID,
		Status:   payload.Status,
		LastSeen: payload.LastSeen,
	}))
	return nil
}
