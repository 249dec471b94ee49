package dm_service

import (
	"context"

	"github.com/Alpha4Coders/AlphaChat-V2/internal/dtos/message_dto"
	"github.com/Alpha4Coders/AlphaChat-V2/internal/entity"
	app_error "github.com/Alpha4Coders/AlphaChat-V2/internal/errors"
	conversation_repo "github.com/Alpha4Coders/AlphaChat-V2/internal/repo/conversation"
	message_repo "github.com/Alpha4Coders/AlphaChat-V2/internal/repo/message"
	user_repo "github.com/Alpha4Coders/AlphaChat-V2/internal/repo/user"
	"github.com/Alpha4Coders/AlphaChat-V2/state"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type DMService struct {
	AppState         *state.AppState
	ConversationRepo conversation_repo.ConversationRepoContract
	MessageRepo      message_repo.MessageRepoContract
	UserRepo         user_repo.UserRepoContract
}

func NewDMService(appState *state.AppState) DMServiceContract {
	return &DMService{
		AppState:         appState,
		ConversationRepo: conversation_repo.NewConversationRepo(appState),
		MessageRepo:      message_repo.NewMessageRepo(appState),
		UserRepo:         user_repo.NewUserRepo(appState),
	}
}

func (s *DMService) GetOrCreateConversation(ctx context.Context, userID, otherID string) (*message_dto.ConversationResponse, *app_error.AppError) {
	if _, err := s.UserRepo.FindByID(ctx, otherID); err != nil {
		return nil, err
	}

	conv, err := s.ConversationRepo.FindOrCreate(ctx, userID, otherID)
	if err != nil {
		return nil, err
	}

	unread, err := s.ConversationRepo.UnreadCount(ctx, conv.ID, userID)
	if err != nil {
		return nil, err
	}

	return &message_dto.ConversationResponse{
		ConversationID: conv.ID,
		OtherUserID:    conv.Other(userID),
		LastMessageID:  conv.LastMessageID,
		LastActivity:   conv.LastActivity,
		UnreadCount:    unread,
	}, nil
}

func (s *DMService) ListConversations(ctx context.Context, userID string) ([]message_dto.ConversationResponse, *app_error.AppError) {
	conversations, err := s.ConversationRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := make([]message_dto.ConversationResponse, 0, len(conversations))
	for _, conv := range conversations {
		unread, err := s.ConversationRepo.UnreadCount(ctx, conv.ID, userID)
		if err != nil {
			return nil, err
		}
		resp = append(resp, message_dto.ConversationResponse{
			ConversationID: conv.ID,
			OtherUserID:    conv.Other(userID),
			LastMessageID:  conv.LastMessageID,
			LastActivity:   conv.LastActivity,
			UnreadCount:    unread,
		})
	}
	return resp, nil
}

func (s *DMService) SendDirectMessage(ctx context.Context, req message_dto.SendDirectMessageRequest, senderID, receiverID string) (*message_dto.DirectMessageResponse, *app_error.AppError) {
	if _, err := s.UserRepo.FindByID(ctx, senderID); err != nil {
		return nil, err
	}
	if _, err := s.UserRepo.FindByID(ctx, receiverID); err != nil {
		return nil, err
	}

	conv, err := s.ConversationRepo.FindOrCreate(ctx, senderID, receiverID)
	if err != nil {
		return nil, err
	}

	msg := &entity.DirectMessage{
		ConversationID: conv.ID,
		SenderID:       senderID,
		ReceiverID:     receiverID,
		Content:        req.Content,
		MessageType:    messageType(req.MessageType),
		CodeLanguage:   req.CodeLanguage,
		ImageURL:       req.ImageURL,
	}
	for _, f := range req.Files {
		msg.Files = append(msg.Files, entity.Attachment{Name: f.Name, URL: f.URL, Size: f.Size, Type: f.Type})
	}

	var replySnippet *message_dto.ReplySnippet
	if req.ReplyTo != nil {
		oid, perr := bson.ObjectIDFromHex(*req.ReplyTo)
		if perr != nil {
			return nil, app_error.InvalidInput("invalid reply target id", "reply_to")
		}
		parent, err := s.MessageRepo.FindDirectMessage(ctx, oid)
		if err != nil {
			return nil, err
		}
		if parent.ConversationID != conv.ID {
			return nil, app_error.InvalidInput("reply target belongs to another conversation", "reply_to")
		}
		msg.ReplyTo = &oid
		replySnippet = &message_dto.ReplySnippet{
			MessageID: parent.ID.Hex(),
			SenderID:  parent.SenderID,
			Content:   parent.Content,
		}
	}

	if err := s.MessageRepo.InsertDirectMessage(ctx, msg); err != nil {
		return nil, err
	}

	if err := s.ConversationRepo.RecordSend(ctx, conv.ID, msg.ID.Hex(), receiverID); err != nil {
		log.Warn().Str("conversationID", conv.ID).Msg("failed to record conversation activity")
	}

	return directMessageResponse(msg, replySnippet), nil
}

func (s *DMService) ListDirectMessages(ctx context.Context, req message_dto.ListMessagesRequest, conversationID, userID string) (*message_dto.ListDirectMessagesResponse, *app_error.AppError) {
	conv, err := s.ConversationRepo.FindByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conv.UserA != userID && conv.UserB != userID {
		return nil, app_error.Forbidden("not a participant of this conversation", "conversationId")
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 {
		limit = 50
	}

	messages, err := s.MessageRepo.ListDirectMessages(ctx, conversationID, page, limit)
	if err != nil {
		return nil, err
	}

	resp := make([]message_dto.DirectMessageResponse, 0, len(messages))
	for _, msg := range messages {
		var snippet *message_dto.ReplySnippet
		if msg.ReplyTo != nil {
			if parent, err := s.MessageRepo.FindDirectMessage(ctx, *msg.ReplyTo); err == nil {
				snippet = &message_dto.ReplySnippet{
					MessageID: parent.ID.Hex(),
					SenderID:  parent.SenderID,
					Content:   parent.Content,
				}
			}
		}
		resp = append(resp, *directMessageResponse(msg, snippet))
	}

	// Opening a conversation reads it. Failure here never blocks the fetch.
	if _, err := s.MessageRepo.MarkConversationRead(ctx, conversationID, userID); err != nil {
		log.Warn().Str("conversationID", conversationID).Msg("failed to mark messages read on open")
	} else if err := s.ConversationRepo.ResetUnread(ctx, conversationID, userID); err != nil {
		log.Warn().Str("conversationID", conversationID).Msg("failed to reset unread counter on open")
	}

	return &message_dto.ListDirectMessagesResponse{
		Messages: resp,
		Page:     page,
		HasMore:  int64(len(messages)) == limit,
	}, nil
}

// MarkConversationRead flips every unread message addressed to the caller and
// zeroes their unread counter in the same pass.
func (s *DMService) MarkConversationRead(ctx context.Context, conversationID, userID string) (*message_dto.MarkReadResponse, *app_error.AppError) {
	conv, err := s.ConversationRepo.FindByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conv.UserA != userID && conv.UserB != userID {
		return nil, app_error.Forbidden("not a participant of this conversation", "conversationId")
	}

	updated, err := s.MessageRepo.MarkConversationRead(ctx, conversationID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.ConversationRepo.ResetUnread(ctx, conversationID, userID); err != nil {
		return nil, err
	}

	return &message_dto.MarkReadResponse{
		ConversationID: conversationID,
		UpdatedCount:   updated,
	}, nil
}

func (s *DMService) MarkDelivered(ctx context.Context, messageID string) *app_error.AppError {
	oid, perr := bson.ObjectIDFromHex(messageID)
	if perr != nil {
		return app_error.InvalidInput("invalid message id", "messageId")
	}
	return s.MessageRepo.MarkDelivered(ctx, oid)
}

func directMessageResponse(msg *entity.DirectMessage, reply *message_dto.ReplySnippet) *message_dto.DirectMessageResponse {
	return &message_dto.DirectMessageResponse{
		MessageID:      msg.ID.Hex(),
		ConversationID: msg.ConversationID,
		SenderID:       msg.SenderID,
		ReceiverID:     msg.ReceiverID,
		Content:        msg.Content,
		MessageType:    string(msg.MessageType),
		CodeLanguage:   msg.CodeLanguage,
		ImageURL:       msg.ImageURL,
		Files:          msg.Files,
		ReplyTo:        reply,
		Reactions:      msg.Reactions,
		Delivered:      msg.Delivered,
		Read:           msg.Read,
		IsEdited:       msg.IsEdited,
		EditedAt:       msg.EditedAt,
		CreatedAt:      msg.CreatedAt,
	}
}

func messageType(t string) entity.MessageType {
	switch entity.MessageType(t) {
	case entity.TypeCode, entity.TypeImage, entity.TypeFile, entity.TypeSystem:
		return entity.MessageType(t)
	default:
		return entity.TypeText
	}
}
