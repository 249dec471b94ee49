package message_service

import (
	"context"
	"time"

	"github.com/Alpha4Coders/AlphaChat-V2/internal/authz"
	"github.com/Alpha4Coders/AlphaChat-V2/internal/dtos/message_dto"
	"github.com/Alpha4Coders/AlphaChat-V2/internal/entity"
	app_error "github.com/Alpha4Coders/AlphaChat-V2/internal/errors"
	channel_repo "github.com/Alpha4Coders/AlphaChat-V2/internal/repo/channel"
	message_repo "github.com/Alpha4Coders/AlphaChat-V2/internal/repo/message"
	saved_repo "github.com/Alpha4Coders/AlphaChat-V2/internal/repo/saved"
	user_repo "github.com/Alpha4Coders/AlphaChat-V2/internal/repo/user"
	"github.com/Alpha4Coders/AlphaChat-V2/state"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type MessageService struct {
	AppState    *state.AppState
	MessageRepo message_repo.MessageRepoContract
	ChannelRepo channel_repo.ChannelRepoContract
	UserRepo    user_repo.UserRepoContract
	SavedRepo   saved_repo.SavedItemRepoContract
}

func NewMessageService(appState *state.AppState) MessageServiceContract {
	return &MessageService{
		AppState:    appState,
		MessageRepo: message_repo.NewMessageRepo(appState),
		ChannelRepo: channel_repo.NewChannelRepo(appState),
		UserRepo:    user_repo.NewUserRepo(appState),
		SavedRepo:   saved_repo.NewSavedItemRepo(appState),
	}
}

func (s *MessageService) SendChannelMessage(ctx context.Context, req message_dto.SendChannelMessageRequest, channelID, senderID string) (*message_dto.ChannelMessageResponse, *app_error.AppError) {
	sender, err := s.UserRepo.FindByID(ctx, senderID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ChannelRepo.FindByID(ctx, channelID); err != nil {
		return nil, err
	}
	membership, err := s.ChannelRepo.Membership(ctx, channelID, senderID)
	if err != nil {
		return nil, err
	}
	if !authz.CanWrite(sender, membership) {
		return nil, app_error.Forbidden("join the channel before posting", "channelId")
	}

	msg := &entity.ChannelMessage{
		ChannelID:   channelID,
		SenderID:    senderID,
		Content:     req.Content,
		MessageType: messageType(req.MessageType),
	}
	msg.CodeLanguage = req.CodeLanguage
	msg.ImageURL = req.ImageURL
	for _, f := range req.Files {
		msg.Files = append(msg.Files, entity.Attachment{Name: f.Name, URL: f.URL, Size: f.Size, Type: f.Type})
	}

	var replySnippet *message_dto.ReplySnippet
	if req.ReplyTo != nil {
		oid, perr := bson.ObjectIDFromHex(*req.ReplyTo)
		if perr != nil {
			return nil, app_error.InvalidInput("invalid reply target id", "reply_to")
		}
		parent, err := s.MessageRepo.FindChannelMessage(ctx, oid)
		if err != nil {
			return nil, err
		}
		if parent.ChannelID != channelID {
			return nil, app_error.InvalidInput("reply target belongs to another channel", "reply_to")
		}
		msg.ReplyTo = &oid
		replySnippet = &message_dto.ReplySnippet{
			MessageID: parent.ID.Hex(),
			SenderID:  parent.SenderID,
			Content:   parent.Content,
		}
	}

	if err := s.MessageRepo.InsertChannelMessage(ctx, msg); err != nil {
		return nil, err
	}

	// Counter drift on failure here is accepted; the message itself is the
	// source of truth.
	if err := s.ChannelRepo.BumpActivity(ctx, channelID); err != nil {
		log.Warn().Str("channelID", channelID).Msg("failed to bump channel activity")
	}

	return s.channelMessageResponse(msg, sender, replySnippet), nil
}

func (s *MessageService) ListChannelMessages(ctx context.Context, req message_dto.ListMessagesRequest, channelID, userID string) (*message_dto.ListChannelMessagesResponse, *app_error.AppError) {
	user, err := s.UserRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !authz.CanRead(user) {
		return nil, app_error.Forbidden("not allowed to read this channel", "channelId")
	}
	if _, err := s.ChannelRepo.FindByID(ctx, channelID); err != nil {
		return nil, err
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 {
		limit = 50
	}

	messages, err := s.MessageRepo.ListChannelMessages(ctx, channelID, page, limit)
	if err != nil {
		return nil, err
	}

	resp, err := s.hydrateChannelMessages(ctx, messages)
	if err != nil {
		return nil, err
	}

	return &message_dto.ListChannelMessagesResponse{
		Messages: resp,
		Page:     page,
		HasMore:  int64(len(messages)) == limit,
	}, nil
}

func (s *MessageService) ListPinnedMessages(ctx context.Context, channelID, userID string) ([]message_dto.ChannelMessageResponse, *app_error.AppError) {
	user, err := s.UserRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !authz.CanRead(user) {
		return nil, app_error.Forbidden("not allowed to read this channel", "channelId")
	}

	messages, err := s.MessageRepo.ListPinnedMessages(ctx, channelID)
	if err != nil {
		return nil, err
	}
	return s.hydrateChannelMessages(ctx, messages)
}

func (s *MessageService) EditMessage(ctx context.Context, req message_dto.EditMessageRequest, kind entity.MessageKind, messageID, userID string) (*message_dto.EditMessageResponse, *app_error.AppError) {
	if !entity.ValidKind(kind) {
		return nil, app_error.InvalidInput("unsupported message kind", "kind")
	}
	oid, perr := bson.ObjectIDFromHex(messageID)
	if perr != nil {
		return nil, app_error.InvalidInput("invalid message id", "messageId")
	}

	user, err := s.UserRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &message_dto.EditMessageResponse{
		MessageID: messageID,
		Kind:      string(kind),
		Content:   req.Content,
		IsEdited:  true,
	}

	if kind == entity.KindChannel {
		msg, err := s.MessageRepo.FindChannelMessage(ctx, oid)
		if err != nil {
			return nil, err
		}
		if msg.IsDeleted {
			return nil, app_error.Conflict("message has been deleted", "messageId")
		}
		if !authz.CanEditMessage(user, msg.SenderID) {
			return nil, app_error.Forbidden("only the sender can edit a message", "messageId")
		}
		resp.ChannelID = msg.ChannelID
		resp.SenderID = msg.SenderID
	} else {
		msg, err := s.MessageRepo.FindDirectMessage(ctx, oid)
		if err != nil {
			return nil, err
		}
		if msg.IsDeleted {
			return nil, app_error.Conflict("message has been deleted", "messageId")
		}
		if !authz.CanEditMessage(user, msg.SenderID) {
			return nil, app_error.Forbidden("only the sender can edit a message", "messageId")
		}
		resp.ConversationID = msg.ConversationID
		resp.SenderID = msg.SenderID
		resp.ReceiverID = msg.ReceiverID
	}

	if err := s.MessageRepo.UpdateContent(ctx, kind, oid, req.Content); err != nil {
		return nil, err
	}

	now := time.Now()
	resp.EditedAt = &now
	return resp, nil
}

// DeleteMessage soft-deletes. Deleting an already deleted message succeeds
// without touching the store.
func (s *MessageService) DeleteMessage(ctx context.Context, kind entity.MessageKind, messageID, userID string) (*message_dto.DeleteMessageResponse, *app_error.AppError) {
	if !entity.ValidKind(kind) {
		return nil, app_error.InvalidInput("unsupported message kind", "kind")
	}
	oid, perr := bson.ObjectIDFromHex(messageID)
	if perr != nil {
		return nil, app_error.InvalidInput("invalid message id", "messageId")
	}

	user, err := s.UserRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &message_dto.DeleteMessageResponse{
		MessageID: messageID,
		Kind:      string(kind),
	}

	if kind == entity.KindChannel {
		msg, err := s.MessageRepo.FindChannelMessage(ctx, oid)
		if err != nil {
			return nil, err
		}
		resp.ChannelID = msg.ChannelID
		resp.SenderID = msg.SenderID
		if msg.IsDeleted {
			return resp, nil
		}
		membership, err := s.ChannelRepo.Membership(ctx, msg.ChannelID, userID)
		if err != nil {
			return nil, err
		}
		if !authz.CanDeleteMessage(user, msg.SenderID, membership) {
			return nil, app_error.Forbidden("not allowed to delete this message", "messageId")
		}
		if err := s.MessageRepo.SoftDelete(ctx, kind, oid); err != nil {
			return nil, err
		}
		if msg.IsPinned {
			if err := s.ChannelRepo.RemovePin(ctx, msg.ChannelID, messageID); err != nil {
				log.Warn().Str("messageID", messageID).Msg("failed to drop pin row for deleted message")
			}
		}
		return resp, nil
	}

	msg, err := s.MessageRepo.FindDirectMessage(ctx, oid)
	if err != nil {
		return nil, err
	}
	resp.ConversationID = msg.ConversationID
	resp.SenderID = msg.SenderID
	resp.ReceiverID = msg.ReceiverID
	if msg.IsDeleted {
		return resp, nil
	}
	if !authz.CanEditMessage(user, msg.SenderID) {
		return nil, app_error.Forbidden("only the sender can delete a direct message", "messageId")
	}
	if err := s.MessageRepo.SoftDelete(ctx, kind, oid); err != nil {
		return nil, err
	}
	return resp, nil
}

// TogglePin flips the pin flag on the document first, then compensates the
// pins table. A lost race on the flag leaves the state as the winner set it.
func (s *MessageService) TogglePin(ctx context.Context, channelID, messageID, userID string) (*message_dto.TogglePinResponse, *app_error.AppError) {
	oid, perr := bson.ObjectIDFromHex(messageID)
	if perr != nil {
		return nil, app_error.InvalidInput("invalid message id", "messageId")
	}

	user, err := s.UserRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	membership, err := s.ChannelRepo.Membership(ctx, channelID, userID)
	if err != nil {
		return nil, err
	}
	if !authz.CanAdminister(user, membership) {
		return nil, app_error.Forbidden("only channel admins can pin messages", "channelId")
	}

	msg, err := s.MessageRepo.FindChannelMessage(ctx, oid)
	if err != nil {
		return nil, err
	}
	if msg.ChannelID != channelID {
		return nil, app_error.InvalidInput("message belongs to another channel", "messageId")
	}
	if msg.IsDeleted {
		return nil, app_error.Conflict("cannot pin a deleted message", "messageId")
	}

	wantPinned := !msg.IsPinned
	flipped, err := s.MessageRepo.SetPinned(ctx, oid, wantPinned)
	if err != nil {
		return nil, err
	}
	if !flipped {
		// Someone else got there first; report the state they set.
		return &message_dto.TogglePinResponse{MessageID: messageID, ChannelID: channelID, IsPinned: wantPinned}, nil
	}

	var rowErr *app_error.AppError
	if wantPinned {
		rowErr = s.ChannelRepo.AddPin(ctx, channelID, messageID, userID)
	} else {
		rowErr = s.ChannelRepo.RemovePin(ctx, channelID, messageID)
	}
	if rowErr != nil {
		if _, cerr := s.MessageRepo.SetPinned(ctx, oid, !wantPinned); cerr != nil {
			log.Error().Str("messageID", messageID).Msg("pin compensation failed, flag and row disagree")
		}
		return nil, rowErr
	}

	return &message_dto.TogglePinResponse{
		MessageID: messageID,
		ChannelID: channelID,
		IsPinned:  wantPinned,
	}, nil
}

func (s *MessageService) ToggleReaction(ctx context.Context, req message_dto.ToggleReactionRequest, kind entity.MessageKind, messageID, userID string) (*message_dto.ToggleReactionResponse, *app_error.AppError) {
	if !entity.ValidKind(kind) {
		return nil, app_error.InvalidInput("unsupported message kind", "kind")
	}
	oid, perr := bson.ObjectIDFromHex(messageID)
	if perr != nil {
		return nil, app_error.InvalidInput("invalid message id", "messageId")
	}

	user, err := s.UserRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &message_dto.ToggleReactionResponse{
		MessageID: messageID,
		Kind:      string(kind),
		Emoji:     req.Emoji,
	}

	var reactions entity.Reactions
	if kind == entity.KindChannel {
		msg, err := s.MessageRepo.FindChannelMessage(ctx, oid)
		if err != nil {
			return nil, err
		}
		if msg.IsDeleted {
			return nil, app_error.Conflict("cannot react to a deleted message", "messageId")
		}
		membership, err := s.ChannelRepo.Membership(ctx, msg.ChannelID, userID)
		if err != nil {
			return nil, err
		}
		if !authz.CanWrite(user, membership) {
			return nil, app_error.Forbidden("join the channel before reacting", "messageId")
		}
		reactions = msg.Reactions
		resp.ChannelID = msg.ChannelID
		resp.SenderID = msg.SenderID
	} else {
		msg, err := s.MessageRepo.FindDirectMessage(ctx, oid)
		if err != nil {
			return nil, err
		}
		if msg.IsDeleted {
			return nil, app_error.Conflict("cannot react to a deleted message", "messageId")
		}
		if userID != msg.SenderID && userID != msg.ReceiverID {
			return nil, app_error.Forbidden("not a participant of this conversation", "messageId")
		}
		reactions = msg.Reactions
		resp.ConversationID = msg.ConversationID
		resp.SenderID = msg.SenderID
		resp.ReceiverID = msg.ReceiverID
	}

	if reactions == nil {
		reactions = entity.Reactions{}
	}
	added := reactions.Toggle(userID, req.Emoji)

	if err := s.MessageRepo.SetReactions(ctx, kind, oid, reactions); err != nil {
		return nil, err
	}

	resp.Added = added
	resp.Reactions = reactions
	return resp, nil
}

func (s *MessageService) SaveMessage(ctx context.Context, req message_dto.SaveMessageRequest, userID string) *app_error.AppError {
	kind := entity.MessageKind(req.Kind)
	oid, perr := bson.ObjectIDFromHex(req.MessageID)
	if perr != nil {
		return app_error.InvalidInput("invalid message id", "message_id")
	}

	_, deleted, err := s.messageMeta(ctx, kind, oid)
	if err != nil {
		return err
	}
	if deleted {
		return app_error.Conflict("cannot save a deleted message", "message_id")
	}

	return s.SavedRepo.Save(ctx, &entity.SavedItem{
		UserID:    userID,
		MessageID: req.MessageID,
		Kind:      kind,
	})
}

func (s *MessageService) UnsaveMessage(ctx context.Context, userID, messageID string) *app_error.AppError {
	return s.SavedRepo.Unsave(ctx, userID, messageID)
}

func (s *MessageService) ListSaved(ctx context.Context, userID string) ([]message_dto.SavedItemResponse, *app_error.AppError) {
	items, err := s.SavedRepo.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := make([]message_dto.SavedItemResponse, 0, len(items))
	for _, item := range items {
		oid, perr := bson.ObjectIDFromHex(item.MessageID)
		if perr != nil {
			continue
		}

		entry := message_dto.SavedItemResponse{
			MessageID: item.MessageID,
			Kind:      string(item.Kind),
			SavedAt:   item.SavedAt,
		}
		if item.Kind == entity.KindChannel {
			if msg, err := s.MessageRepo.FindChannelMessage(ctx, oid); err == nil {
				entry.Content = msg.Content
				entry.SenderID = msg.SenderID
			}
		} else {
			if msg, err := s.MessageRepo.FindDirectMessage(ctx, oid); err == nil {
				entry.Content = msg.Content
				entry.SenderID = msg.SenderID
			}
		}
		resp = append(resp, entry)
	}
	return resp, nil
}

func (s *MessageService) messageMeta(ctx context.Context, kind entity.MessageKind, id bson.ObjectID) (senderID string, deleted bool, appErr *app_error.AppError) {
	if kind == entity.KindChannel {
		msg, err := s.MessageRepo.FindChannelMessage(ctx, id)
		if err != nil {
			return "", false, err
		}
		return msg.SenderID, msg.IsDeleted, nil
	}
	msg, err := s.MessageRepo.FindDirectMessage(ctx, id)
	if err != nil {
		return "", false, err
	}
	return msg.SenderID, msg.IsDeleted, nil
}

func (s *MessageService) hydrateChannelMessages(ctx context.Context, messages []*entity.ChannelMessage) ([]message_dto.ChannelMessageResponse, *app_error.AppError) {
	senderIDs := make([]string, 0, len(messages))
	seen := make(map[string]bool)
	for _, msg := range messages {
		if !seen[msg.SenderID] {
			seen[msg.SenderID] = true
			senderIDs = append(senderIDs, msg.SenderID)
		}
	}

	users, err := s.UserRepo.ListByIDs(ctx, senderIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	resp := make([]message_dto.ChannelMessageResponse, 0, len(messages))
	for _, msg := range messages {
		var snippet *message_dto.ReplySnippet
		if msg.ReplyTo != nil {
			if parent, err := s.MessageRepo.FindChannelMessage(ctx, *msg.ReplyTo); err == nil {
				snippet = &message_dto.ReplySnippet{
					MessageID: parent.ID.Hex(),
					SenderID:  parent.SenderID,
					Content:   parent.Content,
				}
			}
		}
		resp = append(resp, *s.channelMessageResponse(msg, byID[msg.SenderID], snippet))
	}
	return resp, nil
}

func (s *MessageService) channelMessageResponse(msg *entity.ChannelMessage, sender *entity.User, reply *message_dto.ReplySnippet) *message_dto.ChannelMessageResponse {
	info := message_dto.SenderInfo{ID: msg.SenderID}
	if sender != nil {
		info.Username = sender.Username
		info.DisplayName = sender.DisplayName
		info.Avatar = sender.Avatar
		info.Role = string(sender.Role)
	}
	return &message_dto.ChannelMessageResponse{
		MessageID:    msg.ID.Hex(),
		ChannelID:    msg.ChannelID,
		Sender:       info,
		Content:      msg.Content,
		MessageType:  string(msg.MessageType),
		CodeLanguage: msg.CodeLanguage,
		ImageURL:     msg.ImageURL,
		Files:        msg.Files,
		ReplyTo:      reply,
		Reactions:    msg.Reactions,
		IsPinned:     msg.IsPinned,
		IsEdited:     msg.IsEdited,
		EditedAt:     msg.EditedAt,
		CreatedAt:    msg.CreatedAt,
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
