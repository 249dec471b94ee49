package message_dto

import (
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type SendChannelMessageRequest struct {
	Content      string       `json:"content" validate:"required,min=1,max=4000"`
	MessageType  string       `json:"message_type" validate:"omitempty,oneof=text code image file"`
	CodeLanguage string       `json:"code_language,omitempty" validate:"omitempty,max=40"`
	ImageURL     string       `json:"image_url,omitempty" validate:"omitempty,url"`
	Files        []FilePart   `json:"files,omitempty" validate:"omitempty,dive"`
	ReplyTo      *string      `json:"reply_to,omitempty" validate:"omitempty,objectID"`
}

type SendDirectMessageRequest struct {
	Content      string     `json:"content" validate:"required,min=1,max=4000"`
	MessageType  string     `json:"message_type" validate:"omitempty,oneof=text code image file"`
	CodeLanguage string     `json:"code_language,omitempty" validate:"omitempty,max=40"`
	ImageURL     string     `json:"image_url,omitempty" validate:"omitempty,url"`
	Files        []FilePart `json:"files,omitempty" validate:"omitempty,dive"`
	ReplyTo      *string    `json:"reply_to,omitempty" validate:"omitempty,objectID"`
}

type FilePart struct {
	Name string `json:"name" validate:"required"`
	URL  string `json:"url" validate:"required,url"`
	Size int64  `json:"size" validate:"min=0"`
	Type string `json:"type"`
}

type EditMessageRequest struct {
	Content string `json:"content" validate:"required,min=1,max=4000"`
}

type ToggleReactionRequest struct {
	Emoji string `json:"emoji" validate:"required,min=1,max=32"`
}

type SaveMessageRequest struct {
	MessageID string `json:"message_id" validate:"required,objectID"`
	Kind      string `json:"kind" validate:"required,oneof=channel dm"`
}

type ListMessagesRequest struct {
	Page  int64 `json:"page" validate:"omitempty,min=1"`
	Limit int64 `json:"limit" validate:"omitempty,min=1,max=100"`
}

func ObjectIDValidator(fl validator.FieldLevel) bool {
	id := fl.Field().String()
	_, err := bson.ObjectIDFromHex(id)
	return err == nil
}
