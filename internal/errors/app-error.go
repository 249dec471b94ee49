package app_error

import (
	"encoding/json"
	"net/http"
)

type AppError struct {
	Code    int    `json:"-"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e AppError) Error() string {
	return e.Message
}

func (e AppError) JSON(w http.ResponseWriter) error {
	return json.NewEncoder(w).Encode(e)
}

func NewAppError(code int, msg, field string) *AppError {
	return &AppError{
		Code:    code,
		Message: msg,
		Field:   field,
	}
}

// Taxonomy constructors. Authorization and validation failures surface
// immediately with no retry; store unavailability surfaces as 503 rather than
// being queued.

func NotFound(msg, field string) *AppError {
	return NewAppError(http.StatusNotFound, msg, field)
}

func Forbidden(msg, field string) *AppError {
	return NewAppError(http.StatusForbidden, msg, field)
}

func Conflict(msg, field string) *AppError {
	return NewAppError(http.StatusConflict, msg, field)
}

func InvalidInput(msg, field string) *AppError {
	return NewAppError(http.StatusBadRequest, msg, field)
}

func Unavailable(msg, field string) *AppError {
	return NewAppError(http.StatusServiceUnavailable, msg, field)
}
