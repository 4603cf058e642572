package apperror

import (
	"errors"
	"net/http"
)

// Kinds are the machine readable error categories exposed to API clients
const (
	KindBadRequest        = "BAD_REQUEST"
	KindUnauthorized      = "UNAUTHORIZED"
	KindForbidden         = "FORBIDDEN"
	KindNotFound          = "NOT_FOUND"
	KindConflict          = "CONFLICT"
	KindInvalidTransition = "INVALID_TRANSITION"
	KindMissingReason     = "MISSING_REASON"
	KindInvalidStage      = "INVALID_STAGE"
	KindInvalidAction     = "INVALID_ACTION"
	KindStoreUnavailable  = "STORE_UNAVAILABLE"
	KindRateLimited       = "RATE_LIMITED"
	KindInternal          = "INTERNAL"
)

type AppError struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, kind, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, KindBadRequest, message, nil)
}

func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, KindUnauthorized, message, nil)
}

func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, KindForbidden, message, nil)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, KindNotFound, message, nil)
}

func Conflict(message string) *AppError {
	return New(http.StatusConflict, KindConflict, message, nil)
}

func InvalidTransition(message string) *AppError {
	return New(http.StatusConflict, KindInvalidTransition, message, nil)
}

func MissingReason(message string) *AppError {
	return New(http.StatusBadRequest, KindMissingReason, message, nil)
}

func InvalidStage(message string) *AppError {
	return New(http.StatusBadRequest, KindInvalidStage, message, nil)
}

func InvalidAction(message string) *AppError {
	return New(http.StatusBadRequest, KindInvalidAction, message, nil)
}

func StoreUnavailable(err error) *AppError {
	return New(http.StatusServiceUnavailable, KindStoreUnavailable, "Data store unavailable", err)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, KindInternal, "Internal Server Error", err)
}

// KindOf returns the kind of an AppError anywhere in err's chain, or KindInternal
func KindOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func RateLimited(message string) *AppError {
	return New(http.StatusTooManyRequests, KindRateLimited, message, nil)
}
