package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind identifies one failure class of the escrow engine. The set is closed:
// callers can rely on it to tell "retry later" from "never valid" from
// "invariant breach".
type Kind string

const (
	KindNotInitialized     Kind = "NOT_INITIALIZED"
	KindAlreadyInitialized Kind = "ALREADY_INITIALIZED"
	KindUnauthorized       Kind = "UNAUTHORIZED"
	KindNotFound           Kind = "NOT_FOUND"
	KindInvalidStatus      Kind = "INVALID_STATUS"
	KindTimeWindow         Kind = "TIME_WINDOW_VIOLATION"
	KindDuplicateEntry     Kind = "DUPLICATE_ENTRY"
	KindNoParticipants     Kind = "NO_PARTICIPANTS"
	KindIndexOutOfRange    Kind = "INDEX_OUT_OF_RANGE"
	KindArithmeticOverflow Kind = "ARITHMETIC_OVERFLOW"
	KindInvalidAmount      Kind = "INVALID_AMOUNT"
	KindAlreadyFullyFunded Kind = "ALREADY_FULLY_FUNDED"
	KindNothingToRefund    Kind = "NOTHING_TO_REFUND"
	KindReentrantCall      Kind = "REENTRANT_CALL"
	KindTokenNotSupported  Kind = "TOKEN_NOT_SUPPORTED"
	KindContractPaused     Kind = "CONTRACT_PAUSED"
	KindUsernameTaken      Kind = "USERNAME_TAKEN"
	KindInvalidCredentials Kind = "INVALID_CREDENTIALS"
	KindAlreadyExists      Kind = "ALREADY_EXISTS"
)

// Error is a typed failure carrying one Kind from the closed set.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return string(e.Kind) + ": " + e.Message
}

// New creates a typed error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates a typed error with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of err, or "" if err is not a typed Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// HTTPStatus maps a failure to the HTTP status code the API surfaces.
// Overflow and dense-index misses are unreachable under correct invariants,
// so they surface as 500s.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindUnauthorized, KindInvalidCredentials:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindAlreadyInitialized, KindDuplicateEntry, KindAlreadyFullyFunded,
		KindAlreadyExists, KindInvalidStatus, KindReentrantCall, KindUsernameTaken:
		return http.StatusConflict
	case KindTimeWindow:
		return http.StatusUnprocessableEntity
	case KindArithmeticOverflow, KindIndexOutOfRange:
		return http.StatusInternalServerError
	case KindNotInitialized, KindInvalidAmount, KindNoParticipants,
		KindTokenNotSupported, KindContractPaused, KindNothingToRefund:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
