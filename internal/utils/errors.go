package utils

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeUnauthorized    Code = "UNAUTHORIZED"
	CodeForbidden       Code = "FORBIDDEN"
	CodeNotFound        Code = "NOT_FOUND"
	CodeConflict        Code = "CONFLICT"
	CodeUnavailable     Code = "UNAVAILABLE"
	CodeTimeout         Code = "TIMEOUT"
	CodeInternal        Code = "INTERNAL"
)

// AppError is the error contract shared by services, handlers and the worker.
type AppError struct {
	Code    Code
	Op      string // ex: "SessionService.End"
	Message string // safe to return to the caller
	Err     error
}

func (e *AppError) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch {
	case e.Op != "" && e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	case e.Op != "" && e.Message != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	case e.Op != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	default:
		return "error"
	}
}

func (e *AppError) Unwrap() error { return e.Err }

func E(code Code, op, msg string, err error) error {
	return &AppError{Code: code, Op: op, Message: msg, Err: err}
}

// CodeForReason maps a lifecycle rejection onto the error code reported to callers.
// A storage failure caused by an expired deadline is reported as a timeout.
func CodeForReason(r Reason, cause error) Code {
	switch r {
	case ReasonNotFound:
		return CodeNotFound
	case ReasonActorMismatch:
		return CodeForbidden
	case ReasonInvalidState:
		return CodeConflict
	case ReasonStorage:
		if errors.Is(cause, context.DeadlineExceeded) {
			return CodeTimeout
		}
		return CodeUnavailable
	default:
		return CodeInternal
	}
}

var reasonMessages = map[Reason]string{
	ReasonNotFound:      "not found",
	ReasonActorMismatch: "actor is not allowed to perform this action",
	ReasonInvalidState:  "operation not allowed in current state",
	ReasonStorage:       "storage unavailable",
}

func messageForReason(r Reason) string {
	if m, ok := reasonMessages[r]; ok {
		return m
	}
	return "operation failed"
}

func IsCode(err error, code Code) bool {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code == code
	}
	return false
}

func HTTPStatus(err error) int {
	var ae *AppError
	if errors.As(err, &ae) {
		switch ae.Code {
		case CodeInvalidArgument:
			return http.StatusBadRequest
		case CodeUnauthorized:
			return http.StatusUnauthorized
		case CodeForbidden:
			return http.StatusForbidden
		case CodeNotFound:
			return http.StatusNotFound
		case CodeConflict:
			return http.StatusConflict
		case CodeUnavailable:
			return http.StatusServiceUnavailable
		case CodeTimeout:
			return http.StatusGatewayTimeout
		default:
			return http.StatusInternalServerError
		}
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

// ErrNotFound is returned by repositories for a missing row or document.
var ErrNotFound = errors.New("not found")
