/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	cnserrors "github.com/NVIDIA/osrange/pkg/errors"
	"github.com/NVIDIA/osrange/pkg/serializer"
)

// WriteError writes an ErrorResponse with the given status and code.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code cnserrors.ErrorCode, message string, retryable bool, details map[string]any) {

	serializer.RespondJSON(w, statusCode, ErrorResponse{
		Code:      string(code),
		Message:   message,
		Details:   details,
		RequestID: requestIDFrom(r),
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	})
}

// WriteErrorFromErr writes err as an ErrorResponse. Structured errors keep their
// code, message and context; anything else becomes INTERNAL with fallbackMessage.
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error, fallbackMessage string, details map[string]any) {
	var se *cnserrors.StructuredError
	if !errors.As(err, &se) {
		WriteError(w, r, http.StatusInternalServerError, cnserrors.ErrCodeInternal, fallbackMessage,
			retryableFromCode(cnserrors.ErrCodeInternal), mergeDetails(details, map[string]any{"error": err.Error()}))
		return
	}

	merged := mergeDetails(se.Context, details)
	if se.Cause != nil {
		merged = mergeDetails(merged, map[string]any{"error": se.Cause.Error()})
	}

	WriteError(w, r, HTTPStatusFromCode(se.Code), se.Code, se.Message, retryableFromCode(se.Code), merged)
}

// HTTPStatusFromCode maps an error code to an HTTP status.
func HTTPStatusFromCode(code cnserrors.ErrorCode) int {
	switch code {
	case cnserrors.ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case cnserrors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case cnserrors.ErrCodeNotFound:
		return http.StatusNotFound
	case cnserrors.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case cnserrors.ErrCodePreconditionFailed:
		return http.StatusPreconditionFailed
	case cnserrors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case cnserrors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	case cnserrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func retryableFromCode(code cnserrors.ErrorCode) bool {
	switch code {
	case cnserrors.ErrCodeTimeout, cnserrors.ErrCodeUnavailable,
		cnserrors.ErrCodeRateLimitExceeded, cnserrors.ErrCodeInternal:
		return true
	default:
		return false
	}
}

func mergeDetails(a, b map[string]any) map[string]any {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(map[string]any, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

func requestIDFrom(r *http.Request) string {
	if id, _ := r.Context().Value(contextKeyRequestID).(string); id != "" {
		return id
	}
	return uuid.New().String()
}
