package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrUnauthorized is returned for any 401 on a session-scoped endpoint so
// callers can redirect to sign-in instead of showing a generic error. It is
// returned even when the response body is empty or unparsable.
var ErrUnauthorized = errors.New("unauthorized")

// APIError is any non-2xx, non-401 outcome. Detail carries the message
// extracted from the response's detail field, or the operation's fallback.
// FieldErrors is populated when the server reported per-field validation
// errors.
type APIError struct {
	StatusCode  int
	Detail      string
	FieldErrors map[string]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Detail)
}

// errorBody defers decoding of detail, which the backend serves in three
// shapes: a plain string, an object with a message field, or a list of
// field-level errors with loc/msg pairs.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

type detailObject struct {
	Message string `json:"message"`
}

type fieldError struct {
	Loc []json.RawMessage `json:"loc"`
	Msg string            `json:"msg"`
}

// extractDetail resolves the detail union into a display message and an
// optional field-error map, falling back to the supplied message when the
// body is absent or unparsable.
func extractDetail(body []byte, fallback string) (string, map[string]string) {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil || len(eb.Detail) == 0 {
		return fallback, nil
	}

	var s string
	if err := json.Unmarshal(eb.Detail, &s); err == nil && s != "" {
		return s, nil
	}

	var obj detailObject
	if err := json.Unmarshal(eb.Detail, &obj); err == nil && obj.Message != "" {
		return obj.Message, nil
	}

	var fieldErrs []fieldError
	if err := json.Unmarshal(eb.Detail, &fieldErrs); err == nil && len(fieldErrs) > 0 {
		fields := make(map[string]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			if name := lastLocString(fe.Loc); name != "" {
				fields[name] = fe.Msg
			}
		}
		if len(fields) > 0 {
			return fallback, fields
		}
	}

	return fallback, nil
}

// lastLocString picks the field name out of a loc path like ["body","title"].
func lastLocString(loc []json.RawMessage) string {
	for i := len(loc) - 1; i >= 0; i-- {
		var s string
		if err := json.Unmarshal(loc[i], &s); err == nil && s != "body" {
			return strings.ToLower(s)
		}
	}
	return ""
}
