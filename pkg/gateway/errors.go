package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/moogar0880/problems"
)

// RequestError is the single error shape for non-success responses. Message
// is extracted from the service's RFC 7807 problem document (detail), a
// plain {"message": ...} envelope, or the HTTP status text, in that order.
type RequestError struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s %s: %s (status %d)", e.Method, e.Path, e.Message, e.Status)
}

// IsRequestError reports whether err is a transport-level failure, as
// opposed to a local validation error that never reached the network.
func IsRequestError(err error) bool {
	var reqErr *RequestError

	return errors.As(err, &reqErr)
}

func newRequestError(method, path string, status int, body []byte) *RequestError {
	return &RequestError{
		Method:  method,
		Path:    path,
		Status:  status,
		Message: extractMessage(status, body),
	}
}

func extractMessage(status int, body []byte) string {
	var problem problems.Problem
	if err := json.Unmarshal(body, &problem); err == nil && problem.Detail != "" {
		return problem.Detail
	}

	var envelope struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}

	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Detail != "" {
			return envelope.Detail
		}

		if envelope.Message != "" {
			return envelope.Message
		}
	}

	if text := http.StatusText(status); text != "" {
		return text
	}

	return fmt.Sprintf("unexpected status %d", status)
}
