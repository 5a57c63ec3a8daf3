package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates the requested record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrConflict indicates the write collided with an existing record or the
// record is still referenced. Retryable after re-validating.
var ErrConflict = errors.New("conflict")

// ValidationError carries the server's per-field failure map.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %d field(s)", len(e.Fields))
}

// APIError is any other non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

func decodeError(resp *http.Response) error {
	var body struct {
		Error  string              `json:"error"`
		Errors map[string][]string `json:"errors"`
	}
	// Body decode failures fall through to the generic status mapping.
	_ = json.NewDecoder(resp.Body).Decode(&body)

	switch resp.StatusCode {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		if body.Error != "" {
			return fmt.Errorf("%w: %s", ErrConflict, body.Error)
		}
		return ErrConflict
	case http.StatusUnprocessableEntity:
		if len(body.Errors) > 0 {
			return &ValidationError{Fields: body.Errors}
		}
		return &APIError{Status: resp.StatusCode, Message: body.Error}
	default:
		return &APIError{Status: resp.StatusCode, Message: body.Error}
	}
}
