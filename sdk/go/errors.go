package answerai

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors returned by the SDK.
var (
	// ErrNoToken is returned when a call needs an access token and none was given.
	ErrNoToken = errors.New("answerai: no access token provided")

	// ErrUnauthorized is returned when the access token is missing, invalid or expired.
	ErrUnauthorized = errors.New("answerai: token is invalid or expired")

	// ErrEmailNotVerified is returned when the user must verify their email first.
	ErrEmailNotVerified = errors.New("answerai: email address is not verified")
)

// APIError represents an error response from the AnswerAI API.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("answerai: API error %d [%s]: %s", e.StatusCode, e.Code, e.Message)
}

// Unwrap maps auth failures onto the package sentinels.
func (e *APIError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case e.StatusCode == http.StatusForbidden && e.Code == "email_not_verified":
		return ErrEmailNotVerified
	}
	return nil
}

// apiErrorWrapper matches the API error envelope.
type apiErrorWrapper struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func parseAPIError(statusCode int, body []byte) error {
	var wrapper apiErrorWrapper
	if err := json.Unmarshal(body, &wrapper); err == nil && wrapper.Error.Code != "" {
		return &APIError{
			StatusCode: statusCode,
			Code:       wrapper.Error.Code,
			Message:    wrapper.Error.Message,
		}
	}

	return &APIError{
		StatusCode: statusCode,
		Code:       "unknown",
		Message:    string(body),
	}
}

// IsAPIError checks whether err is an APIError and returns it.
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
