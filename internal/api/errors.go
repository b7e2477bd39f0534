package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

const (
	unauthorizedMessage = "Unauthorized - please login again"
	forbiddenMessage    = "Access forbidden - admin rights required"
	fetchFallbackMsg    = "Failed to fetch token usage data"
	loginFallbackMsg    = "Login failed"
	wrongCredentialsMsg = "Wrong username or password"
	missingTokenMsg     = "No authentication token found"
)

// AuthError indicates missing or invalid credentials, including an
// expired or absent bearer token.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// AccessError indicates the authenticated user lacks admin rights.
type AccessError struct {
	Message string
}

func (e *AccessError) Error() string {
	return e.Message
}

// NetworkError indicates a failed request or a malformed response.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// errorBody is the structured error envelope the backend returns.
type errorBody struct {
	Detail string `json:"detail"`
}

// normalizeError turns a non-2xx response into a user-facing error.
// A structured detail field wins, then the status-specific messages,
// then the endpoint fallback.
func normalizeError(status int, body []byte, fallback string) error {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && eb.Detail != "" {
		return statusError(status, eb.Detail)
	}

	switch status {
	case http.StatusUnauthorized:
		return &AuthError{Message: unauthorizedMessage}
	case http.StatusForbidden:
		return &AccessError{Message: forbiddenMessage}
	default:
		return statusError(status, fallback)
	}
}

// normalizeLoginError applies the login-specific message policy. A 401
// on the login endpoint means bad credentials, not an expired session.
func normalizeLoginError(status int, body []byte) error {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && eb.Detail != "" {
		return statusError(status, eb.Detail)
	}

	if status == http.StatusUnauthorized {
		return &AuthError{Message: wrongCredentialsMsg}
	}
	return statusError(status, loginFallbackMsg)
}

func statusError(status int, message string) error {
	switch status {
	case http.StatusUnauthorized:
		return &AuthError{Message: message}
	case http.StatusForbidden:
		return &AccessError{Message: message}
	default:
		return fmt.Errorf("%s", message)
	}
}
