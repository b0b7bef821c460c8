package errors

import (
	"errors"
	"fmt"

	"github.com/reservat/storefront-go/internal/messages"
)

// AuthReason is the user-facing cause of a failed login, mapped from the
// HTTP status the auth endpoint returned.
type AuthReason string

const (
	ReasonUserNotFound       AuthReason = "user_not_found"
	ReasonInvalidCredentials AuthReason = "invalid_credentials"
	ReasonAccountInactive    AuthReason = "account_inactive"
	ReasonServerError        AuthReason = "server_error"
	ReasonGeneric            AuthReason = "auth_generic"
	ReasonConnection         AuthReason = "connection_error"
)

// AuthError is a typed login failure. Message is localized and safe to show
// to the user; ServerMessage keeps whatever reason the backend provided.
type AuthError struct {
	Reason        AuthReason
	StatusCode    int
	Message       string
	ServerMessage string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth: %s (HTTP %d)", e.Reason, e.StatusCode)
}

// NewAuthError maps an auth endpoint status to a typed failure. For statuses
// without a fixed mapping the server-provided reason wins over the generic
// fallback.
func NewAuthError(statusCode int, serverMessage string) *AuthError {
	var reason AuthReason
	switch statusCode {
	case 404:
		reason = ReasonUserNotFound
	case 401:
		reason = ReasonInvalidCredentials
	case 403:
		reason = ReasonAccountInactive
	case 500:
		reason = ReasonServerError
	default:
		reason = ReasonGeneric
	}

	msg := messages.Lookup(string(reason))
	if reason == ReasonGeneric && serverMessage != "" {
		msg = serverMessage
	}
	return &AuthError{
		Reason:        reason,
		StatusCode:    statusCode,
		Message:       msg,
		ServerMessage: serverMessage,
	}
}

// NewConnectionAuthError marks a login that never reached the backend.
func NewConnectionAuthError() *AuthError {
	return &AuthError{
		Reason:  ReasonConnection,
		Message: messages.Lookup(string(ReasonConnection)),
	}
}

// AsAuthError unwraps err into an *AuthError when possible.
func AsAuthError(err error) (*AuthError, bool) {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
