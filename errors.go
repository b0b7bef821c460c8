package storefront

import (
	"errors"

	errs "github.com/reservat/storefront-go/internal/errors"
)

// ErrNotAuthenticated is returned by operations that need a session.
var ErrNotAuthenticated = errors.New("not authenticated")

// ErrEmptyCart is returned by Checkout when there is nothing to reserve.
var ErrEmptyCart = errors.New("cart is empty")

// AuthError is the typed login failure; Message is localized for display.
type AuthError = errs.AuthError

// AuthReason names the cause of a failed login.
type AuthReason = errs.AuthReason

// Login failure reasons.
const (
	ReasonUserNotFound       = errs.ReasonUserNotFound
	ReasonInvalidCredentials = errs.ReasonInvalidCredentials
	ReasonAccountInactive    = errs.ReasonAccountInactive
	ReasonServerError        = errs.ReasonServerError
	ReasonGeneric            = errs.ReasonGeneric
	ReasonConnection         = errs.ReasonConnection
)

// AsAuthError unwraps err into an *AuthError when possible.
func AsAuthError(err error) (*AuthError, bool) { return errs.AsAuthError(err) }
