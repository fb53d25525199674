// Package services holds the business logic. Each service runs its
// store work inside a unit-of-work scope and returns sentinel errors
// the HTTP layer maps onto status codes.
package services

import "errors"

// Sentinel errors for the session service. Wrap with fmt.Errorf("%w")
// when adding context.
var (
	// ErrLogin indicates an unknown email or a password mismatch.
	ErrLogin = errors.New("invalid email or password")

	// ErrRegistration indicates the email is already registered.
	ErrRegistration = errors.New("email is already registered")

	// ErrInvalidRefreshToken covers every refresh-token failure:
	// unknown, revoked, malformed, or owned by an inactive user.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// ErrAuthentication indicates a bad or non-access bearer token.
	ErrAuthentication = errors.New("authentication failed")
)

// Sentinel errors shared by the domain services.
var (
	ErrNotFound   = errors.New("not found")
	ErrPermission = errors.New("permission denied")
	ErrConflict   = errors.New("conflict")
)
