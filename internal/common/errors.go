// Package common defines shared constants and sentinel errors used across
// the recordapi server layers. Callers should use errors.Is to match these
// values; every specific sentinel also matches its category sentinel.
package common

import (
	"errors"
	"fmt"
)

// Categories.
var (
	ErrAuthentication = errors.New("authentication error")
	ErrAuthorization  = errors.New("authorization error")
	ErrCredential     = errors.New("credential error")
	ErrStore          = errors.New("store error")
	ErrEncoding       = errors.New("encoding error")
)

var (
	// Authentication gate.
	ErrMissingToken      = fmt.Errorf("%w: missing token", ErrAuthentication)
	ErrInvalidToken      = fmt.Errorf("%w: invalid token", ErrAuthentication)
	ErrTokenExpired      = fmt.Errorf("%w: token expired", ErrAuthentication)
	ErrPrincipalNotFound = fmt.Errorf("%w: principal not found", ErrAuthentication)

	// Authorization gate.
	ErrNotAuthenticated = fmt.Errorf("%w: not authenticated", ErrAuthorization)
	ErrInsufficientRole = fmt.Errorf("%w: insufficient role", ErrAuthorization)

	// Sign-in. Unknown username and wrong password share this value.
	ErrAuthenticationFailed = fmt.Errorf("%w: authentication failed", ErrCredential)

	// Store.
	ErrConnectionUnavailable = fmt.Errorf("%w: connection unavailable", ErrStore)
	ErrQueryFailed           = fmt.Errorf("%w: query failed", ErrStore)
	ErrNoRowsAffected        = fmt.Errorf("%w: no rows affected", ErrStore)

	// Token encoding.
	ErrTokenSignatureInvalid = fmt.Errorf("%w: token signature invalid", ErrEncoding)
)

var (
	// Repository-level lookups that found nothing. Not a store failure.
	ErrorNotFound = errors.New("not found")

	ErrorInternal    = errors.New("internal error")
	ErrUnknownRole   = errors.New("unknown role")
	ErrValidation    = errors.New("validation error")
	ErrAlreadyExists = errors.New("already exists")
	ErrRateLimited   = errors.New("rate limited")
)
