package domain

import "errors"

var (
	// ErrInvalidCredentials covers both unknown email and wrong password;
	// the two cases are deliberately indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountDeactivated is returned for a correct password on a
	// deactivated account. Distinct from ErrInvalidCredentials so operators
	// can diagnose lockouts; this leaks account existence by design.
	ErrAccountDeactivated = errors.New("account deactivated")

	ErrUnauthenticated = errors.New("not authenticated")
	ErrForbidden       = errors.New("access forbidden")
	ErrUserNotFound    = errors.New("user not found")

	ErrUpdateInProgress = errors.New("update already in progress")
	ErrInvalidTarget    = errors.New("invalid update target")
	ErrUpdateFailed     = errors.New("website update failed")

	// ErrStoreUnavailable signals the session store is unreachable. Unlike
	// audit failures this is fatal for the request that hit it.
	ErrStoreUnavailable = errors.New("session store unavailable")
)
