package domain

import "errors"

// Business-rule and validation failures. Handlers map these to HTTP
// statuses; anything else surfacing from a service is a transport error.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrInvalidCode        = errors.New("invalid verification code")
	ErrLastRole           = errors.New("cannot remove the last role")
	ErrUnknownRole        = errors.New("unknown role")
	ErrUserNotFound       = errors.New("user not found")

	ErrMissingBloodType = errors.New("blood type is required")
	ErrInvalidBloodType = errors.New("blood type is not a recognized type")
	ErrInvalidUrgency   = errors.New("urgency is not a recognized level")
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidField     = errors.New("field value is not valid")

	ErrInvalidTargetType = errors.New("notification target type is not recognized")
)
