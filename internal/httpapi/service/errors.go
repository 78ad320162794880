package service

import "errors"

// Sentinel errors shared across services. Handlers map these to HTTP status
// codes with errors.Is; everything unrecognized is a 500 with a generic
// message.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	// ErrSelfAction rejects a user upvoting or favoriting their own review.
	ErrSelfAction = errors.New("cannot react to your own review")
)
