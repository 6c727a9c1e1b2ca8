package service

import "errors"

var (
	// Caller errors, surfaced as-is and never retried.
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidRatingValue  = errors.New("rating value must be between 0 and 100")
	ErrInsufficientHistory = errors.New("at least 5 distinct ratings are required to calculate percentiles")

	ErrGameNotFound     = errors.New("game not found")
	ErrRatingNotFound   = errors.New("rating not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrGameExists       = errors.New("game already exists")
	ErrAlreadyInBacklog = errors.New("game is already in backlog")
	ErrNotInBacklog     = errors.New("game not found in backlog")
	ErrBadTransition    = errors.New("status transition not allowed")

	ErrNameInUse          = errors.New("username already in use")
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)
