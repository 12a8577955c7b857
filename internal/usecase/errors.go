package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrMarketClosed          = errors.New("market is closed")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
