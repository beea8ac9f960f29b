package usecase

import "errors"

var (
	ErrRoundNotFound = errors.New("round not found")
	ErrNotConfigured = errors.New("usecase dependency not configured")
	ErrInvalidGrid   = errors.New("invalid grid")
)
