package model

import "errors"

// Common errors used across the application
var (
	// Roster errors
	ErrDuplicateID     = errors.New("player id already exists")
	ErrPlayerNotFound  = errors.New("player not found")
	ErrInvalidArgument = errors.New("invalid argument")

	// Storage errors
	ErrCorruptData = errors.New("stored roster is corrupt")
	ErrIOFailure   = errors.New("storage i/o failure")

	// Strategy errors
	ErrUnknownStrategy = errors.New("unknown strategy")
)
