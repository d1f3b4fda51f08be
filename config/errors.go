package config

import "errors"

var (
	// ErrUnknownCursorBackend is returned for a cursor backend other than file or badger.
	ErrUnknownCursorBackend = errors.New("unknown cursor backend")

	// ErrUnknownVectorBackend is returned for a vector backend other than chromem or qdrant.
	ErrUnknownVectorBackend = errors.New("unknown vector store backend")

	// ErrInvalidValue is returned when a numeric setting is out of range.
	ErrInvalidValue = errors.New("invalid configuration value")

	// ErrConfigTooLarge is returned when the config file exceeds the size limit.
	ErrConfigTooLarge = errors.New("config file too large")
)
