// Package common defines shared constants and sentinel errors used across
// the storage, service and state layers of giftkeeper. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// ErrPersistence marks any failure of the underlying key-value store
	// (unavailable, serialization failure, quota exceeded).
	ErrPersistence = errors.New("persistence failure")

	// Validation errors.
	ErrorValidation = errors.New("validation error")

	// Configuration errors.
	ErrUnknownDriver = errors.New("unknown storage driver")
)
