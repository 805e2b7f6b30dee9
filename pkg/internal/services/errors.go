package services

import "errors"

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("you are not the owner of this resource")
	ErrNotFound             = errors.New("record not found")
	ErrExternalDeleteFailed = errors.New("failed to delete media from external storage")
	// ErrConflict marks a skill collection that lost the race to another
	// transaction. Callers treat it as a no-op.
	ErrConflict = errors.New("skill was already collected")
)
