package service

import "errors"

var (
	// ErrForbidden is a recovered authorization failure: the action is
	// rejected with a user-facing message, never a server fault.
	ErrForbidden = errors.New("no permission")

	// ErrLocked rejects writes against locked threads/posts.
	ErrLocked = errors.New("locked")

	ErrInvalidInput = errors.New("invalid params")
)
