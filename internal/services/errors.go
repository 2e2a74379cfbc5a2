package services

import "errors"

// Sentinel errors returned by the service layer. Handlers map these to
// HTTP statuses; anything unrecognized becomes a 500 with a generic body.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("resource already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
	ErrSlotsFull          = errors.New("appointment slots for this date are fully booked")
	ErrExternal           = errors.New("external service failure")
)
