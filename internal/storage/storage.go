package storage

import "errors"

var (
	ErrUserExists      = errors.New("user already exists")
	ErrUserNotFound    = errors.New("user not found")
	ErrRoomUnavailable = errors.New("room is unavailable for the requested dates")
	ErrBookingNotFound = errors.New("booking is not found")
	ErrTodoNotFound    = errors.New("todo is not found")
	ErrPastDate        = errors.New("cannot create booking for a past date")
)
