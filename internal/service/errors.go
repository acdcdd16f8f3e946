package service

import "errors"

var (
	ErrNotFound           = errors.New("resource not found")
	ErrAlreadyRented      = errors.New("user already has an assigned copy")
	ErrNoAvailableCopy    = errors.New("no available copies for this movie")
	ErrNoActiveRental     = errors.New("user has no assigned copy")
	ErrInvalidCredentials = errors.New("invalid username or password")
)
