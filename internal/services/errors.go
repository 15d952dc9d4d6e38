package services

import "errors"

var (
	ErrInvalidUser       = errors.New("invalid user id")
	ErrInvalidDate       = errors.New("invalid date")
	ErrInvalidDays       = errors.New("days to keep must not be negative")
	ErrUnsupportedFormat = errors.New("unsupported export format")
)
