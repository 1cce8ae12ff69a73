package app

import "errors"

var (
	// ErrConfig is returned when the configuration fails validation.
	ErrConfig = errors.New("invalid configuration")

	// ErrInputNotFound is returned when the input file does not exist.
	ErrInputNotFound = errors.New("input file not found")

	// ErrAlreadyCoasted is returned for an input that already carries the
	// kisscoast header.
	ErrAlreadyCoasted = errors.New("input is already coasted")
)
