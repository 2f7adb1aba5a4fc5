package images

import "errors"

var (
	// ErrMalformedReference is returned when an image identifier has no ':' separator
	ErrMalformedReference = errors.New("malformed image reference")

	// ErrMalformedTimestamp is returned when an image creation date cannot be parsed
	ErrMalformedTimestamp = errors.New("malformed timestamp")

	// ErrInvalidRef is returned when a container reference fails the distribution grammar
	ErrInvalidRef = errors.New("invalid container reference")
)
