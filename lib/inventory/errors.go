package inventory

import (
	"encoding/json"
	"errors"

	"github.com/submitty/dockerdash/lib/images"
)

var (
	// ErrMalformedImageReference is recorded when an image's primary tag has no ':'
	ErrMalformedImageReference = images.ErrMalformedReference

	// ErrMalformedTimestamp is recorded when an image creation date cannot be parsed
	ErrMalformedTimestamp = images.ErrMalformedTimestamp

	// ErrInvalidContainerRef is recorded when a configured container reference is not a valid image name
	ErrInvalidContainerRef = images.ErrInvalidRef

	// ErrUnmatchableContainerRef is recorded when a configured container reference
	// is valid but cannot equal any engine tag
	ErrUnmatchableContainerRef = errors.New("container reference never matches a tag")

	// ErrIncompleteSnapshot is returned when a required section of the snapshot is missing
	ErrIncompleteSnapshot = errors.New("incomplete snapshot")
)

// Warning is a recovered, non-fatal problem found while reconciling.
type Warning struct {
	Kind       error
	Identifier string
	Detail     string
}

func (w Warning) Error() string {
	if w.Detail == "" {
		return w.Kind.Error() + ": " + w.Identifier
	}
	return w.Kind.Error() + ": " + w.Identifier + " (" + w.Detail + ")"
}

func (w Warning) Unwrap() error {
	return w.Kind
}

func (w Warning) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind       string `json:"kind"`
		Identifier string `json:"identifier"`
		Detail     string `json:"detail,omitempty"`
	}{
		Kind:       w.Kind.Error(),
		Identifier: w.Identifier,
		Detail:     w.Detail,
	})
}
