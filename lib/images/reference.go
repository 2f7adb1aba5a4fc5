package images

import (
	"fmt"
	"strings"

	"github.com/distribution/reference"
)

// SplitReference splits an image identifier into repository and tag on the
// first ':'. Registry ports are not special-cased: "host:5000/app:v1" yields
// repository "host" and tag "5000/app:v1", matching how the inventory is keyed.
func SplitReference(id string) (string, string, error) {
	repository, tag, ok := strings.Cut(id, ":")
	if !ok {
		return "", "", fmt.Errorf("%w: %q has no tag separator", ErrMalformedReference, id)
	}
	return repository, tag, nil
}

// Ref is a container reference validated against the distribution grammar.
// It can be either a tagged reference (e.g., "docker.io/library/alpine:latest")
// or a digest reference (e.g., "docker.io/library/alpine@sha256:abc123...").
type Ref struct {
	raw    string
	tag    string // empty if the reference names no tag
	digest string // empty if tag ref
}

// ParseRef validates and normalizes a configured container reference.
// Examples:
//   - "submitty/autograding-default:latest" -> "docker.io/submitty/autograding-default:latest"
//   - "python" -> "docker.io/library/python:latest", with no explicit tag
//   - "ghcr.io/org/img@sha256:abc..." -> unchanged
func ParseRef(s string) (*Ref, error) {
	named, err := reference.ParseNormalizedNamed(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRef, err)
	}

	ref := &Ref{}
	if t, ok := named.(reference.Tagged); ok {
		ref.tag = t.Tag()
	}

	if canonical, ok := named.(reference.Canonical); ok {
		ref.digest = canonical.Digest().String()
		ref.raw = canonical.String()
		return ref, nil
	}

	ref.raw = reference.TagNameOnly(named).String()
	return ref, nil
}

// String returns the full normalized reference.
func (r *Ref) String() string {
	return r.raw
}

// Tag returns the tag written in the reference, or "" when it was left
// implicit or the reference is pinned by digest alone.
func (r *Ref) Tag() string {
	return r.tag
}

// IsDigest returns true if this reference pins a digest (@sha256:...).
func (r *Ref) IsDigest() bool {
	return r.digest != ""
}
