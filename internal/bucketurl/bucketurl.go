// Package bucketurl parses gs:// source URLs into a bucket reference.
//
// The bucket name is the URL authority component and the object prefix is the
// path component with any leading slashes stripped. An empty prefix is valid
// and means "whole bucket".
package bucketurl

import (
	"net/url"
	"strings"

	"github.com/infraops/gscp/errors"
)

// Scheme is the URL scheme accepted for source URLs.
const Scheme = "gs"

// Ref identifies a bucket and an object-key prefix within it.
// The prefix never begins with a slash.
type Ref struct {
	Bucket string
	Prefix string
}

// Parse parses a raw source URL into a Ref.
// Anything that is not a scheme-qualified gs:// URL with a bucket name
// fails with ErrInvalidURL.
func Parse(raw string) (Ref, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Ref{}, errors.NewError("parse", errors.ErrInvalidURL).WithMessage(err.Error())
	}
	if u.Scheme != Scheme {
		return Ref{}, errors.NewError("parse", errors.ErrInvalidURL).
			WithMessage("source URL must use the " + Scheme + ":// scheme, got " + raw)
	}
	if u.Host == "" {
		return Ref{}, errors.NewError("parse", errors.ErrInvalidURL).
			WithMessage("source URL is missing a bucket name: " + raw)
	}

	return Ref{
		Bucket: u.Host,
		Prefix: strings.TrimLeft(u.Path, "/"),
	}, nil
}
