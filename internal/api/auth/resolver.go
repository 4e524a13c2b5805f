// Package auth resolves the current caller to an owner id. The real
// identity provider sits in front of this service; this package only
// defines the seam the handlers depend on.
package auth

import (
	"errors"
	"net/http"
)

// ErrNoIdentity is returned when the request carries no resolvable caller
var ErrNoIdentity = errors.New("no identity on request")

// IdentityResolver resolves an incoming request to an owner id
type IdentityResolver interface {
	Resolve(r *http.Request) (string, error)
}

// HeaderResolver trusts an upstream gateway to inject the caller id into
// a request header
type HeaderResolver struct {
	Header string
}

// NewHeaderResolver creates a resolver reading the given header,
// defaulting to X-User-ID
func NewHeaderResolver(header string) *HeaderResolver {
	if header == "" {
		header = "X-User-ID"
	}
	return &HeaderResolver{Header: header}
}

// Resolve returns the caller id from the configured header
func (r *HeaderResolver) Resolve(req *http.Request) (string, error) {
	ownerID := req.Header.Get(r.Header)
	if ownerID == "" {
		return "", ErrNoIdentity
	}
	return ownerID, nil
}
