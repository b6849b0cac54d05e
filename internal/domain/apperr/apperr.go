// Package apperr carries business-rule failures as typed values so services
// can return them and handlers can translate them to HTTP statuses.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a business failure.
type Kind int

const (
	// KindAuthentication covers missing credentials or sessions.
	KindAuthentication Kind = iota
	// KindAuthorization covers rule violations: duplicate email, duplicate
	// rating, rating a trade that is not finished.
	KindAuthorization
	// KindBadRequest covers malformed preconditions: trade absent, actor is
	// not a participant.
	KindBadRequest
	// KindNotFound covers an absent resource.
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindAuthentication:
		return "authentication"
	case KindAuthorization:
		return "authorization"
	case KindBadRequest:
		return "bad_request"
	case KindNotFound:
		return "not_found"
	}
	return "unknown"
}

// Error is a classified business failure.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func Authentication(msg string) *Error { return New(KindAuthentication, msg) }
func Authorization(msg string) *Error  { return New(KindAuthorization, msg) }
func BadRequest(msg string) *Error     { return New(KindBadRequest, msg) }
func NotFound(msg string) *Error       { return New(KindNotFound, msg) }

// KindOf returns the failure kind and true when err (or anything it wraps)
// is an apperr.Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
