package service

import "errors"

// Validation errors.
var (
	ErrNameRequired     = errors.New("name is required")
	ErrEmailRequired    = errors.New("email is required")
	ErrPasswordRequired = errors.New("password is required")
	ErrShowIDRequired   = errors.New("showId is required")
)

// Operation outcomes. Every error returned by this package is one of these,
// one of the validation errors above, or a failure wrapping one of them.
var (
	ErrNameConflict  = errors.New("that name is already taken")
	ErrEmailConflict = errors.New("that email is already registered")
	ErrCreateFailed  = errors.New("could not create user")
	ErrNotFound      = errors.New("user not found")
	ErrForbidden     = errors.New("forbidden")
	ErrDuplicateShow = errors.New("show is already in the watchlist")
	ErrFetchFailed   = errors.New("could not fetch watchlist")
	ErrRemoveFailed  = errors.New("could not remove show from watchlist")
	ErrUnexpected    = errors.New("unexpected error")
)

// failure pairs an outcome with the underlying cause. errors.Is matches
// both; Cause exposes the cause for diagnostics.
type failure struct {
	kind  error
	cause error
}

func fail(kind, cause error) error {
	return &failure{kind: kind, cause: cause}
}

func (f *failure) Error() string {
	return f.kind.Error() + ": " + f.cause.Error()
}

func (f *failure) Unwrap() []error {
	return []error{f.kind, f.cause}
}

// Cause returns the underlying failure carried by err, or nil if err is a
// bare outcome. The result is meant for logs and diagnostic echoes only.
func Cause(err error) error {
	var f *failure
	if errors.As(err, &f) {
		return f.cause
	}
	return nil
}

// Outcome returns the error kind of err with any cause stripped.
func Outcome(err error) error {
	var f *failure
	if errors.As(err, &f) {
		return f.kind
	}
	return err
}
