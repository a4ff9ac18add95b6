package service

import "errors"

// ErrNotFound is returned when a resource is absent OR hidden from the
// caller by policy. The two cases are deliberately merged: callers must not
// be able to tell that a hidden resource exists.
var ErrNotFound = errors.New("resource not found")

// RedirectError is a soft denial: the caller may not perform the requested
// action but is sent to the resource's canonical location instead of being
// told it does not exist. It is only produced for a non-owner trying to edit
// a post.
type RedirectError struct {
	Location string
}

func (e *RedirectError) Error() string {
	return "redirect to " + e.Location
}
