package data

import "errors"

// ErrNotFound is returned by repositories when the requested row does not
// exist. Callers higher up merge this with policy denials so that a hidden
// resource and an absent one are indistinguishable.
var ErrNotFound = errors.New("record not found")
