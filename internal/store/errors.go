package store

import "errors"

// ErrNotFound is returned by patch and delete operations that reference
// an id with no matching document. Reads return empty results instead.
var ErrNotFound = errors.New("document not found")
