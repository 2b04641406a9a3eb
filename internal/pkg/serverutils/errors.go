package serverutils

import "errors"

// User-input errors. These surface verbatim as 400s; everything else is
// collapsed into an opaque 500 so internal causes never leak to the client.
var (
	ErrNoSources         = errors.New("provide at least one document or URL")
	ErrSessionNotIndexed = errors.New("you must upload documents first")
)

// IsClientError reports whether err belongs to the user-input category.
func IsClientError(err error) bool {
	return errors.Is(err, ErrNoSources) || errors.Is(err, ErrSessionNotIndexed)
}
