package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail indicates a registration against an email already in use.
	ErrDuplicateEmail = errors.New("email already in use")
	// ErrInvalidCredentials indicates login failure. The same error covers an
	// unknown email and a wrong password so responses cannot be used to probe
	// which addresses are registered.
	ErrInvalidCredentials = errors.New("incorrect username or password")
	// ErrInvalidToken covers malformed, forged, and expired bearer tokens alike.
	ErrInvalidToken = errors.New("could not validate credentials")
	// ErrUpstreamFetch indicates the external quote source failed.
	ErrUpstreamFetch = errors.New("failed to retrieve dollar value")
)

// UserSafeMessage returns a message suitable for API responses. Unknown errors
// collapse to a generic string so internals never leak to clients.
func UserSafeMessage(err error) string {
	switch {
	case errors.Is(err, ErrDuplicateEmail),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrInvalidToken),
		errors.Is(err, ErrUpstreamFetch),
		errors.Is(err, ErrNotFound):
		return err.Error()
	default:
		return "internal error"
	}
}
