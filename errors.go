package problemdetails

import "errors"

// Sentinel errors reported synchronously at the point of construction,
// encoding, or decoding. They are wrapped with contextual detail so callers
// should match them with errors.Is.
var (
	// ErrInvalidURI indicates a type or instance value that is not a valid
	// URI reference.
	ErrInvalidURI = errors.New("invalid URI reference")

	// ErrInvalidStatusCode indicates a status code outside the valid HTTP
	// range of 100-599.
	ErrInvalidStatusCode = errors.New("invalid HTTP status code")

	// ErrMalformedInput indicates raw bytes that are not well formed JSON or
	// XML.
	ErrMalformedInput = errors.New("malformed input")

	// ErrTypeMismatch indicates a member present in the input with the wrong
	// declared type.
	ErrTypeMismatch = errors.New("member type mismatch")

	// ErrMissingField indicates a required extension member that is absent
	// from the input.
	ErrMissingField = errors.New("missing required member")
)
