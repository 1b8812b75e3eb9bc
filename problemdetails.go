// Package problemdetails represents, serializes, and deserializes error
// payloads in accordance with RFC 9457 (Problem Details for HTTP APIs).
//
// The generic [Details] type carries the five standard problem members along
// with strongly typed, application specific extension members that are
// flattened into the top level of the serialized object. JSON and XML wire
// formats are supported, together with thin net/http response adapters.
//
// Extension members may be supplied either as a struct whose json tagged
// fields become top level members, or as a [Map] when the extension shape is
// not known at compile time. Callers are responsible for keeping extension
// member names disjoint from the five standard names; on collision the
// standard member always wins so that the protocol meaning of the payload is
// preserved.
package problemdetails

import (
	"fmt"
	"net/http"
)

type (
	// NoExtensions is the extension payload of a problem that carries no
	// extension members.
	NoExtensions = struct{}

	// Map is a dynamic extension payload for callers without a compile time
	// known extension shape. Every key becomes a top level member of the
	// serialized problem.
	Map = map[string]any
)

// Details is an RFC 9457 problem details object with extension members of
// type E.
//
// The zero value is ready to use: every standard member is unset and Type is
// the default "about:blank". Builder methods follow value semantics, each
// returning an updated copy, so a Details never shares mutable state once
// built. [WithExtensions] is the one builder step that changes the extension
// type and is therefore a package level function rather than a method.
type Details[E any] struct {
	// Type is a URI reference that identifies the specific problem type.
	Type Type
	// Status is the HTTP status code generated by the origin server for this
	// occurrence of the problem. Zero means unset.
	Status int
	// Title is a short, human-readable summary of the problem type.
	Title string
	// Detail is a human-readable explanation specific to this occurrence of
	// the problem.
	Detail string
	// Instance is a URI reference that identifies the specific occurrence of
	// the problem. The zero value is omitted from the wire form.
	Instance Type
	// Extensions holds the application specific members that are flattened
	// into the top level of the wire object.
	Extensions E
}

// New creates a Details with every standard member unset and no extension
// members.
func New() Details[NoExtensions] {
	return Details[NoExtensions]{}
}

// FromStatus creates a Details for the given HTTP status code with Title
// pre-filled from the standard reason phrase where one is known. It returns
// ErrInvalidStatusCode if code is outside the 100-599 range.
func FromStatus(code int) (Details[NoExtensions], error) {
	if !validStatus(code) {
		return Details[NoExtensions]{}, fmt.Errorf("%w: %d is outside the range 100-599", ErrInvalidStatusCode, code)
	}

	return Details[NoExtensions]{Status: code, Title: http.StatusText(code)}, nil
}

// WithType returns a copy of d with the problem type set to t. The original
// Details is not modified.
func (d Details[E]) WithType(t Type) Details[E] {
	d.Type = t
	return d
}

// WithStatus returns a copy of d with the status code set. The code is not
// range checked here; encoding a Details with a status outside 100-599 fails
// with ErrInvalidStatusCode.
func (d Details[E]) WithStatus(code int) Details[E] {
	d.Status = code
	return d
}

// WithTitle returns a copy of d with the title set.
func (d Details[E]) WithTitle(title string) Details[E] {
	d.Title = title
	return d
}

// WithDetail returns a copy of d with the detail message set.
func (d Details[E]) WithDetail(detail string) Details[E] {
	d.Detail = detail
	return d
}

// WithInstance returns a copy of d with the problem occurrence URI set to t.
func (d Details[E]) WithInstance(t Type) Details[E] {
	d.Instance = t
	return d
}

// WithExtensions returns a Details carrying the given extension value in
// place of the previous one. This is the sole builder step that changes the
// extension type parameter, turning a Details[P] into a Details[E].
func WithExtensions[E, P any](d Details[P], extensions E) Details[E] {
	return Details[E]{
		Type:       d.Type,
		Status:     d.Status,
		Title:      d.Title,
		Detail:     d.Detail,
		Instance:   d.Instance,
		Extensions: extensions,
	}
}

// Error implements the `error` interface, allowing Details values to be
// passed through any API that reports failures as errors.
func (d Details[E]) Error() string {
	return fmt.Sprintf("%d %s: %s", d.Status, d.Title, d.Detail)
}

// HTTPStatus returns the status member for response writing. It satisfies
// the [Problem] interface consumed by the response adapters.
func (d Details[E]) HTTPStatus() int { return d.Status }

func validStatus(code int) bool { return code >= 100 && code <= 599 }
