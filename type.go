package problemdetails

import (
	"fmt"
	"net/url"
)

// DefaultType is the URI assumed by RFC 9457 for the "type" member when no
// more specific problem type is given.
const DefaultType = "about:blank"

// Type is a URI reference that identifies a problem type or a problem
// occurrence. The zero value represents the RFC 9457 default "about:blank";
// an explicit "about:blank" is normalized to the zero value on construction
// so that the two forms compare and serialize identically.
type Type struct {
	uri string
}

// NewType parses uri as a URI reference and wraps it in a Type. It returns
// ErrInvalidURI if uri does not conform to the URI reference grammar.
func NewType(uri string) (Type, error) {
	if uri == "" || uri == DefaultType {
		return Type{}, nil
	}

	if _, err := url.Parse(uri); err != nil {
		return Type{}, fmt.Errorf("%w: parsing %q as a URI reference: %w", ErrInvalidURI, uri, err)
	}

	return Type{uri: uri}, nil
}

// MustType wraps NewType and panics on invalid input. It is intended for
// package level problem type constants.
func MustType(uri string) Type {
	t, err := NewType(uri)
	if err != nil {
		panic(err)
	}

	return t
}

// IsDefault reports whether t is the default "about:blank" type.
func (t Type) IsDefault() bool { return t.uri == "" }

// String returns the canonical string form of the type URI, "about:blank"
// for the zero value.
func (t Type) String() string {
	if t.uri == "" {
		return DefaultType
	}

	return t.uri
}

// MarshalText implements the encoding.TextMarshaler interface for Type.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface for Type.
func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := NewType(string(text))
	if err != nil {
		return err
	}

	*t = parsed

	return nil
}
