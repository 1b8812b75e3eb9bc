package problemdetails

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

// Content types registered for the problem details wire formats.
const (
	ContentTypeJSON = "application/problem+json"
	ContentTypeXML  = "application/problem+xml"
)

// Codec translates problem details values to and from one wire syntax. It is
// the serialize-to-bytes/content-type contract consumed by the response
// adapters; the generic merge logic lives on Details itself so a Codec never
// depends on the concrete extension type.
type Codec interface {
	// ContentType returns the media type of the codec's wire syntax.
	ContentType() string
	// Encode serializes the given problem details value to bytes, returning
	// an error if encoding fails.
	Encode(details any) ([]byte, error)
	// Decode deserializes data into the given problem details pointer. It
	// returns an error wrapping ErrMalformedInput if data is not well formed
	// for the codec's wire syntax.
	Decode(data []byte, into any) error
}

// JSONCodec encodes and decodes problem details as application/problem+json.
type JSONCodec struct{}

// NewJSONCodec creates a new JSONCodec instance.
func NewJSONCodec() JSONCodec {
	return JSONCodec{}
}

// ContentType returns the application/problem+json media type.
func (c JSONCodec) ContentType() string { return ContentTypeJSON }

// Encode serializes the given problem details value as JSON.
func (c JSONCodec) Encode(details any) ([]byte, error) {
	data, err := json.Marshal(details)
	if err != nil {
		return nil, fmt.Errorf("encoding problem details as JSON: %w", err)
	}

	return data, nil
}

// Decode deserializes JSON data into the given problem details pointer.
func (c JSONCodec) Decode(data []byte, into any) error {
	if err := json.Unmarshal(data, into); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) || errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: decoding problem details from JSON: %w", ErrMalformedInput, err)
		}

		return fmt.Errorf("decoding problem details from JSON: %w", err)
	}

	return nil
}

// XMLCodec encodes and decodes problem details as application/problem+xml.
type XMLCodec struct{}

// NewXMLCodec creates a new XMLCodec instance.
func NewXMLCodec() XMLCodec {
	return XMLCodec{}
}

// ContentType returns the application/problem+xml media type.
func (c XMLCodec) ContentType() string { return ContentTypeXML }

// Encode serializes the given problem details value as XML.
func (c XMLCodec) Encode(details any) ([]byte, error) {
	data, err := xml.Marshal(details)
	if err != nil {
		return nil, fmt.Errorf("encoding problem details as XML: %w", err)
	}

	return data, nil
}

// Decode deserializes XML data into the given problem details pointer.
func (c XMLCodec) Decode(data []byte, into any) error {
	if err := xml.Unmarshal(data, into); err != nil {
		var syntaxErr *xml.SyntaxError
		if errors.As(err, &syntaxErr) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: decoding problem details from XML: %w", ErrMalformedInput, err)
		}

		return fmt.Errorf("decoding problem details from XML: %w", err)
	}

	return nil
}
