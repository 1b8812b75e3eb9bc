package problemdetails

import (
	"encoding/xml"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// xmlNamespace is the namespace registered for the XML problem details
// format in RFC 7807 appendix A, carried forward unchanged by RFC 9457.
const xmlNamespace = "urn:ietf:rfc:7807"

// MarshalXML implements the xml.Marshaler interface for Details. The
// flattened member set becomes a single <problem> element with one child
// element per member; composite extension values nest recursively and slices
// repeat the member element, so numeric and string values collapse to text.
func (d Details[E]) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	members, err := d.appendMembers()
	if err != nil {
		return err
	}

	start.Name = xml.Name{Space: "", Local: "problem"}
	start.Attr = []xml.Attr{{Name: xml.Name{Space: "", Local: "xmlns"}, Value: xmlNamespace}}

	if err := e.EncodeToken(start); err != nil {
		return fmt.Errorf("encoding problem element: %w", err)
	}

	for _, m := range members {
		if err := encodeXMLMember(e, m.name, m.value); err != nil {
			return err
		}
	}

	if err := e.EncodeToken(start.End()); err != nil {
		return fmt.Errorf("encoding problem element: %w", err)
	}

	return nil
}

// UnmarshalXML implements the xml.Unmarshaler interface for Details. The
// child elements are read back into a generic member map and the standard
// members are typed-converted from their text form.
func (d *Details[E]) UnmarshalXML(dec *xml.Decoder, start xml.StartElement) error {
	value, err := decodeXMLValue(dec, start)
	if err != nil {
		return err
	}

	object, ok := value.(map[string]any)
	if !ok {
		object = make(map[string]any)
	}

	details, err := detailsFromMembers[E](object, xmlMemberConverter{})
	if err != nil {
		return err
	}

	*d = details

	return nil
}

// encodeXMLMember writes one member as a child element. Slices repeat the
// element per item and maps recurse with their keys sorted for deterministic
// output.
func encodeXMLMember(e *xml.Encoder, name string, value any) error {
	switch v := value.(type) {
	case []any:
		for _, item := range v {
			if err := encodeXMLMember(e, name, item); err != nil {
				return err
			}
		}

		return nil
	case map[string]any:
		start := xml.StartElement{Name: xml.Name{Space: "", Local: name}, Attr: nil}

		if err := e.EncodeToken(start); err != nil {
			return fmt.Errorf("encoding member %q as XML: %w", name, err)
		}

		for _, key := range slices.Sorted(maps.Keys(v)) {
			if err := encodeXMLMember(e, key, v[key]); err != nil {
				return err
			}
		}

		if err := e.EncodeToken(start.End()); err != nil {
			return fmt.Errorf("encoding member %q as XML: %w", name, err)
		}

		return nil
	default:
		start := xml.StartElement{Name: xml.Name{Space: "", Local: name}, Attr: nil}

		if err := e.EncodeElement(xmlText(v), start); err != nil {
			return fmt.Errorf("encoding member %q as XML: %w", name, err)
		}

		return nil
	}
}

// xmlText renders a scalar member value as text. Integral JSON numbers must
// not pick up a decimal point or exponent on their way through float64.
func xmlText(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// decodeXMLValue decodes the content of one element, returning either its
// text or, when it has element children, a nested member map in which
// repeated child names accumulate into a slice.
func decodeXMLValue(dec *xml.Decoder, start xml.StartElement) (any, error) {
	var (
		text     strings.Builder
		children map[string]any
	)

	for {
		token, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: decoding problem details from XML: %w", ErrMalformedInput, err)
		}

		switch tok := token.(type) {
		case xml.CharData:
			text.Write(tok)
		case xml.StartElement:
			value, err := decodeXMLValue(dec, tok)
			if err != nil {
				return nil, err
			}

			if children == nil {
				children = make(map[string]any)
			}

			addXMLMember(children, tok.Name.Local, value)
		case xml.EndElement:
			if children != nil {
				return children, nil
			}

			return text.String(), nil
		}
	}
}

// addXMLMember inserts a decoded child into the member map, turning repeated
// names into a slice in document order.
func addXMLMember(object map[string]any, name string, value any) {
	existing, ok := object[name]
	if !ok {
		object[name] = value
		return
	}

	if items, ok := existing.([]any); ok {
		object[name] = append(items, value)
		return
	}

	object[name] = []any{existing, value}
}

// xmlMemberConverter converts standard members out of their XML text form.
type xmlMemberConverter struct{}

func (xmlMemberConverter) toString(name string, value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("%w: member %q is not a string", ErrTypeMismatch, name)
	}

	return s, nil
}

func (xmlMemberConverter) toStatus(name string, value any) (int, error) {
	s, ok := value.(string)
	if !ok {
		return 0, fmt.Errorf("%w: member %q is not an integer", ErrTypeMismatch, name)
	}

	code, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: member %q is not an integer: %w", ErrTypeMismatch, name, err)
	}

	return code, nil
}
