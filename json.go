package problemdetails

import (
	"encoding/json"
	"fmt"
	"math"
)

// MarshalJSON implements the json.Marshaler interface for Details. The
// standard members and the extension members are written as one flat JSON
// object; unset members are omitted entirely rather than written as null,
// and a default problem type is not written.
func (d Details[E]) MarshalJSON() ([]byte, error) {
	members, err := d.appendMembers()
	if err != nil {
		return nil, err
	}

	object := make(map[string]any, len(members))
	for _, m := range members {
		object[m.name] = m.value
	}

	data, err := json.Marshal(object)
	if err != nil {
		return nil, fmt.Errorf("marshaling problem details as JSON: %w", err)
	}

	return data, nil
}

// UnmarshalJSON implements the json.Unmarshaler interface for Details. The
// standard members are extracted and type checked, and everything left over
// is rebuilt into the extension value.
func (d *Details[E]) UnmarshalJSON(data []byte) error {
	var object map[string]any
	if err := json.Unmarshal(data, &object); err != nil {
		return fmt.Errorf("%w: decoding problem details from JSON: %w", ErrMalformedInput, err)
	}

	details, err := detailsFromMembers[E](object, jsonMemberConverter{})
	if err != nil {
		return err
	}

	*d = details

	return nil
}

// jsonMemberConverter converts standard members out of the generic values
// produced by encoding/json.
type jsonMemberConverter struct{}

func (jsonMemberConverter) toString(name string, value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("%w: member %q is not a string", ErrTypeMismatch, name)
	}

	return s, nil
}

func (jsonMemberConverter) toStatus(name string, value any) (int, error) {
	number, ok := value.(float64)
	if !ok || number != math.Trunc(number) {
		return 0, fmt.Errorf("%w: member %q is not an integer", ErrTypeMismatch, name)
	}

	return int(number), nil
}
