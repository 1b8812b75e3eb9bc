package problemdetails

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
)

// member is a single named value in the flattened wire object.
type member struct {
	name  string
	value any
}

// The five standard member names defined by RFC 9457, reserved so that
// extension members can never change the protocol meaning of the payload.
const (
	memberType     = "type"
	memberStatus   = "status"
	memberTitle    = "title"
	memberDetail   = "detail"
	memberInstance = "instance"
)

func isReservedMember(name string) bool {
	switch name {
	case memberType, memberStatus, memberTitle, memberDetail, memberInstance:
		return true
	default:
		return false
	}
}

// appendMembers builds the flattened member set for d: the standard members
// in fixed order followed by the extension members sorted by name. A default
// problem type and unset members are omitted, and extension members that
// collide with a reserved name are dropped.
func (d Details[E]) appendMembers() ([]member, error) {
	const standardMembers = 5

	members := make([]member, 0, standardMembers)

	if !d.Type.IsDefault() {
		members = append(members, member{name: memberType, value: d.Type.String()})
	}

	if d.Status != 0 {
		if !validStatus(d.Status) {
			return nil, fmt.Errorf("%w: %d is outside the range 100-599", ErrInvalidStatusCode, d.Status)
		}

		members = append(members, member{name: memberStatus, value: d.Status})
	}

	if d.Title != "" {
		members = append(members, member{name: memberTitle, value: d.Title})
	}

	if d.Detail != "" {
		members = append(members, member{name: memberDetail, value: d.Detail})
	}

	if !d.Instance.IsDefault() {
		members = append(members, member{name: memberInstance, value: d.Instance.String()})
	}

	extensions, err := extensionMembers(d.Extensions)
	if err != nil {
		return nil, err
	}

	for _, name := range slices.Sorted(maps.Keys(extensions)) {
		if isReservedMember(name) {
			continue
		}

		members = append(members, member{name: name, value: extensions[name]})
	}

	return members, nil
}

// extensionMembers asks the extension value for its contribution to the
// flattened member set. A struct contributes its json tagged fields and a
// map contributes its keys; both are normalized through their JSON form so
// the format adapters only ever see generic values.
func extensionMembers(extensions any) (map[string]any, error) {
	switch extensions.(type) {
	case nil, struct{}:
		return nil, nil
	}

	data, err := json.Marshal(extensions)
	if err != nil {
		return nil, fmt.Errorf("marshaling extension members as JSON: %w", err)
	}

	// Extension payloads that serialize to JSON null, such as nil pointers
	// and nil maps, contribute no members.
	if string(data) == "null" {
		return nil, nil
	}

	var contributed map[string]any
	if err := json.Unmarshal(data, &contributed); err != nil {
		return nil, fmt.Errorf("flattening extension members: %w", err)
	}

	return contributed, nil
}

// memberConverter converts raw member values out of a format adapter's
// generic member map into the declared types of the standard members. Each
// wire syntax supplies its own implementation as JSON carries typed values
// where XML collapses everything to text.
type memberConverter interface {
	toString(name string, value any) (string, error)
	toStatus(name string, value any) (int, error)
}

// detailsFromMembers extracts and type checks the five standard members from
// the decoded member map, then hands everything left over to the extension
// value for reconstruction.
func detailsFromMembers[E any](object map[string]any, conv memberConverter) (Details[E], error) {
	var details Details[E]

	// Standard members explicitly set to null are treated as absent rather
	// than mismatched.
	for name, value := range object {
		if value == nil && isReservedMember(name) {
			delete(object, name)
		}
	}

	if value, ok := object[memberType]; ok {
		uri, err := conv.toString(memberType, value)
		if err != nil {
			return details, err
		}

		if details.Type, err = NewType(uri); err != nil {
			return details, err
		}

		delete(object, memberType)
	}

	if value, ok := object[memberStatus]; ok {
		code, err := conv.toStatus(memberStatus, value)
		if err != nil {
			return details, err
		}

		details.Status = code

		delete(object, memberStatus)
	}

	if value, ok := object[memberTitle]; ok {
		title, err := conv.toString(memberTitle, value)
		if err != nil {
			return details, err
		}

		details.Title = title

		delete(object, memberTitle)
	}

	if value, ok := object[memberDetail]; ok {
		detail, err := conv.toString(memberDetail, value)
		if err != nil {
			return details, err
		}

		details.Detail = detail

		delete(object, memberDetail)
	}

	if value, ok := object[memberInstance]; ok {
		uri, err := conv.toString(memberInstance, value)
		if err != nil {
			return details, err
		}

		if details.Instance, err = NewType(uri); err != nil {
			return details, err
		}

		delete(object, memberInstance)
	}

	if err := rebuildExtensions(object, &details.Extensions); err != nil {
		return details, err
	}

	return details, nil
}

// rebuildExtensions hands the unconsumed members to the extension value. A
// map adopts the remainder verbatim and a struct is rebuilt from its JSON
// form, then checked against its validation tags so that required members
// absent from the input surface as ErrMissingField. Type mismatches in
// extension members are only detected where the JSON decoder or the
// validation tags catch them; this mirrors the documented RFC compliance
// caveat for unknown members.
func rebuildExtensions(remainder map[string]any, into any) error {
	switch extensions := into.(type) {
	case *struct{}:
		return nil
	case *map[string]any:
		*extensions = remainder
		return nil
	}

	data, err := json.Marshal(remainder)
	if err != nil {
		return fmt.Errorf("marshaling extension members as JSON: %w", err)
	}

	if err := json.Unmarshal(data, into); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return fmt.Errorf("%w: extension member %q is not a %s", ErrTypeMismatch, typeErr.Field, typeErr.Type)
		}

		return fmt.Errorf("rebuilding extension members: %w", err)
	}

	return validateExtensions(into)
}
