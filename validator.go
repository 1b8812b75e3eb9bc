package problemdetails

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is a singleton instance of *validator.Validate used for extension
// record validation to take advantage of its struct caching. It resolves
// member names through json tags so reported names match the wire form.
var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		const jsonTags = 2 // `json:"member,omitempty"`

		name := strings.SplitN(f.Tag.Get("json"), ",", jsonTags)[0]
		if name == "-" {
			return ""
		}

		return name
	})
}

// validateExtensions checks a reconstructed static extension record against
// its validation tags. Required members absent from the input surface as
// ErrMissingField; any other failed constraint is reported as
// ErrTypeMismatch. Non struct extension values pass through untouched.
func validateExtensions(extensions any) error {
	value := reflect.ValueOf(extensions)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil
		}

		value = value.Elem()
	}

	if value.Kind() != reflect.Struct {
		return nil
	}

	err := validate.Struct(value.Interface())
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return fmt.Errorf("validating extension members: %w", err)
	}

	for _, fieldErr := range errs {
		if fieldErr.Tag() == "required" {
			return fmt.Errorf("%w: %s", ErrMissingField, fieldErr.Field())
		}
	}

	return fmt.Errorf("%w: %s", ErrTypeMismatch, describeValidationError(errs[0]))
}

func describeValidationError(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return err.Field() + " is required"
	case "email":
		return err.Field() + " should be a valid email"
	default:
		desc := fmt.Sprintf("%s should be %s", err.Field(), err.Tag())
		if err.Param() != "" {
			desc += "=" + err.Param()
		}

		return desc
	}
}
