package problemdetails

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Violation describes a single constraint violated by a request member. The
// pointer is a JSON pointer to the offending member in the request body.
type Violation struct {
	Detail  string `json:"detail"`
	Pointer string `json:"pointer"`
}

// ViolationsExtension is the extension payload carried by constraint
// violation problems.
type ViolationsExtension struct {
	Violations []Violation `json:"violations"`
}

// BadRequest creates a problem details value for malformed requests.
func BadRequest(r *http.Request) Details[NoExtensions] {
	return Details[NoExtensions]{
		Status:   http.StatusBadRequest,
		Title:    http.StatusText(http.StatusBadRequest),
		Detail:   "The request is invalid or malformed",
		Instance: requestInstance(r),
	}
}

// Unauthorized creates a problem details value for unauthenticated requests.
func Unauthorized(r *http.Request) Details[NoExtensions] {
	return Details[NoExtensions]{
		Status:   http.StatusUnauthorized,
		Title:    http.StatusText(http.StatusUnauthorized),
		Detail:   "You must be authenticated to " + r.Method + " this resource",
		Instance: requestInstance(r),
	}
}

// Forbidden creates a problem details value for requests that lack the
// necessary permissions.
func Forbidden(r *http.Request) Details[NoExtensions] {
	return Details[NoExtensions]{
		Status:   http.StatusForbidden,
		Title:    http.StatusText(http.StatusForbidden),
		Detail:   "You do not have the necessary permissions to " + r.Method + " this resource",
		Instance: requestInstance(r),
	}
}

// NotFound creates a problem details value for missing resources.
func NotFound(r *http.Request) Details[NoExtensions] {
	return Details[NoExtensions]{
		Status:   http.StatusNotFound,
		Title:    http.StatusText(http.StatusNotFound),
		Detail:   "The requested resource was not found",
		Instance: requestInstance(r),
	}
}

// Conflict creates a problem details value for duplicate resource requests.
func Conflict(r *http.Request) Details[NoExtensions] {
	return Details[NoExtensions]{
		Status:   http.StatusConflict,
		Title:    http.StatusText(http.StatusConflict),
		Detail:   "A resource already exists with the specified identifier",
		Instance: requestInstance(r),
	}
}

// ServerError creates a problem details value for unexpected internal
// errors.
func ServerError(r *http.Request) Details[NoExtensions] {
	return Details[NoExtensions]{
		Status:   http.StatusInternalServerError,
		Title:    http.StatusText(http.StatusInternalServerError),
		Detail:   "The server encountered an unexpected internal error",
		Instance: requestInstance(r),
	}
}

// ConstraintViolation creates a problem details value for requests that
// violate one or more validation constraints. The violations describe the
// specific members that failed.
func ConstraintViolation(r *http.Request, violations ...Violation) Details[ViolationsExtension] {
	if violations == nil {
		violations = []Violation{}
	}

	return WithExtensions(
		Details[NoExtensions]{
			Status:   http.StatusUnprocessableEntity,
			Title:    "Constraint Violation",
			Detail:   "The request data violated one or more validation constraints",
			Instance: requestInstance(r),
		},
		ViolationsExtension{Violations: violations},
	)
}

// FromValidationErrors converts validation errors produced by
// go-playground/validator into a ConstraintViolation problem, one violation
// per failed member with a JSON pointer into the request body.
func FromValidationErrors(r *http.Request, errs validator.ValidationErrors) Details[ViolationsExtension] {
	violations := make([]Violation, 0, len(errs))

	for _, err := range errs {
		violations = append(violations, Violation{
			Detail:  describeValidationError(err),
			Pointer: "/" + strings.Join(strings.Split(err.Namespace(), ".")[1:], "/"),
		})
	}

	return ConstraintViolation(r, violations...)
}

// requestInstance derives the problem occurrence URI from the request path.
func requestInstance(r *http.Request) Type {
	instance, err := NewType(r.URL.Path)
	if err != nil {
		return Type{}
	}

	return instance
}
