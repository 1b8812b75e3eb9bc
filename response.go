package problemdetails

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
)

// Problem is the view of a problem details value required to write an HTTP
// response. Every Details value satisfies it regardless of extension type.
type Problem interface {
	error
	HTTPStatus() int
}

// WriteResponse encodes details with the given codec and writes it to w
// under the codec's content type. The response status comes from the
// details' status member, falling back to 500 Internal Server Error when it
// is unset or out of range.
func WriteResponse(w http.ResponseWriter, codec Codec, details Problem) error {
	body, err := codec.Encode(details)
	if err != nil {
		return fmt.Errorf("encoding problem details response: %w", err)
	}

	w.Header().Set("Content-Type", codec.ContentType())

	status := details.HTTPStatus()
	if !validStatus(status) {
		status = http.StatusInternalServerError
	}

	w.WriteHeader(status)

	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("writing problem details response: %w", err)
	}

	return nil
}

// WriteJSON writes details to w as application/problem+json.
func WriteJSON(w http.ResponseWriter, details Problem) error {
	return WriteResponse(w, NewJSONCodec(), details)
}

// WriteXML writes details to w as application/problem+xml.
func WriteXML(w http.ResponseWriter, details Problem) error {
	return WriteResponse(w, NewXMLCodec(), details)
}

// NewErrorHandler returns a function that converts an error into a problem
// details response written with the given codec. Errors that do not carry a
// Problem in their chain are logged and reported as an opaque 500 so that
// internal detail never leaks to the client.
func NewErrorHandler(logger *slog.Logger, codec Codec) func(w http.ResponseWriter, r *http.Request, err error) {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		var details Problem
		if !errors.As(err, &details) {
			logger.ErrorContext(r.Context(), "Error handler received an unhandled error", slog.Any("error", err))
			details = ServerError(r)
		}

		if writeErr := WriteResponse(w, codec, details); writeErr != nil {
			logger.ErrorContext(r.Context(), "Error handler failed to write problem details response", slog.Any("error", writeErr))
		}
	}
}
