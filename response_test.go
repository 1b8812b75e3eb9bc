package problemdetails_test

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nickbryan/slogutil"
	"github.com/nickbryan/slogutil/slogmem"

	"github.com/nickbryan/problemdetails"
	"github.com/nickbryan/problemdetails/internal/testutil"
	"github.com/nickbryan/problemdetails/problemtest"
)

func TestWriteResponse(t *testing.T) {
	t.Parallel()

	t.Run("writes the status, content type and encoded body", func(t *testing.T) {
		t.Parallel()

		details := problemdetails.New().
			WithStatus(http.StatusForbidden).
			WithTitle("You do not have enough credit.")

		w := httptest.NewRecorder()
		if err := problemdetails.WriteJSON(w, details); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if w.Code != http.StatusForbidden {
			t.Errorf("want status %d, got: %d", http.StatusForbidden, w.Code)
		}

		if diff := cmp.Diff(w.Header().Get("Content-Type"), "application/problem+json"); diff != "" {
			t.Errorf("content type does not match expected:\n%s", diff)
		}

		if diff := testutil.DiffJSON(w.Body.String(), `{"status": 403, "title": "You do not have enough credit."}`); diff != "" {
			t.Errorf("body does not match expected:\n%s", diff)
		}
	})

	t.Run("falls back to 500 when the status member is unset", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		if err := problemdetails.WriteJSON(w, problemdetails.New().WithTitle("Unset status")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if w.Code != http.StatusInternalServerError {
			t.Errorf("want status %d, got: %d", http.StatusInternalServerError, w.Code)
		}
	})

	t.Run("writes XML under the problem+xml content type", func(t *testing.T) {
		t.Parallel()

		details := problemdetails.New().WithStatus(http.StatusNotFound).WithTitle("Not Found")

		w := httptest.NewRecorder()
		if err := problemdetails.WriteXML(w, details); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if diff := cmp.Diff(w.Header().Get("Content-Type"), "application/problem+xml"); diff != "" {
			t.Errorf("content type does not match expected:\n%s", diff)
		}

		want := `<problem xmlns="urn:ietf:rfc:7807"><status>404</status><title>Not Found</title></problem>`
		if diff := cmp.Diff(w.Body.String(), want); diff != "" {
			t.Errorf("body does not match expected:\n%s", diff)
		}
	})

	t.Run("reports encoding failures without writing the response", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		err := problemdetails.WriteJSON(w, problemdetails.New().WithStatus(700))

		if !errors.Is(err, problemdetails.ErrInvalidStatusCode) {
			t.Fatalf("want error %v, got: %v", problemdetails.ErrInvalidStatusCode, err)
		}

		if w.Body.Len() != 0 {
			t.Errorf("want empty body, got: %s", w.Body.String())
		}
	})
}

func TestNewErrorHandler(t *testing.T) {
	t.Parallel()

	t.Run("writes an error carrying problem details as its own response", func(t *testing.T) {
		t.Parallel()

		logger, logs := slogutil.NewInMemoryLogger(slog.LevelDebug)
		handle := problemdetails.NewErrorHandler(logger, problemdetails.NewJSONCodec())

		req := problemtest.NewRequest("/tests")
		w := httptest.NewRecorder()

		handle(w, req, problemdetails.NotFound(req))

		if w.Code != http.StatusNotFound {
			t.Errorf("want status %d, got: %d", http.StatusNotFound, w.Code)
		}

		want := `{
			"status": 404,
			"title": "Not Found",
			"detail": "The requested resource was not found",
			"instance": "/tests"
		}`
		if diff := testutil.DiffJSON(w.Body.String(), want); diff != "" {
			t.Errorf("body does not match expected:\n%s", diff)
		}

		if logs.Len() != 0 {
			t.Errorf("want no logs, got: %+v", logs.AsSliceOfNestedKeyValuePairs())
		}
	})

	t.Run("unwraps problem details from a wrapped error chain", func(t *testing.T) {
		t.Parallel()

		logger, _ := slogutil.NewInMemoryLogger(slog.LevelDebug)
		handle := problemdetails.NewErrorHandler(logger, problemdetails.NewJSONCodec())

		req := problemtest.NewRequest("/tests")
		w := httptest.NewRecorder()

		handle(w, req, fmt.Errorf("calling action: %w", problemdetails.Forbidden(req)))

		if w.Code != http.StatusForbidden {
			t.Errorf("want status %d, got: %d", http.StatusForbidden, w.Code)
		}
	})

	t.Run("logs unhandled errors and reports an opaque server error", func(t *testing.T) {
		t.Parallel()

		logger, logs := slogutil.NewInMemoryLogger(slog.LevelDebug)
		handle := problemdetails.NewErrorHandler(logger, problemdetails.NewJSONCodec())

		req := problemtest.NewRequest("/tests")
		w := httptest.NewRecorder()

		handle(w, req, errors.New("connection reset"))

		if w.Code != http.StatusInternalServerError {
			t.Errorf("want status %d, got: %d", http.StatusInternalServerError, w.Code)
		}

		want := `{
			"status": 500,
			"title": "Internal Server Error",
			"detail": "The server encountered an unexpected internal error",
			"instance": "/tests"
		}`
		if diff := testutil.DiffJSON(w.Body.String(), want); diff != "" {
			t.Errorf("body does not match expected:\n%s", diff)
		}

		query := slogmem.RecordQuery{
			Level:   slog.LevelError,
			Message: "Error handler received an unhandled error",
			Attrs:   map[string]slog.Value{"error": slog.AnyValue("connection reset")},
		}
		if ok, diff := logs.Contains(query); !ok {
			t.Errorf("logs do not contain the expected record:\n%s", diff)
		}
	})
}
