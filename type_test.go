package problemdetails_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nickbryan/problemdetails"
)

func TestNewType(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		uri         string
		wantString  string
		wantDefault bool
		wantErr     error
	}{
		"an empty string is the default type": {
			uri:         "",
			wantString:  "about:blank",
			wantDefault: true,
		},
		"an explicit about:blank normalizes to the default type": {
			uri:         "about:blank",
			wantString:  "about:blank",
			wantDefault: true,
		},
		"an absolute URI is kept in its canonical form": {
			uri:        "https://example.com/probs/out-of-credit",
			wantString: "https://example.com/probs/out-of-credit",
		},
		"a relative URI reference is accepted": {
			uri:        "/account/12345/msgs/abc",
			wantString: "/account/12345/msgs/abc",
		},
		"an invalid percent escape is rejected": {
			uri:     "https://example.com/%zz",
			wantErr: problemdetails.ErrInvalidURI,
		},
		"a control character is rejected": {
			uri:     "https://example.com/probs/\x00",
			wantErr: problemdetails.ErrInvalidURI,
		},
	}

	for testName, testCase := range testCases {
		t.Run(testName, func(t *testing.T) {
			t.Parallel()

			parsed, err := problemdetails.NewType(testCase.uri)

			if testCase.wantErr != nil {
				if !errors.Is(err, testCase.wantErr) {
					t.Fatalf("want error %v, got: %v", testCase.wantErr, err)
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if diff := cmp.Diff(parsed.String(), testCase.wantString); diff != "" {
				t.Errorf("string form does not match expected:\n%s", diff)
			}

			if parsed.IsDefault() != testCase.wantDefault {
				t.Errorf("want IsDefault %t, got: %t", testCase.wantDefault, parsed.IsDefault())
			}
		})
	}
}

func TestMustType(t *testing.T) {
	t.Parallel()

	t.Run("panics on an invalid URI reference", func(t *testing.T) {
		t.Parallel()

		defer func(t *testing.T) {
			t.Helper()

			if r := recover(); r == nil {
				t.Fatal("want panic, got nil")
			}
		}(t)

		problemdetails.MustType("https://example.com/%zz")
	})

	t.Run("wraps a valid URI reference", func(t *testing.T) {
		t.Parallel()

		parsed := problemdetails.MustType("https://example.com/probs/out-of-credit")
		if diff := cmp.Diff(parsed.String(), "https://example.com/probs/out-of-credit"); diff != "" {
			t.Errorf("string form does not match expected:\n%s", diff)
		}
	})
}

func TestTypeEquality(t *testing.T) {
	t.Parallel()

	t.Run("the zero value equals an explicit about:blank", func(t *testing.T) {
		t.Parallel()

		explicit, err := problemdetails.NewType("about:blank")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if explicit != (problemdetails.Type{}) {
			t.Error("want explicit about:blank to equal the zero value")
		}
	})
}

func TestTypeTextRoundTrip(t *testing.T) {
	t.Parallel()

	original := problemdetails.MustType("https://example.com/probs/out-of-credit")

	text, err := original.MarshalText()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded problemdetails.Type
	if err := decoded.UnmarshalText(text); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if decoded != original {
		t.Errorf("want %v, got: %v", original, decoded)
	}
}

func TestTypeUnmarshalText(t *testing.T) {
	t.Parallel()

	t.Run("rejects an invalid URI reference", func(t *testing.T) {
		t.Parallel()

		var decoded problemdetails.Type
		if err := decoded.UnmarshalText([]byte("https://example.com/%zz")); !errors.Is(err, problemdetails.ErrInvalidURI) {
			t.Fatalf("want error %v, got: %v", problemdetails.ErrInvalidURI, err)
		}
	})

	t.Run("decodes about:blank to the default type", func(t *testing.T) {
		t.Parallel()

		var decoded problemdetails.Type
		if err := decoded.UnmarshalText([]byte("about:blank")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !decoded.IsDefault() {
			t.Error("want the default type")
		}
	})
}
