// Package testutil provides comparison helpers shared by the package tests.
package testutil

import (
	"encoding/json"
	"fmt"

	"github.com/google/go-cmp/cmp"
)

// DiffJSON compares two JSON documents structurally, ignoring member order
// and formatting. It returns an empty string when they are equivalent.
func DiffJSON(x, y string) string {
	return cmp.Diff(x, y, cmp.FilterValues(isValidJSON, cmp.Transformer("JSON", asJSON)))
}

func isValidJSON(x, y string) bool {
	return json.Valid([]byte(x)) && json.Valid([]byte(y))
}

func asJSON(in string) any {
	var out any

	if err := json.Unmarshal([]byte(in), &out); err != nil {
		return fmt.Errorf("unmarshaling JSON: %w", err)
	}

	return out
}
