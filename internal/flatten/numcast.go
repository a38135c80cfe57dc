// Package flatten turns the provider's nested JSON documents into flat
// domain rows. Provider values that cannot be parsed become nil markers
// instead of failing the batch.
package flatten

import (
	"encoding/json"
	"strconv"
	"strings"
)

// SafeNumCast coerces a decoded JSON value to a float. Percentage strings
// ("57%") are stripped before parsing. Values that cannot be parsed resolve
// to nil so that one malformed field never aborts a whole batch.
func SafeNumCast(v any) *float64 {
	switch x := v.(type) {
	case nil:
		return nil
	case float64:
		return &x
	case int:
		f := float64(x)
		return &f
	case int64:
		f := float64(x)
		return &f
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return nil
		}
		return &f
	case string:
		s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(x), "%"))
		if s == "" {
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		return &f
	default:
		return nil
	}
}
