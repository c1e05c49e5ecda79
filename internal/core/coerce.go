package core

import (
	"math"
	"strings"

	"github.com/spf13/cast"
)

// CoerceCoordinate converts submitted text to a number. Missing or
// unparseable input yields nil rather than an error.
func CoerceCoordinate(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	v, err := cast.ToFloat64E(raw)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
