package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceCoordinate(t *testing.T) {
	valid := map[string]float64{
		"12.97":    12.97,
		" 77.59 ":  77.59,
		"-33.8688": -33.8688,
		"0":        0,
	}
	for in, want := range valid {
		got := CoerceCoordinate(in)
		require.NotNil(t, got, in)
		assert.Equal(t, want, *got, in)
	}

	// Trailing garbage rejects the whole value rather than keeping a numeric prefix.
	for _, in := range []string{"", "   ", "north", "12,97", "12.97abc", "NaN", "Inf"} {
		assert.Nil(t, CoerceCoordinate(in), in)
	}
}
