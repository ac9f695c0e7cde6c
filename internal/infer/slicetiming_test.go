package infer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterleavedTiming(t *testing.T) {
	tests := []struct {
		name string
		tr   float64
		n    int
		want []float64
	}{
		{
			name: "single slice",
			tr:   2.0,
			n:    1,
			want: []float64{0},
		},
		{
			name: "three slices",
			tr:   0.3,
			n:    3,
			want: []float64{0, 0.2, 0.1},
		},
		{
			name: "four slices",
			tr:   2.0,
			n:    4,
			want: []float64{0, 1, 0.5, 1.5},
		},
		{
			name: "five slices",
			tr:   2.0,
			n:    5,
			want: []float64{0, 1.2, 0.4, 1.6, 0.8},
		},
		{
			name: "five slices fractional TR",
			tr:   2.5,
			n:    5,
			want: []float64{0, 1.5, 0.5, 2, 1},
		},
		{
			name: "six slices",
			tr:   3.0,
			n:    6,
			want: []float64{0, 1.5, 0.5, 2, 1, 2.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, interleavedTiming(tt.tr, tt.n))
		})
	}
}

// Whole-brain acquisition: every onset must be a distinct multiple of
// TR/n, the first physical slice fires first, and the whole set fits in
// one TR.
func TestInterleavedTiming_Permutation(t *testing.T) {
	const (
		tr = 2.0
		n  = 37
	)
	timing := interleavedTiming(tr, n)
	require.Len(t, timing, n)
	assert.Equal(t, 0.0, timing[0])

	per := tr / float64(n)
	seen := make(map[float64]bool, n)
	for s, onset := range timing {
		assert.False(t, seen[onset], "duplicate onset at slice %d", s)
		seen[onset] = true
		assert.GreaterOrEqual(t, onset, 0.0)
		assert.Less(t, onset, tr)

		k := onset / per
		assert.InDelta(t, k, float64(int(k+0.5)), 1e-4, "onset at slice %d is not a slot multiple", s)
	}
}

func TestSequentialTiming(t *testing.T) {
	assert.Equal(t, []float64{0, 0.5, 1, 1.5}, sequentialTiming(2.0, 4))
	assert.Equal(t, []float64{0}, sequentialTiming(2.0, 1))
}

func TestTiming_InvalidInputs(t *testing.T) {
	assert.Nil(t, interleavedTiming(0, 4))
	assert.Nil(t, interleavedTiming(2.0, 0))
	assert.Nil(t, interleavedTiming(-1, 4))
	assert.Nil(t, sequentialTiming(0, 4))
	assert.Nil(t, sequentialTiming(2.0, -3))
}
