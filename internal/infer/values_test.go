package infer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFloat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
		ok    bool
	}{
		{name: "plain", input: "2000.00", want: 2000, ok: true},
		{name: "leading whitespace", input: "   27.63", want: 27.63, ok: true},
		{name: "scientific notation", input: "4.28404e-03", want: 0.00428404, ok: true},
		{name: "negative", input: "-3.5", want: -3.5, ok: true},
		{name: "parenthesised number", input: "(3.0)", want: 3, ok: true},
		{name: "placeholder float", input: "(float)", ok: false},
		{name: "placeholder float uppercase", input: "(FLOAT)", ok: false},
		{name: "placeholder n/a", input: "n/a", ok: false},
		{name: "placeholder question mark", input: "?", ok: false},
		{name: "placeholder null", input: "null", ok: false},
		{name: "empty", input: "", ok: false},
		{name: "whitespace only", input: "   ", ok: false},
		{name: "garbage", input: "abc", ok: false},
		{name: "empty parens", input: "()", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseFloat(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 1e-12)
			}
		})
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int64
		ok    bool
	}{
		{name: "plain", input: "37", want: 37, ok: true},
		{name: "padded", input: "  4  ", want: 4, ok: true},
		{name: "placeholder", input: "n/a", ok: false},
		{name: "float literal", input: "3.5", ok: false},
		{name: "empty", input: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseInt(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 0.02763, roundTo(27.63/1000.0, 6))
	assert.Equal(t, 3.3, roundTo(3.0+0.3, 6))
	assert.Equal(t, 0.00028788, roundTo(1.0/((434.215/10.0)*80.0), 8))
	assert.Equal(t, -1.5, roundTo(-1.4999996, 6))
}

func TestMsToSeconds(t *testing.T) {
	assert.Equal(t, 2.0, msToSeconds(2000))
	assert.Equal(t, 0.028, msToSeconds(28))
	assert.Equal(t, 0.02763, msToSeconds(27.63))
}
