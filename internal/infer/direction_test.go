package infer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JulianGaviriaL/parbids/internal/bids"
	"github.com/JulianGaviriaL/parbids/internal/profile"
)

func TestPhaseAxis(t *testing.T) {
	tests := []struct {
		name      string
		direction string
		want      string
		ok        bool
	}{
		{name: "anterior-posterior phrase", direction: "Anterior-Posterior", want: "j-", ok: true},
		{name: "posterior-anterior phrase", direction: "posterior-anterior", want: "j", ok: true},
		{name: "left-right phrase", direction: "Left-Right", want: "i-", ok: true},
		{name: "right-left phrase", direction: "RIGHT-LEFT", want: "i", ok: true},
		{name: "ap abbreviation", direction: "AP", want: "j-", ok: true},
		{name: "pa abbreviation", direction: "pa", want: "j", ok: true},
		{name: "lr abbreviation", direction: "LR", want: "i-", ok: true},
		{name: "rl abbreviation", direction: "rl", want: "i", ok: true},
		{name: "phrase inside longer value", direction: "Anterior-Posterior fat shift P", want: "j-", ok: true},
		{name: "padded abbreviation", direction: "  AP  ", want: "j-", ok: true},
		{name: "feet-head unmapped", direction: "Feet-Head", ok: false},
		{name: "bare letter", direction: "P", ok: false},
		{name: "empty", direction: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := phaseAxis(tt.direction)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSliceEncoding_StrategyPrecedence(t *testing.T) {
	cols := profile.Default().ColumnsFor("4.2")
	row := make([]string, 22)
	for i := range row {
		row[i] = "0"
	}
	row[cols.SliceOrientation] = "3" // coronal
	rows := [][]string{row}

	tests := []struct {
		name         string
		text         string
		rows         [][]string
		wantAxis     string
		wantStrategy string
	}{
		{
			name:         "orientation code beats everything",
			text:         ".    slice orientation ( TRA/SAG/COR )        (integer)   2\n.    Patient position : Head First Supine\n",
			rows:         rows,
			wantAxis:     "i",
			wantStrategy: StrategyOrientationCode,
		},
		{
			name:         "image table beats patient position",
			text:         ".    Patient position : Head First Supine\n",
			rows:         rows,
			wantAxis:     "j",
			wantStrategy: StrategyImageTable,
		},
		{
			name:         "patient position beats fmri default",
			text:         ".    Patient position : Head First Supine\n.    Protocol name : BOLD\n",
			wantAxis:     "k",
			wantStrategy: StrategyPatientPosition,
		},
		{
			name:         "hfs abbreviation",
			text:         ".    Patient position : HFS\n",
			wantAxis:     "k",
			wantStrategy: StrategyPatientPosition,
		},
		{
			name:         "fmri keyword default",
			text:         ".    Protocol name : BOLD acquisition\n",
			wantAxis:     "k",
			wantStrategy: StrategyFMRIDefault,
		},
		{
			name:         "prone position falls through to fmri default",
			text:         ".    Patient position : Head First Prone\n.    Protocol name : resting state\n",
			wantAxis:     "k",
			wantStrategy: StrategyFMRIDefault,
		},
		{
			name: "nothing matches",
			text: ".    Protocol name : T1 3D structural\n",
		},
	}

	e := New(profile.Default())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			axis, strategy := e.sliceEncoding(tt.text, maskAll, tt.rows, cols)
			assert.Equal(t, tt.wantAxis, axis)
			assert.Equal(t, tt.wantStrategy, strategy)
		})
	}
}

func TestSliceEncoding_TableCodeOutOfRange(t *testing.T) {
	cols := profile.Default().ColumnsFor("4.2")
	short := [][]string{{"1", "1", "0"}} // no column 20

	e := New(profile.Default())
	axis, strategy := e.sliceEncoding(".    Patient position : HFS\n", maskAll, short, cols)
	assert.Equal(t, "k", axis)
	assert.Equal(t, StrategyPatientPosition, strategy)
}

func TestExtractDirections_PhaseEncoding(t *testing.T) {
	t.Run("header preparation direction", func(t *testing.T) {
		e := New(profile.Default())
		fs := bids.NewFieldSet()
		var rep Report

		e.extractDirections(".    Preparation direction : Anterior-Posterior\n", maskAll, nil, profile.ColumnMap{}, fs, &rep)

		dir, ok := fs.String(bids.PhaseEncodingDirection)
		require.True(t, ok)
		assert.Equal(t, "j-", dir)
		assert.Equal(t, SourceHeader, rep.PhaseEncodingSource)
	})

	t.Run("unmapped direction omits the field", func(t *testing.T) {
		e := New(profile.Default())
		fs := bids.NewFieldSet()
		var rep Report

		e.extractDirections(".    Preparation direction : Feet-Head\n", maskAll, nil, profile.ColumnMap{}, fs, &rep)

		assert.False(t, fs.Has(bids.PhaseEncodingDirection))
		assert.Empty(t, rep.PhaseEncodingSource)
	})

	t.Run("configured fallback axis", func(t *testing.T) {
		cfg := profile.Default()
		cfg.PhaseEncodingFallback = "j-"
		e := New(cfg)
		fs := bids.NewFieldSet()
		var rep Report

		e.extractDirections(".    Protocol name : BOLD\n", maskAll, nil, profile.ColumnMap{}, fs, &rep)

		dir, ok := fs.String(bids.PhaseEncodingDirection)
		require.True(t, ok)
		assert.Equal(t, "j-", dir)
		assert.Equal(t, SourceFallback, rep.PhaseEncodingSource)
	})
}
