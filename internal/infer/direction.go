package infer

import (
	"strings"

	"github.com/JulianGaviriaL/parbids/internal/bids"
	"github.com/JulianGaviriaL/parbids/internal/profile"
)

// orientationAxis maps the export tool's slice orientation codes to BIDS
// axis codes: 1 transverse, 2 sagittal, 3 coronal.
var orientationAxis = map[int64]string{
	1: "k",
	2: "i",
	3: "j",
}

// phaseEncodingRules map preparation-direction phrasings to BIDS axis
// codes. Full phrases are substring matches, abbreviations exact; the
// phrase check runs first so "posterior-anterior" cannot be caught by a
// shorter rule.
var phaseEncodingRules = []struct {
	phrase string
	abbrev string
	axis   string
}{
	{"anterior-posterior", "ap", "j-"},
	{"posterior-anterior", "pa", "j"},
	{"left-right", "lr", "i-"},
	{"right-left", "rl", "i"},
}

func phaseAxis(direction string) (string, bool) {
	dir := strings.ToLower(strings.TrimSpace(direction))
	for _, r := range phaseEncodingRules {
		if strings.Contains(dir, r.phrase) || dir == r.abbrev {
			return r.axis, true
		}
	}
	return "", false
}

func (e *Engine) extractDirections(text string, mask profileMask, rows [][]string, cols profile.ColumnMap, fs *bids.FieldSet, rep *Report) {
	if axis, strategy := e.sliceEncoding(text, mask, rows, cols); axis != "" {
		fs.SetString(bids.SliceEncodingDirection, axis)
		rep.SliceEncodingStrategy = strategy
	}

	if dir, ok := firstString(text, mask, prepDirectionPatterns); ok {
		if axis, ok := phaseAxis(dir); ok {
			fs.SetString(bids.PhaseEncodingDirection, axis)
			rep.PhaseEncodingSource = SourceHeader
		}
	}
	if !fs.Has(bids.PhaseEncodingDirection) && e.cfg.PhaseEncodingFallback != "" {
		fs.SetString(bids.PhaseEncodingDirection, e.cfg.PhaseEncodingFallback)
		rep.PhaseEncodingSource = SourceFallback
	}
}

// sliceEncoding runs the four strategies in precedence order and returns
// the axis plus the strategy that produced it, or empty strings.
func (e *Engine) sliceEncoding(text string, mask profileMask, rows [][]string, cols profile.ColumnMap) (string, string) {
	// 1. Explicit orientation code in the general section.
	if m := firstMatch(text, mask, sliceOrientationPatterns); m != nil {
		if code, ok := parseInt(m[1]); ok {
			if axis, ok := orientationAxis[code]; ok {
				return axis, StrategyOrientationCode
			}
		}
	}

	// 2. Orientation code column of the image table.
	if axis, ok := tableOrientation(rows, cols.SliceOrientation); ok {
		return axis, StrategyImageTable
	}

	// 3. Head-first-supine implies slices along k.
	if pos, ok := firstString(text, mask, patientPositionPatterns); ok {
		upper := strings.ToUpper(pos)
		if strings.Contains(upper, "HEAD FIRST SUPINE") || strings.Contains(upper, "HFS") {
			return "k", StrategyPatientPosition
		}
	}

	// 4. Axial is the standing assumption for anything fMRI-shaped.
	if fmriContextRe.MatchString(text) {
		return "k", StrategyFMRIDefault
	}

	return "", ""
}
