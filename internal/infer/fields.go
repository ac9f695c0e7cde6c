package infer

import (
	"strings"

	"github.com/JulianGaviriaL/parbids/internal/bids"
)

// extractTiming emits RepetitionTime, EchoTime, NumberOfSlices and the
// reconstructed SliceTiming. Times in the header are milliseconds; the
// emitted fields are seconds.
func (e *Engine) extractTiming(text string, mask profileMask, fs *bids.FieldSet, rep *Report) {
	var tr float64
	if ms, ok := firstFloat(text, mask, repetitionTimePatterns); ok && ms > 0 {
		tr = msToSeconds(ms)
		fs.SetFloat(bids.RepetitionTime, tr)
	}

	if ms, ok := firstFloat(text, mask, echoTimePatterns); ok && ms > 0 {
		fs.SetFloat(bids.EchoTime, msToSeconds(ms))
		rep.EchoTimeSource = SourceHeader
	} else if e.cfg.FallbackEchoTime > 0 {
		fs.SetFloat(bids.EchoTime, e.cfg.FallbackEchoTime)
		rep.EchoTimeSource = SourceFallback
	}

	var slices int64
	if v, ok := firstInt(text, mask, numberOfSlicesPatterns); ok && v > 0 {
		slices = v
		fs.SetInt(bids.NumberOfSlices, v)
	}

	if tr > 0 && slices > 0 {
		if sequentialOrderRe.MatchString(text) {
			fs.SetFloats(bids.SliceTiming, sequentialTiming(tr, int(slices)))
			rep.SliceTimingAlgorithm = AlgoSequentialAscending
		} else {
			fs.SetFloats(bids.SliceTiming, interleavedTiming(tr, int(slices)))
			rep.SliceTimingAlgorithm = AlgoInterleavedAscending
		}
	}
}

// extractGeometry emits the spatial fields read directly off the general
// section.
func (e *Engine) extractGeometry(text string, mask profileMask, fs *bids.FieldSet) {
	var thickness float64
	if v, ok := firstFloat(text, mask, sliceThicknessPatterns); ok && v > 0 {
		thickness = v
		fs.SetFloat(bids.SliceThickness, v)
	}

	// Gap may be negative (overlapping slices); the sum still has to be
	// a positive distance to be worth emitting.
	if thickness > 0 {
		if gap, ok := firstFloat(text, mask, sliceGapPatterns); ok {
			if spacing := roundTo(thickness+gap, 6); spacing > 0 {
				fs.SetFloat(bids.SpacingBetweenSlices, spacing)
			}
		}
	}

	if v, ok := firstFloat(text, mask, flipAnglePatterns); ok && v > 0 {
		fs.SetFloat(bids.FlipAngle, v)
	}

	if v, ok := firstFloat(text, mask, waterFatShiftPatterns); ok && v > 0 {
		fs.SetFloat(bids.WaterFatShift, v)
	}

	if m := firstMatch(text, mask, reconResolutionPatterns); m != nil {
		x, okX := parseInt(m[1])
		y, okY := parseInt(m[2])
		if okX && okY && x > 0 && y > 0 {
			fs.SetInt(bids.ReconMatrixPE, y)
			fs.SetInt(bids.ReconMatrixFE, x)
		}
	}
}

// extractEchoSpacing derives EffectiveEchoSpacing from the water-fat
// shift and the phase-encode matrix size:
//
//	1 / ((wfsHz / wfsPixels) * reconPE)
//
// rounded to 8 decimals. Partial inputs never produce a value; the
// configured fallback constant may.
func (e *Engine) extractEchoSpacing(fs *bids.FieldSet, rep *Report) {
	wfs, okW := fs.Float(bids.WaterFatShift)
	pe, okP := fs.Float(bids.ReconMatrixPE)
	if okW && okP && wfs > 0 && pe > 0 {
		fs.SetFloat(bids.EffectiveEchoSpacing, roundTo(1.0/((e.cfg.WaterFatShiftHz/wfs)*pe), 8))
		rep.EchoSpacingSource = SourceDerived
		return
	}
	if e.cfg.FallbackEchoSpacing > 0 {
		fs.SetFloat(bids.EffectiveEchoSpacing, e.cfg.FallbackEchoSpacing)
		rep.EchoSpacingSource = SourceFallback
	}
}

// extractIdentity emits the descriptive fields: scanner, task, patient
// position and the series bookkeeping numbers. Bookkeeping numbers are
// emitted only when the header states them; fabricating defaults here
// could overwrite curated sidecar values through the update rule.
func (e *Engine) extractIdentity(text string, mask profileMask, fs *bids.FieldSet) {
	if m := fieldStrengthRe.FindStringSubmatch(text); m != nil {
		if v, ok := parseFloat(m[1]); ok && v > 0 {
			fs.SetFloat(bids.MagneticFieldStrength, v)
		}
	}
	if !fs.Has(bids.MagneticFieldStrength) && e.cfg.DefaultFieldStrength > 0 {
		fs.SetFloat(bids.MagneticFieldStrength, e.cfg.DefaultFieldStrength)
	}

	fs.SetString(bids.TaskName, taskName(text, e.cfg.DefaultTaskName))
	fs.SetString(bids.Manufacturer, "Philips")

	if pos, ok := firstString(text, mask, patientPositionPatterns); ok {
		fs.SetString(bids.PatientPosition, pos)
	} else if e.cfg.DefaultPatientPosition != "" {
		fs.SetString(bids.PatientPosition, e.cfg.DefaultPatientPosition)
	}

	if v, ok := firstString(text, mask, protocolNamePatterns); ok {
		fs.SetString(bids.ProtocolName, v)
	}
	if v, ok := firstString(text, mask, seriesTypePatterns); ok {
		fs.SetString(bids.SeriesDescription, v)
	}
	if v, ok := firstInt(text, mask, seriesNumberPatterns); ok && v > 0 {
		fs.SetInt(bids.SeriesNumber, v)
	}
	if v, ok := firstInt(text, mask, acquisitionNumberPatterns); ok && v > 0 {
		fs.SetInt(bids.AcquisitionNumber, v)
	}
}

// taskName scans for the study's task keywords; rest wins over the more
// specific paradigms because resting-state is the default acquisition.
func taskName(text, fallback string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "rest"):
		return "rest"
	case strings.Contains(lower, "nback"), strings.Contains(lower, "n-back"):
		return "nback"
	case strings.Contains(lower, "faces"), strings.Contains(lower, "emotion"):
		return "faces"
	}
	return fallback
}
