package infer

import (
	"github.com/JulianGaviriaL/parbids/internal/bids"
	"github.com/JulianGaviriaL/parbids/internal/profile"
)

// extractScaling emits the Philips scaling fields from the first image
// row. These always land in the set: converters cannot recover floating
// point values without them, so missing columns fall back to the identity
// scaling (slope 1, intercept 0).
func (e *Engine) extractScaling(rows [][]string, cols profile.ColumnMap, fs *bids.FieldSet) {
	slope, intercept, scale := 1.0, 0.0, 1.0
	if len(rows) > 0 {
		if v, ok := rowFloat(rows[0], cols.RescaleSlope); ok {
			slope = v
		}
		if v, ok := rowFloat(rows[0], cols.RescaleIntercept); ok {
			intercept = v
		}
		if v, ok := rowFloat(rows[0], cols.ScaleSlope); ok {
			scale = v
		}
	}
	fs.SetFloat(bids.PhilipsRescaleSlope, slope)
	fs.SetFloat(bids.PhilipsRescaleIntercept, intercept)
	fs.SetFloat(bids.PhilipsScaleSlope, scale)
	fs.SetBool(bids.UsePhilipsFloatNotDisplayScaling, true)

	orientation := []float64{1, 0, 0, 0, 1, 0}
	if len(rows) > 0 {
		if v, ok := rowFloats(rows[0], cols.OrientationVector, 6); ok {
			orientation = v
		}
	}
	fs.SetFloats(bids.ImageOrientationPatientDICOM, orientation)
}

// tableOrientation reads the orientation code column across the scanned
// rows; the first row with a known code decides.
func tableOrientation(rows [][]string, col int) (string, bool) {
	for _, row := range rows {
		code, ok := rowInt(row, col)
		if !ok {
			continue
		}
		if axis, ok := orientationAxis[code]; ok {
			return axis, true
		}
	}
	return "", false
}

func rowFloat(row []string, col int) (float64, bool) {
	if col < 0 || col >= len(row) {
		return 0, false
	}
	return parseFloat(row[col])
}

func rowInt(row []string, col int) (int64, bool) {
	if col < 0 || col >= len(row) {
		return 0, false
	}
	return parseInt(row[col])
}

func rowFloats(row []string, start, n int) ([]float64, bool) {
	if start < 0 || start+n > len(row) {
		return nil, false
	}
	out := make([]float64, n)
	for i := range out {
		v, ok := parseFloat(row[start+i])
		if !ok {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}
