package infer

import (
	"regexp"
	"strings"

	"github.com/JulianGaviriaL/parbids/internal/profile"
)

// profileMask selects which profiles a pattern variant participates in.
type profileMask uint8

const (
	maskGeneric profileMask = 1 << iota
	maskV41
	maskV42

	maskAll = maskGeneric | maskV41 | maskV42
)

func maskFor(id profile.ID) profileMask {
	switch id {
	case profile.GroningenV41:
		return maskV41
	case profile.AmsLeiV42:
		return maskV42
	default:
		return maskGeneric
	}
}

// pattern is one variant in an ordered chain. Chain order is fixed; the
// active profile only decides which variants participate. The loose
// single-token fallbacks (TR =, TE =) are Generic-only: on a known dialect
// they add false-positive risk, on an unknown one they are all we have.
type pattern struct {
	re       *regexp.Regexp
	profiles profileMask
}

func pat(mask profileMask, expr string) pattern {
	return pattern{re: regexp.MustCompile(expr), profiles: mask}
}

var (
	repetitionTimePatterns = []pattern{
		pat(maskV41|maskGeneric, `(?i)Repetition time \[msec\]\s*[:=]\s*([\d.]+)`),
		pat(maskAll, `(?i)Repetition time \[ms\]\s*[:=]\s*([\d.]+)`),
		pat(maskGeneric, `(?i)\bTR\s*[=:]\s*([\d.]+)`),
	}

	echoTimePatterns = []pattern{
		pat(maskV41|maskGeneric, `(?i)Echo time \[msec\]\s*[:=]\s*([\d.]+)`),
		pat(maskAll, `(?i)Echo time \[ms\]\s*[:=]\s*([\d.]+)`),
		pat(maskGeneric, `(?i)\bTE\s*[=:]\s*([\d.]+)`),
		pat(maskGeneric, `(?i)Diffusion echo time \[ms\]\s*[:=]\s*([\d.]+)`),
	}

	numberOfSlicesPatterns = []pattern{
		pat(maskAll, `(?i)Max\. number of slices/locations\s*:\s*(\d+)`),
		pat(maskGeneric, `(?i)Number of slices\s*[:=]\s*(\d+)`),
	}

	sliceThicknessPatterns = []pattern{
		pat(maskAll, `(?i)Slice thickness \[mm\]\s*[:=]\s*([\d.]+)`),
		pat(maskGeneric, `(?i)Slice thickness\s*[:=]\s*([\d.]+)`),
	}

	sliceGapPatterns = []pattern{
		pat(maskAll, `(?i)Slice gap \[mm\]\s*[:=]\s*(-?[\d.]+)`),
		pat(maskGeneric, `(?i)Slice gap\s*[:=]\s*(-?[\d.]+)`),
	}

	flipAnglePatterns = []pattern{
		pat(maskAll, `(?i)Flip angle(?: \[degr\.?\])?\s*[:=]\s*([\d.]+)`),
	}

	waterFatShiftPatterns = []pattern{
		pat(maskAll, `(?i)Water Fat shift \[pixels\]\s*[:=]\s*([\d.]+)`),
		pat(maskGeneric, `(?i)Water Fat shift\s*[:=]\s*([\d.]+)`),
	}

	reconResolutionPatterns = []pattern{
		pat(maskAll, `(?i)Recon resolution \(x, y\)\s*[:=]\s*(\d+)\s+(\d+)`),
	}

	prepDirectionPatterns = []pattern{
		pat(maskAll, `(?i)Preparation direction\s*[:=]\s*([^\n]+)`),
		pat(maskGeneric, `(?i)Prep\. direction\s*[:=]\s*([^\n]+)`),
	}

	patientPositionPatterns = []pattern{
		pat(maskAll, `(?i)Patient position\s*[:=]\s*([^\n]+)`),
	}

	protocolNamePatterns = []pattern{
		pat(maskAll, `(?i)Protocol name\s*[:=]\s*([^\n]+)`),
	}

	seriesTypePatterns = []pattern{
		pat(maskAll, `(?i)Series[_ ]Type\s*[:=]\s*([^\n]+)`),
	}

	seriesNumberPatterns = []pattern{
		pat(maskAll, `(?i)Series nr\s*[:=]\s*(\d+)`),
	}

	acquisitionNumberPatterns = []pattern{
		pat(maskAll, `(?i)Acquisition nr\s*[:=]\s*(\d+)`),
	}

	sliceOrientationPatterns = []pattern{
		pat(maskAll, `(?i)slice orientation \( TRA/SAG/COR \)\s*\(integer\)\s+(\d+)`),
		pat(maskAll, `(?i)slice orientation\s*:\s*(\d+)`),
		pat(maskGeneric, `(?i)slice_orientation\s*:\s*(\d+)`),
	}
)

// fieldStrengthRe is deliberately case-sensitive: a lowercase t next to a
// number is never a tesla marking in these headers.
var fieldStrengthRe = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*T`)

// fmriContextRe marks headers that look like fMRI acquisitions; used by
// the last-resort slice-encoding strategy.
var fmriContextRe = regexp.MustCompile(`(?i)rest|bold|fmri|epi|task|SENSE`)

// sequentialOrderRe detects headers that declare a sequential slice order,
// which disables the interleaved timing reconstruction.
var sequentialOrderRe = regexp.MustCompile(`(?i)slice order[^\n]*sequential|sequential slice`)

// firstMatch returns the submatches of the first participating pattern
// that matches, or nil.
func firstMatch(text string, mask profileMask, chain []pattern) []string {
	for _, p := range chain {
		if p.profiles&mask == 0 {
			continue
		}
		if m := p.re.FindStringSubmatch(text); m != nil {
			return m
		}
	}
	return nil
}

// firstFloat walks the chain until a pattern matches and its capture
// parses. A match with an unparseable value does not stop the chain.
func firstFloat(text string, mask profileMask, chain []pattern) (float64, bool) {
	for _, p := range chain {
		if p.profiles&mask == 0 {
			continue
		}
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if v, ok := parseFloat(m[1]); ok {
			return v, true
		}
	}
	return 0, false
}

// firstInt is firstFloat for integer captures.
func firstInt(text string, mask profileMask, chain []pattern) (int64, bool) {
	for _, p := range chain {
		if p.profiles&mask == 0 {
			continue
		}
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if v, ok := parseInt(m[1]); ok {
			return v, true
		}
	}
	return 0, false
}

// firstString is firstFloat for free-text captures; placeholder tokens and
// empty values do not stop the chain.
func firstString(text string, mask profileMask, chain []pattern) (string, bool) {
	for _, p := range chain {
		if p.profiles&mask == 0 {
			continue
		}
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if s := strings.TrimSpace(m[1]); s != "" && !isPlaceholder(s) {
			return s, true
		}
	}
	return "", false
}
