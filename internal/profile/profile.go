// Package profile holds the inference profiles and the configuration table.
//
// Every constant the engine uses (the water-fat-shift constant, fallback
// values, image-table column offsets) lives in one inspectable Config that
// can be overridden from a YAML file. Overrides are validated against an
// embedded CUE schema before any header is touched.
package profile

import (
	"strings"

	"github.com/JulianGaviriaL/parbids/internal/bids"
)

// ID selects which optional pattern variants the engine applies.
type ID int

const (
	// Generic enables every pattern variant, including the loose
	// single-token fallbacks. Used when the export tool version is unknown.
	Generic ID = iota
	// GroningenV41 is the V4.1 header dialect.
	GroningenV41
	// AmsLeiV42 is the V4.2 header dialect (Amsterdam and Leiden arms).
	AmsLeiV42
)

// String returns the profile label used in reports and verbose output.
func (id ID) String() string {
	switch id {
	case GroningenV41:
		return "groningen-v4.1"
	case AmsLeiV42:
		return "amslei-v4.2"
	default:
		return "generic"
	}
}

// ForDetection maps a site detection to the profile driving extraction.
// The version string decides; site only disambiguates within V4.2, where
// the dialect is shared.
func ForDetection(d bids.SiteDetection) ID {
	switch {
	case strings.HasPrefix(d.ToolVersion, "4.1"):
		return GroningenV41
	case strings.HasPrefix(d.ToolVersion, "4.2"):
		return AmsLeiV42
	}
	return Generic
}
