package bids

// Site identifies the scanner site a PAR header was exported at.
type Site int

const (
	// SiteUnknown means no export tool version marker was found at all.
	SiteUnknown Site = iota
	// SiteGroningen is the V4.1 cohort; V4.1 headers are always Groningen.
	SiteGroningen
	// SiteAmsterdam is the VU/VUMC arm of the V4.2 cohort.
	SiteAmsterdam
	// SiteLeiden is the LUMC arm of the V4.2 cohort.
	SiteLeiden
	// SiteUnspecified is a V4.2 header whose arm could not be determined.
	SiteUnspecified
)

// String returns the site label used in provenance blocks and the ledger.
// The labels match the ones the study's curation records already use.
func (s Site) String() string {
	switch s {
	case SiteGroningen:
		return "Groningen"
	case SiteAmsterdam:
		return "Amsterdam"
	case SiteLeiden:
		return "Leiden"
	case SiteUnspecified:
		return "AmsLei_unspecified"
	default:
		return "unknown"
	}
}

// Confidence grades how a site was determined.
type Confidence int

const (
	// ConfidenceLow is the floor: nothing beyond the version dialect (or
	// not even that) supported the call.
	ConfidenceLow Confidence = iota
	// ConfidenceMedium means an indirect signal fired: file-path tokens or
	// the subject-ID-range heuristic.
	ConfidenceMedium
	// ConfidenceHigh requires an explicit marker: the V4.1 dialect itself,
	// or an institution token in the patient-name line.
	ConfidenceHigh
)

// String returns the confidence label.
func (c Confidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	default:
		return "low"
	}
}

// Characteristic tags attached during detection.
const (
	CharV41Format  = "V4.1_format"
	CharV42Format  = "V4.2_format"
	CharASLCapable = "ASL_capable"
	CharSPIR       = "SPIR_suppression"
	CharSENSE      = "SENSE_acceleration"
)

// SiteDetection is the outcome of site and version detection. Detection
// never fails; the zero value (unknown site, low confidence) is the floor.
type SiteDetection struct {
	// ToolVersion is the "Research image export tool" version string,
	// e.g. "4.1" or "4.2". Empty when no marker was found.
	ToolVersion string

	Site       Site
	Confidence Confidence

	// Characteristics are acquisition tags scanned from the header,
	// e.g. ASL capability or SENSE acceleration.
	Characteristics []string
}

// HasCharacteristic reports whether a tag was attached during detection.
func (d SiteDetection) HasCharacteristic(name string) bool {
	for _, c := range d.Characteristics {
		if c == name {
			return true
		}
	}
	return false
}
