package infer

import (
	"github.com/JulianGaviriaL/parbids/internal/bids"
	"github.com/JulianGaviriaL/parbids/internal/par"
	"github.com/JulianGaviriaL/parbids/internal/profile"
)

// Slice timing algorithms recorded in Report.SliceTimingAlgorithm.
const (
	AlgoInterleavedAscending = "interleaved_ascending_from_bottom"
	AlgoSequentialAscending  = "sequential_ascending"
)

// Slice-encoding strategies recorded in Report.SliceEncodingStrategy, in
// precedence order.
const (
	StrategyOrientationCode = "orientation_code"
	StrategyImageTable      = "image_table"
	StrategyPatientPosition = "patient_position"
	StrategyFMRIDefault     = "fmri_default"
)

// Value sources recorded for fields that can come from more than one place.
const (
	SourceHeader   = "header"
	SourceDerived  = "derived"
	SourceFallback = "fallback"
)

// Engine extracts BIDS fields from PAR headers using one configuration
// table. Safe for concurrent use; Extract does not mutate the engine.
type Engine struct {
	cfg profile.Config
}

// New creates an engine from a configuration table.
func New(cfg profile.Config) *Engine {
	return &Engine{cfg: cfg}
}

// Result is one extraction outcome.
type Result struct {
	// Fields holds the inferred BIDS fields in emission order.
	Fields *bids.FieldSet
	// Site is the site/version detection outcome.
	Site bids.SiteDetection
	// Report says which heuristics produced the ambiguous fields.
	Report Report
}

// Report traces heuristic decisions for provenance and verbose output.
// Empty strings mean the corresponding field was not emitted.
type Report struct {
	Profile               profile.ID
	SliceTimingAlgorithm  string
	SliceEncodingStrategy string
	PhaseEncodingSource   string
	EchoSpacingSource     string
	EchoTimeSource        string
}

// Extract infers BIDS fields from a header document. pathHint, usually the
// header's file path, feeds the site token heuristic and may be empty.
func (e *Engine) Extract(doc *par.Document, pathHint string) Result {
	text := doc.Text()

	site := DetectSite(text, pathHint)
	prof := profile.ForDetection(site)
	mask := maskFor(prof)
	cols := e.cfg.ColumnsFor(site.ToolVersion)
	rows := doc.ImageRows(e.cfg.ImageRowsScanned)

	fs := bids.NewFieldSet()
	rep := Report{Profile: prof}

	e.extractTiming(text, mask, fs, &rep)
	e.extractGeometry(text, mask, fs)
	e.extractEchoSpacing(fs, &rep)
	e.extractDirections(text, mask, rows, cols, fs, &rep)
	e.extractIdentity(text, mask, fs)
	e.extractScaling(rows, cols, fs)

	return Result{Fields: fs, Site: site, Report: rep}
}
