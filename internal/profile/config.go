package profile

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaSource string

// ColumnMap gives the 0-based image-table column offsets for one export
// tool version. The defaults reproduce the offsets the legacy per-site
// scripts hard-coded; newer export variants can remap them from config.
type ColumnMap struct {
	// SliceOrientation is the orientation code column (1 transverse,
	// 2 sagittal, 3 coronal).
	SliceOrientation int `yaml:"slice_orientation" json:"slice_orientation"`
	RescaleSlope     int `yaml:"rescale_slope" json:"rescale_slope"`
	RescaleIntercept int `yaml:"rescale_intercept" json:"rescale_intercept"`
	ScaleSlope       int `yaml:"scale_slope" json:"scale_slope"`
	// OrientationVector is the first of six image-orientation columns.
	OrientationVector int `yaml:"orientation_vector" json:"orientation_vector"`
}

// Config is the full constants table for one engine instance.
type Config struct {
	// WaterFatShiftHz is the Philips water-fat shift at 3T in Hz per
	// pixel, the divisor of the effective echo spacing formula.
	WaterFatShiftHz float64 `yaml:"water_fat_shift_hz" json:"water_fat_shift_hz"`

	// FallbackEchoTime (seconds) is emitted when no echo time can be
	// read from the header; 0 means omit the field instead.
	FallbackEchoTime float64 `yaml:"fallback_echo_time" json:"fallback_echo_time"`

	// FallbackEchoSpacing (seconds) is emitted when the water-fat shift
	// or recon matrix is missing; 0 means omit the field instead.
	FallbackEchoSpacing float64 `yaml:"fallback_echo_spacing" json:"fallback_echo_spacing"`

	// PhaseEncodingFallback is emitted when no preparation-direction
	// marker matches. Empty means omit the field; the legacy scripts
	// assumed "j-" here.
	PhaseEncodingFallback string `yaml:"phase_encoding_fallback" json:"phase_encoding_fallback"`

	DefaultTaskName        string  `yaml:"default_task_name" json:"default_task_name"`
	DefaultFieldStrength   float64 `yaml:"default_field_strength" json:"default_field_strength"`
	DefaultPatientPosition string  `yaml:"default_patient_position" json:"default_patient_position"`

	// ImageRowsScanned caps how many image-table data rows the
	// table-driven strategies inspect.
	ImageRowsScanned int `yaml:"image_rows_scanned" json:"image_rows_scanned"`

	// Columns maps an export tool version ("4.1", "4.2") to its column
	// offsets. Unknown versions fall back to the legacy offsets.
	Columns map[string]ColumnMap `yaml:"columns" json:"columns"`
}

// legacyColumns are the offsets shared by the V4.1 and V4.2 exports the
// study produced.
var legacyColumns = ColumnMap{
	SliceOrientation:  20,
	RescaleSlope:      10,
	RescaleIntercept:  11,
	ScaleSlope:        12,
	OrientationVector: 13,
}

// Default returns the built-in configuration table.
func Default() Config {
	return Config{
		WaterFatShiftHz:        434.215,
		DefaultTaskName:        "rest",
		DefaultFieldStrength:   3.0,
		DefaultPatientPosition: "HFS",
		ImageRowsScanned:       10,
		Columns: map[string]ColumnMap{
			"4.1": legacyColumns,
			"4.2": legacyColumns,
		},
	}
}

// ColumnsFor returns the column map for an export tool version, falling
// back to the legacy offsets for unknown versions. Looked up once per file.
func (c Config) ColumnsFor(toolVersion string) ColumnMap {
	if m, ok := c.Columns[toolVersion]; ok {
		return m
	}
	return legacyColumns
}

// Load reads a YAML override file on top of Default and validates the
// result. Unknown keys are an error; so is any value the schema rejects.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("opening config: %w", err)
	}
	defer f.Close()

	cfg := Default()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the table against the embedded CUE schema.
func (c Config) Validate() error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compiling config schema: %w", err)
	}

	def := schema.LookupPath(cue.ParsePath("#Config"))
	if !def.Exists() {
		return fmt.Errorf("config schema has no #Config definition")
	}

	unified := def.Unify(ctx.Encode(c))
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("invalid configuration:\n%s", cueerrors.Details(err, nil))
	}
	return nil
}
