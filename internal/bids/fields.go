package bids

// BIDS field names emitted by the inference engine. Spellings follow the
// BIDS specification; sidecar keys are matched against these exactly.
const (
	RepetitionTime         = "RepetitionTime"
	EchoTime               = "EchoTime"
	NumberOfSlices         = "NumberOfSlices"
	SliceTiming            = "SliceTiming"
	SliceEncodingDirection = "SliceEncodingDirection"
	PhaseEncodingDirection = "PhaseEncodingDirection"
	EffectiveEchoSpacing   = "EffectiveEchoSpacing"
	SliceThickness         = "SliceThickness"
	SpacingBetweenSlices   = "SpacingBetweenSlices"
	FlipAngle              = "FlipAngle"
	WaterFatShift          = "WaterFatShift"
	ReconMatrixPE          = "ReconMatrixPE"
	ReconMatrixFE          = "ReconMatrixFE"
	MagneticFieldStrength  = "MagneticFieldStrength"
	TaskName               = "TaskName"
	Manufacturer           = "Manufacturer"
	PatientPosition        = "PatientPosition"
	ProtocolName           = "ProtocolName"
	SeriesDescription      = "SeriesDescription"
	SeriesNumber           = "SeriesNumber"
	AcquisitionNumber      = "AcquisitionNumber"
)

// Philips-specific scaling fields. Converters need these to recover
// floating-point values from stored integers, so they are emitted with
// documented defaults even when the image table is missing.
const (
	PhilipsRescaleSlope              = "PhilipsRescaleSlope"
	PhilipsRescaleIntercept          = "PhilipsRescaleIntercept"
	PhilipsScaleSlope                = "PhilipsScaleSlope"
	UsePhilipsFloatNotDisplayScaling = "UsePhilipsFloatNotDisplayScaling"
	ImageOrientationPatientDICOM     = "ImageOrientationPatientDICOM"
)

// ProvenanceKey is the reserved sidecar key holding the processing
// provenance block. Keys with the ReservedPrefix are bookkeeping, not BIDS
// data; the merger never treats them as mergeable fields.
const (
	ProvenanceKey  = "_BIDSProcessingInfo"
	ReservedPrefix = "_"
)
