package sidecar

import (
	"github.com/google/uuid"

	"github.com/JulianGaviriaL/parbids/internal/bids"
)

// Provenance is the audit block written under the reserved
// _BIDSProcessingInfo key. Key casing matches the BIDS fields around it;
// values are plain strings so the block reads without tooling.
type Provenance struct {
	RunID                 string
	Tool                  string
	ToolVersion           string
	Timestamp             string
	ExportToolVersion     string
	Site                  string
	Confidence            string
	Characteristics       []string
	SliceTimingAlgorithm  string
	SliceEncodingStrategy string
	PhaseEncodingSource   string
	FieldsAdded           []string
	FieldsUpdated         []string
}

// NewRunID returns a time-sortable UUIDv7 run identifier.
func NewRunID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Stamp writes the provenance block into the document, replacing any
// previous block wholesale. Earlier runs' blocks are never merged into:
// the block describes exactly one run.
func Stamp(doc *Object, p Provenance) {
	block := NewObject()
	block.Set("RunID", p.RunID)
	block.Set("Tool", p.Tool)
	block.Set("ToolVersion", p.ToolVersion)
	block.Set("Timestamp", p.Timestamp)
	block.Set("ExportToolVersion", p.ExportToolVersion)
	block.Set("Site", p.Site)
	block.Set("Confidence", p.Confidence)
	block.Set("Characteristics", stringArray(p.Characteristics))
	block.Set("SliceTimingAlgorithm", p.SliceTimingAlgorithm)
	block.Set("SliceEncodingStrategy", p.SliceEncodingStrategy)
	block.Set("PhaseEncodingSource", p.PhaseEncodingSource)
	block.Set("FieldsAdded", stringArray(p.FieldsAdded))
	block.Set("FieldsUpdated", stringArray(p.FieldsUpdated))
	doc.Set(bids.ProvenanceKey, block)
}

func stringArray(ss []string) []Value {
	arr := make([]Value, len(ss))
	for i, s := range ss {
		arr[i] = s
	}
	return arr
}
