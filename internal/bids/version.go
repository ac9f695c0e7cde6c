package bids

// Version constants stamped into provenance blocks and CLI output.
const (
	// ToolName is the canonical tool identity.
	ToolName = "parbids"

	// ToolVersion is the parbids release version.
	ToolVersion = "0.2.0"
)
