// Package bids provides the foundational value types for PAR-to-BIDS
// metadata inference.
//
// This package contains type definitions only. All other internal packages
// import bids; bids imports nothing internal. This keeps it the foundational
// layer with no circular dependencies.
//
// Key design constraints:
//   - FieldSet preserves insertion order; the order fields are inferred is
//     the order they are appended to a sidecar
//   - A field is present only when extraction succeeded or a documented
//     default applies - never nil/NaN placeholders
//   - Field values are restricted to the kinds BIDS sidecars use: bool,
//     int64, float64, string, []float64
package bids
