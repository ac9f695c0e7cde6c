// Package infer turns PAR header text into BIDS sidecar fields.
//
// The engine is a pure function of the header text (plus an optional file
// path hint for site detection): no I/O, no clock, no randomness. Callers
// read headers with package par and merge the result with package sidecar.
//
// Extraction flow:
//  1. Detect export tool version and site (never fails; worst case is
//     unknown/low).
//  2. Select the inference profile and the image-table column map for the
//     detected version.
//  3. Run the field pattern chains. Every field is optional: a miss is a
//     normal omission, not an error. Values that must be physically
//     positive are dropped when they are not.
//  4. Derive compound fields (slice timing, effective echo spacing) only
//     when every input is known; documented config fallbacks may fill the
//     gaps, partial data never does.
//
// The Report records which heuristic produced the direction and timing
// fields so the provenance block can say how the values came to be.
package infer
