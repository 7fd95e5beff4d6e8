// Package formatter renders snapshots and focus detail for display.
//
// This package is organized into:
// - text.go: titles, detail lines and a fixed-width table for terminals
// - json.go: JSON serialization
// - xml.go: XML serialization with proper escaping
//
// Build dispatches on the format name used by the CLI.
package formatter
