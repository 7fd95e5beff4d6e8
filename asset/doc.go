// Package asset defines the records exchanged with the tracking server.
//
// It contains:
//   - Record: one asset check-in as it appears in a snapshot
//   - Snapshot: the ordered, total listing pushed by the server
//   - Candidate: a user-entered check-in waiting to be submitted
//   - LeadingFloat: numeric prefix parsing used for coordinate fields
//
// Coordinates and distances stay textual on the wire; they are parsed only
// where a number is needed.
package asset
