// Package tracking is the live state synchronization core.
//
// A Client wires one connection to a snapshot store, a focus tracker and a
// check-in submitter. Inbound frames replace the store wholesale; malformed
// frames are logged and dropped, leaving the previous snapshot in place.
// Presentation code reads state through the Client and mutates it only via
// SetFocus, ClearFocus, the candidate setters and Submit. State changes are
// published as Events to subscribers.
package tracking
