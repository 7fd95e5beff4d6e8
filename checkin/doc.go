// Package checkin validates user-entered check-ins and submits them over an open connection.
//
// A candidate is sent only when its id is non-empty and both coordinates
// begin with a number. Rejection is silent: Submit reports an Outcome but
// never returns an error, and nothing invalid reaches the wire.
package checkin
