// Package connection manages the single WebSocket connection to the tracking server.
//
// A Manager moves through Connecting, Open, optionally Closing, and Closed.
// Closed is terminal; reconnecting means constructing a new Manager.
// Inbound text frames are handed to OnMessage callbacks one at a time from a
// single reader goroutine. Send never queues: it fails with ErrNotOpen
// unless the connection is Open.
package connection
