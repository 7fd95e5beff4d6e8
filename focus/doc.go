// Package focus tracks the single asset highlighted by user interaction.
//
// Focus is an explicit two-state value: unfocused, or focused on an id.
// The focused id is resolved against a snapshot on every read, because the
// set of valid ids changes with every frame from the server.
package focus
