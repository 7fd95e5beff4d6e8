// Package tui is a terminal front end for the tracking client.
//
// It lists the assets of the current snapshot, treats mouse motion over a
// row as hover (focus) and motion elsewhere as hover-leave, shows check-in
// detail for the focused asset while it resolves, and offers a three-field
// form for submitting new check-ins. All state lives in the tracking core;
// the model only reads it and forwards user input.
package tui
