// Package snapshot holds the latest asset snapshot received from the server.
//
// The store never merges: every Replace swaps the whole listing, so no
// ordering or partial-update conflicts can arise between frames. Frames are
// assumed to arrive in order over a single connection; a stale frame
// delivered late would roll the view back.
package snapshot
