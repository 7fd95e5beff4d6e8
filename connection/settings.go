package connection

import "time"

// Settings tunes the underlying WebSocket connection
type Settings struct {
	HandshakeTimeout time.Duration
	WriteTimeout     time.Duration
	// ReadLimit caps the size of one inbound frame; 0 means no limit.
	ReadLimit int64
}

// DefaultSettings returns the settings used when none are given
func DefaultSettings() *Settings {
	return &Settings{
		HandshakeTimeout: 5 * time.Second,
		WriteTimeout:     5 * time.Second,
		ReadLimit:        8 << 20,
	}
}
