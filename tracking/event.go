package tracking

import (
	"github.com/theoremus-urban-solutions/assettrack/checkin"
	"github.com/theoremus-urban-solutions/assettrack/connection"
)

// EventKind identifies what changed
type EventKind int

const (
	EventSnapshot EventKind = iota
	EventMalformed
	EventFocus
	EventConnection
	EventCheckin
)

func (k EventKind) String() string {
	switch k {
	case EventSnapshot:
		return "snapshot"
	case EventMalformed:
		return "malformed"
	case EventFocus:
		return "focus"
	case EventConnection:
		return "connection"
	case EventCheckin:
		return "checkin"
	default:
		return "unknown"
	}
}

// Event notifies subscribers of a state change. Subscribers re-read the
// Client for current values; only the fields relevant to Kind are set.
type Event struct {
	Kind    EventKind
	Assets  int              // EventSnapshot
	State   connection.State // EventConnection
	Outcome checkin.Outcome  // EventCheckin
	Err     error            // EventMalformed
}
