package tracking

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/theoremus-urban-solutions/assettrack/asset"
	"github.com/theoremus-urban-solutions/assettrack/checkin"
	"github.com/theoremus-urban-solutions/assettrack/connection"
	"github.com/theoremus-urban-solutions/assettrack/focus"
	"github.com/theoremus-urban-solutions/assettrack/metrics"
	"github.com/theoremus-urban-solutions/assettrack/snapshot"
)

// Conn is the connection surface the client depends on; *connection.Manager satisfies it
type Conn interface {
	OnOpen(fn func())
	OnMessage(fn func(raw string))
	OnStateChange(fn func(connection.State))
	State() connection.State
	IsOpen() bool
	Send(payload string) error
}

// Option configures a Client
type Option func(*Client)

// WithLogger sets the logger; the default is slog.Default()
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithMetrics records client activity in m
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// Client owns the synchronized view of one tracking server
type Client struct {
	conn      Conn
	store     *snapshot.Store
	focus     *focus.Tracker
	submitter *checkin.Submitter
	metrics   *metrics.Metrics
	logger    *slog.Logger

	mu          sync.Mutex
	candidate   asset.Candidate
	subscribers []subscriber
	nextSubID   int
}

type subscriber struct {
	id int
	fn func(Event)
}

// NewClient attaches a client to conn. Register before starting conn so no frame is missed.
func NewClient(conn Conn, opts ...Option) *Client {
	c := &Client{
		conn:   conn,
		store:  snapshot.NewStore(),
		focus:  focus.NewTracker(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.submitter = checkin.NewSubmitter(c.logger)
	c.logger = c.logger.With("component", "tracking")

	c.store.Subscribe(func(s asset.Snapshot) {
		c.publish(Event{Kind: EventSnapshot, Assets: len(s)})
	})
	c.focus.Subscribe(func(focus.State) {
		c.publish(Event{Kind: EventFocus})
	})

	c.metrics.SetConnectionState(int(conn.State()))
	conn.OnOpen(func() {
		c.logger.Info("websocket client connected")
	})
	conn.OnStateChange(func(s connection.State) {
		c.metrics.SetConnectionState(int(s))
		c.publish(Event{Kind: EventConnection, State: s})
	})
	conn.OnMessage(c.handleFrame)
	return c
}

func (c *Client) handleFrame(raw string) {
	c.metrics.FrameReceived()
	s, err := asset.DecodeSnapshot([]byte(raw))
	if err != nil {
		c.metrics.MalformedFrame()
		c.logger.Warn("discarding frame, keeping previous snapshot", "error", err, "bytes", len(raw))
		c.publish(Event{Kind: EventMalformed, Err: err})
		return
	}
	c.store.Replace(s)
	c.metrics.SnapshotApplied(len(s))
	c.logger.Debug("snapshot applied", "assets", len(s))
}

// Snapshot returns the latest snapshot; empty before the first frame
func (c *Client) Snapshot() asset.Snapshot { return c.store.Current() }

// Generation counts applied snapshots
func (c *Client) Generation() uint64 { return c.store.Generation() }

// Focus resolves the focused asset against the live snapshot.
// ok is false when nothing is focused or the focused id is gone.
func (c *Client) Focus() (asset.Record, bool) {
	return c.focus.Resolve(c.store.Current())
}

// FocusState returns the raw focus state without resolving it
func (c *Client) FocusState() focus.State { return c.focus.State() }

// SetFocus handles hover-enter on id
func (c *Client) SetFocus(id string) { c.focus.SetFocus(id) }

// ClearFocus handles hover-leave
func (c *Client) ClearFocus() { c.focus.ClearFocus() }

// Candidate returns the in-progress check-in
func (c *Client) Candidate() asset.Candidate {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.candidate
}

// SetCandidate replaces the in-progress check-in
func (c *Client) SetCandidate(cand asset.Candidate) {
	c.mu.Lock()
	c.candidate = cand
	c.mu.Unlock()
}

// SetCandidateID edits the id field
func (c *Client) SetCandidateID(id string) {
	c.mu.Lock()
	c.candidate.ID = id
	c.mu.Unlock()
}

// SetCandidateLat edits the latitude field
func (c *Client) SetCandidateLat(lat string) {
	c.mu.Lock()
	c.candidate.Lat = lat
	c.mu.Unlock()
}

// SetCandidateLng edits the longitude field
func (c *Client) SetCandidateLng(lng string) {
	c.mu.Lock()
	c.candidate.Lng = lng
	c.mu.Unlock()
}

// CandidateValid reports whether Submit would accept the current candidate
func (c *Client) CandidateValid() bool {
	return c.submitter.Validate(c.Candidate())
}

// Submit sends the in-progress check-in if it is valid and the connection is open.
// The candidate is left as entered. The server's next snapshot reflects an accepted check-in.
func (c *Client) Submit() checkin.Outcome {
	out := c.submitter.Submit(c.Candidate(), c.conn)
	c.metrics.Checkin(out.String())
	c.publish(Event{Kind: EventCheckin, Outcome: out})
	return out
}

// ConnectionState reports the connection lifecycle state
func (c *Client) ConnectionState() connection.State { return c.conn.State() }

// Subscribe registers fn for every Event. Subscribers run in registration order
// on the goroutine that caused the change and must not block. The returned
// function unsubscribes.
func (c *Client) Subscribe(fn func(Event)) func() {
	c.mu.Lock()
	id := c.nextSubID
	c.nextSubID++
	c.subscribers = append(c.subscribers, subscriber{id: id, fn: fn})
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		c.subscribers = slices.DeleteFunc(c.subscribers, func(sub subscriber) bool { return sub.id == id })
		c.mu.Unlock()
	}
}

func (c *Client) publish(e Event) {
	c.mu.Lock()
	subs := slices.Clone(c.subscribers)
	c.mu.Unlock()

	for _, sub := range subs {
		sub.fn(e)
	}
}
