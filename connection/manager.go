package connection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/oklog/ulid/v2"
)

// ErrNotOpen is returned by Send when the connection is not in the Open state
var ErrNotOpen = errors.New("connection not open")

// Manager owns one long-lived connection to a fixed endpoint
type Manager struct {
	url      string
	settings *Settings
	logger   *slog.Logger
	session  ulid.ULID

	mu            sync.Mutex
	state         State
	ws            *websocket.Conn
	started       bool
	onOpen        []func()
	onMessage     []func(string)
	onStateChange []func(State)

	writeMu sync.Mutex
	done    chan struct{}
}

// New creates a manager for url in the Connecting state. Nothing is dialed until Start.
func New(url string, settings *Settings, logger *slog.Logger) *Manager {
	if settings == nil {
		settings = DefaultSettings()
	}
	if logger == nil {
		logger = slog.Default()
	}
	session := ulid.Make()
	return &Manager{
		url:      url,
		settings: settings,
		logger:   logger.With("component", "connection", "session", session.String(), "url", url),
		session:  session,
		state:    Connecting,
		done:     make(chan struct{}),
	}
}

// Session returns the id used to tag this manager's log records
func (m *Manager) Session() string { return m.session.String() }

// OnOpen registers fn to run once the connection is ready to send
func (m *Manager) OnOpen(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onOpen = append(m.onOpen, fn)
}

// OnMessage registers fn to run once per inbound text frame
func (m *Manager) OnMessage(fn func(raw string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onMessage = append(m.onMessage, fn)
}

// OnStateChange registers fn to run on every state transition
func (m *Manager) OnStateChange(fn func(State)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onStateChange = append(m.onStateChange, fn)
}

// State returns the current lifecycle state
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// IsOpen reports whether Send may be called
func (m *Manager) IsOpen() bool { return m.State() == Open }

// Done is closed once the manager reaches Closed
func (m *Manager) Done() <-chan struct{} { return m.done }

// Start dials the endpoint in the background. ctx bounds the dial only.
// Calling Start more than once has no effect.
func (m *Manager) Start(ctx context.Context) {
	m.mu.Lock()
	if m.started || m.state != Connecting {
		m.mu.Unlock()
		return
	}
	m.started = true
	m.mu.Unlock()

	go m.run(ctx)
}

func (m *Manager) run(ctx context.Context) {
	dialer := websocket.Dialer{
		Proxy:            websocket.DefaultDialer.Proxy,
		HandshakeTimeout: m.settings.HandshakeTimeout,
	}
	ws, _, err := dialer.DialContext(ctx, m.url, nil)
	if err != nil {
		m.logger.Warn("connect failed", "error", err)
		m.transition(Closed)
		return
	}
	if m.settings.ReadLimit > 0 {
		ws.SetReadLimit(m.settings.ReadLimit)
	}

	m.mu.Lock()
	if m.state != Connecting {
		// closed while dialing
		m.mu.Unlock()
		_ = ws.Close()
		return
	}
	m.ws = ws
	m.state = Open
	handlers := append([]func(State){}, m.onStateChange...)
	m.mu.Unlock()

	m.logger.Info("connected")
	for _, fn := range handlers {
		fn(Open)
	}
	for _, fn := range m.openHandlers() {
		fn()
	}

	m.readLoop(ws)
}

func (m *Manager) readLoop(ws *websocket.Conn) {
	for {
		messageType, message, err := ws.ReadMessage()
		if err != nil {
			if m.State() == Open {
				m.logger.Warn("connection dropped", "error", err)
			}
			m.finish()
			return
		}
		switch messageType {
		case websocket.TextMessage:
			raw := string(message)
			for _, fn := range m.messageHandlers() {
				fn(raw)
			}
		default:
			m.logger.Debug("ignoring non-text frame", "type", messageType, "bytes", len(message))
		}
	}
}

// Send transmits payload as one text frame. It does not wait for delivery.
func (m *Manager) Send(payload string) error {
	m.mu.Lock()
	if m.state != Open || m.ws == nil {
		state := m.state
		m.mu.Unlock()
		m.logger.Debug("send while not open", "state", state.String())
		return fmt.Errorf("%w: state %s", ErrNotOpen, state)
	}
	ws := m.ws
	m.mu.Unlock()

	m.writeMu.Lock()
	defer m.writeMu.Unlock()
	if m.settings.WriteTimeout > 0 {
		_ = ws.SetWriteDeadline(time.Now().Add(m.settings.WriteTimeout))
	}
	if err := ws.WriteMessage(websocket.TextMessage, []byte(payload)); err != nil {
		m.logger.Warn("send failed", "error", err)
		return fmt.Errorf("send: %w", err)
	}
	return nil
}

// Close tears the connection down. It is safe to call in any state and more than once.
func (m *Manager) Close() {
	m.mu.Lock()
	switch m.state {
	case Closed, Closing:
		m.mu.Unlock()
		return
	case Connecting:
		// a pending dial notices the state change and discards its socket
		m.mu.Unlock()
		m.transition(Closed)
		return
	}
	ws := m.ws
	m.mu.Unlock()
	if ws == nil {
		m.finish()
		return
	}

	m.transition(Closing)

	timeout := m.settings.WriteTimeout
	if timeout <= 0 {
		timeout = time.Second
	}
	m.writeMu.Lock()
	deadline := time.Now().Add(timeout)
	_ = ws.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
	m.writeMu.Unlock()

	// unblocks the reader, which finishes the transition to Closed
	_ = ws.Close()
	m.finish()
}

func (m *Manager) finish() {
	m.mu.Lock()
	ws := m.ws
	m.ws = nil
	m.mu.Unlock()
	if ws != nil {
		_ = ws.Close()
	}
	m.transition(Closed)
}

// transition moves to next and notifies listeners. Closed is terminal.
func (m *Manager) transition(next State) {
	m.mu.Lock()
	if m.state == next || m.state == Closed {
		m.mu.Unlock()
		return
	}
	prev := m.state
	m.state = next
	handlers := append([]func(State){}, m.onStateChange...)
	if next == Closed {
		close(m.done)
	}
	m.mu.Unlock()

	m.logger.Debug("state change", "from", prev.String(), "to", next.String())
	for _, fn := range handlers {
		fn(next)
	}
}

func (m *Manager) openHandlers() []func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]func(){}, m.onOpen...)
}

func (m *Manager) messageHandlers() []func(string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]func(string){}, m.onMessage...)
}
