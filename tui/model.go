package tui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/theoremus-urban-solutions/assettrack/asset"
	"github.com/theoremus-urban-solutions/assettrack/checkin"
	"github.com/theoremus-urban-solutions/assettrack/connection"
	"github.com/theoremus-urban-solutions/assettrack/focus"
	"github.com/theoremus-urban-solutions/assettrack/formatter"
	"github.com/theoremus-urban-solutions/assettrack/tracking"
)

// Core is the presentation-facing surface of the tracking client
type Core interface {
	Snapshot() asset.Snapshot
	Focus() (asset.Record, bool)
	FocusState() focus.State
	SetFocus(id string)
	ClearFocus()
	Candidate() asset.Candidate
	SetCandidate(c asset.Candidate)
	Submit() checkin.Outcome
	ConnectionState() connection.State
}

// EventMsg carries a core event into the bubbletea update loop
type EventMsg tracking.Event

// Sender is satisfied by *tea.Program
type Sender interface {
	Send(msg tea.Msg)
}

// Bridge forwards every event of client to program, in order, from its own
// goroutine. Publishers never wait on the program: Update itself publishes
// focus and check-in events while the program is busy running it.
// The returned function stops forwarding; queued events are dropped.
func Bridge(client *tracking.Client, program Sender) func() {
	var (
		mu      sync.Mutex
		pending []tracking.Event
	)
	wake := make(chan struct{}, 1)
	done := make(chan struct{})

	unsubscribe := client.Subscribe(func(e tracking.Event) {
		mu.Lock()
		pending = append(pending, e)
		mu.Unlock()
		select {
		case wake <- struct{}{}:
		default:
		}
	})

	go func() {
		for {
			select {
			case <-done:
				return
			case <-wake:
			}
			mu.Lock()
			batch := pending
			pending = nil
			mu.Unlock()
			for _, e := range batch {
				select {
				case <-done:
					return
				default:
				}
				program.Send(EventMsg(e))
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			unsubscribe()
			close(done)
		})
	}
}

type pane int

const (
	paneList pane = iota
	paneForm
)

// listTop is the screen line of the first asset row; View and mouse
// handling must agree on it.
const listTop = 4

const (
	fieldID = iota
	fieldLat
	fieldLng
	fieldCount
)

// Model is the bubbletea model for the tracker
type Model struct {
	core   Core
	keys   KeyMap
	pane   pane
	cursor int
	inputs [fieldCount]textinput.Model
	field  int
	status string

	assets asset.Snapshot
	width  int
	height int
}

// NewModel creates a model reading from core
func NewModel(core Core) Model {
	m := Model{
		core:   core,
		keys:   DefaultKeyMap(),
		assets: core.Snapshot(),
	}
	labels := [fieldCount]string{"id", "lat", "lng"}
	cand := core.Candidate()
	values := [fieldCount]string{cand.ID, cand.Lat, cand.Lng}
	for i := range m.inputs {
		in := textinput.New()
		in.Prompt = fmt.Sprintf("%-4s", labels[i]) + " "
		in.Placeholder = labels[i]
		in.CharLimit = 64
		in.SetValue(values[i])
		m.inputs[i] = in
	}
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case EventMsg:
		return m.handleEvent(tracking.Event(msg)), nil

	case tea.MouseMsg:
		return m.handleMouse(msg), nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		if m.pane == paneForm {
			return m.updateForm(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m Model) handleEvent(e tracking.Event) Model {
	switch e.Kind {
	case tracking.EventSnapshot:
		m.assets = m.core.Snapshot()
		if m.cursor >= len(m.assets) {
			m.cursor = max(len(m.assets)-1, 0)
		}
	case tracking.EventMalformed:
		m.status = "ignored malformed update from server"
	case tracking.EventConnection:
		if e.State == connection.Closed {
			m.status = "connection closed"
		}
	}
	return m
}

// handleMouse maps pointer motion to hover-enter and hover-leave
func (m Model) handleMouse(msg tea.MouseMsg) Model {
	if msg.Action != tea.MouseActionMotion {
		return m
	}
	row := msg.Y - listTop
	if row >= 0 && row < m.visibleRows() {
		m.cursor = row
		m.core.SetFocus(m.assets[row].ID)
		return m
	}
	if m.core.FocusState().IsFocused() {
		m.core.ClearFocus()
	}
	return m
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if len(m.assets) > 0 {
			m.cursor = max(m.cursor-1, 0)
			m.core.SetFocus(m.assets[m.cursor].ID)
		}
	case key.Matches(msg, m.keys.Down):
		if len(m.assets) > 0 {
			m.cursor = min(m.cursor+1, len(m.assets)-1)
			m.core.SetFocus(m.assets[m.cursor].ID)
		}
	case key.Matches(msg, m.keys.ClearFocus):
		m.core.ClearFocus()
	case key.Matches(msg, m.keys.Next):
		m.pane = paneForm
		m.field = fieldID
		return m, m.inputs[m.field].Focus()
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.inputs[m.field].Blur()
		m.pane = paneList
		return m, nil
	case key.Matches(msg, m.keys.Next):
		return m.moveField(1)
	case key.Matches(msg, m.keys.Previous):
		return m.moveField(-1)
	case key.Matches(msg, m.keys.Submit):
		m.status = outcomeStatus(m.core.Submit(), m.status)
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.field], cmd = m.inputs[m.field].Update(msg)
	m.core.SetCandidate(asset.Candidate{
		ID:  m.inputs[fieldID].Value(),
		Lat: m.inputs[fieldLat].Value(),
		Lng: m.inputs[fieldLng].Value(),
	})
	return m, cmd
}

// moveField cycles through the form; stepping past either end returns to the list
func (m Model) moveField(step int) (tea.Model, tea.Cmd) {
	m.inputs[m.field].Blur()
	next := m.field + step
	if next < 0 || next >= fieldCount {
		m.pane = paneList
		return m, nil
	}
	m.field = next
	return m, m.inputs[m.field].Focus()
}

// outcomeStatus keeps rejected candidates silent: the previous status stays
func outcomeStatus(out checkin.Outcome, prev string) string {
	switch out {
	case checkin.OutcomeSent:
		return "Sending asset to server"
	case checkin.OutcomeNotOpen:
		return "not connected, asset not sent"
	case checkin.OutcomeSendFailed:
		return "send failed"
	default:
		return prev
	}
}

// visibleRows is how many asset rows fit on screen
func (m Model) visibleRows() int {
	n := len(m.assets)
	if m.height > 0 {
		// title, state, blank, header + detail(3) + form(5) + status/help(2)
		room := m.height - listTop - 10
		n = min(n, max(room, 1))
	}
	return n
}

// View implements tea.Model
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(formatter.Title(len(m.assets))))
	b.WriteString("\n")
	state := m.core.ConnectionState().String()
	b.WriteString("server: " + stateStyles[state].Render(state))
	b.WriteString("\n\n")
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-20s %-24s %s", "ID", "POSITION", "CHECKED IN")))
	b.WriteString("\n")

	focusedID, focused := m.core.FocusState().ID()
	rows := m.visibleRows()
	for i := 0; i < rows; i++ {
		r := m.assets[i]
		line := fmt.Sprintf("%-20s %-24s %s", r.ID, formatter.Coordinates(r), r.Datetime)
		style := rowStyle
		if focused && i == m.cursor && r.ID == focusedID {
			style = focusedStyle
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	if hidden := len(m.assets) - rows; hidden > 0 {
		b.WriteString(helpStyle.Render(fmt.Sprintf("… %d more", hidden)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if r, ok := m.core.Focus(); ok {
		for _, line := range formatter.Detail(r) {
			b.WriteString(detailStyle.Render(line))
			b.WriteString("\n")
		}
	} else {
		b.WriteString("\n\n")
	}

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Add Asset"))
	b.WriteString("\n")
	for i := range m.inputs {
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.helpLine()))
	return b.String()
}

func (m Model) helpLine() string {
	var bindings []key.Binding
	if m.pane == paneForm {
		bindings = []key.Binding{m.keys.Next, m.keys.Previous, m.keys.Submit, m.keys.Back}
	} else {
		bindings = []key.Binding{m.keys.Up, m.keys.Down, m.keys.ClearFocus, m.keys.Next, m.keys.Quit}
	}
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}
