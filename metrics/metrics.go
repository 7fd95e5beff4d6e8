package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "assettrack"

// Metrics holds the client's collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	FramesReceived  prometheus.Counter
	MalformedFrames prometheus.Counter
	Assets          prometheus.Gauge
	Checkins        *prometheus.CounterVec
	ConnectionState prometheus.Gauge
}

// New creates the collectors and registers them with reg when reg is non-nil
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		FramesReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "snapshot",
			Name:      "frames_received_total",
			Help:      "Inbound snapshot frames, valid or not.",
		}),
		MalformedFrames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "snapshot",
			Name:      "malformed_frames_total",
			Help:      "Inbound frames that failed to decode and were discarded.",
		}),
		Assets: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "snapshot",
			Name:      "assets",
			Help:      "Records in the current snapshot.",
		}),
		Checkins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "checkin",
			Name:      "submissions_total",
			Help:      "Check-in submissions by outcome.",
		}, []string{"outcome"}),
		ConnectionState: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "connection",
			Name:      "state",
			Help:      "Connection state: 0 connecting, 1 open, 2 closing, 3 closed.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.FramesReceived, m.MalformedFrames, m.Assets, m.Checkins, m.ConnectionState)
	}
	return m
}

// FrameReceived counts one inbound frame
func (m *Metrics) FrameReceived() {
	if m == nil {
		return
	}
	m.FramesReceived.Inc()
}

// MalformedFrame counts one discarded frame
func (m *Metrics) MalformedFrame() {
	if m == nil {
		return
	}
	m.MalformedFrames.Inc()
}

// SnapshotApplied records the size of the snapshot now held
func (m *Metrics) SnapshotApplied(assets int) {
	if m == nil {
		return
	}
	m.Assets.Set(float64(assets))
}

// Checkin counts one submission with the given outcome label
func (m *Metrics) Checkin(outcome string) {
	if m == nil {
		return
	}
	m.Checkins.WithLabelValues(outcome).Inc()
}

// SetConnectionState records the numeric connection state
func (m *Metrics) SetConnectionState(state int) {
	if m == nil {
		return
	}
	m.ConnectionState.Set(float64(state))
}
