package checkin

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/go-playground/validator/v10"

	"github.com/theoremus-urban-solutions/assettrack/asset"
)

// fakeConn records sends and reports a fixed open state
type fakeConn struct {
	open    bool
	sendErr error
	sent    []string
}

func (f *fakeConn) IsOpen() bool { return f.open }

func (f *fakeConn) Send(payload string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, payload)
	return nil
}

func TestValidate_EmptyIDAlwaysInvalid(t *testing.T) {
	s := NewSubmitter(nil)
	coords := []string{"", "abc", "16.8", "0", "-1e3"}
	for _, lat := range coords {
		for _, lng := range coords {
			if s.Validate(asset.Candidate{ID: "", Lat: lat, Lng: lng}) {
				t.Errorf("empty id with lat=%q lng=%q should be invalid", lat, lng)
			}
		}
	}
}

func TestValidate_NonNumericCoordinates(t *testing.T) {
	s := NewSubmitter(nil)
	tests := []asset.Candidate{
		{ID: "bike-7", Lat: "abc", Lng: "100.4"},
		{ID: "bike-7", Lat: "16.8", Lng: "abc"},
		{ID: "bike-7", Lat: "", Lng: "100.4"},
		{ID: "bike-7", Lat: "16.8", Lng: ""},
		{ID: "bike-7", Lat: "north", Lng: "east"},
	}
	for _, c := range tests {
		if s.Validate(c) {
			t.Errorf("%+v should be invalid", c)
		}
	}
}

func TestValidate_Accepts(t *testing.T) {
	s := NewSubmitter(nil)
	tests := []asset.Candidate{
		{ID: "bike-7", Lat: "16.8", Lng: "100.4"},
		{ID: "x", Lat: "-33", Lng: ".5"},
		// numeric prefix is enough
		{ID: "x", Lat: "16.8N", Lng: "100.4E"},
		{ID: " ", Lat: "0", Lng: "0"},
	}
	for _, c := range tests {
		if !s.Validate(c) {
			t.Errorf("%+v should be valid", c)
		}
	}
}

func TestSubmit_OpenConnectionSendsOnce(t *testing.T) {
	s := NewSubmitter(nil)
	conn := &fakeConn{open: true}

	out := s.Submit(asset.Candidate{ID: "bike-7", Lat: "16.8", Lng: "100.4"}, conn)
	if out != OutcomeSent {
		t.Fatalf("Submit outcome = %v, want sent", out)
	}
	if len(conn.sent) != 1 {
		t.Fatalf("expected exactly one send, got %d", len(conn.sent))
	}

	var got map[string]string
	if err := json.Unmarshal([]byte(conn.sent[0]), &got); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	want := map[string]string{"id": "bike-7", "lat": "16.8", "lng": "100.4"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("payload = %v, want %v", got, want)
	}
}

func TestSubmit_ClosedConnectionSendsNothing(t *testing.T) {
	s := NewSubmitter(nil)
	conn := &fakeConn{open: false}

	out := s.Submit(asset.Candidate{ID: "bike-7", Lat: "16.8", Lng: "100.4"}, conn)
	if out != OutcomeNotOpen {
		t.Errorf("Submit outcome = %v, want not_open", out)
	}
	if len(conn.sent) != 0 {
		t.Errorf("expected zero sends, got %d", len(conn.sent))
	}
	if s.Submit(asset.Candidate{ID: "bike-7", Lat: "1", Lng: "1"}, nil) != OutcomeNotOpen {
		t.Error("nil connection should behave as not open")
	}
}

// Invalid candidates are dropped silently. This is a known weak point kept
// on purpose: the only guarantee is that nothing invalid reaches the wire.
func TestSubmit_InvalidIsSilentlyDropped(t *testing.T) {
	s := NewSubmitter(nil)
	conn := &fakeConn{open: true}

	out := s.Submit(asset.Candidate{ID: "bike-7", Lat: "abc", Lng: "100.4"}, conn)
	if out != OutcomeInvalid {
		t.Errorf("Submit outcome = %v, want invalid", out)
	}
	if len(conn.sent) != 0 {
		t.Errorf("invalid candidate reached the wire: %v", conn.sent)
	}
	t.Logf("✓ invalid candidate dropped without error (known weak point)")
}

func TestSubmit_SendFailure(t *testing.T) {
	s := NewSubmitter(nil)
	conn := &fakeConn{open: true, sendErr: errors.New("broken pipe")}

	out := s.Submit(asset.Candidate{ID: "bike-7", Lat: "16.8", Lng: "100.4"}, conn)
	if out != OutcomeSendFailed {
		t.Errorf("Submit outcome = %v, want send_failed", out)
	}
}

func TestOutcome_String(t *testing.T) {
	names := map[Outcome]string{
		OutcomeSent:       "sent",
		OutcomeInvalid:    "invalid",
		OutcomeNotOpen:    "not_open",
		OutcomeSendFailed: "send_failed",
		Outcome(99):       "unknown",
	}
	for o, want := range names {
		if o.String() != want {
			t.Errorf("Outcome(%d).String() = %q, want %q", int(o), o.String(), want)
		}
	}
}

func TestMustRegister_PanicsOnRejectedTag(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for an empty validation tag")
		}
	}()
	mustRegister(validator.New(), "", func(validator.FieldLevel) bool { return true })
}

func TestNewSubmitter_RegistersLeadingFloat(t *testing.T) {
	s := NewSubmitter(nil)
	if !s.Validate(asset.Candidate{ID: "a", Lat: "1x", Lng: "2"}) {
		t.Error("leadingfloat tag not registered")
	}
	t.Logf("✓ leadingfloat validation registered")
}
