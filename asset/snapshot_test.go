package asset

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

const twoAssets = `[
  {"id":"bike-7","timestamp_utc":"2020-10-01T10:00:00Z","lat":"16.8","lng":"100.4","timezone":["Asia/Bangkok"],"datetime":"2020-10-01 17:00:00","distance":"0"},
  {"id":"van-2","timestamp_utc":"2020-10-01T10:05:00Z","lat":"13.7","lng":"100.5","timezone":["Asia/Bangkok","ICT"],"datetime":"2020-10-01 17:05:00","distance":"4.2"}
]`

func TestDecodeSnapshot(t *testing.T) {
	s, err := DecodeSnapshot([]byte(twoAssets))
	if err != nil {
		t.Fatalf("DecodeSnapshot failed: %v", err)
	}
	if len(s) != 2 {
		t.Fatalf("expected 2 records, got %d", len(s))
	}
	want := Record{
		ID:           "van-2",
		TimestampUTC: "2020-10-01T10:05:00Z",
		Lat:          "13.7",
		Lng:          "100.5",
		Timezone:     []string{"Asia/Bangkok", "ICT"},
		Datetime:     "2020-10-01 17:05:00",
		Distance:     "4.2",
	}
	if !reflect.DeepEqual(s[1], want) {
		t.Errorf("record mismatch:\n got %+v\nwant %+v", s[1], want)
	}
}

func TestDecodeSnapshot_Empty(t *testing.T) {
	s, err := DecodeSnapshot([]byte(" [] "))
	if err != nil {
		t.Fatalf("DecodeSnapshot failed: %v", err)
	}
	if s == nil || len(s) != 0 {
		t.Errorf("expected empty non-nil snapshot, got %#v", s)
	}
}

func TestDecodeSnapshot_Malformed(t *testing.T) {
	frames := []string{
		"",
		"null",
		"not json",
		`{"id":"bike-7"}`,
		`"bike-7"`,
		`[{"id":"bike-7"`,
		`[{"id":"bike-7","lat":16.8}]`,
		`[1,2,3]`,
	}
	for _, f := range frames {
		_, err := DecodeSnapshot([]byte(f))
		if err == nil {
			t.Errorf("DecodeSnapshot(%q) should fail", f)
			continue
		}
		if !errors.Is(err, ErrMalformedSnapshot) {
			t.Errorf("DecodeSnapshot(%q) error %v should wrap ErrMalformedSnapshot", f, err)
		}
	}
}

func TestSnapshot_FindFirstMatch(t *testing.T) {
	s := Snapshot{
		{ID: "a", Distance: "1"},
		{ID: "b", Distance: "2"},
		{ID: "a", Distance: "3"},
	}
	r, ok := s.Find("a")
	if !ok {
		t.Fatal("Find(a) should succeed")
	}
	if r.Distance != "1" {
		t.Errorf("Find should return the first match, got distance %s", r.Distance)
	}
	if _, ok := s.Find("zzz"); ok {
		t.Error("Find(zzz) should miss")
	}
	if _, ok := Snapshot(nil).Find("a"); ok {
		t.Error("Find on nil snapshot should miss")
	}
}

func TestSnapshot_CloneIsIndependent(t *testing.T) {
	s := Snapshot{{ID: "a", Timezone: []string{"UTC"}}}
	c := s.Clone()
	c[0].ID = "changed"
	c[0].Timezone[0] = "changed"
	if s[0].ID != "a" || s[0].Timezone[0] != "UTC" {
		t.Errorf("Clone shares memory with original: %+v", s[0])
	}
}

func TestEncodeCandidate(t *testing.T) {
	payload, err := EncodeCandidate(Candidate{ID: "bike-7", Lat: "16.8", Lng: "100.4"})
	if err != nil {
		t.Fatalf("EncodeCandidate failed: %v", err)
	}
	var got map[string]string
	if err := json.Unmarshal([]byte(payload), &got); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	want := map[string]string{"id": "bike-7", "lat": "16.8", "lng": "100.4"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("payload = %v, want %v", got, want)
	}
}
