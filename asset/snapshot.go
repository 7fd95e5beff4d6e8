package asset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedSnapshot is returned when a frame does not decode as a list of records
var ErrMalformedSnapshot = errors.New("malformed snapshot")

// Snapshot is the complete set of assets known to the server at one point in time.
// Records sharing an id are allowed; lookups use the first one.
type Snapshot []Record

// DecodeSnapshot parses a server frame. The frame must be a JSON array;
// null, objects and scalars are rejected.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: expected JSON array", ErrMalformedSnapshot)
	}
	var s Snapshot
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedSnapshot, err)
	}
	if s == nil {
		s = Snapshot{}
	}
	return s, nil
}

// Find returns the first record with the given id
func (s Snapshot) Find(id string) (Record, bool) {
	for _, r := range s {
		if r.ID == id {
			return r, true
		}
	}
	return Record{}, false
}

// Clone returns a deep copy so callers cannot alias store state
func (s Snapshot) Clone() Snapshot {
	out := make(Snapshot, len(s))
	for i, r := range s {
		if r.Timezone != nil {
			r.Timezone = append(make([]string, 0, len(r.Timezone)), r.Timezone...)
		}
		out[i] = r
	}
	return out
}

// EncodeCandidate serializes a check-in into its wire form
func EncodeCandidate(c Candidate) (string, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
