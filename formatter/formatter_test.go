package formatter

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/theoremus-urban-solutions/assettrack/asset"
)

var fleet = asset.Snapshot{
	{ID: "bike-7", Lat: "16.8", Lng: "100.4", Timezone: []string{"Asia/Bangkok"}, Datetime: "2020-10-01 17:00:00", Distance: "0"},
	{ID: "van<2>", Lat: "north", Lng: "100.5", Datetime: "2020-10-01 17:05:00", Distance: "4.2"},
}

func TestTitle(t *testing.T) {
	if got := Title(3); got != "Tracking 3 assets" {
		t.Errorf("Title(3) = %q", got)
	}
}

func TestDetail(t *testing.T) {
	lines := Detail(fleet[1])
	want := []string{
		"Asset checked in at 2020-10-01 17:05:00",
		"Distance traveled since last check-in: 4.2 km",
	}
	if len(lines) != len(want) {
		t.Fatalf("Detail returned %d lines", len(lines))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestCoordinates(t *testing.T) {
	if got := Coordinates(fleet[0]); got != "16.80000, 100.40000" {
		t.Errorf("Coordinates = %q", got)
	}
	// unparseable coordinates are shown as sent
	if got := Coordinates(fleet[1]); got != "north, 100.5" {
		t.Errorf("Coordinates = %q", got)
	}
}

func TestBuild_JSON(t *testing.T) {
	b, err := Build(fleet, "json")
	if err != nil {
		t.Fatalf("Build json: %v", err)
	}
	var back asset.Snapshot
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(back) != 2 || back[0].ID != "bike-7" {
		t.Errorf("unexpected round trip %+v", back)
	}

	empty, _ := Build(nil, "json")
	if string(empty) != "[]" {
		t.Errorf("nil snapshot should render as [], got %s", empty)
	}
}

func TestBuild_XML(t *testing.T) {
	b, err := Build(fleet, "XML")
	if err != nil {
		t.Fatalf("Build xml: %v", err)
	}
	out := string(b)
	if !strings.HasPrefix(out, `<Snapshot count="2">`) {
		t.Errorf("unexpected prefix: %s", out)
	}
	if !strings.Contains(out, "<Id>van&lt;2&gt;</Id>") {
		t.Errorf("id not escaped: %s", out)
	}
	if !strings.Contains(out, "<Timezone>Asia/Bangkok</Timezone>") {
		t.Errorf("timezone missing: %s", out)
	}
}

func TestBuild_Text(t *testing.T) {
	b, err := Build(fleet, "")
	if err != nil {
		t.Fatalf("Build text: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(b), "\n"), "\n")
	if lines[0] != "Tracking 2 assets" {
		t.Errorf("first line = %q", lines[0])
	}
	if len(lines) != 3 {
		t.Errorf("expected title plus 2 rows, got %d lines", len(lines))
	}
	if !strings.HasSuffix(lines[2], "4.2 km") {
		t.Errorf("row should end with distance: %q", lines[2])
	}
}

func TestBuild_UnknownFormat(t *testing.T) {
	if _, err := Build(fleet, "yaml"); err == nil {
		t.Error("unknown format should fail")
	}
}
