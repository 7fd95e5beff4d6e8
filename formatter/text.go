package formatter

import (
	"fmt"
	"strings"

	"github.com/theoremus-urban-solutions/assettrack/asset"
)

// Title is the headline shown for a snapshot, e.g. "Tracking 3 assets"
func Title(assets int) string {
	return fmt.Sprintf("Tracking %d assets", assets)
}

// Detail returns the lines shown for the focused asset
func Detail(r asset.Record) []string {
	return []string{
		"Asset checked in at " + r.Datetime,
		"Distance traveled since last check-in: " + r.Distance + " km",
	}
}

// Coordinates formats a record's position for a list row
func Coordinates(r asset.Record) string {
	lat, lng, ok := r.Position()
	if !ok {
		return fmt.Sprintf("%s, %s", r.Lat, r.Lng)
	}
	return fmt.Sprintf("%.5f, %.5f", lat, lng)
}

// BuildText renders a snapshot as a title line followed by one row per asset
func BuildText(s asset.Snapshot) []byte {
	var b strings.Builder
	b.WriteString(Title(len(s)))
	b.WriteString("\n")
	for _, r := range s {
		fmt.Fprintf(&b, "%-20s %-24s %-20s %s km\n", r.ID, Coordinates(r), r.Datetime, r.Distance)
	}
	return []byte(b.String())
}

// Build renders s in format: json, xml or text
func Build(s asset.Snapshot, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "json":
		return BuildJSON(s), nil
	case "xml":
		return BuildXML(s), nil
	case "text", "":
		return BuildText(s), nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}
