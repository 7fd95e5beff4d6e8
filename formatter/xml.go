package formatter

import (
	"strconv"
	"strings"

	"github.com/theoremus-urban-solutions/assettrack/asset"
)

// BuildXML serializes a snapshot to XML
func BuildXML(s asset.Snapshot) []byte {
	var b strings.Builder
	b.WriteString("<Snapshot count=\"")
	b.WriteString(strconv.Itoa(len(s)))
	b.WriteString("\">")
	for _, r := range s {
		b.WriteString("<Asset>")
		writeElem(&b, "Id", r.ID)
		writeElem(&b, "TimestampUTC", r.TimestampUTC)
		writeElem(&b, "Lat", r.Lat)
		writeElem(&b, "Lng", r.Lng)
		for _, tz := range r.Timezone {
			writeElem(&b, "Timezone", tz)
		}
		writeElem(&b, "Datetime", r.Datetime)
		writeElem(&b, "Distance", r.Distance)
		b.WriteString("</Asset>")
	}
	b.WriteString("</Snapshot>")
	return []byte(b.String())
}

func writeElem(b *strings.Builder, name, value string) {
	if value == "" {
		return
	}
	b.WriteString("<")
	b.WriteString(name)
	b.WriteString(">")
	b.WriteString(xmlEscape(value))
	b.WriteString("</")
	b.WriteString(name)
	b.WriteString(">")
}

func xmlEscape(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		"\"", "&quot;",
		"'", "&apos;",
	)
	return replacer.Replace(s)
}
