package formatter

import (
	"encoding/json"

	"github.com/theoremus-urban-solutions/assettrack/asset"
)

// BuildJSON serializes a snapshot as an indented JSON array
func BuildJSON(s asset.Snapshot) []byte {
	if s == nil {
		s = asset.Snapshot{}
	}
	b, _ := json.MarshalIndent(s, "", "  ")
	return b
}
