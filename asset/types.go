package asset

// Record is a single asset check-in inside a snapshot
type Record struct {
	ID           string   `json:"id"`
	TimestampUTC string   `json:"timestamp_utc"`
	Lat          string   `json:"lat"`
	Lng          string   `json:"lng"`
	Timezone     []string `json:"timezone"`
	Datetime     string   `json:"datetime"`
	Distance     string   `json:"distance"`
}

// Position returns the numeric coordinates of the record.
// ok is false when either coordinate has no numeric prefix.
func (r Record) Position() (lat, lng float64, ok bool) {
	lat, okLat := LeadingFloat(r.Lat)
	lng, okLng := LeadingFloat(r.Lng)
	return lat, lng, okLat && okLng
}

// Candidate is an in-progress check-in entered by the user
type Candidate struct {
	ID  string `json:"id" validate:"required"`
	Lat string `json:"lat" validate:"leadingfloat"`
	Lng string `json:"lng" validate:"leadingfloat"`
}
