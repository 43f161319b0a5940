package models

// Urgency levels computed by the external matching service. The score
// formula is owned by that service; clients only render the level.
const (
	UrgencyCritical = "CRITICAL"
	UrgencyHigh     = "HIGH"
	UrgencyMedium   = "MEDIUM"
	UrgencyLow      = "LOW"
)

// UrgencyColors is the fixed four-level badge color lookup used when
// rendering matches and urgent reports.
var UrgencyColors = map[string]string{
	UrgencyCritical: "#ff1744",
	UrgencyHigh:     "#ff5722",
	UrgencyMedium:   "#ff9800",
	UrgencyLow:      "#4caf50",
}

// UrgencyColor returns the badge color for a level, falling back to the
// LOW color for anything unrecognized.
func UrgencyColor(level string) string {
	if c, ok := UrgencyColors[level]; ok {
		return c
	}
	return UrgencyColors[UrgencyLow]
}

// MatchItem is one side of a proposed pairing, in the shape the
// matching service reports it (its own record layout, not ours).
type MatchItem struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	ItemName      string  `json:"item_name"`
	Description   string  `json:"description"`
	Location      string  `json:"location"`
	ImageFilename string  `json:"image_filename,omitempty"`
	DateReported  string  `json:"date_reported,omitempty"`
	Type          string  `json:"type,omitempty"`
	Status        string  `json:"status,omitempty"`
	UrgencyScore  float64 `json:"urgency_score,omitempty"`
	UrgencyLevel  string  `json:"urgency_level,omitempty"`
}

// Match is a server-proposed pairing of one lost and one found report.
// Matches are ephemeral: they are addressed by position in the
// currently held result list, and re-fetching invalidates prior
// indices.
type Match struct {
	Lost       MatchItem `json:"lost"`
	Found      MatchItem `json:"found"`
	MatchScore string    `json:"match_score"`
	Similarity float64   `json:"similarity"`
	Urgency    string    `json:"urgency,omitempty"`
	ImageMatch bool      `json:"image_match,omitempty"`
}

// AdminReport is a report row as returned by the matching service's
// admin listing, with the admin-visible urgency fields included.
type AdminReport struct {
	MatchItem
	HoursPassed float64 `json:"hours_passed,omitempty"`
}
