package types

// ReportRow is one identity's line in the attendance report, ready for
// rendering or JSON/CSV output.
type ReportRow struct {
	Identity    string  `json:"identity"`
	Status      string  `json:"status"`
	Period      string  `json:"period,omitempty"`
	ObservedAt  string  `json:"observed_at,omitempty"`
	Confidence  float64 `json:"confidence,omitempty"`
	LateMinutes *int    `json:"late_minutes,omitempty"`
	SourceID    string  `json:"source_id,omitempty"`
}
