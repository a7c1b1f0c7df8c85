package types

// ObservationRequest is one polling-tick detection from a camera source.
// ObservedAt is optional; when absent the server clock is used.
type ObservationRequest struct {
	SourceID   string  `json:"source_id"`
	Identity   string  `json:"identity"`
	Confidence float64 `json:"confidence"`
	ObservedAt string  `json:"observed_at,omitempty"` // optional device timestamp
}

// ObservationResponse reports what the pipeline did with one observation.
// LateMinutes is set only when the event was accepted past its period's
// grace deadline.
type ObservationResponse struct {
	OK          bool    `json:"ok"`
	Accepted    bool    `json:"accepted"`
	Reason      string  `json:"reason,omitempty"`
	KnownSource bool    `json:"known_source"`
	Identity    string  `json:"identity"`
	Period      string  `json:"period,omitempty"`
	LateMinutes *int    `json:"late_minutes,omitempty"`
	EventID     string  `json:"event_id,omitempty"`
	ServerTime  string  `json:"server_time"`
}
