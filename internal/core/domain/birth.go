package domain

import "time"

// ChartRequest is the raw birth data a chart is computed from.
//
// Zone is an IANA zone name, "UTC", "Local" or a fixed offset such as
// "+05:30". The local clock reading in Time is interpreted in that zone.
type ChartRequest struct {
	Date string `json:"date"`
	Time string `json:"time"`
	Zone string `json:"zone,omitempty"`
	Observer
}

// BirthInstant is the resolved birth moment. When Fallback is set the input
// was unusable and Instant is the moment of resolution, not a birth time.
type BirthInstant struct {
	Instant  time.Time
	Fallback *InvalidInputFallback
}

// Degraded reports whether the instant is a substitute for unparseable input.
func (b BirthInstant) Degraded() bool { return b.Fallback != nil }
