package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrBoundary matches every *BoundaryError via errors.Is.
	ErrBoundary = errors.New("input outside valid range")

	// ErrChartNotFound is returned when a stored chart does not exist.
	ErrChartNotFound = errors.New("chart not found")

	// ErrStorageUnavailable is returned when chart storage is not configured.
	ErrStorageUnavailable = errors.New("chart storage unavailable")

	// ErrUnsupportedBody is returned by ephemeris adapters asked for a body
	// they cannot place.
	ErrUnsupportedBody = errors.New("unsupported body")
)

// BoundaryError aborts a chart: an input lies outside the physically valid
// range and no partial chart is produced.
type BoundaryError struct {
	Field  string
	Value  string
	Reason string
}

func (e *BoundaryError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Field, e.Value, e.Reason)
}

func (e *BoundaryError) Is(target error) bool { return target == ErrBoundary }

// BodyComputationError marks a single body the ephemeris could not place.
// The rest of the chart is still produced.
type BodyComputationError struct {
	Body Body
	Err  error
}

func (e *BodyComputationError) Error() string {
	return fmt.Sprintf("compute %s: %v", e.Body, e.Err)
}

func (e *BodyComputationError) Unwrap() error { return e.Err }

// InvalidInputFallback records that the birth date or time could not be
// parsed and the current instant was substituted.
type InvalidInputFallback struct {
	Date   string `json:"date"`
	Time   string `json:"time"`
	Reason string `json:"reason"`
}

func (e *InvalidInputFallback) Error() string {
	return fmt.Sprintf("birth time %q %q unusable, current time substituted: %s", e.Date, e.Time, e.Reason)
}
