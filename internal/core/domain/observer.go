package domain

import (
	"math"
	"strconv"
)

// Observer is the birth location on the Earth's surface (WGS 84, elevation 0).
type Observer struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate rejects coordinates the chart math cannot handle. The poles are
// excluded because the ascendant uses tan(latitude).
func (o Observer) Validate() error {
	switch {
	case math.IsNaN(o.Latitude) || math.IsInf(o.Latitude, 0):
		return boundary("latitude", o.Latitude, "must be a finite number")
	case o.Latitude <= -90 || o.Latitude >= 90:
		return boundary("latitude", o.Latitude, "must lie strictly between -90 and 90")
	case math.IsNaN(o.Longitude) || math.IsInf(o.Longitude, 0):
		return boundary("longitude", o.Longitude, "must be a finite number")
	case o.Longitude < -180 || o.Longitude > 180:
		return boundary("longitude", o.Longitude, "must lie between -180 and 180")
	}
	return nil
}

func boundary(field string, v float64, reason string) *BoundaryError {
	return &BoundaryError{Field: field, Value: strconv.FormatFloat(v, 'g', -1, 64), Reason: reason}
}
