package ports

import (
	"time"

	"github.com/astromicai/astromic-app-sub000/internal/core/domain"
)

// Vector is a geocentric rectangular position in AU, referred to the mean
// equator and equinox of date at instant T.
type Vector struct {
	X, Y, Z float64
	T       time.Time
}

// EquatorialPosition is a body's apparent place on the celestial sphere.
type EquatorialPosition struct {
	RA  float64 // right ascension, hours [0, 24)
	Dec float64 // declination, degrees
	Vec Vector
}

// Ephemeris supplies tropical positions. Implementations must be safe for
// concurrent use; the chart engine never reimplements orbital mechanics.
type Ephemeris interface {
	// Equator returns the equatorial position of body at the given instant.
	// A failure is scoped to that body.
	Equator(body domain.Body, at time.Time, obs domain.Observer) (EquatorialPosition, error)

	// EclipticLongitude converts an equatorial vector to tropical ecliptic
	// longitude in degrees.
	EclipticLongitude(v Vector) (float64, error)

	// SiderealTime returns Greenwich mean sidereal time in hours.
	SiderealTime(at time.Time) float64

	// MeanObliquity returns the mean obliquity of the ecliptic in degrees.
	MeanObliquity(at time.Time) float64
}
