// Package ephemeris implements ports.Ephemeris on top of the algorithms in
// Jean Meeus' Astronomical Algorithms (github.com/soniakeys/meeus).
//
// Positions are geocentric and referred to the mean equinox of date. Planets
// use mean orbital elements without perturbation terms, which is adequate for
// sign and nakshatra level work. Nutation, aberration and light time are not
// applied.
package ephemeris

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/kepler"
	"github.com/soniakeys/meeus/v3/moonposition"
	"github.com/soniakeys/meeus/v3/nutation"
	pe "github.com/soniakeys/meeus/v3/planetelements"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/meeus/v3/solar"
	"github.com/soniakeys/unit"

	"github.com/astromicai/astromic-app-sub000/internal/core/domain"
	"github.com/astromicai/astromic-app-sub000/internal/core/ports"
	"github.com/astromicai/astromic-app-sub000/internal/pkg/astro"
)

const (
	kmPerAU = 149597870.7
	// keplerPlaces is the number of decimal places Kepler's equation is
	// solved to.
	keplerPlaces = 12
)

// ErrNotFinite is returned when a computation produces NaN or Inf.
var ErrNotFinite = errors.New("non-finite result")

// planetIDs maps bodies to meeus planet constants.
var planetIDs = map[domain.Body]int{
	domain.Mercury: pe.Mercury,
	domain.Venus:   pe.Venus,
	domain.Mars:    pe.Mars,
	domain.Jupiter: pe.Jupiter,
	domain.Saturn:  pe.Saturn,
	domain.Uranus:  pe.Uranus,
	domain.Neptune: pe.Neptune,
}

// Meeus is a stateless, concurrency-safe ephemeris.
type Meeus struct{}

// New returns a Meeus ephemeris.
func New() *Meeus { return &Meeus{} }

var _ ports.Ephemeris = (*Meeus)(nil)

// Equator returns the geocentric equatorial position of body at t. The
// observer is accepted for interface compatibility; no parallax is applied.
func (m *Meeus) Equator(body domain.Body, t time.Time, _ domain.Observer) (ports.EquatorialPosition, error) {
	lon, lat, dist, err := m.eclipticOfDate(body, t)
	if err != nil {
		return ports.EquatorialPosition{}, err
	}

	ecl := fromSpherical(lon, lat, dist)
	vec := eclipticToEquatorial(ecl, m.MeanObliquity(t))
	vec.T = t
	if !finite(vec.X, vec.Y, vec.Z) {
		return ports.EquatorialPosition{}, fmt.Errorf("%s equatorial vector: %w", body, ErrNotFinite)
	}

	ra, dec := raDec(vec)
	return ports.EquatorialPosition{RA: ra, Dec: dec, Vec: vec}, nil
}

// EclipticLongitude rotates an equatorial vector of date back onto the
// ecliptic and returns its longitude in degrees, [0, 360).
func (m *Meeus) EclipticLongitude(v ports.Vector) (float64, error) {
	if v.T.IsZero() {
		return 0, errors.New("vector has no epoch")
	}
	if !finite(v.X, v.Y, v.Z) || (v.X == 0 && v.Y == 0) {
		return 0, fmt.Errorf("ecliptic longitude: %w", ErrNotFinite)
	}
	ecl := equatorialToEcliptic(v, m.MeanObliquity(v.T))
	return astro.Normalize(math.Atan2(ecl.Y, ecl.X) * 180 / math.Pi), nil
}

// SiderealTime returns Greenwich mean sidereal time in hours.
func (m *Meeus) SiderealTime(t time.Time) float64 {
	return sidereal.Mean(julian.TimeToJD(t)).Hour()
}

// MeanObliquity returns the mean obliquity of the ecliptic in degrees.
func (m *Meeus) MeanObliquity(t time.Time) float64 {
	return nutation.MeanObliquity(julian.TimeToJD(t)).Deg()
}

// eclipticOfDate returns geocentric ecliptic longitude and latitude in
// radians and distance in AU.
func (m *Meeus) eclipticOfDate(body domain.Body, t time.Time) (lon, lat unit.Angle, dist float64, err error) {
	jde := julian.TimeToJD(t)

	switch body {
	case domain.Sun:
		T := base.J2000Century(jde)
		s, _ := solar.True(T)
		return s, 0, solar.Radius(T), nil

	case domain.Moon:
		moonLon, moonLat, km := moonposition.Position(jde)
		return moonLon, moonLat, km / kmPerAU, nil
	}

	id, ok := planetIDs[body]
	if !ok {
		return 0, 0, 0, fmt.Errorf("%s: %w", body, domain.ErrUnsupportedBody)
	}

	planet, err := heliocentric(id, jde)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%s: %w", body, err)
	}
	earth := earthHeliocentric(jde)

	x, y, z := planet.X-earth.X, planet.Y-earth.Y, planet.Z-earth.Z
	dist = math.Sqrt(x*x + y*y + z*z)
	if !finite(x, y, z) || dist == 0 {
		return 0, 0, 0, fmt.Errorf("%s geocentric position: %w", body, ErrNotFinite)
	}
	return unit.Angle(math.Atan2(y, x)), unit.Angle(math.Asin(z / dist)), dist, nil
}

// earthHeliocentric returns the Earth's ecliptic rectangular position in AU,
// the reverse of the geometric solar position. Meeus' mean element table has
// no node polynomial for the Earth, so pe.Mean cannot be used for it.
func earthHeliocentric(jde float64) ports.Vector {
	T := base.J2000Century(jde)
	s, _ := solar.True(T)
	r := solar.Radius(T)
	ss, cs := s.Sincos()
	return ports.Vector{X: -r * cs, Y: -r * ss}
}

// heliocentric returns the ecliptic rectangular position of planet id in AU
// from its mean orbital elements at jde. id must not be pe.Earth.
func heliocentric(id int, jde float64) (ports.Vector, error) {
	var el pe.Elements
	pe.Mean(id, jde, &el)

	M := (el.Lon - el.Peri).Mod1()
	E, err := kepler.Kepler2(el.Ecc, M, keplerPlaces)
	if err != nil {
		return ports.Vector{}, fmt.Errorf("solve kepler: %w", err)
	}

	e := el.Ecc
	nu := 2 * math.Atan(math.Sqrt((1+e)/(1-e))*math.Tan(E.Rad()/2))
	r := el.Axis * (1 - e*math.Cos(E.Rad()))

	// Argument of latitude measured from the ascending node.
	u := el.Peri.Rad() + nu - el.Node.Rad()
	sNode, cNode := math.Sincos(el.Node.Rad())
	su, cu := math.Sincos(u)
	si, ci := math.Sincos(el.Inc.Rad())

	v := ports.Vector{
		X: r * (cNode*cu - sNode*su*ci),
		Y: r * (sNode*cu + cNode*su*ci),
		Z: r * su * si,
	}
	if !finite(v.X, v.Y, v.Z) {
		return ports.Vector{}, ErrNotFinite
	}
	return v, nil
}
