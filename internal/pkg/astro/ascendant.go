package astro

import (
	"math"
	"time"
)

const (
	unixEpochJD = 2440587.5
	j2000JD     = 2451545.0
)

// JulianCenturies returns Julian centuries elapsed since J2000.0 at t.
func JulianCenturies(t time.Time) float64 {
	jd := float64(t.Unix())/86400 + float64(t.Nanosecond())/86400e9 + unixEpochJD
	return (jd - j2000JD) / 36525
}

// MeanObliquity returns the mean obliquity of the ecliptic in degrees at t
// (IAU 1980 polynomial).
func MeanObliquity(t time.Time) float64 {
	T := JulianCenturies(t)
	arcsec := 21.448 - T*(46.8150+T*(0.00059-T*0.001813))
	return 23 + (26+arcsec/60)/60
}

// LocalSiderealTime converts Greenwich sidereal time (hours) to local
// sidereal time (hours, [0, 24)) at the given east longitude in degrees.
func LocalSiderealTime(gstHours, longitude float64) float64 {
	lst := math.Mod(gstHours+longitude/15, 24)
	if lst < 0 {
		lst += 24
	}
	return lst
}

// Ascendant returns the tropical ecliptic longitude of the ascendant in
// degrees, [0, 360). Latitude must lie strictly inside (-90, 90); callers
// validate the observer before getting here.
func Ascendant(gstHours, obliquity, latitude, longitude float64) float64 {
	ramc := toRad(LocalSiderealTime(gstHours, longitude) * 15)
	eps := toRad(obliquity)
	phi := toRad(latitude)

	y := math.Cos(ramc)
	x := -math.Sin(ramc)*math.Cos(eps) - math.Tan(phi)*math.Sin(eps)
	return Normalize(toDeg(math.Atan2(y, x)))
}
