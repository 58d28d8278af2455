package ephemeris

import (
	"math"

	"github.com/soniakeys/unit"

	"github.com/astromicai/astromic-app-sub000/internal/core/ports"
	"github.com/astromicai/astromic-app-sub000/internal/pkg/astro"
)

func fromSpherical(lon, lat unit.Angle, dist float64) ports.Vector {
	sLon, cLon := math.Sincos(lon.Rad())
	sLat, cLat := math.Sincos(lat.Rad())
	return ports.Vector{X: dist * cLat * cLon, Y: dist * cLat * sLon, Z: dist * sLat}
}

// eclipticToEquatorial rotates about the x axis by +obliquity (degrees).
func eclipticToEquatorial(v ports.Vector, obliquity float64) ports.Vector {
	sEps, cEps := math.Sincos(obliquity * math.Pi / 180)
	return ports.Vector{
		X: v.X,
		Y: v.Y*cEps - v.Z*sEps,
		Z: v.Y*sEps + v.Z*cEps,
		T: v.T,
	}
}

// equatorialToEcliptic rotates about the x axis by -obliquity (degrees).
func equatorialToEcliptic(v ports.Vector, obliquity float64) ports.Vector {
	sEps, cEps := math.Sincos(obliquity * math.Pi / 180)
	return ports.Vector{
		X: v.X,
		Y: v.Y*cEps + v.Z*sEps,
		Z: -v.Y*sEps + v.Z*cEps,
		T: v.T,
	}
}

// raDec returns right ascension in hours and declination in degrees.
func raDec(v ports.Vector) (float64, float64) {
	ra := astro.Normalize(math.Atan2(v.Y, v.X)*180/math.Pi) / 15
	dec := math.Atan2(v.Z, math.Hypot(v.X, v.Y)) * 180 / math.Pi
	return ra, dec
}

func finite(xs ...float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
