package astro

import "time"

const (
	// lahiriAt2000 is the ayanamsa in degrees at the start of 2000.
	lahiriAt2000 = 23.8616
	// precessionPerYear is the linear precession rate in degrees per year.
	precessionPerYear = 0.01396
)

// FractionalYear converts t to year + (month-1)/12 + day/365 using its UTC
// calendar fields. It is intentionally not leap-year exact.
func FractionalYear(t time.Time) float64 {
	u := t.UTC()
	return float64(u.Year()) + float64(int(u.Month())-1)/12 + float64(u.Day())/365
}

// Ayanamsa returns the tropical-to-sidereal offset in degrees at t, using a
// first-order Lahiri approximation.
func Ayanamsa(t time.Time) float64 {
	return lahiriAt2000 + precessionPerYear*(FractionalYear(t)-2000)
}
