package domain

import (
	"fmt"

	"github.com/astromicai/astromic-app-sub000/internal/pkg/astro"
)

// Sign is one of the twelve zodiac signs, Aries first.
type Sign int

const (
	Aries Sign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

var signNames = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// Nakshatra is one of the 27 lunar mansions, Ashwini first.
type Nakshatra int

const (
	Ashwini Nakshatra = iota
	Bharani
	Krittika
	Rohini
	Mrigashira
	Ardra
	Punarvasu
	Pushya
	Ashlesha
	Magha
	PurvaPhalguni
	UttaraPhalguni
	Hasta
	Chitra
	Swati
	Vishakha
	Anuradha
	Jyeshtha
	Mula
	PurvaAshadha
	UttaraAshadha
	Shravana
	Dhanishta
	Shatabhisha
	PurvaBhadrapada
	UttaraBhadrapada
	Revati
)

var nakshatraNames = [27]string{
	"Ashwini", "Bharani", "Krittika", "Rohini", "Mrigashira", "Ardra",
	"Punarvasu", "Pushya", "Ashlesha", "Magha", "Purva Phalguni", "Uttara Phalguni",
	"Hasta", "Chitra", "Swati", "Vishakha", "Anuradha", "Jyeshtha",
	"Mula", "Purva Ashadha", "Uttara Ashadha", "Shravana", "Dhanishta", "Shatabhisha",
	"Purva Bhadrapada", "Uttara Bhadrapada", "Revati",
}

const (
	signSpan      = 30.0
	nakshatraSpan = 360.0 / 27.0
)

// SignOf returns the sign containing the ecliptic degree d.
func SignOf(d float64) Sign {
	return Sign(clampIndex(int(astro.Normalize(d)/signSpan), len(signNames)))
}

// NakshatraOf returns the nakshatra containing the ecliptic degree d.
func NakshatraOf(d float64) Nakshatra {
	return Nakshatra(clampIndex(int(astro.Normalize(d)/nakshatraSpan), len(nakshatraNames)))
}

// clampIndex keeps float-derived indexes inside a table of length n.
// NaN input converts to an implementation-defined int, so both ends are guarded.
func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// Valid reports whether s is one of the twelve signs.
func (s Sign) Valid() bool { return s >= Aries && s <= Pisces }

func (s Sign) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Sign(%d)", int(s))
	}
	return signNames[s]
}

// MarshalText encodes the sign by name.
func (s Sign) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid sign %d", int(s))
	}
	return []byte(signNames[s]), nil
}

// UnmarshalText decodes a sign name.
func (s *Sign) UnmarshalText(text []byte) error {
	for i, n := range signNames {
		if n == string(text) {
			*s = Sign(i)
			return nil
		}
	}
	return fmt.Errorf("unknown sign %q", text)
}

// Valid reports whether n is one of the 27 nakshatras.
func (n Nakshatra) Valid() bool { return n >= Ashwini && n <= Revati }

func (n Nakshatra) String() string {
	if !n.Valid() {
		return fmt.Sprintf("Nakshatra(%d)", int(n))
	}
	return nakshatraNames[n]
}

// MarshalText encodes the nakshatra by name.
func (n Nakshatra) MarshalText() ([]byte, error) {
	if !n.Valid() {
		return nil, fmt.Errorf("invalid nakshatra %d", int(n))
	}
	return []byte(nakshatraNames[n]), nil
}

// UnmarshalText decodes a nakshatra name.
func (n *Nakshatra) UnmarshalText(text []byte) error {
	for i, name := range nakshatraNames {
		if name == string(text) {
			*n = Nakshatra(i)
			return nil
		}
	}
	return fmt.Errorf("unknown nakshatra %q", text)
}
