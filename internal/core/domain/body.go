package domain

import "fmt"

// Body is one of the celestial bodies placed in a natal chart.
type Body int

const (
	Sun Body = iota
	Moon
	Mercury
	Venus
	Mars
	Jupiter
	Saturn
	Uranus
	Neptune
)

// Bodies lists every charted body in output order.
var Bodies = [...]Body{Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn, Uranus, Neptune}

var bodyNames = [...]string{"Sun", "Moon", "Mercury", "Venus", "Mars", "Jupiter", "Saturn", "Uranus", "Neptune"}

// Valid reports whether b is a member of the fixed body set.
func (b Body) Valid() bool { return b >= Sun && b <= Neptune }

func (b Body) String() string {
	if !b.Valid() {
		return fmt.Sprintf("Body(%d)", int(b))
	}
	return bodyNames[b]
}

// MarshalText encodes the body by name.
func (b Body) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("invalid body %d", int(b))
	}
	return []byte(bodyNames[b]), nil
}

// UnmarshalText decodes a body name.
func (b *Body) UnmarshalText(text []byte) error {
	for i, n := range bodyNames {
		if n == string(text) {
			*b = Body(i)
			return nil
		}
	}
	return fmt.Errorf("unknown body %q", text)
}
