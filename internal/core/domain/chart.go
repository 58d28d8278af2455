package domain

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/astromicai/astromic-app-sub000/internal/pkg/astro"
)

// SignPlacement locates a sidereal ecliptic degree in the zodiac.
type SignPlacement struct {
	Degree    float64   `json:"degree"`
	Sign      Sign      `json:"sign"`
	Nakshatra Nakshatra `json:"nakshatra"`
}

// PlacementOf classifies a sidereal degree. The degree is normalized first.
func PlacementOf(degree float64) SignPlacement {
	d := astro.Normalize(degree)
	return SignPlacement{Degree: d, Sign: SignOf(d), Nakshatra: NakshatraOf(d)}
}

// PlanetPosition is one body's slot in a chart. Err is set, and Placement is
// zero, when the ephemeris failed for that body.
type PlanetPosition struct {
	Body      Body
	Placement SignPlacement
	Err       error
}

// OK reports whether the body was placed.
func (p PlanetPosition) OK() bool { return p.Err == nil }

type planetJSON struct {
	Name      Body       `json:"name"`
	Degree    *float64   `json:"degree,omitempty"`
	Sign      *Sign      `json:"sign,omitempty"`
	Nakshatra *Nakshatra `json:"nakshatra,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// MarshalJSON flattens the placement next to the body name.
func (p PlanetPosition) MarshalJSON() ([]byte, error) {
	out := planetJSON{Name: p.Body}
	if p.Err != nil {
		out.Error = p.Err.Error()
	} else {
		pl := p.Placement
		out.Degree, out.Sign, out.Nakshatra = &pl.Degree, &pl.Sign, &pl.Nakshatra
	}
	return json.Marshal(out)
}

// UnmarshalJSON reverses MarshalJSON.
func (p *PlanetPosition) UnmarshalJSON(data []byte) error {
	var in planetJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*p = PlanetPosition{Body: in.Name}
	if in.Error != "" {
		p.Err = &BodyComputationError{Body: in.Name, Err: errors.New(in.Error)}
		return nil
	}
	if in.Degree == nil || in.Sign == nil || in.Nakshatra == nil {
		return errors.New("planet placement incomplete")
	}
	p.Placement = SignPlacement{Degree: *in.Degree, Sign: *in.Sign, Nakshatra: *in.Nakshatra}
	return nil
}

// ChartResult is a computed sidereal natal chart. Planets always holds one
// entry per body in Bodies order.
type ChartResult struct {
	Ascendant SignPlacement         `json:"ascendant"`
	Planets   []PlanetPosition      `json:"planets"`
	Instant   time.Time             `json:"instant"`
	Ayanamsa  float64               `json:"ayanamsa"`
	Fallback  *InvalidInputFallback `json:"fallback,omitempty"`
}

// Degraded reports whether the chart was computed from a substituted instant.
func (c *ChartResult) Degraded() bool { return c.Fallback != nil }

// Missing returns the bodies that could not be placed.
func (c *ChartResult) Missing() []Body {
	var out []Body
	for _, p := range c.Planets {
		if !p.OK() {
			out = append(out, p.Body)
		}
	}
	return out
}

// ChartRecord is a stored chart together with the request that produced it.
type ChartRecord struct {
	ID        string       `json:"id"`
	Request   ChartRequest `json:"request"`
	Chart     ChartResult  `json:"chart"`
	CreatedAt time.Time    `json:"created_at"`
}
