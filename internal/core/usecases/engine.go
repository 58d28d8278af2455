package usecases

import (
	"fmt"
	"math"
	"time"

	"github.com/astromicai/astromic-app-sub000/internal/core/domain"
	"github.com/astromicai/astromic-app-sub000/internal/core/ports"
	"github.com/astromicai/astromic-app-sub000/internal/pkg/astro"
)

// Engine computes sidereal natal charts. It holds no mutable state and is
// safe for concurrent use.
type Engine struct {
	eph         ports.Ephemeris
	resolver    *TimeResolver
	defaultZone *time.Location
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithClock sets the clock used when birth time input is unusable.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) { e.resolver = NewTimeResolver(now) }
}

// WithDefaultZone sets the zone applied to requests that carry none.
func WithDefaultZone(loc *time.Location) EngineOption {
	return func(e *Engine) { e.defaultZone = loc }
}

// NewEngine creates an Engine backed by the given ephemeris. Without
// WithDefaultZone, requests must name their zone.
func NewEngine(eph ports.Ephemeris, opts ...EngineOption) *Engine {
	e := &Engine{eph: eph, resolver: NewTimeResolver(nil)}
	for _, o := range opts {
		o(e)
	}
	return e
}

// BuildChart computes the chart for req. Boundary errors abort the whole
// call; unusable birth time and per-body ephemeris failures are reported
// inside the result.
func (e *Engine) BuildChart(req domain.ChartRequest) (*domain.ChartResult, error) {
	if err := req.Observer.Validate(); err != nil {
		return nil, err
	}
	loc, err := e.zone(req.Zone)
	if err != nil {
		return nil, err
	}

	birth := e.resolver.Resolve(req.Date, req.Time, loc)
	at := birth.Instant
	ayanamsa := astro.Ayanamsa(at)

	planets := make([]domain.PlanetPosition, 0, len(domain.Bodies))
	for _, body := range domain.Bodies {
		planets = append(planets, e.place(body, at, req.Observer, ayanamsa))
	}

	asc, err := e.ascendant(at, req.Observer)
	if err != nil {
		return nil, err
	}

	return &domain.ChartResult{
		Ascendant: domain.PlacementOf(asc - ayanamsa),
		Planets:   planets,
		Instant:   at,
		Ayanamsa:  ayanamsa,
		Fallback:  birth.Fallback,
	}, nil
}

func (e *Engine) zone(name string) (*time.Location, error) {
	if name == "" && e.defaultZone != nil {
		return e.defaultZone, nil
	}
	return ParseZone(name)
}

// place computes one body's slot. Any adapter failure, including a panic,
// stays inside that slot.
func (e *Engine) place(body domain.Body, at time.Time, obs domain.Observer, ayanamsa float64) (pos domain.PlanetPosition) {
	fail := func(err error) domain.PlanetPosition {
		return domain.PlanetPosition{Body: body, Err: &domain.BodyComputationError{Body: body, Err: err}}
	}
	defer func() {
		if r := recover(); r != nil {
			pos = fail(fmt.Errorf("ephemeris panic: %v", r))
		}
	}()

	eq, err := e.eph.Equator(body, at, obs)
	if err != nil {
		return fail(err)
	}
	tropical, err := e.eph.EclipticLongitude(eq.Vec)
	if err != nil {
		return fail(err)
	}
	if math.IsNaN(tropical) || math.IsInf(tropical, 0) {
		return fail(fmt.Errorf("longitude %v", tropical))
	}
	return domain.PlanetPosition{Body: body, Placement: domain.PlacementOf(tropical - ayanamsa)}
}

// ascendant returns the tropical ascendant in degrees.
func (e *Engine) ascendant(at time.Time, obs domain.Observer) (float64, error) {
	gst := e.eph.SiderealTime(at)
	obliquity := e.eph.MeanObliquity(at)
	if math.IsNaN(gst) || math.IsInf(gst, 0) || math.IsNaN(obliquity) || math.IsInf(obliquity, 0) {
		return 0, fmt.Errorf("ascendant: ephemeris returned gst=%v obliquity=%v", gst, obliquity)
	}
	asc := astro.Ascendant(gst, obliquity, obs.Latitude, obs.Longitude)
	if math.IsNaN(asc) {
		return 0, fmt.Errorf("ascendant: non-finite result at %s", at.Format(time.RFC3339))
	}
	return asc, nil
}
