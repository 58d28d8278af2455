package usecases

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/astromicai/astromic-app-sub000/internal/core/domain"
)

const canonicalLayout = "2006-01-02T15:04"

var offsetPattern = regexp.MustCompile(`^(?:UTC|GMT)?([+-])(\d{1,2}):?(\d{2})?$`)

// TimeResolver turns a birth date and clock reading into an instant.
type TimeResolver struct {
	now func() time.Time
}

// NewTimeResolver creates a resolver. A nil clock uses time.Now.
func NewTimeResolver(now func() time.Time) *TimeResolver {
	if now == nil {
		now = time.Now
	}
	return &TimeResolver{now: now}
}

// Resolve parses date (YYYY-MM-DD) and clock ("08:30 PM", "8:30am",
// "20:30") as a local reading in loc. Unusable input never fails: the
// current instant is substituted and the result carries a fallback.
func (r *TimeResolver) Resolve(date, clock string, loc *time.Location) domain.BirthInstant {
	if loc == nil {
		loc = time.UTC
	}
	t, err := parseBirthTime(date, clock, loc)
	if err == nil {
		return domain.BirthInstant{Instant: t.UTC()}
	}

	fb := &domain.InvalidInputFallback{Date: date, Time: clock, Reason: err.Error()}
	slog.Warn("birth time unusable, substituting current instant",
		"date", date, "time", clock, "zone", loc.String(), "error", err)
	return domain.BirthInstant{Instant: r.now().UTC(), Fallback: fb}
}

func parseBirthTime(date, clock string, loc *time.Location) (time.Time, error) {
	s := strings.ToUpper(strings.TrimSpace(clock))
	pm := strings.HasSuffix(s, "PM")
	am := strings.HasSuffix(s, "AM")
	if pm || am {
		s = strings.TrimSpace(s[:len(s)-2])
	}

	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return time.Time{}, fmt.Errorf("time %q: want HH:MM", clock)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("hour: %w", err)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("minute: %w", err)
	}
	if hour < 0 || minute < 0 {
		return time.Time{}, errors.New("negative clock field")
	}
	// Seconds are validated but the chart keeps minute precision.
	if len(parts) == 3 {
		sec, err := strconv.Atoi(parts[2])
		if err != nil {
			return time.Time{}, fmt.Errorf("second: %w", err)
		}
		if sec < 0 || sec > 59 {
			return time.Time{}, fmt.Errorf("second %d out of range", sec)
		}
	}

	if pm && hour < 12 {
		hour += 12
	}
	if am && hour == 12 {
		hour = 0
	}

	canonical := fmt.Sprintf("%sT%02d:%02d", strings.TrimSpace(date), hour, minute)
	t, err := time.ParseInLocation(canonicalLayout, canonical, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %q: %w", canonical, err)
	}
	return t, nil
}

// ParseZone resolves an IANA zone name, "UTC", "Local", or a fixed UTC
// offset such as "+05:30", "-0800" or "UTC+5". The UTC and Local aliases
// are matched case-insensitively.
func ParseZone(zone string) (*time.Location, error) {
	z := strings.TrimSpace(zone)
	if z == "" {
		return nil, &domain.BoundaryError{Field: "zone", Value: `""`, Reason: "time zone is required"}
	}

	switch strings.ToUpper(z) {
	case "UTC", "GMT", "Z":
		return time.UTC, nil
	case "LOCAL":
		return time.Local, nil
	}

	if m := offsetPattern.FindStringSubmatch(strings.ToUpper(z)); m != nil {
		h, _ := strconv.Atoi(m[2])
		mins := 0
		if m[3] != "" {
			mins, _ = strconv.Atoi(m[3])
		}
		if h > 14 || mins > 59 {
			return nil, &domain.BoundaryError{Field: "zone", Value: z, Reason: "offset out of range"}
		}
		secs := h*3600 + mins*60
		if m[1] == "-" {
			secs = -secs
		}
		return time.FixedZone(z, secs), nil
	}

	loc, err := time.LoadLocation(z)
	if err != nil {
		return nil, &domain.BoundaryError{Field: "zone", Value: z, Reason: "unknown time zone"}
	}
	return loc, nil
}
