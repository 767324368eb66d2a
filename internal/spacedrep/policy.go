package spacedrep

import "time"

// Priority is the coarse selection tier used by the session composer.
// The names are wire-visible to the presentation layer and stay Spanish.
type Priority string

const (
	PriorityAlta  Priority = "alta"
	PriorityMedia Priority = "media"
	PriorityBaja  Priority = "baja"
)

// Policy is the configurable surface separating priority tiers. The zero
// value is not usable; start from DefaultPolicy.
type Policy struct {
	// AltaTimesFailed promotes to alta at this failure count.
	AltaTimesFailed int `koanf:"alta_fallos" validate:"gte=1"`
	// AltaStaleDays promotes to alta after this many days without practice.
	AltaStaleDays float64 `koanf:"alta_dias" validate:"gt=0"`
	// MediaTimesFailed promotes to media at this failure count.
	MediaTimesFailed int `koanf:"media_fallos" validate:"gte=1"`
	// MediaStaleDays promotes to media after this many days without practice.
	MediaStaleDays float64 `koanf:"media_dias" validate:"gt=0"`
	// AncientDays is the staleness cutoff for the "errores_antiguos"
	// session statistic.
	AncientDays float64 `koanf:"antiguos_dias" validate:"gt=0"`
}

// DefaultPolicy returns the reference thresholds.
func DefaultPolicy() Policy {
	return Policy{
		AltaTimesFailed:  3,
		AltaStaleDays:    7,
		MediaTimesFailed: 2,
		MediaStaleDays:   3,
		AncientDays:      7,
	}
}

// PriorityFor assigns a tier from failure count, staleness and status.
// A never-reviewed state counts as staleness zero (it is brand new, not
// stale); new_error entries floor at media.
func (p Policy) PriorityFor(rs *ReviewState, now time.Time) Priority {
	stale, _ := rs.DaysSince(now)

	if rs.TimesFailed >= p.AltaTimesFailed || stale >= p.AltaStaleDays {
		return PriorityAlta
	}
	if rs.TimesFailed >= p.MediaTimesFailed || stale >= p.MediaStaleDays {
		return PriorityMedia
	}
	if rs.Status == StatusNewError {
		return PriorityMedia
	}
	return PriorityBaja
}

// Rank orders tiers for selection: alta before media before baja.
func Rank(p Priority) int {
	switch p {
	case PriorityAlta:
		return 0
	case PriorityMedia:
		return 1
	default:
		return 2
	}
}
