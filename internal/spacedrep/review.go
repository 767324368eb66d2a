package spacedrep

import "time"

// Status is a review entry's position in the error lifecycle.
type Status string

const (
	StatusNewError        Status = "new_error"
	StatusInReinforcement Status = "in_reinforcement"
	StatusResolved        Status = "resolved"
)

// SM-2 defaults. Legacy records missing these fields are filled with the
// same values by the normalizer.
const (
	DefaultEasiness = 2.5
	MinEasiness     = 1.3
	DefaultInterval = 1
)

// ReviewState holds the spaced repetition state for a single question.
type ReviewState struct {
	Easiness       float64    `json:"easiness"`
	Repetitions    int        `json:"repetitions"`
	Interval       int        `json:"interval"`
	Status         Status     `json:"status"`
	TimesFailed    int        `json:"timesFailed"`
	LastReviewedAt *time.Time `json:"lastReviewedAt,omitempty"`
}

// NewReviewState returns a fresh state with documented defaults, as created
// the first time a question is scored incorrectly.
func NewReviewState() ReviewState {
	return ReviewState{
		Easiness:    DefaultEasiness,
		Repetitions: 0,
		Interval:    DefaultInterval,
		Status:      StatusNewError,
	}
}

// IsDue returns true when the elapsed time since the last review meets or
// exceeds the current interval. A never-reviewed state is always due.
// Resolved entries are never due.
func (rs *ReviewState) IsDue(now time.Time) bool {
	if rs.Status == StatusResolved {
		return false
	}
	if rs.LastReviewedAt == nil {
		return true
	}
	return daysBetween(*rs.LastReviewedAt, now) >= float64(rs.Interval)
}

// DaysSince returns the days elapsed since the last review. ok is false
// when the question has never been reviewed.
func (rs *ReviewState) DaysSince(now time.Time) (float64, bool) {
	if rs.LastReviewedAt == nil {
		return 0, false
	}
	return daysBetween(*rs.LastReviewedAt, now), true
}

func daysBetween(from, to time.Time) float64 {
	return to.Sub(from).Hours() / 24.0
}
