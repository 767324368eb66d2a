package spacedrep

import (
	"math"
	"time"
)

// Outcome is the result of one review, as reported by the grading boundary.
// Grade is the optional 0-5 self-assessment; a negative value means "not
// given" and a plain correct answer is scored as DefaultCorrectGrade.
type Outcome struct {
	Correct bool
	Grade   int
}

// DefaultCorrectGrade is the SM-2 grade assumed for a plain "correct"
// outcome without a self-assessment.
const DefaultCorrectGrade = 4

// Apply computes the next review state for one outcome. It is pure: the
// input state is not touched and the returned state is complete, so a
// caller persists either the old state or the new one, never a mix.
func Apply(rs ReviewState, o Outcome, now time.Time) ReviewState {
	next := rs
	next.LastReviewedAt = &now

	if !o.Correct {
		next.TimesFailed++
		next.Repetitions = 0
		next.Interval = 1
		next.Easiness = math.Max(MinEasiness, next.Easiness-0.2)
		// The first failure leaves the entry as a new error; reinforcement
		// starts on the second.
		if next.TimesFailed >= 2 {
			next.Status = StatusInReinforcement
		}
		return next
	}

	grade := o.Grade
	if grade < 0 {
		grade = DefaultCorrectGrade
	}
	if grade > 5 {
		grade = 5
	}

	next.Repetitions++
	next.Easiness = nextEasiness(next.Easiness, grade)

	switch next.Repetitions {
	case 1:
		next.Interval = 1
	case 2:
		next.Interval = 6
	default:
		next.Interval = int(math.Round(float64(rs.Interval) * next.Easiness))
	}
	if next.Interval < 1 {
		next.Interval = 1
	}
	return next
}

// nextEasiness applies the standard SM-2 easiness update
// EF' = EF + (0.1 - (5-q)*(0.08 + (5-q)*0.02)), floored at MinEasiness.
func nextEasiness(easiness float64, grade int) float64 {
	q := float64(grade)
	e := easiness + (0.1 - (5-q)*(0.08+(5-q)*0.02))
	if e < MinEasiness {
		return MinEasiness
	}
	return e
}
