package spacedrep

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotTracked means no active review entry exists for the question.
	ErrNotTracked = errors.New("question has no active review entry")
	// ErrAlreadyResolved means the entry was resolved earlier; the call is
	// a no-op.
	ErrAlreadyResolved = errors.New("review entry already resolved")
)

// Entry is one logical error-bank record: a question id plus its review
// state. Entries are never deleted; a resolved entry is retained for
// statistics and a later fresh failure on the same question spawns a new
// entry with its own id.
type Entry struct {
	ID         string      `json:"id"`
	QuestionID string      `json:"questionId"`
	State      ReviewState `json:"state"`
}

// Candidate is a due entry annotated for session composition.
type Candidate struct {
	Entry     Entry
	Priority  Priority
	Staleness float64 // days since last review; +Inf when never reviewed
}

// Scheduler owns all ReviewState mutation. It tracks the single active
// (non-resolved) entry per question plus the resolved history.
type Scheduler struct {
	policy   Policy
	active   map[string]*Entry // keyed by question id
	resolved []Entry
}

// NewScheduler creates an empty scheduler with the given tier policy.
func NewScheduler(policy Policy) *Scheduler {
	return &Scheduler{
		policy: policy,
		active: make(map[string]*Entry),
	}
}

// Load seeds the scheduler from persisted entries. Resolved entries go to
// the history; for a question with several active entries the last one
// loaded wins (the store orders by creation).
func (s *Scheduler) Load(entries []Entry) {
	for _, e := range entries {
		if e.State.Status == StatusResolved {
			s.resolved = append(s.resolved, e)
			continue
		}
		entry := e
		s.active[e.QuestionID] = &entry
	}
}

// Get returns the active entry for a question, or nil.
func (s *Scheduler) Get(questionID string) *Entry {
	return s.active[questionID]
}

// ActiveEntries returns all active entries (for persistence and stats).
func (s *Scheduler) ActiveEntries() []Entry {
	out := make([]Entry, 0, len(s.active))
	for _, e := range s.active {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].QuestionID < out[j].QuestionID })
	return out
}

// ResolvedEntries returns the retained resolved history.
func (s *Scheduler) ResolvedEntries() []Entry {
	out := make([]Entry, len(s.resolved))
	copy(out, s.resolved)
	return out
}

// DueCandidates returns every due, non-resolved entry with its priority
// tier, sorted stalest first. This is the candidate pool for the composer.
func (s *Scheduler) DueCandidates(now time.Time) []Candidate {
	var due []Candidate
	for _, e := range s.active {
		if !e.State.IsDue(now) {
			continue
		}
		stale, ok := e.State.DaysSince(now)
		if !ok {
			// Never reviewed: always due, stalest of all.
			stale = neverReviewedStaleness
		}
		due = append(due, Candidate{
			Entry:     *e,
			Priority:  s.policy.PriorityFor(&e.State, now),
			Staleness: stale,
		})
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].Staleness != due[j].Staleness {
			return due[i].Staleness > due[j].Staleness
		}
		return due[i].Entry.QuestionID < due[j].Entry.QuestionID
	})
	return due
}

// RecordOutcome applies one review outcome to the question's active entry
// and returns the updated entry. An incorrect outcome on an untracked
// question creates a fresh entry (first failure); a correct outcome on an
// untracked question returns ErrNotTracked since there is nothing to
// reinforce.
func (s *Scheduler) RecordOutcome(questionID string, o Outcome, now time.Time) (Entry, error) {
	e, ok := s.active[questionID]
	if !ok {
		if o.Correct {
			return Entry{}, ErrNotTracked
		}
		e = &Entry{
			ID:         uuid.NewString(),
			QuestionID: questionID,
			State:      NewReviewState(),
		}
		s.active[questionID] = e
	}
	e.State = Apply(e.State, o, now)
	return *e, nil
}

// MarkResolved resolves the question's active entry and moves it to the
// history. Resolution is explicit learner action only; it never happens
// as a side effect of an outcome.
func (s *Scheduler) MarkResolved(questionID string) (Entry, error) {
	e, ok := s.active[questionID]
	if !ok {
		for _, r := range s.resolved {
			if r.QuestionID == questionID {
				return Entry{}, ErrAlreadyResolved
			}
		}
		return Entry{}, ErrNotTracked
	}
	e.State.Status = StatusResolved
	resolved := *e
	s.resolved = append(s.resolved, resolved)
	delete(s.active, questionID)
	return resolved, nil
}

// Policy returns the tier policy in effect.
func (s *Scheduler) Policy() Policy {
	return s.policy
}

// neverReviewedStaleness sorts never-reviewed entries ahead of any aged one.
const neverReviewedStaleness = float64(1 << 30)
