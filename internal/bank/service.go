// Package bank is the error-bank service: it loads and canonicalizes the
// persisted exam collection, owns the scheduler, and exposes the
// review-outcome, mark-resolved and compose-session operations to the
// host application.
package bank

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nosoyjaviero/Sistema-de-Cursos-y-examenes-IA-sub000/internal/exam"
	"github.com/nosoyjaviero/Sistema-de-Cursos-y-examenes-IA-sub000/internal/normalize"
	"github.com/nosoyjaviero/Sistema-de-Cursos-y-examenes-IA-sub000/internal/session"
	"github.com/nosoyjaviero/Sistema-de-Cursos-y-examenes-IA-sub000/internal/spacedrep"
	"github.com/nosoyjaviero/Sistema-de-Cursos-y-examenes-IA-sub000/internal/store"
)

// Service coordinates normalization, scheduling and persistence.
// All methods are synchronous; one learner, one active session.
type Service struct {
	exams   store.ExamRepo
	reviews store.ReviewRepo
	events  store.EventRepo

	sched     *spacedrep.Scheduler
	canonical []map[string]any
	records   []exam.Record
	questions map[string]exam.Question
}

// NewService creates a service over the given repositories.
func NewService(exams store.ExamRepo, reviews store.ReviewRepo, events store.EventRepo, policy spacedrep.Policy) *Service {
	return &Service{
		exams:     exams,
		reviews:   reviews,
		events:    events,
		sched:     spacedrep.NewScheduler(policy),
		questions: make(map[string]exam.Question),
	}
}

// Load reads the raw exam collection, normalizes it, and seeds the
// scheduler from persisted review entries plus any review states that
// only exist embedded in exam documents (older producers wrote them
// there). It returns the normalization repair report.
func (s *Service) Load(ctx context.Context) (normalize.Report, error) {
	raw, err := s.exams.LoadRaw(ctx)
	if err != nil {
		return normalize.Report{}, &StorageError{Op: "load exams", Err: err}
	}

	canonical, report := normalize.Records(raw)
	records, err := normalize.Decode(canonical)
	if err != nil {
		return report, fmt.Errorf("decode normalized records: %w", err)
	}
	s.canonical = canonical
	s.records = records
	s.indexQuestions()

	entries, err := s.reviews.LoadEntries(ctx)
	if err != nil {
		return report, &StorageError{Op: "load review entries", Err: err}
	}
	s.sched = spacedrep.NewScheduler(s.sched.Policy())
	s.sched.Load(entries)
	s.bootstrapEmbeddedStates()

	return report, nil
}

// Migrate rewrites the whole stored collection in canonical form and
// persists any review entries bootstrapped from embedded states. The
// canonical maps are saved as-is, so fields this code does not model
// survive the rewrite.
func (s *Service) Migrate(ctx context.Context) (normalize.Report, error) {
	report, err := s.Load(ctx)
	if err != nil {
		return report, err
	}

	if err := s.exams.SaveAll(ctx, s.canonical); err != nil {
		return report, &StorageError{Op: "save exams", Err: err}
	}
	for _, e := range s.sched.ActiveEntries() {
		if err := s.reviews.SaveEntry(ctx, e); err != nil {
			return report, &StorageError{Op: "save review entry", Err: err}
		}
	}
	return report, nil
}

// ImportDocs normalizes and stores raw exam documents from an export of
// any vintage, then reloads.
func (s *Service) ImportDocs(ctx context.Context, raw []map[string]any) (normalize.Report, error) {
	canonical, report := normalize.Records(raw)
	for _, doc := range canonical {
		if _, ok := doc["id"].(string); !ok {
			doc["id"] = uuid.NewString()
		}
		if err := s.exams.SaveDoc(ctx, doc); err != nil {
			return report, &StorageError{Op: "save exam", Err: err}
		}
	}
	if _, err := s.Load(ctx); err != nil {
		return report, err
	}
	return report, nil
}

// RecordOutcome applies one review outcome and persists the updated
// entry plus an audit event. The scheduler state is updated first; a
// persistence failure leaves it valid for retry.
func (s *Service) RecordOutcome(ctx context.Context, questionID string, o spacedrep.Outcome) (spacedrep.Entry, error) {
	now := time.Now().UTC()
	entry, err := s.sched.RecordOutcome(questionID, o, now)
	if err != nil {
		return spacedrep.Entry{}, err
	}

	if err := s.reviews.SaveEntry(ctx, entry); err != nil {
		return entry, &StorageError{Op: "save review entry", Err: err}
	}
	if err := s.events.AppendReviewEvent(ctx, store.ReviewEventData{
		EntryID:       entry.ID,
		QuestionID:    entry.QuestionID,
		Correct:       o.Correct,
		Grade:         o.Grade,
		EasinessAfter: entry.State.Easiness,
		IntervalAfter: entry.State.Interval,
		StatusAfter:   string(entry.State.Status),
		At:            now,
	}); err != nil {
		return entry, &StorageError{Op: "append review event", Err: err}
	}
	return entry, nil
}

// MarkResolved resolves a question's active entry. Unknown and
// already-resolved ids come back as the scheduler's no-op error kinds.
func (s *Service) MarkResolved(ctx context.Context, questionID string) (spacedrep.Entry, error) {
	entry, err := s.sched.MarkResolved(questionID)
	if err != nil {
		return spacedrep.Entry{}, err
	}
	if err := s.reviews.SaveEntry(ctx, entry); err != nil {
		return entry, &StorageError{Op: "save review entry", Err: err}
	}
	return entry, nil
}

// ComposeSession builds a study session of at most maxSize items from
// the due candidate pool. An empty pool yields the documented empty
// session.
func (s *Service) ComposeSession(maxSize int, now time.Time) *session.Session {
	candidates := s.sched.DueCandidates(now)
	pool := make([]session.Input, 0, len(candidates))
	for _, c := range candidates {
		q, ok := s.questions[c.Entry.QuestionID]
		if !ok {
			// Entry for a question no longer in the bank; still reviewable.
			q = exam.Question{ID: c.Entry.QuestionID, Type: exam.TypeOpenQuestion}
		}
		pool = append(pool, session.Input{Candidate: c, Question: q})
	}
	return session.Compose(pool, maxSize, s.sched.Policy(), now)
}

// Question returns the indexed question for an id.
func (s *Service) Question(questionID string) (exam.Question, bool) {
	q, ok := s.questions[questionID]
	return q, ok
}

// Records returns the canonical collection loaded by Load.
func (s *Service) Records() []exam.Record {
	return s.records
}

// Scheduler exposes the scheduler for read-only inspection (stats).
func (s *Service) Scheduler() *spacedrep.Scheduler {
	return s.sched
}

// indexQuestions builds the question lookup. A question without an id
// gets a stable synthetic one from its exam and position.
func (s *Service) indexQuestions() {
	s.questions = make(map[string]exam.Question)
	for _, rec := range s.records {
		for i, q := range rec.Questions {
			s.questions[questionKey(rec.ID, i, &q)] = q
		}
		if rec.Result != nil {
			for i, q := range rec.Result.Resultados {
				key := questionKey(rec.ID, i, &q)
				if _, seen := s.questions[key]; !seen {
					s.questions[key] = q
				}
			}
		}
	}
}

func questionKey(examID string, index int, q *exam.Question) string {
	if q.ID != "" {
		return q.ID
	}
	return fmt.Sprintf("%s#%d", examID, index)
}

// bootstrapEmbeddedStates creates entries for review states that exist
// only inside exam documents, so legacy banks schedule without a manual
// migration step. Graded result snapshots are scanned too: older
// producers kept the only review state there.
func (s *Service) bootstrapEmbeddedStates() {
	for _, rec := range s.records {
		for i, q := range rec.Questions {
			s.bootstrapEntry(rec.ID, i, &q)
		}
		if rec.Result == nil {
			continue
		}
		for i, q := range rec.Result.Resultados {
			s.bootstrapEntry(rec.ID, i, &q)
		}
	}
}

func (s *Service) bootstrapEntry(examID string, index int, q *exam.Question) {
	if q.ReviewState == nil {
		return
	}
	qid := questionKey(examID, index, q)
	if s.sched.Get(qid) != nil {
		return
	}
	s.sched.Load([]spacedrep.Entry{{
		ID:         uuid.NewString(),
		QuestionID: qid,
		State:      *q.ReviewState,
	}})
}
