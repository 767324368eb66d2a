package bank

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nosoyjaviero/Sistema-de-Cursos-y-examenes-IA-sub000/internal/spacedrep"
	"github.com/nosoyjaviero/Sistema-de-Cursos-y-examenes-IA-sub000/internal/store"
)

type fakeExamRepo struct {
	docs    []map[string]any
	saveErr error
}

func (f *fakeExamRepo) LoadRaw(ctx context.Context) ([]map[string]any, error) {
	return f.docs, nil
}

func (f *fakeExamRepo) SaveAll(ctx context.Context, docs []map[string]any) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.docs = docs
	return nil
}

func (f *fakeExamRepo) SaveDoc(ctx context.Context, doc map[string]any) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	id, _ := doc["id"].(string)
	for i, d := range f.docs {
		if existing, _ := d["id"].(string); existing == id {
			f.docs[i] = doc
			return nil
		}
	}
	f.docs = append(f.docs, doc)
	return nil
}

type fakeReviewRepo struct {
	entries []spacedrep.Entry
	saveErr error
	saved   int
}

func (f *fakeReviewRepo) LoadEntries(ctx context.Context) ([]spacedrep.Entry, error) {
	return f.entries, nil
}

func (f *fakeReviewRepo) SaveEntry(ctx context.Context, e spacedrep.Entry) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved++
	for i, existing := range f.entries {
		if existing.ID == e.ID {
			f.entries[i] = e
			return nil
		}
	}
	f.entries = append(f.entries, e)
	return nil
}

type fakeEventRepo struct {
	reviewEvents  []store.ReviewEventData
	gradingEvents []store.GradingEventData
}

func (f *fakeEventRepo) AppendReviewEvent(ctx context.Context, d store.ReviewEventData) error {
	f.reviewEvents = append(f.reviewEvents, d)
	return nil
}

func (f *fakeEventRepo) AppendGradingEvent(ctx context.Context, d store.GradingEventData) error {
	f.gradingEvents = append(f.gradingEvents, d)
	return nil
}

func newTestService(exams *fakeExamRepo, reviews *fakeReviewRepo, events *fakeEventRepo) *Service {
	return NewService(exams, reviews, events, spacedrep.DefaultPolicy())
}

func legacyDoc() map[string]any {
	return map[string]any{
		"id":            "exam-1",
		"schemaVersion": "v1.2.0",
		"rutaCarpeta":   `Curso\Tema1`,
		"titulo":        "Tema 1",
		"preguntas": []any{
			map[string]any{
				"id":                "q-1",
				"tipo":              "multiple",
				"pregunta":          "¿Capital de Francia?",
				"opciones":          []any{"París", "Lyon"},
				"respuestaCorrecta": "París",
				"reviewState": map[string]any{
					"facilidad": 2.5,
					"intervalo": 0.5,
				},
			},
		},
	}
}

func TestLoadNormalizesAndBootstraps(t *testing.T) {
	exams := &fakeExamRepo{docs: []map[string]any{legacyDoc()}}
	svc := newTestService(exams, &fakeReviewRepo{}, &fakeEventRepo{})

	report, err := svc.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if report.Paths != 1 {
		t.Errorf("Paths = %d, want 1", report.Paths)
	}
	if report.Intervals != 1 {
		t.Errorf("Intervals = %d, want 1", report.Intervals)
	}

	recs := svc.Records()
	if len(recs) != 1 {
		t.Fatalf("Records len = %d, want 1", len(recs))
	}
	if recs[0].FolderPath != "Curso/Tema1" {
		t.Errorf("FolderPath = %q", recs[0].FolderPath)
	}

	// The embedded review state seeds an entry with the clamped interval.
	entry := svc.Scheduler().Get("q-1")
	if entry == nil {
		t.Fatal("no bootstrapped entry for q-1")
	}
	if entry.State.Interval != 1 {
		t.Errorf("Interval = %d, want 1", entry.State.Interval)
	}
	if entry.State.Status != spacedrep.StatusNewError {
		t.Errorf("Status = %q, want %q", entry.State.Status, spacedrep.StatusNewError)
	}
}

func TestLoadBootstrapsStatesFromGradedResults(t *testing.T) {
	exams := &fakeExamRepo{docs: []map[string]any{{
		"id": "exam-2",
		"resultado": map[string]any{
			"resultados": []any{
				map[string]any{
					"id":   "q-9",
					"tipo": "corta",
					"reviewState": map[string]any{
						"intervalo":    0.5,
						"vecesFallada": float64(3),
					},
				},
				map[string]any{
					"id":               "q-10",
					"tipo":             "corta",
					"respuestaUsuario": "mal",
				},
			},
		},
	}}}
	svc := newTestService(exams, &fakeReviewRepo{}, &fakeEventRepo{})

	if _, err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	entry := svc.Scheduler().Get("q-9")
	if entry == nil {
		t.Fatal("no bootstrapped entry for a state living only in result.resultados")
	}
	if entry.State.Interval != 1 {
		t.Errorf("Interval = %d, want 1", entry.State.Interval)
	}
	if entry.State.TimesFailed != 3 {
		t.Errorf("TimesFailed = %d, want 3", entry.State.TimesFailed)
	}

	// A graded entry without a persisted state gets a defaulted one.
	graded := svc.Scheduler().Get("q-10")
	if graded == nil {
		t.Fatal("no bootstrapped entry for a graded question without a reviewState")
	}
	if graded.State.Status != spacedrep.StatusNewError {
		t.Errorf("Status = %q, want %q", graded.State.Status, spacedrep.StatusNewError)
	}
}

func TestPersistedEntriesWinOverEmbedded(t *testing.T) {
	exams := &fakeExamRepo{docs: []map[string]any{legacyDoc()}}
	persisted := spacedrep.Entry{
		ID:         "e-1",
		QuestionID: "q-1",
		State: spacedrep.ReviewState{
			Easiness:    2.1,
			Repetitions: 2,
			Interval:    6,
			Status:      spacedrep.StatusInReinforcement,
			TimesFailed: 2,
		},
	}
	reviews := &fakeReviewRepo{entries: []spacedrep.Entry{persisted}}
	svc := newTestService(exams, reviews, &fakeEventRepo{})

	if _, err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	entry := svc.Scheduler().Get("q-1")
	if entry == nil || entry.ID != "e-1" {
		t.Fatalf("embedded state shadowed the persisted entry: %+v", entry)
	}
}

func TestRecordOutcomeTwoFailures(t *testing.T) {
	exams := &fakeExamRepo{docs: []map[string]any{legacyDoc()}}
	reviews := &fakeReviewRepo{}
	events := &fakeEventRepo{}
	svc := newTestService(exams, reviews, events)
	if _, err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	incorrect := spacedrep.Outcome{Correct: false, Grade: -1}
	if _, err := svc.RecordOutcome(context.Background(), "q-1", incorrect); err != nil {
		t.Fatalf("first outcome: %v", err)
	}
	entry, err := svc.RecordOutcome(context.Background(), "q-1", incorrect)
	if err != nil {
		t.Fatalf("second outcome: %v", err)
	}

	if entry.State.TimesFailed != 2 {
		t.Errorf("TimesFailed = %d, want 2", entry.State.TimesFailed)
	}
	if entry.State.Status != spacedrep.StatusInReinforcement {
		t.Errorf("Status = %q, want %q", entry.State.Status, spacedrep.StatusInReinforcement)
	}
	if entry.State.Interval != 1 {
		t.Errorf("Interval = %d, want 1", entry.State.Interval)
	}
	if len(events.reviewEvents) != 2 {
		t.Errorf("review events = %d, want 2", len(events.reviewEvents))
	}
	if reviews.saved != 2 {
		t.Errorf("entries saved = %d, want 2", reviews.saved)
	}
}

func TestRecordOutcomeStorageFailureKeepsState(t *testing.T) {
	exams := &fakeExamRepo{docs: []map[string]any{legacyDoc()}}
	reviews := &fakeReviewRepo{saveErr: errors.New("disk full")}
	svc := newTestService(exams, reviews, &fakeEventRepo{})
	if _, err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	_, err := svc.RecordOutcome(context.Background(), "q-1", spacedrep.Outcome{Correct: false, Grade: -1})
	var se *StorageError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want StorageError", err)
	}

	// The in-memory state advanced; the next save retries from it.
	entry := svc.Scheduler().Get("q-1")
	if entry == nil || entry.State.TimesFailed != 1 {
		t.Fatalf("scheduler state lost after storage failure: %+v", entry)
	}
	reviews.saveErr = nil
	if _, err := svc.RecordOutcome(context.Background(), "q-1", spacedrep.Outcome{Correct: false, Grade: -1}); err != nil {
		t.Fatalf("retry after storage recovery: %v", err)
	}
}

func TestMarkResolvedSentinels(t *testing.T) {
	exams := &fakeExamRepo{docs: []map[string]any{legacyDoc()}}
	svc := newTestService(exams, &fakeReviewRepo{}, &fakeEventRepo{})
	if _, err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if _, err := svc.MarkResolved(context.Background(), "nope"); !errors.Is(err, spacedrep.ErrNotTracked) {
		t.Errorf("unknown id: err = %v, want ErrNotTracked", err)
	}
	if _, err := svc.MarkResolved(context.Background(), "q-1"); err != nil {
		t.Fatalf("MarkResolved: %v", err)
	}
	if _, err := svc.MarkResolved(context.Background(), "q-1"); !errors.Is(err, spacedrep.ErrAlreadyResolved) {
		t.Errorf("repeat resolve: err = %v, want ErrAlreadyResolved", err)
	}
}

func TestComposeSessionEmptyPool(t *testing.T) {
	svc := newTestService(&fakeExamRepo{}, &fakeReviewRepo{}, &fakeEventRepo{})
	if _, err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	ses := svc.ComposeSession(10, time.Now())
	if !ses.IsEmpty() {
		t.Errorf("session not empty: %d items", len(ses.Items))
	}
}

func TestComposeSessionJoinsQuestions(t *testing.T) {
	exams := &fakeExamRepo{docs: []map[string]any{legacyDoc()}}
	svc := newTestService(exams, &fakeReviewRepo{}, &fakeEventRepo{})
	if _, err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	ses := svc.ComposeSession(10, time.Now())
	if len(ses.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(ses.Items))
	}
	item := ses.Items[0]
	if item.QuestionID != "q-1" {
		t.Errorf("QuestionID = %q", item.QuestionID)
	}
	if item.Question.Text != "¿Capital de Francia?" {
		t.Errorf("question text = %q", item.Question.Text)
	}
}

func TestMigrateWritesCanonicalForm(t *testing.T) {
	exams := &fakeExamRepo{docs: []map[string]any{legacyDoc()}}
	reviews := &fakeReviewRepo{}
	svc := newTestService(exams, reviews, &fakeEventRepo{})

	report, err := svc.Migrate(context.Background())
	if err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if report.Renames == 0 {
		t.Error("report shows no renames for a legacy document")
	}
	if len(exams.docs) != 1 {
		t.Fatalf("docs = %d, want 1", len(exams.docs))
	}
	doc := exams.docs[0]
	if doc["folderPath"] != "Curso/Tema1" {
		t.Errorf("folderPath = %v", doc["folderPath"])
	}
	if _, legacy := doc["rutaCarpeta"]; legacy {
		t.Error("legacy key survived migration")
	}
	if reviews.saved == 0 {
		t.Error("bootstrapped entries were not persisted")
	}
}

func TestImportAssignsIDs(t *testing.T) {
	exams := &fakeExamRepo{}
	svc := newTestService(exams, &fakeReviewRepo{}, &fakeEventRepo{})

	doc := legacyDoc()
	delete(doc, "id")
	if _, err := svc.ImportDocs(context.Background(), []map[string]any{doc}); err != nil {
		t.Fatalf("ImportDocs: %v", err)
	}
	if len(exams.docs) != 1 {
		t.Fatalf("docs = %d, want 1", len(exams.docs))
	}
	if id, _ := exams.docs[0]["id"].(string); id == "" {
		t.Error("imported document has no id")
	}
}
