package grading

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/nosoyjaviero/Sistema-de-Cursos-y-examenes-IA-sub000/internal/exam"
	"github.com/nosoyjaviero/Sistema-de-Cursos-y-examenes-IA-sub000/internal/llm"
)

func TestGrade_DecodesVerdict(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"correct": false, "grade": 2, "feedback": "Revisa el tema."}`),
	})
	g := New(mock)

	v, err := g.Grade(context.Background(), exam.Question{
		ID:            "q1",
		Type:          exam.TypeShortAnswer,
		Text:          "¿Capital de Francia?",
		CorrectAnswer: "París",
		UserAnswer:    "Lyon",
	})
	if err != nil {
		t.Fatalf("Grade: %v", err)
	}
	if v.Correct {
		t.Error("expected incorrect verdict")
	}
	if v.Grade != 2 {
		t.Errorf("Grade = %d, want 2", v.Grade)
	}

	o := v.Outcome()
	if o.Correct || o.Grade != 2 {
		t.Errorf("Outcome = %+v", o)
	}
}

func TestGrade_PromptCarriesQuestionAndAnswer(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"correct": true, "grade": 5, "feedback": "Bien."}`),
	})
	g := New(mock)

	_, err := g.Grade(context.Background(), exam.Question{
		ID:            "q2",
		Type:          exam.TypeMultipleChoice,
		Text:          "¿2+2?",
		Options:       []string{"3", "4"},
		CorrectAnswer: "4",
		UserAnswer:    "3",
	})
	if err != nil {
		t.Fatalf("Grade: %v", err)
	}

	if len(mock.Calls) != 1 {
		t.Fatalf("provider calls = %d, want 1", len(mock.Calls))
	}
	req := mock.Calls[0]
	if req.QuestionID != "q2" {
		t.Errorf("QuestionID = %q, want q2", req.QuestionID)
	}
	for _, fragment := range []string{"¿2+2?", "3 | 4", "Respuesta correcta: 4", "Respuesta del estudiante: 3"} {
		if !strings.Contains(req.User, fragment) {
			t.Errorf("prompt missing %q:\n%s", fragment, req.User)
		}
	}
	if req.Schema == nil || req.Schema.Name != "grading-verdict" {
		t.Error("expected the verdict schema on the request")
	}
}

func TestGrade_ProviderErrorPropagates(t *testing.T) {
	mock := llm.NewMockProvider() // empty queue: provider unavailable
	g := New(mock)

	_, err := g.Grade(context.Background(), exam.Question{ID: "q3", UserAnswer: "x"})
	if err == nil {
		t.Fatal("expected error from unavailable provider")
	}
}
