// Package grading asks the configured LLM provider to grade a learner's
// answer. The core never grades anything itself; it only consumes the
// verdict this package returns.
package grading

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nosoyjaviero/Sistema-de-Cursos-y-examenes-IA-sub000/internal/exam"
	"github.com/nosoyjaviero/Sistema-de-Cursos-y-examenes-IA-sub000/internal/llm"
	"github.com/nosoyjaviero/Sistema-de-Cursos-y-examenes-IA-sub000/internal/spacedrep"
)

// Verdict is the graded outcome for one answer.
type Verdict struct {
	Correct  bool   `json:"correct"`
	Grade    int    `json:"grade"`
	Feedback string `json:"feedback"`
}

// Outcome converts the verdict into the scheduler's outcome value.
func (v Verdict) Outcome() spacedrep.Outcome {
	return spacedrep.Outcome{Correct: v.Correct, Grade: v.Grade}
}

// Grader grades answers through an LLM provider.
type Grader struct {
	provider llm.Provider
}

// New creates a Grader on top of a provider.
func New(provider llm.Provider) *Grader {
	return &Grader{provider: provider}
}

const systemPrompt = `Eres un corrector de exámenes. Evalúa si la respuesta ` +
	`del estudiante es correcta. Asigna una nota de 0 a 5 (0 = ninguna idea, ` +
	`5 = respuesta perfecta) y da una retroalimentación breve en español. ` +
	`Para preguntas de desarrollo, valora la comprensión del concepto, no la ` +
	`redacción exacta.`

// verdictSchema constrains the provider output to the Verdict shape.
var verdictSchema = &llm.Schema{
	Name: "grading-verdict",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"correct": map[string]any{
				"type":        "boolean",
				"description": "Whether the answer is correct overall",
			},
			"grade": map[string]any{
				"type":        "integer",
				"description": "Self-assessment scale 0-5",
				"minimum":     0,
				"maximum":     5,
			},
			"feedback": map[string]any{
				"type":        "string",
				"description": "Short feedback for the learner, in Spanish",
			},
		},
		"required":             []any{"correct", "grade", "feedback"},
		"additionalProperties": false,
	},
}

// Grade evaluates the question's recorded user answer.
func (g *Grader) Grade(ctx context.Context, q exam.Question) (Verdict, error) {
	resp, err := g.provider.Generate(ctx, llm.Request{
		System:     systemPrompt,
		User:       buildPrompt(q),
		Schema:     verdictSchema,
		MaxTokens:  512,
		QuestionID: q.ID,
	})
	if err != nil {
		return Verdict{}, fmt.Errorf("grade question %s: %w", q.ID, err)
	}

	var v Verdict
	if err := json.Unmarshal(resp.Content, &v); err != nil {
		return Verdict{}, fmt.Errorf("decode verdict for question %s: %w", q.ID, err)
	}
	return v, nil
}

func buildPrompt(q exam.Question) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Pregunta (%s): %s\n", q.Type, q.Text)
	if len(q.Options) > 0 {
		fmt.Fprintf(&b, "Opciones: %s\n", strings.Join(q.Options, " | "))
	}
	if q.CorrectAnswer != "" {
		fmt.Fprintf(&b, "Respuesta correcta: %s\n", q.CorrectAnswer)
	}
	fmt.Fprintf(&b, "Respuesta del estudiante: %s\n", q.UserAnswer)
	return b.String()
}
