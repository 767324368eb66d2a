// Package session builds bounded, tiered study sessions from the
// scheduler's due candidate pool.
package session

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/nosoyjaviero/Sistema-de-Cursos-y-examenes-IA-sub000/internal/exam"
	"github.com/nosoyjaviero/Sistema-de-Cursos-y-examenes-IA-sub000/internal/spacedrep"
)

// Input pairs a due candidate with its question, joined by the caller.
type Input struct {
	Candidate spacedrep.Candidate
	Question  exam.Question
}

// Item is one selected session entry, ready for rendering.
type Item struct {
	EntryID        string                `json:"entryId"`
	QuestionID     string                `json:"questionId"`
	Question       exam.Question         `json:"question"`
	Priority       spacedrep.Priority    `json:"priority"`
	State          spacedrep.ReviewState `json:"state"`
	Rationale      string                `json:"rationale"`
	Recommendation string                `json:"recommendation"`
}

// Stats are the session-level statistics handed to the presentation
// layer. The JSON keys are wire-visible and stay as persisted.
type Stats struct {
	ErroresNuevosIncluidos  int     `json:"errores_nuevos_incluidos"`
	ErroresAltaFrecuencia   int     `json:"errores_alta_frecuencia"`
	ErroresAntiguos         int     `json:"errores_antiguos"`
	PromedioDiasSinPractica float64 `json:"promedio_dias_sin_practica"`
}

// Session is one composed study sitting. An empty Items slice is the
// normal "no pending errors" outcome, not a failure.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Items     []Item    `json:"items"`
	Stats     Stats     `json:"stats"`
}

// IsEmpty reports the documented empty-session outcome.
func (s *Session) IsEmpty() bool {
	return len(s.Items) == 0
}

// Compose selects at most maxSize items from the pool using tiered
// sampling: alta first, then media, then baja; stalest first within a
// tier. A pool smaller than maxSize is returned whole; the session is
// never padded with non-due items.
func Compose(pool []Input, maxSize int, policy spacedrep.Policy, now time.Time) *Session {
	s := &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
	}
	if maxSize <= 0 || len(pool) == 0 {
		return s
	}

	ordered := make([]Input, len(pool))
	copy(ordered, pool)
	sort.SliceStable(ordered, func(i, j int) bool {
		ri := spacedrep.Rank(ordered[i].Candidate.Priority)
		rj := spacedrep.Rank(ordered[j].Candidate.Priority)
		if ri != rj {
			return ri < rj
		}
		return ordered[i].Candidate.Staleness > ordered[j].Candidate.Staleness
	})

	if len(ordered) > maxSize {
		ordered = ordered[:maxSize]
	}

	for _, in := range ordered {
		s.Items = append(s.Items, Item{
			EntryID:        in.Candidate.Entry.ID,
			QuestionID:     in.Candidate.Entry.QuestionID,
			Question:       in.Question,
			Priority:       in.Candidate.Priority,
			State:          in.Candidate.Entry.State,
			Rationale:      rationale(in.Candidate, policy, now),
			Recommendation: recommendation(in.Candidate.Priority, in.Question.Type),
		})
	}

	s.Stats = computeStats(s.Items, policy, now)
	return s
}

func computeStats(items []Item, policy spacedrep.Policy, now time.Time) Stats {
	var st Stats
	var totalDays float64
	for _, it := range items {
		if it.State.Status == spacedrep.StatusNewError {
			st.ErroresNuevosIncluidos++
		}
		if it.State.TimesFailed >= policy.AltaTimesFailed {
			st.ErroresAltaFrecuencia++
		}
		days, reviewed := it.State.DaysSince(now)
		if reviewed && days > policy.AncientDays {
			st.ErroresAntiguos++
		}
		totalDays += days // never-reviewed contributes zero
	}
	if len(items) > 0 {
		st.PromedioDiasSinPractica = totalDays / float64(len(items))
	}
	return st
}

// rationale names the dominant selection signal for one item.
func rationale(c spacedrep.Candidate, policy spacedrep.Policy, now time.Time) string {
	rs := c.Entry.State
	days, reviewed := rs.DaysSince(now)

	switch {
	case rs.TimesFailed >= policy.AltaTimesFailed:
		return fmt.Sprintf("Fallada %d veces: refuerzo prioritario", rs.TimesFailed)
	case reviewed && days >= policy.AltaStaleDays:
		return fmt.Sprintf("%d días sin practicar", int(days))
	case rs.Status == spacedrep.StatusNewError:
		return "Error nuevo: primera vez en repaso"
	case reviewed && days >= policy.MediaStaleDays:
		return fmt.Sprintf("%d días sin practicar", int(days))
	default:
		return fmt.Sprintf("Fallada %d veces", rs.TimesFailed)
	}
}

// recommendation suggests a study tactic keyed off priority and type.
func recommendation(p spacedrep.Priority, t exam.QuestionType) string {
	var tactic string
	switch t {
	case exam.TypeMultipleChoice:
		tactic = "revisa cada opción y descarta las incorrectas en voz alta"
	case exam.TypeShortAnswer:
		tactic = "escribe la respuesta de memoria antes de mirar la solución"
	case exam.TypeOpenQuestion:
		tactic = "explica el tema como si se lo enseñaras a otra persona"
	case exam.TypeTrueFalse:
		tactic = "justifica por qué la afirmación es verdadera o falsa"
	default:
		tactic = "repasa el material original de la pregunta"
	}

	switch p {
	case spacedrep.PriorityAlta:
		return "Dedícale tiempo extra: " + tactic
	case spacedrep.PriorityMedia:
		return "Repaso recomendado: " + tactic
	default:
		return "Repaso ligero: " + tactic
	}
}
