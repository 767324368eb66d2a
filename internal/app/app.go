// Package app is the interactive study session: a Bubble Tea program
// that walks the learner through a composed session, grades answers
// (locally for closed questions, through the grading service for open
// ones) and records each outcome.
package app

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/nosoyjaviero/Sistema-de-Cursos-y-examenes-IA-sub000/internal/bank"
	"github.com/nosoyjaviero/Sistema-de-Cursos-y-examenes-IA-sub000/internal/exam"
	"github.com/nosoyjaviero/Sistema-de-Cursos-y-examenes-IA-sub000/internal/grading"
	"github.com/nosoyjaviero/Sistema-de-Cursos-y-examenes-IA-sub000/internal/session"
	"github.com/nosoyjaviero/Sistema-de-Cursos-y-examenes-IA-sub000/internal/spacedrep"
)

type phase int

const (
	phaseAnswering phase = iota
	phaseGrading
	phaseFeedback
	phaseSummary
)

// Model is the root Bubble Tea model for one study session.
type Model struct {
	svc    *bank.Service
	grader *grading.Grader
	ses    *session.Session

	idx        int
	phase      phase
	input      textinput.Model
	mcSelected int

	verdict      *grading.Verdict
	judgment     bool // learner self-assessment pending
	lastAnswer   string
	correct      bool
	nextInterval int
	resolved     bool
	answered     int
	hits         int

	errMsg string
	width  int
	height int
}

// New builds the session model. The grader may be nil; open questions
// then fall back to learner self-assessment.
func New(svc *bank.Service, grader *grading.Grader, ses *session.Session) Model {
	m := Model{svc: svc, grader: grader, ses: ses}
	m.resetInput()
	if ses.IsEmpty() {
		m.phase = phaseSummary
	}
	return m
}

func (m *Model) resetInput() {
	ti := textinput.New()
	ti.Placeholder = "Escribe tu respuesta..."
	ti.Focus()
	m.input = ti
	m.mcSelected = 0
	m.verdict = nil
	m.judgment = false
	m.lastAnswer = ""
	m.resolved = false
	m.nextInterval = 0
}

func (m Model) current() *session.Item {
	if m.idx < 0 || m.idx >= len(m.ses.Items) {
		return nil
	}
	return &m.ses.Items[m.idx]
}

// choices returns the selectable options for a closed question.
func choices(q exam.Question) []string {
	if q.Type == exam.TypeTrueFalse {
		return []string{"Verdadero", "Falso"}
	}
	return q.Options
}

func isClosed(q exam.Question) bool {
	return q.Type == exam.TypeMultipleChoice || q.Type == exam.TypeTrueFalse
}

func (m Model) Init() tea.Cmd {
	return m.input.Focus()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case gradeResultMsg:
		return m.handleGradeResult(msg)

	case outcomeSavedMsg:
		return m.handleOutcomeSaved(msg)

	case resolveDoneMsg:
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
		} else {
			m.resolved = true
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.phase == phaseAnswering {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.phase {
	case phaseSummary:
		if key == "q" || key == "enter" || key == "esc" {
			return m, tea.Quit
		}
		return m, nil

	case phaseGrading:
		// Waiting on the grader; ignore input.
		return m, nil

	case phaseFeedback:
		item := m.current()
		if m.judgment && item != nil {
			return m.handleJudgment(key, item)
		}
		if key == "r" && item != nil && !m.resolved {
			return m, m.resolveCmd(item.QuestionID)
		}
		return m.advance()
	}

	// phaseAnswering
	item := m.current()
	if item == nil {
		return m, tea.Quit
	}

	if isClosed(item.Question) {
		opts := choices(item.Question)
		switch key {
		case "up", "k":
			if m.mcSelected > 0 {
				m.mcSelected--
			}
			return m, nil
		case "down", "j":
			if m.mcSelected < len(opts)-1 {
				m.mcSelected++
			}
			return m, nil
		case "enter":
			return m.submitClosed(item, opts)
		case "esc":
			return m, tea.Quit
		}
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			n := int(key[0] - '1')
			if n < len(opts) {
				m.mcSelected = n
				return m.submitClosed(item, opts)
			}
		}
		return m, nil
	}

	switch key {
	case "enter":
		return m.submitOpen(item)
	case "esc":
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submitClosed grades a multiple-choice or true/false answer locally.
func (m Model) submitClosed(item *session.Item, opts []string) (tea.Model, tea.Cmd) {
	if m.mcSelected < 0 || m.mcSelected >= len(opts) {
		return m, nil
	}
	answer := opts[m.mcSelected]
	correct := strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(item.Question.CorrectAnswer))
	grade := 0
	if correct {
		grade = spacedrep.DefaultCorrectGrade
	}
	m.phase = phaseGrading
	return m, m.recordCmd(item.QuestionID, spacedrep.Outcome{Correct: correct, Grade: grade})
}

// submitOpen sends a free-text answer to the grader, or falls back to
// self-assessment when no provider is configured.
func (m Model) submitOpen(item *session.Item) (tea.Model, tea.Cmd) {
	answer := strings.TrimSpace(m.input.Value())
	if answer == "" {
		return m, nil
	}
	m.lastAnswer = answer
	if m.grader == nil {
		// Self-assessment: show the expected answer; the learner judges.
		m.phase = phaseFeedback
		m.judgment = true
		m.verdict = nil
		return m, nil
	}

	q := item.Question
	q.UserAnswer = answer
	m.phase = phaseGrading
	grader := m.grader
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		v, err := grader.Grade(ctx, q)
		return gradeResultMsg{Verdict: v, Err: err}
	}
}

func (m Model) handleGradeResult(msg gradeResultMsg) (tea.Model, tea.Cmd) {
	item := m.current()
	if item == nil {
		return m, tea.Quit
	}
	if msg.Err != nil {
		// Grader unavailable; fall back to self-assessment.
		m.errMsg = fmt.Sprintf("corrección automática no disponible: %v", msg.Err)
		m.phase = phaseFeedback
		m.judgment = true
		m.verdict = nil
		return m, nil
	}
	v := msg.Verdict
	m.verdict = &v
	return m, m.recordCmd(item.QuestionID, v.Outcome())
}

// handleJudgment records the learner's self-assessment: a 0-5 grade
// (3 or better counts as correct), or "c" / "f" shorthands.
func (m Model) handleJudgment(key string, item *session.Item) (tea.Model, tea.Cmd) {
	var o spacedrep.Outcome
	switch {
	case key == "c":
		o = spacedrep.Outcome{Correct: true, Grade: spacedrep.DefaultCorrectGrade}
	case key == "f":
		o = spacedrep.Outcome{Correct: false}
	case len(key) == 1 && key[0] >= '0' && key[0] <= '5':
		grade := int(key[0] - '0')
		o = spacedrep.Outcome{Correct: grade >= 3, Grade: grade}
	default:
		return m, nil
	}
	m.judgment = false
	m.phase = phaseGrading
	return m, m.recordCmd(item.QuestionID, o)
}

func (m Model) handleOutcomeSaved(msg outcomeSavedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.errMsg = msg.Err.Error()
	} else {
		m.answered++
		if msg.Correct {
			m.hits++
		}
		m.nextInterval = msg.Entry.State.Interval
	}
	m.phase = phaseFeedback
	m.correct = msg.Correct
	return m, nil
}

// recordCmd persists one outcome through the service.
func (m Model) recordCmd(questionID string, o spacedrep.Outcome) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		entry, err := svc.RecordOutcome(context.Background(), questionID, o)
		return outcomeSavedMsg{Entry: entry, Correct: o.Correct, Err: err}
	}
}

func (m Model) resolveCmd(questionID string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		_, err := svc.MarkResolved(context.Background(), questionID)
		return resolveDoneMsg{Err: err}
	}
}

// advance moves to the next item or the summary.
func (m Model) advance() (tea.Model, tea.Cmd) {
	m.errMsg = ""
	m.idx++
	if m.idx >= len(m.ses.Items) {
		m.phase = phaseSummary
		return m, nil
	}
	m.phase = phaseAnswering
	m.resetInput()
	return m, m.input.Focus()
}

// Run starts the study session program.
func Run(svc *bank.Service, grader *grading.Grader, ses *session.Session) error {
	p := tea.NewProgram(New(svc, grader, ses))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
