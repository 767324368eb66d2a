package app

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/nosoyjaviero/Sistema-de-Cursos-y-examenes-IA-sub000/internal/exam"
	"github.com/nosoyjaviero/Sistema-de-Cursos-y-examenes-IA-sub000/internal/ui/theme"
)

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	var content string
	switch m.phase {
	case phaseSummary:
		content = m.renderSummary()
	case phaseGrading:
		content = m.renderQuestion() + "\n\n" + theme.Hint.Render("  Corrigiendo...")
	case phaseFeedback:
		content = m.renderFeedback()
	default:
		content = m.renderQuestion()
	}

	v.SetContent(content + "\n\n" + m.renderFooter())
	return v
}

func (m Model) renderQuestion() string {
	item := m.current()
	if item == nil {
		return ""
	}

	var b strings.Builder

	progress := theme.Subtitle.Render(fmt.Sprintf("Pregunta %d/%d", m.idx+1, len(m.ses.Items)))
	b.WriteString("  " + theme.PriorityBadge(item.Priority) + "  " + progress + "\n")
	b.WriteString("  " + theme.Hint.Render(item.Rationale) + "\n\n")

	card := theme.Card.Width(min(m.width-4, 80)).Render(theme.Body.Bold(true).Render(item.Question.Text))
	b.WriteString(card + "\n\n")

	if isClosed(item.Question) {
		b.WriteString(m.renderChoices(item.Question))
	} else {
		b.WriteString("  Respuesta: " + m.input.View() + "\n")
	}

	b.WriteString("\n  " + theme.Hint.Render(item.Recommendation))
	return b.String()
}

func (m Model) renderChoices(q exam.Question) string {
	var b strings.Builder
	for i, opt := range choices(q) {
		line := fmt.Sprintf("  %d) %s", i+1, opt)
		if i == m.mcSelected {
			b.WriteString(theme.Selected.Render("> " + line[2:]))
		} else {
			b.WriteString(theme.Unselected.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderFeedback() string {
	item := m.current()
	if item == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderQuestion())
	b.WriteString("\n\n")

	if m.errMsg != "" {
		b.WriteString("  " + theme.Incorrect.Render(m.errMsg) + "\n")
	}

	if m.judgment {
		b.WriteString("  " + theme.Body.Render("Tu respuesta: "+m.lastAnswer) + "\n")
		if item.Question.CorrectAnswer != "" {
			b.WriteString("  " + theme.Correct.Render("Respuesta esperada: "+item.Question.CorrectAnswer) + "\n")
		}
		b.WriteString("\n  " + theme.Hint.Render("¿Cómo lo hiciste? Nota 0-5, [c] correcta, [f] fallada"))
		return b.String()
	}

	if m.correct {
		b.WriteString("  " + theme.Correct.Render("✓ Correcta") + "\n")
	} else {
		b.WriteString("  " + theme.Incorrect.Render("✗ Fallada") + "\n")
		if item.Question.CorrectAnswer != "" {
			b.WriteString("  " + theme.Body.Render("Respuesta correcta: "+item.Question.CorrectAnswer) + "\n")
		}
	}
	if m.verdict != nil && m.verdict.Feedback != "" {
		b.WriteString("\n  " + theme.Body.Render(m.verdict.Feedback) + "\n")
	}
	if m.nextInterval > 0 {
		b.WriteString("  " + theme.Hint.Render(fmt.Sprintf("Próximo repaso en %d día(s)", m.nextInterval)) + "\n")
	}
	if m.resolved {
		b.WriteString("\n  " + theme.Correct.Render("Marcada como resuelta") + "\n")
	}
	return b.String()
}

func (m Model) renderSummary() string {
	var b strings.Builder
	b.WriteString(theme.Title.Width(m.width).Render("Sesión terminada") + "\n\n")

	if m.ses.IsEmpty() {
		b.WriteString(theme.Subtitle.Width(m.width).Render("No hay errores pendientes de repaso. ¡Buen trabajo!"))
		return b.String()
	}

	st := m.ses.Stats
	lines := []string{
		fmt.Sprintf("Preguntas respondidas: %d/%d", m.answered, len(m.ses.Items)),
		fmt.Sprintf("Aciertos: %d", m.hits),
		fmt.Sprintf("Errores nuevos incluidos: %d", st.ErroresNuevosIncluidos),
		fmt.Sprintf("Errores de alta frecuencia: %d", st.ErroresAltaFrecuencia),
		fmt.Sprintf("Errores antiguos: %d", st.ErroresAntiguos),
		fmt.Sprintf("Promedio de días sin practicar: %.1f", st.PromedioDiasSinPractica),
	}
	card := theme.Card.Width(min(m.width-4, 60)).Render(theme.Body.Render(strings.Join(lines, "\n")))
	b.WriteString(lipgloss.NewStyle().Width(m.width).Align(lipgloss.Center).Render(card))
	return b.String()
}

func (m Model) renderFooter() string {
	var hints string
	switch m.phase {
	case phaseSummary:
		hints = "[q] Salir"
	case phaseFeedback:
		if m.judgment {
			hints = "[0-5] Nota  [c] Correcta  [f] Fallada"
		} else {
			hints = "[r] Marcar resuelta  [cualquier tecla] Siguiente"
		}
	case phaseGrading:
		hints = ""
	default:
		item := m.current()
		if item != nil && isClosed(item.Question) {
			hints = "[↑↓] Elegir  [Enter] Responder  [Esc] Salir"
		} else {
			hints = "[Enter] Responder  [Esc] Salir"
		}
	}
	return theme.Footer.Width(m.width).Render(theme.Hint.Render(hints))
}
