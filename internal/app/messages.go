package app

import (
	"github.com/nosoyjaviero/Sistema-de-Cursos-y-examenes-IA-sub000/internal/grading"
	"github.com/nosoyjaviero/Sistema-de-Cursos-y-examenes-IA-sub000/internal/spacedrep"
)

// gradeResultMsg carries the grader's verdict for the current answer.
type gradeResultMsg struct {
	Verdict grading.Verdict
	Err     error
}

// outcomeSavedMsg reports the persisted review outcome.
type outcomeSavedMsg struct {
	Entry   spacedrep.Entry
	Correct bool
	Err     error
}

// resolveDoneMsg reports the result of a mark-resolved action.
type resolveDoneMsg struct {
	Err error
}
