package exam

import "github.com/nosoyjaviero/Sistema-de-Cursos-y-examenes-IA-sub000/internal/spacedrep"

// QuestionType is the canonical question kind.
type QuestionType string

const (
	TypeMultipleChoice QuestionType = "multiple_choice"
	TypeShortAnswer    QuestionType = "short_answer"
	TypeOpenQuestion   QuestionType = "open_question"
	TypeTrueFalse      QuestionType = "true_false"
)

// Record is a canonical exam document. FolderPath always uses forward
// slashes; Questions keeps the authored order.
type Record struct {
	ID          string                `json:"id"`
	FolderPath  string                `json:"folderPath,omitempty"`
	Title       string                `json:"title,omitempty"`
	Questions   []Question            `json:"questions"`
	Result      *Result               `json:"result,omitempty"`
	ReviewState *spacedrep.ReviewState `json:"reviewState,omitempty"`
}

// Question is a single exam question. Options is only set for
// multiple-choice questions.
type Question struct {
	ID            string                 `json:"id,omitempty"`
	Type          QuestionType           `json:"type"`
	Text          string                 `json:"text"`
	Options       []string               `json:"options,omitempty"`
	CorrectAnswer string                 `json:"correctAnswer,omitempty"`
	UserAnswer    string                 `json:"userAnswer,omitempty"`
	ReviewState   *spacedrep.ReviewState `json:"reviewState,omitempty"`
}

// Result is the graded outcome of an exam attempt. The graded question
// snapshots live under "resultados", matching the persisted format.
type Result struct {
	Score      float64    `json:"score,omitempty"`
	Resultados []Question `json:"resultados,omitempty"`
}
