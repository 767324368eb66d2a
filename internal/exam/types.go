package exam

// typeAliases maps every question-type spelling that has appeared in
// persisted exams onto the canonical set. Earlier producer versions wrote
// Spanish short forms; a later one wrote Spanish long forms.
var typeAliases = map[string]QuestionType{
	"multiple":          TypeMultipleChoice,
	"opcion_multiple":   TypeMultipleChoice,
	"corta":             TypeShortAnswer,
	"respuesta_corta":   TypeShortAnswer,
	"desarrollo":        TypeOpenQuestion,
	"abierta":           TypeOpenQuestion,
	"verdadero-falso":   TypeTrueFalse,
	"verdadero_falso":   TypeTrueFalse,
}

// canonicalTypes is the closed set of canonical names.
var canonicalTypes = map[QuestionType]bool{
	TypeMultipleChoice: true,
	TypeShortAnswer:    true,
	TypeOpenQuestion:   true,
	TypeTrueFalse:      true,
}

// CanonicalType resolves a raw type string to its canonical name.
// Already-canonical names map to themselves. Unknown values are returned
// unchanged with ok=false so callers never destroy data they don't
// understand.
func CanonicalType(raw string) (QuestionType, bool) {
	if canonicalTypes[QuestionType(raw)] {
		return QuestionType(raw), true
	}
	if t, ok := typeAliases[raw]; ok {
		return t, true
	}
	return QuestionType(raw), false
}

// IsCanonicalType reports whether t is one of the closed canonical set.
func IsCanonicalType(t QuestionType) bool {
	return canonicalTypes[t]
}
