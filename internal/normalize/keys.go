package normalize

// Key synonym tables. Each maps a legacy spelling onto the canonical key.
// A rename only happens when the canonical key is not already present, so
// a record carrying both keeps its canonical value.

var recordKeySynonyms = map[string]string{
	"folder_path": "folderPath",
	"rutaCarpeta": "folderPath",
	"ruta":        "folderPath",
	"carpeta":     "folderPath",
	"preguntas":   "questions",
	"resultado":   "result",
	"titulo":      "title",
}

var questionKeySynonyms = map[string]string{
	"tipo":              "type",
	"pregunta":          "text",
	"texto":             "text",
	"opciones":          "options",
	"respuestaCorrecta": "correctAnswer",
	"respuesta_correcta": "correctAnswer",
	"respuestaUsuario":  "userAnswer",
	"respuesta_usuario": "userAnswer",
	"estadoRepaso":      "reviewState",
}

var resultKeySynonyms = map[string]string{
	"puntaje": "score",
	"nota":    "score",
}

var reviewKeySynonyms = map[string]string{
	"facilidad":      "easiness",
	"ease_factor":    "easiness",
	"repeticiones":   "repetitions",
	"intervalo":      "interval",
	"estado":         "status",
	"vecesFallada":   "timesFailed",
	"veces_fallada":  "timesFailed",
	"ultimoRepaso":   "lastReviewedAt",
	"ultimo_repaso":  "lastReviewedAt",
	"last_reviewed":  "lastReviewedAt",
}

// renameKeys moves legacy keys to their canonical names. Returns the
// number of keys renamed.
func renameKeys(m map[string]any, synonyms map[string]string) int {
	renamed := 0
	for legacy, canonical := range synonyms {
		v, ok := m[legacy]
		if !ok {
			continue
		}
		if _, exists := m[canonical]; !exists {
			m[canonical] = v
			renamed++
		}
		delete(m, legacy)
	}
	return renamed
}
