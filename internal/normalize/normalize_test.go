package normalize

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fromJSON builds the map shape the store hands the normalizer.
func fromJSON(t *testing.T, doc string) []map[string]any {
	t.Helper()
	var out []map[string]any
	require.NoError(t, json.Unmarshal([]byte(doc), &out))
	return out
}

func TestRecords_Idempotent(t *testing.T) {
	raw := fromJSON(t, `[
		{"id": "e1", "folderPath": "Platzi\\Prueba", "questions": [
			{"tipo": "multiple", "pregunta": "¿2+2?", "opciones": ["3","4"],
			 "reviewState": {"intervalo": 0.5, "vecesFallada": 2}}
		]},
		{"id": "e2", "carpeta": "Curso", "preguntas": []}
	]`)

	once, _ := Records(raw)
	twice, rep := Records(once)

	assert.True(t, reflect.DeepEqual(once, twice), "normalize(normalize(R)) != normalize(R)")
	assert.Zero(t, rep.Paths+rep.Types+rep.Intervals+rep.Defaults+rep.Renames,
		"second pass repaired fields: %+v", rep)
}

func TestRecords_CardinalityAndOrderPreserved(t *testing.T) {
	raw := fromJSON(t, `[{"id":"a"},{"id":"b"},{"id":"c"}]`)
	out, _ := Records(raw)

	require.Len(t, out, len(raw))
	for i := range raw {
		assert.Equal(t, raw[i]["id"], out[i]["id"])
	}
}

func TestRecords_InputNotMutated(t *testing.T) {
	raw := fromJSON(t, `[{"id":"e1","folderPath":"a\\b"}]`)
	_, _ = Records(raw)
	assert.Equal(t, `a\b`, raw[0]["folderPath"])
}

func TestRecords_PathCanonicalization(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`Platzi\Prueba`, "Platzi/Prueba"},
		{`a\b\c`, "a/b/c"},
		{"ya/normal", "ya/normal"},
	}
	for _, tt := range tests {
		raw := []map[string]any{{"id": "e", "folderPath": tt.in}}
		out, _ := Records(raw)
		assert.Equal(t, tt.want, out[0]["folderPath"])
	}
}

func TestRecords_IntervalFloor(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"fraction rounds up to floor", 0.5, 1},
		{"rounds to nearest", 3.6, 4},
		{"negative clamps", -2.0, 1},
		{"zero clamps", 0.0, 1},
		{"numeric string parses", "2.4", 2},
		{"garbage coerces to one", "quince", 1},
		{"already canonical", 7.0, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := []map[string]any{{
				"id":          "e",
				"reviewState": map[string]any{"interval": tt.in},
			}}
			out, _ := Records(raw)
			rs := out[0]["reviewState"].(map[string]any)
			assert.Equal(t, tt.want, rs["interval"])
		})
	}
}

func TestRecords_TypeAliasStability(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"multiple", "multiple_choice"},
		{"corta", "short_answer"},
		{"desarrollo", "open_question"},
		{"verdadero-falso", "true_false"},
		{"multiple_choice", "multiple_choice"},
		{"diagram_label", "diagram_label"}, // unknown passes through
	}
	for _, tt := range tests {
		raw := []map[string]any{{
			"id":        "e",
			"questions": []any{map[string]any{"type": tt.in, "text": "q"}},
		}}
		out, _ := Records(raw)
		q := out[0]["questions"].([]any)[0].(map[string]any)
		assert.Equal(t, tt.want, q["type"], "alias %q", tt.in)
	}
}

func TestRecords_ReviewStateDefaulting(t *testing.T) {
	raw := fromJSON(t, `[{"id":"e","reviewState":{"timesFailed":4,"easiness":1.7}}]`)
	out, _ := Records(raw)

	rs := out[0]["reviewState"].(map[string]any)
	assert.Equal(t, 1.7, rs["easiness"], "present value must not be overwritten")
	assert.Equal(t, float64(0), rs["repetitions"])
	assert.Equal(t, "new_error", rs["status"])
	assert.Equal(t, float64(4), rs["timesFailed"])
}

func TestRecords_RecursesIntoGradedResults(t *testing.T) {
	raw := fromJSON(t, `[{"id":"e","result":{"resultados":[
		{"tipo":"corta","reviewState":{"interval":0}}
	]}}]`)
	out, _ := Records(raw)

	res := out[0]["result"].(map[string]any)
	graded := res["resultados"].([]any)[0].(map[string]any)
	assert.Equal(t, "short_answer", graded["type"])
	rs := graded["reviewState"].(map[string]any)
	assert.Equal(t, float64(1), rs["interval"])
}

func TestRecords_ScoredQuestionGetsReviewState(t *testing.T) {
	raw := fromJSON(t, `[{"id":"e",
		"questions": [
			{"type":"short_answer","text":"q1","userAnswer":"mal"},
			{"type":"short_answer","text":"q2"}
		],
		"result":{"resultados":[
			{"type":"short_answer","text":"q1","userAnswer":"mal"}
		]}}]`)

	out, rep := Records(raw)

	qs := out[0]["questions"].([]any)
	answered := qs[0].(map[string]any)
	rs, ok := answered["reviewState"].(map[string]any)
	require.True(t, ok, "answered question must carry a reviewState")
	assert.Equal(t, 2.5, rs["easiness"])
	assert.Equal(t, float64(0), rs["repetitions"])
	assert.Equal(t, float64(1), rs["interval"])
	assert.Equal(t, "new_error", rs["status"])
	assert.Equal(t, float64(0), rs["timesFailed"])

	_, ok = qs[1].(map[string]any)["reviewState"]
	assert.False(t, ok, "unscored question must not get a reviewState")

	res := out[0]["result"].(map[string]any)
	graded := res["resultados"].([]any)[0].(map[string]any)
	_, ok = graded["reviewState"].(map[string]any)
	assert.True(t, ok, "graded result entry must carry a reviewState")

	assert.Equal(t, 2, rep.Defaults)

	// Created states are canonical; a second pass repairs nothing.
	_, rep2 := Records(out)
	assert.Zero(t, rep2.Defaults+rep2.Intervals+rep2.Renames, "second pass repaired fields: %+v", rep2)
}

func TestRecords_NewerVintagePassesThrough(t *testing.T) {
	raw := fromJSON(t, `[{"id":"e","schemaVersion":"v3.1.0","folderPath":"a\\b"}]`)
	out, _ := Records(raw)

	assert.Equal(t, `a\b`, out[0]["folderPath"], "newer vintage must not be rewritten")
	assert.Equal(t, "v3.1.0", out[0]["schemaVersion"])
}

func TestRecords_EndToEndLegacyRecord(t *testing.T) {
	raw := fromJSON(t, `[{
		"id": "examen-1",
		"folderPath": "Curso\\Tema1",
		"questions": [
			{"type": "multiple", "text": "¿Capital de Francia?",
			 "options": ["París","Lyon"],
			 "reviewState": {"interval": 0.5}}
		]
	}]`)

	out, rep := Records(raw)
	require.Len(t, out, 1)
	assert.Equal(t, "Curso/Tema1", out[0]["folderPath"])

	q := out[0]["questions"].([]any)[0].(map[string]any)
	assert.Equal(t, "multiple_choice", q["type"])
	rs := q["reviewState"].(map[string]any)
	assert.Equal(t, float64(1), rs["interval"])

	assert.Equal(t, 1, rep.Paths)
	assert.Equal(t, 1, rep.Types)
	assert.Equal(t, 1, rep.Intervals)

	records, err := Decode(out)
	require.NoError(t, err)
	require.Len(t, records[0].Questions, 1)
	assert.Equal(t, "multiple_choice", string(records[0].Questions[0].Type))
	require.NotNil(t, records[0].Questions[0].ReviewState)
	assert.Equal(t, 1, records[0].Questions[0].ReviewState.Interval)
	assert.Equal(t, 2.5, records[0].Questions[0].ReviewState.Easiness)
}
