// Package normalize canonicalizes persisted exam records of any schema
// vintage. All compatibility knowledge lives here, as one auditable
// coercion table, so downstream consumers only ever see the canonical
// shape. Every function is total: unrecognized or corrupt fields degrade
// to documented defaults, never to an error.
package normalize

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/nosoyjaviero/Sistema-de-Cursos-y-examenes-IA-sub000/internal/exam"
	"github.com/nosoyjaviero/Sistema-de-Cursos-y-examenes-IA-sub000/internal/spacedrep"
)

// SchemaVersion is the canonical schema stamped on normalized records.
// Records claiming a newer version pass through untouched.
const SchemaVersion = "v2.0.0"

// Report counts how many fields each rule repaired, for diagnostics only.
type Report struct {
	Paths     int
	Types     int
	Intervals int
	Defaults  int
	Renames   int
}

func (r *Report) merge(o Report) {
	r.Paths += o.Paths
	r.Types += o.Types
	r.Intervals += o.Intervals
	r.Defaults += o.Defaults
	r.Renames += o.Renames
}

// Records canonicalizes a raw collection. The result has the same length
// and order as the input (1:1, nothing dropped or added), the input is not
// modified, and normalizing an already-canonical collection returns an
// equal value.
func Records(raw []map[string]any) ([]map[string]any, Report) {
	var report Report
	out := make([]map[string]any, len(raw))
	for i, rec := range raw {
		out[i] = cloneMap(rec)
		if isNewerVintage(out[i]) {
			continue
		}
		report.merge(normalizeRecord(out[i]))
		out[i]["schemaVersion"] = SchemaVersion
	}
	return out, report
}

// isNewerVintage reports whether the record claims a schema version newer
// than this code understands. Such records are left alone.
func isNewerVintage(rec map[string]any) bool {
	v, ok := rec["schemaVersion"].(string)
	if !ok || !semver.IsValid(v) {
		return false
	}
	return semver.Compare(v, SchemaVersion) > 0
}

// normalizeRecord applies every rule to one exam record in place:
// key renames, path slashes, type aliases, interval coercion, review-state
// defaulting, recursively through questions and graded results.
func normalizeRecord(rec map[string]any) Report {
	var rep Report
	rep.Renames += renameKeys(rec, recordKeySynonyms)
	rep.Paths += normalizePath(rec, "folderPath")
	rep.merge(normalizeReviewFields(rec))

	if qs, ok := rec["questions"].([]any); ok {
		for _, q := range qs {
			if qm, ok := q.(map[string]any); ok {
				rep.merge(normalizeQuestion(qm, false))
			}
		}
	}

	if res, ok := rec["result"].(map[string]any); ok {
		renameKeys(res, resultKeySynonyms)
		if graded, ok := res["resultados"].([]any); ok {
			for _, g := range graded {
				if gm, ok := g.(map[string]any); ok {
					rep.merge(normalizeQuestion(gm, true))
				}
			}
		}
	}
	return rep
}

// normalizeQuestion repairs one question map. graded marks entries of
// result.resultados, which are scored by definition.
func normalizeQuestion(q map[string]any, graded bool) Report {
	var rep Report
	rep.Renames += renameKeys(q, questionKeySynonyms)

	if raw, ok := q["type"].(string); ok {
		canonical, known := exam.CanonicalType(raw)
		if known && string(canonical) != raw {
			q["type"] = string(canonical)
			rep.Types++
		}
	}

	// A question that has ever been scored carries a reviewState; create
	// one with the documented defaults when it is missing.
	if _, ok := q["reviewState"]; !ok {
		if _, answered := q["userAnswer"]; answered || graded {
			q["reviewState"] = map[string]any{
				"easiness":    spacedrep.DefaultEasiness,
				"repetitions": float64(0),
				"interval":    float64(1),
				"status":      string(spacedrep.StatusNewError),
				"timesFailed": float64(0),
			}
			rep.Defaults++
		}
	}

	rep.merge(normalizeReviewFields(q))
	return rep
}

// normalizeReviewFields repairs the review-relevant fields of a record or
// question map: the nested reviewState plus any interval duplicated at the
// carrier level (a legacy format nested these at several levels).
func normalizeReviewFields(m map[string]any) Report {
	var rep Report
	if _, ok := m["interval"]; ok {
		rep.Intervals += coerceInterval(m)
	}
	rs, ok := m["reviewState"].(map[string]any)
	if !ok {
		return rep
	}
	rep.Renames += renameKeys(rs, reviewKeySynonyms)
	rep.Intervals += coerceInterval(rs)
	rep.Defaults += fillReviewDefaults(rs)
	return rep
}

// coerceInterval rewrites m["interval"] as max(1, round(value)).
// Non-parseable values coerce to 1. Returns 1 if a repair happened.
func coerceInterval(m map[string]any) int {
	v, ok := m["interval"]
	if !ok {
		return 0
	}
	f, parseable := toFloat(v)
	coerced := 1
	if parseable {
		coerced = int(math.Round(f))
		if coerced < 1 {
			coerced = 1
		}
	}
	// Canonical representation is a float64 whole number, which is what a
	// JSON round trip of an int produces. Equal values are left alone so
	// re-normalization is a no-op.
	if cur, isFloat := v.(float64); isFloat && cur == float64(coerced) {
		return 0
	}
	m["interval"] = float64(coerced)
	return 1
}

// fillReviewDefaults fills absent easiness/repetitions/status with the
// documented defaults without overwriting present values.
func fillReviewDefaults(rs map[string]any) int {
	filled := 0
	if _, ok := rs["easiness"]; !ok {
		rs["easiness"] = spacedrep.DefaultEasiness
		filled++
	}
	if _, ok := rs["repetitions"]; !ok {
		rs["repetitions"] = float64(0)
		filled++
	}
	if _, ok := rs["status"]; !ok {
		rs["status"] = string(spacedrep.StatusNewError)
		filled++
	}
	return filled
}

// normalizePath replaces every backslash in the named field with a
// forward slash. Returns 1 if the value changed.
func normalizePath(m map[string]any, key string) int {
	s, ok := m[key].(string)
	if !ok || !strings.Contains(s, `\`) {
		return 0
	}
	m[key] = strings.ReplaceAll(s, `\`, "/")
	return 1
}

// toFloat parses the numeric shapes that appear in persisted records.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// cloneMap deep-copies a JSON-shaped map so the caller's input survives.
func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
