package normalize

import (
	"encoding/json"
	"fmt"

	"github.com/nosoyjaviero/Sistema-de-Cursos-y-examenes-IA-sub000/internal/exam"
)

// Decode converts canonical record maps into typed exam records.
// Call it only on the output of Records; raw vintage maps may not decode.
func Decode(canonical []map[string]any) ([]exam.Record, error) {
	b, err := json.Marshal(canonical)
	if err != nil {
		return nil, fmt.Errorf("marshal canonical records: %w", err)
	}
	var records []exam.Record
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, fmt.Errorf("decode canonical records: %w", err)
	}
	return records, nil
}
