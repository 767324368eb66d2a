package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <archivo.json>",
	Short: "Importar exámenes desde un archivo JSON de cualquier versión",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, st, _, err := openService(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}

		docs, err := decodeDocs(data)
		if err != nil {
			return fmt.Errorf("parse %s: %w", args[0], err)
		}

		report, err := svc.ImportDocs(cmd.Context(), docs)
		if err != nil {
			return err
		}

		fmt.Printf("Importados %d exámenes\n", len(docs))
		printReport(report)
		return nil
	},
}

// decodeDocs accepts either a JSON array of exam documents or a single
// document.
func decodeDocs(data []byte) ([]map[string]any, error) {
	var docs []map[string]any
	if err := json.Unmarshal(data, &docs); err == nil {
		return docs, nil
	}
	var single map[string]any
	if err := json.Unmarshal(data, &single); err != nil {
		return nil, err
	}
	return []map[string]any{single}, nil
}
