package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nosoyjaviero/Sistema-de-Cursos-y-examenes-IA-sub000/internal/normalize"
)

var migrarCmd = &cobra.Command{
	Use:   "migrar",
	Short: "Reescribir la colección completa en el formato canónico",
	Long: "Normaliza todos los exámenes almacenados (claves antiguas, rutas con " +
		"barra invertida, intervalos fraccionarios) y los guarda en forma canónica.",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, st, _, err := openService(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		report, err := svc.Migrate(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Migrados %d exámenes\n", len(svc.Records()))
		printReport(report)
		return nil
	},
}

// printReport writes the repair counters to stderr so stdout stays clean
// for scripting.
func printReport(r normalize.Report) {
	if r.Renames == 0 && r.Paths == 0 && r.Types == 0 && r.Intervals == 0 && r.Defaults == 0 {
		fmt.Fprintln(os.Stderr, "Sin reparaciones necesarias")
		return
	}
	fmt.Fprintf(os.Stderr, "Reparaciones: %d claves renombradas, %d rutas, %d tipos, %d intervalos, %d valores por defecto\n",
		r.Renames, r.Paths, r.Types, r.Intervals, r.Defaults)
}
