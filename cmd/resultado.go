package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nosoyjaviero/Sistema-de-Cursos-y-examenes-IA-sub000/internal/spacedrep"
)

var resultadoCmd = &cobra.Command{
	Use:   "resultado <pregunta-id>",
	Short: "Registrar el resultado de un repaso",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, st, _, err := openService(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		correct, _ := cmd.Flags().GetBool("correcto")
		grade, _ := cmd.Flags().GetInt("nota")
		if grade < -1 || grade > 5 {
			return fmt.Errorf("nota fuera de rango: %d (0-5)", grade)
		}

		entry, err := svc.RecordOutcome(cmd.Context(), args[0], spacedrep.Outcome{
			Correct: correct,
			Grade:   grade,
		})
		if err != nil {
			if errors.Is(err, spacedrep.ErrNotTracked) {
				return fmt.Errorf("la pregunta %s no tiene errores activos que reforzar", args[0])
			}
			return err
		}

		fmt.Printf("Pregunta %s: estado %s, intervalo %d días, facilidad %.2f\n",
			entry.QuestionID, entry.State.Status, entry.State.Interval, entry.State.Easiness)
		return nil
	},
}

func init() {
	resultadoCmd.Flags().Bool("correcto", false, "La respuesta fue correcta")
	resultadoCmd.Flags().Int("nota", -1, "Nota SM-2 de 0 a 5 (por defecto 4 si es correcta)")
}
