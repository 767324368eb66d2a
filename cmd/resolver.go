package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nosoyjaviero/Sistema-de-Cursos-y-examenes-IA-sub000/internal/spacedrep"
)

var resolverCmd = &cobra.Command{
	Use:   "resolver <pregunta-id>",
	Short: "Marcar un error como resuelto",
	Long: "Marca la entrada activa de la pregunta como resuelta. La resolución " +
		"es siempre una acción explícita; una entrada resuelta no vuelve a " +
		"programarse. Si la pregunta falla de nuevo, se crea una entrada nueva.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, st, _, err := openService(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		entry, err := svc.MarkResolved(cmd.Context(), args[0])
		if err != nil {
			switch {
			case errors.Is(err, spacedrep.ErrAlreadyResolved):
				fmt.Printf("La pregunta %s ya estaba resuelta\n", args[0])
				return nil
			case errors.Is(err, spacedrep.ErrNotTracked):
				return fmt.Errorf("la pregunta %s no tiene errores activos", args[0])
			}
			return err
		}

		fmt.Printf("Pregunta %s marcada como resuelta (fallada %d veces)\n",
			entry.QuestionID, entry.State.TimesFailed)
		return nil
	},
}
