package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nosoyjaviero/Sistema-de-Cursos-y-examenes-IA-sub000/internal/app"
	"github.com/nosoyjaviero/Sistema-de-Cursos-y-examenes-IA-sub000/internal/grading"
	"github.com/nosoyjaviero/Sistema-de-Cursos-y-examenes-IA-sub000/internal/llm"
)

var estudiarCmd = &cobra.Command{
	Use:   "estudiar",
	Short: "Iniciar una sesión de estudio con los errores pendientes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEstudiar(cmd)
	},
}

func init() {
	estudiarCmd.Flags().Int("max", 0, "Máximo de preguntas en la sesión (0 = valor configurado)")
}

// runEstudiar composes a session and launches the TUI.
func runEstudiar(cmd *cobra.Command) error {
	svc, st, cfg, err := openService(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	maxSize := cfg.Session.MaxPreguntas
	if n, _ := cmd.Flags().GetInt("max"); n > 0 {
		maxSize = n
	}
	ses := svc.ComposeSession(maxSize, time.Now().UTC())

	// The grader is optional; the session falls back to self-assessment.
	var grader *grading.Grader
	provider, err := llm.NewProviderFromEnv(cmd.Context(), st.EventRepo())
	if err != nil {
		fmt.Fprintln(os.Stderr, "Corrector automático no configurado:", err)
		fmt.Fprintln(os.Stderr, "Las preguntas abiertas usarán autoevaluación.")
	} else {
		grader = grading.New(provider)
	}

	return app.Run(svc, grader, ses)
}
