package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nosoyjaviero/Sistema-de-Cursos-y-examenes-IA-sub000/internal/spacedrep"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Mostrar el estado del banco de errores",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, st, _, err := openService(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		now := time.Now().UTC()
		sched := svc.Scheduler()
		active := sched.ActiveEntries()
		due := sched.DueCandidates(now)

		byTier := map[spacedrep.Priority]int{}
		for _, c := range due {
			byTier[c.Priority]++
		}
		var reinforcing int
		for _, e := range active {
			if e.State.Status == spacedrep.StatusInReinforcement {
				reinforcing++
			}
		}

		fmt.Printf("Exámenes:            %d\n", len(svc.Records()))
		fmt.Printf("Errores activos:     %d (%d en refuerzo)\n", len(active), reinforcing)
		fmt.Printf("Errores resueltos:   %d\n", len(sched.ResolvedEntries()))
		fmt.Printf("Pendientes de repaso: %d (alta %d, media %d, baja %d)\n",
			len(due),
			byTier[spacedrep.PriorityAlta],
			byTier[spacedrep.PriorityMedia],
			byTier[spacedrep.PriorityBaja])
		return nil
	},
}
