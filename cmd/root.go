// Package cmd wires the CLI: commands for studying, importing exams,
// migrating legacy data and recording outcomes.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nosoyjaviero/Sistema-de-Cursos-y-examenes-IA-sub000/internal/bank"
	"github.com/nosoyjaviero/Sistema-de-Cursos-y-examenes-IA-sub000/internal/config"
	"github.com/nosoyjaviero/Sistema-de-Cursos-y-examenes-IA-sub000/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "repaso",
	Short: "Banco de errores con repetición espaciada",
	Long: "Repaso — banco de errores de examen con repetición espaciada (SM-2).\n" +
		"Normaliza exámenes antiguos, programa repasos y compone sesiones de estudio.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEstudiar(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides REPASO_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/repaso/config.yaml)")

	rootCmd.AddCommand(estudiarCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(migrarCmd)
	rootCmd.AddCommand(resultadoCmd)
	rootCmd.AddCommand(resolverCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig builds the configuration honoring the persistent flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path, cmd.Flags())
}

// resolveDBPath returns the database path: --db flag, then config, then
// REPASO_DB and the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

// openService opens the store and loads the bank service from it. The
// caller must close the returned store.
func openService(cmd *cobra.Command) (*bank.Service, *store.Store, config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, cfg, err
	}
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, nil, cfg, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, cfg, fmt.Errorf("open store: %w", err)
	}

	svc := bank.NewService(st.ExamRepo(), st.ReviewRepo(), st.EventRepo(), cfg.Prioridad)
	if _, err := svc.Load(cmd.Context()); err != nil {
		st.Close()
		return nil, nil, cfg, fmt.Errorf("load error bank: %w", err)
	}
	return svc, st, cfg, nil
}
