package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tiffincrm/internal/config"
	"github.com/mesh-intelligence/tiffincrm/internal/sqlite"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration and storage",
		Long: "Write config.yaml if missing, create the data directory, and create the\n" +
			"database with sample data when it is empty.",
		Args: cobra.NoArgs,
		RunE: runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path, wrote, err := config.WriteDefault(cfg.ConfigDir, flags.dataDir)
	if err != nil {
		return err
	}

	backend := sqlite.NewBackend()
	if err := backend.Attach(cfg.Store()); err != nil {
		return fmt.Errorf("initialize storage: %w", err)
	}
	dbPath := backend.Path()
	if err := backend.Detach(); err != nil {
		return fmt.Errorf("finalize storage: %w", err)
	}

	out := cmd.OutOrStdout()
	if wrote {
		fmt.Fprintf(out, "Wrote %s\n", path)
	} else {
		fmt.Fprintf(out, "Using %s\n", path)
	}
	fmt.Fprintf(out, "Database ready at %s\n", dbPath)
	return nil
}
