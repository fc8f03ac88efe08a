package cmd

import (
	"fmt"

	"dconf-apply/core/config"
	"dconf-apply/core/dconf"
	"dconf-apply/core/logger"

	"github.com/spf13/cobra"
)

var diffConfigDir string

// diffCmd reports pending changes without mutating the database.
var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Report pending changes without applying them",
	Long: `Compute the reconciliation plan against the live dconf database and
report it. Equivalent to "load --dry-run" but reads as a query, not as a
mutation that happened to be disarmed.`,
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().StringVar(&diffConfigDir, "config-dir", "", "Profile directory (default ~/.config/dconf-apply)")

	RootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	dir, err := resolveProfilesDir(cfg, diffConfigDir)
	if err != nil {
		return err
	}

	client := dconf.NewClient(cfg.Dconf)
	return reconcileOnce(cmd.Context(), l, client, cfg, dir, true)
}
