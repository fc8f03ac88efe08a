package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"dconf-apply/core/config"
	"dconf-apply/core/dconf"
	"dconf-apply/core/logger"
	"dconf-apply/feature/settings"
	"dconf-apply/feature/settings/reconcile"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the load command
	loadConfigDir string
	loadDryRun    bool
	loadWatch     bool
)

// loadCmd reconciles the profile documents against the dconf database.
var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Apply profile documents to the dconf database",
	Long: `Render, parse and merge all profile documents, snapshot the dconf
database once, and apply the minimal ordered sequence of reset and write
operations needed to reach the declared state.

Examples:
  # Apply the default profile directory (~/.config/dconf-apply)
  dconf-apply load

  # Preview the operations without touching the database
  dconf-apply load --dry-run

  # Stay resident and re-apply whenever a profile file changes
  dconf-apply load --watch`,
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().StringVar(&loadConfigDir, "config-dir", "", "Profile directory (default ~/.config/dconf-apply)")
	loadCmd.Flags().BoolVar(&loadDryRun, "dry-run", false, "Plan and report without mutating the database")
	loadCmd.Flags().BoolVar(&loadWatch, "watch", false, "Stay resident and re-apply when profiles change")

	RootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	dir, err := resolveProfilesDir(cfg, loadConfigDir)
	if err != nil {
		return err
	}

	client := dconf.NewClient(cfg.Dconf)
	ctx := cmd.Context()

	if err := reconcileOnce(ctx, l, client, cfg, dir, loadDryRun); err != nil {
		return err
	}

	if !loadWatch {
		return nil
	}
	return watchAndReconcile(ctx, l, client, cfg, dir, loadDryRun)
}

// reconcileOnce runs one full pass: load desired state, snapshot, plan,
// report, and (unless dry-run) apply.
func reconcileOnce(ctx context.Context, base *zap.Logger, client dconf.Client, cfg *config.Config, dir string, dryRun bool) error {
	l := logger.WithRunID(base, uuid.NewString())

	l.Info("Loading profile documents", zap.String("dir", dir))
	renderer := settings.NewRenderer(settings.ProcessEnv())
	desired, err := settings.Load(dir, cfg.Profiles.Extension, renderer)
	if err != nil {
		return err
	}

	snap, err := client.Dump(ctx)
	if err != nil {
		return fmt.Errorf("snapshotting dconf: %w", err)
	}

	plan := reconcile.BuildPlan(desired, snap)
	printPlanReport(l, plan)

	if plan.InSync() {
		l.Info("Database already matches the desired state")
		return nil
	}

	executed, err := reconcile.Apply(ctx, client, plan, reconcile.Options{DryRun: dryRun})
	if err != nil {
		l.Error("Apply halted",
			zap.Int("executed", executed),
			zap.Error(err),
		)
		return fmt.Errorf("apply halted after %d operations: %w", executed, err)
	}

	if dryRun {
		l.Info("Dry-run mode: no changes were made")
		return nil
	}

	l.Info("Successfully applied operations", zap.Int("executed", executed))
	return nil
}

// watchAndReconcile re-runs the pipeline whenever the profile directory
// changes. A failed pass is logged but does not stop the watch.
func watchAndReconcile(ctx context.Context, l *zap.Logger, client dconf.Client, cfg *config.Config, dir string, dryRun bool) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	l.Info("Watching profile directory", zap.String("dir", dir))

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename) {
				continue
			}
			l.Info("Profile change detected",
				zap.String("file", ev.Name),
				zap.String("op", ev.Op.String()),
			)
			if err := reconcileOnce(ctx, l, client, cfg, dir, dryRun); err != nil {
				l.Error("Reconciliation failed", zap.Error(err))
			}

		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			l.Error("Watcher error", zap.Error(werr))
		}
	}
}

// resolveProfilesDir picks the profile directory: flag, then config, then
// the per-user default.
func resolveProfilesDir(cfg *config.Config, flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if cfg.Profiles.Dir != "" {
		return cfg.Profiles.Dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".config", "dconf-apply"), nil
}

// printPlanReport prints a formatted plan report using logger. Every
// planned action is shown in order; for dry runs this listing is the
// whole output.
func printPlanReport(l *zap.Logger, plan *reconcile.Plan) {
	s := plan.Summary

	l.Info("Reconciliation plan",
		zap.Int("directories", s.Directories),
		zap.Int("dir_resets", s.DirResets),
		zap.Int("key_resets", s.KeyResets),
		zap.Int("writes", s.Writes),
		zap.Int("up_to_date", s.UpToDate),
		zap.Int("total_actions", len(plan.Actions)),
	)

	for _, action := range plan.Actions {
		fields := []zap.Field{
			zap.String("type", string(action.Type)),
			zap.String("path", action.Path),
			zap.String("reason", action.Reason),
		}
		if action.Type == reconcile.ActionWrite {
			fields = append(fields, zap.String("value", action.Value))
		}
		if len(action.Keep) > 0 {
			fields = append(fields, zap.Strings("keep", action.Keep))
		}
		l.Info("Planned action", fields...)
	}
}
