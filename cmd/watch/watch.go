// Package watch provides the "staf watch" command for re-running the
// read-only analysis whenever a workbook changes on disk.
package watch

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/stafkit/internal/config"
	"github.com/klytics/stafkit/internal/staf"
	w "github.com/klytics/stafkit/internal/watch"
)

// NewCommand creates the "watch" command.
func NewCommand() *cobra.Command {
	var (
		ship      string
		recursive bool
		debounce  int
	)

	cmd := &cobra.Command{
		Use:   "watch <machine-details> <staf-workbook>",
		Short: "Re-run the read-only analysis when either workbook changes",
		Long: `Watches the directories containing both workbooks and re-runs the full
read-only logic whenever one of them is saved. Useful while the floor
plan is still being edited: the planned placements stay current without
re-running 'staf analyze' by hand.

Example:
  staf watch Machine_Details.xlsx STAF.xlsm --ship GR`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, target := args[0], args[1]

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if ship == "" {
				ship = cfg.ShipCode
			}
			if _, err := staf.ValidateShipCode(ship); err != nil {
				return err
			}

			dirs := watchDirs(source, target)

			watcher, err := w.New(w.Config{
				Directories: dirs,
				Recursive:   recursive,
				Debounce:    debounce,
			})
			if err != nil {
				return err
			}

			opts := staf.Options{
				ShipCode:    ship,
				FloorSheet:  cfg.Sheets.FloorPlan,
				TotalsSheet: cfg.Sheets.Totals,
				Tolerance:   cfg.Tolerance,
			}

			rerun := func(path string) error {
				report, err := staf.Analyze(source, target, opts)
				if err != nil {
					return err
				}
				color.New(color.FgCyan).Printf("%s changed\n", filepath.Base(path))
				fmt.Printf("  metric: %s, placements: %d\n",
					report.ActiveMetric.Label(), len(report.Plan.Placements))
				return nil
			}
			watcher.Handler = func(path string) error {
				// Only the two workbooks of interest trigger a re-run.
				if !sameFile(path, source) && !sameFile(path, target) {
					return nil
				}
				return rerun(path)
			}

			// Initial pass so the first output does not wait for a save.
			if err := rerun(target); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: initial analysis failed: %v\n", err)
			}

			fmt.Printf("Watching %s for changes\n", strings.Join(dirs, ", "))
			fmt.Println("Press Ctrl+C to stop")

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				<-sigCh
				fmt.Println("\nStopping watcher...")
				cancel()
			}()

			err = watcher.Start(ctx)
			if err == context.Canceled {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&ship, "ship", "", "Two-letter ship code (default from config)")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Watch directories recursively")
	cmd.Flags().IntVar(&debounce, "debounce", 500, "Debounce interval in milliseconds")

	return cmd
}

func watchDirs(paths ...string) []string {
	seen := map[string]bool{}
	var dirs []string
	for _, p := range paths {
		dir := filepath.Dir(p)
		if abs, err := filepath.Abs(dir); err == nil {
			dir = abs
		}
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Base(a) == filepath.Base(b)
	}
	return strings.EqualFold(absA, absB)
}
