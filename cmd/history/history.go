// Package history provides the "staf history" command group for the
// local run log.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/stafkit/internal/config"
	"github.com/klytics/stafkit/internal/history"
)

// NewCommand returns the history command group.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past note writes and conversions",
		Long:  "Every insert, write, and convert run is appended to a local JSONL log.",
	}

	cmd.AddCommand(newShowCommand())
	cmd.AddCommand(newClearCommand())

	return cmd
}

func newShowCommand() *cobra.Command {
	var (
		sinceStr  string
		operation string
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show recorded runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")

			entries, err := history.ReadEntries(config.HistoryPath())
			if err != nil {
				return err
			}

			var since time.Time
			if sinceStr != "" {
				d, err := time.ParseDuration(sinceStr)
				if err != nil {
					return fmt.Errorf("invalid --since duration %q (use e.g. 24h, 30m): %w", sinceStr, err)
				}
				since = time.Now().Add(-d)
			}
			entries = history.FilterEntries(entries, since, operation)

			if limit > 0 && len(entries) > limit {
				entries = entries[len(entries)-limit:]
			}

			if jsonFlag {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}

			if len(entries) == 0 {
				fmt.Println("No runs recorded")
				return nil
			}

			green := color.New(color.FgGreen).SprintFunc()
			red := color.New(color.FgRed).SprintFunc()

			for _, e := range entries {
				status := green("ok")
				if e.Error != "" {
					status = red("failed")
				}
				fmt.Printf("%s  %-8s %-4s %s\n",
					e.Timestamp.Format("2006-01-02 15:04:05"), e.Operation, status, e.Target)
				if e.Error != "" {
					fmt.Printf("    %s\n", e.Error)
					continue
				}
				if e.Operation == "convert" {
					fmt.Printf("    out=%s\n", e.OutPath)
					continue
				}
				fmt.Printf("    out=%s created=%d updated=%d skipped=%d shapes_intact=%v\n",
					e.OutPath, e.Created, e.Updated, e.Skipped, e.ShapesIntact)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sinceStr, "since", "", "Only show runs within this duration (e.g. 24h)")
	cmd.Flags().StringVar(&operation, "op", "", "Filter by operation (insert, write, convert)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Show only the most recent N runs")

	return cmd
}

func newClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear the run log",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := history.Clear(config.HistoryPath()); err != nil {
				return err
			}
			fmt.Println("History cleared")
			return nil
		},
	}
}
