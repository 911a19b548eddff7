// Package doctor provides the "staf doctor" command for checking system health.
package doctor

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/stafkit/internal/automation"
	"github.com/klytics/stafkit/internal/config"
	"github.com/klytics/stafkit/internal/staf"
)

// Check represents a single health check result.
type Check struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // "ok", "warning", "error"
	Message string `json:"message"`
}

// NewCommand creates the "doctor" command.
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check system health and dependencies",
		Long:  "Run diagnostic checks to verify the STAF toolkit is properly configured.",
		RunE: func(cmd *cobra.Command, args []string) error {
			checks := runChecks()

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(checks)
			}

			green := color.New(color.FgGreen).SprintFunc()
			yellow := color.New(color.FgYellow).SprintFunc()
			red := color.New(color.FgRed).SprintFunc()

			fmt.Println("STAF Doctor")
			fmt.Println("===========")
			fmt.Println()

			okCount, warnCount, errCount := 0, 0, 0
			for _, c := range checks {
				var icon string
				switch c.Status {
				case "ok":
					icon = green("✓")
					okCount++
				case "warning":
					icon = yellow("!")
					warnCount++
				case "error":
					icon = red("✗")
					errCount++
				}
				fmt.Printf("  %s %s: %s\n", icon, c.Name, c.Message)
			}

			fmt.Println()
			fmt.Printf("  %d passed, %d warnings, %d errors\n", okCount, warnCount, errCount)

			if errCount > 0 {
				return fmt.Errorf("%d check(s) failed", errCount)
			}
			return nil
		},
	}
}

func runChecks() []Check {
	var checks []Check

	// Check Go runtime
	checks = append(checks, Check{
		Name:    "Go Runtime",
		Status:  "ok",
		Message: fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH),
	})

	// Check Excel automation
	if automation.Available() {
		checks = append(checks, Check{
			Name:    "Excel Automation",
			Status:  "ok",
			Message: "Excel is installed and reachable via COM",
		})
	} else if runtime.GOOS == "windows" {
		checks = append(checks, Check{
			Name:    "Excel Automation",
			Status:  "error",
			Message: "Excel not reachable — note writes and conversions will fail",
		})
	} else {
		checks = append(checks, Check{
			Name:    "Excel Automation",
			Status:  "warning",
			Message: fmt.Sprintf("Not available on %s — only the read-only 'staf analyze' works here", runtime.GOOS),
		})
	}

	// Check config directory
	home, _ := os.UserHomeDir()
	configDir := home + "/.staf"
	if info, err := os.Stat(configDir); err == nil && info.IsDir() {
		checks = append(checks, Check{
			Name:    "Config Directory",
			Status:  "ok",
			Message: configDir,
		})
	} else {
		checks = append(checks, Check{
			Name:    "Config Directory",
			Status:  "warning",
			Message: fmt.Sprintf("%s not found — run 'staf config init'", configDir),
		})
	}

	// Check config file
	configFile := configDir + "/config.yaml"
	if _, err := os.Stat(configFile); err == nil {
		checks = append(checks, Check{
			Name:    "Config File",
			Status:  "ok",
			Message: configFile,
		})
	} else {
		checks = append(checks, Check{
			Name:    "Config File",
			Status:  "warning",
			Message: "Not found — run 'staf config init'",
		})
	}

	// Check the configured ship code
	if cfg, err := config.Load(); err != nil {
		checks = append(checks, Check{
			Name:    "Ship Code",
			Status:  "error",
			Message: err.Error(),
		})
	} else if cfg.ShipCode == "" {
		checks = append(checks, Check{
			Name:    "Ship Code",
			Status:  "warning",
			Message: "Not set — commands will need an explicit --ship",
		})
	} else if _, err := staf.ValidateShipCode(cfg.ShipCode); err != nil {
		checks = append(checks, Check{
			Name:    "Ship Code",
			Status:  "error",
			Message: err.Error(),
		})
	} else {
		checks = append(checks, Check{
			Name:    "Ship Code",
			Status:  "ok",
			Message: cfg.ShipCode,
		})
	}

	// Check history log
	if info, err := os.Stat(config.HistoryPath()); err == nil {
		checks = append(checks, Check{
			Name:    "History Log",
			Status:  "ok",
			Message: fmt.Sprintf("%s (%d bytes)", config.HistoryPath(), info.Size()),
		})
	} else {
		checks = append(checks, Check{
			Name:    "History Log",
			Status:  "ok",
			Message: "No runs recorded yet",
		})
	}

	return checks
}
