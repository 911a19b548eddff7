package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/klytics/stafkit/internal/staf"
)

// ConfigIssue represents a validation finding.
type ConfigIssue struct {
	Key      string `json:"key"`
	Severity string `json:"severity"` // "error", "warning", "info"
	Message  string `json:"message"`
	Fix      string `json:"fix,omitempty"`
}

// Wizard runs the interactive setup wizard.
// If reader is nil, reads from os.Stdin.
func Wizard(reader io.Reader) error {
	if reader == nil {
		reader = os.Stdin
	}
	scanner := bufio.NewScanner(reader)

	fmt.Println("STAF Kit Setup")
	fmt.Println()
	fmt.Println(strings.Repeat("-", 48))
	fmt.Println()

	fmt.Println("Step 1/3: Ship code")
	fmt.Print("  Two-letter ship code (e.g., GR): ")
	scanner.Scan()
	if code, err := staf.ValidateShipCode(scanner.Text()); err == nil {
		viper.Set("ship_code", code)
		fmt.Printf("  Ship code saved: %s\n", code)
	} else {
		fmt.Println("  Skipped (set later with: staf config set ship_code XX)")
	}
	fmt.Println()

	fmt.Println("Step 2/3: Sheet names")
	fmt.Print("  Floor plan sheet (default: FLOOR PLAN): ")
	scanner.Scan()
	if s := strings.TrimSpace(scanner.Text()); s != "" {
		viper.Set("sheets.floor_plan", s)
	}
	fmt.Print("  Totals sheet (default: TOTALS): ")
	scanner.Scan()
	if s := strings.TrimSpace(scanner.Text()); s != "" {
		viper.Set("sheets.totals", s)
	}
	fmt.Println()

	if err := SaveConfig(); err != nil {
		return fmt.Errorf("could not save config: %w", err)
	}

	fmt.Println("Step 3/3: Done!")
	fmt.Println(strings.Repeat("-", 48))
	fmt.Println()
	fmt.Println("Quick start:")
	fmt.Println("  staf analyze Machine_Details.xlsx STAF.xlsm")
	fmt.Println("  staf note insert STAF.xlsm --cell F12")
	fmt.Println("  staf tui")
	fmt.Println()
	fmt.Printf("Config file: %s\n", ConfigPath())

	return nil
}

// WizardNonInteractive sets up config with defaults only (no user input).
func WizardNonInteractive() error {
	setDefaults()
	return SaveConfig()
}

// Validate checks config values and returns a list of issues.
func Validate() []ConfigIssue {
	var issues []ConfigIssue

	code := viper.GetString("ship_code")
	if code == "" {
		issues = append(issues, ConfigIssue{
			Key:      "ship_code",
			Severity: "warning",
			Message:  "ship_code is not set — every command will need --ship",
			Fix:      "staf config set ship_code GR",
		})
	} else if _, err := staf.ValidateShipCode(code); err != nil {
		issues = append(issues, ConfigIssue{
			Key:      "ship_code",
			Severity: "error",
			Message:  fmt.Sprintf("ship_code %q is invalid: %v", code, err),
			Fix:      "staf config set ship_code GR",
		})
	} else {
		issues = append(issues, ConfigIssue{
			Key:      "ship_code",
			Severity: "info",
			Message:  fmt.Sprintf("ship code configured (%s)", strings.ToUpper(code)),
		})
	}

	if viper.GetString("sheets.floor_plan") == "" {
		issues = append(issues, ConfigIssue{
			Key:      "sheets.floor_plan",
			Severity: "error",
			Message:  "sheets.floor_plan must not be empty",
			Fix:      "staf config set sheets.floor_plan \"FLOOR PLAN\"",
		})
	}
	if viper.GetString("sheets.totals") == "" {
		issues = append(issues, ConfigIssue{
			Key:      "sheets.totals",
			Severity: "error",
			Message:  "sheets.totals must not be empty",
			Fix:      "staf config set sheets.totals TOTALS",
		})
	}

	if tol := viper.GetFloat64("tolerance"); tol <= 0 || tol >= 1 {
		issues = append(issues, ConfigIssue{
			Key:      "tolerance",
			Severity: "warning",
			Message:  fmt.Sprintf("tolerance %.2f is outside the usual (0, 1) range", tol),
			Fix:      "staf config set tolerance 0.2",
		})
	}

	if suffix := viper.GetString("note.out_suffix"); suffix == "" {
		issues = append(issues, ConfigIssue{
			Key:      "note.out_suffix",
			Severity: "warning",
			Message:  "note.out_suffix is empty — writes will save over the input workbook",
		})
	}

	return issues
}
