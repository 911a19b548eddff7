// Package convert provides the "staf convert" command for bringing legacy
// .xls sources into the read path.
package convert

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/klytics/stafkit/internal/automation"
	"github.com/klytics/stafkit/internal/config"
	"github.com/klytics/stafkit/internal/history"
	"github.com/klytics/stafkit/internal/output"
	"github.com/klytics/stafkit/internal/progress"
)

// NewCommand creates the "convert" command.
func NewCommand() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "convert <file.xls>",
		Short: "Convert a legacy .xls workbook to .xlsx via the host application",
		Long: `Opens a legacy workbook in the host application and saves it as .xlsx so
the read-only analysis can open it. Requires Excel on this machine.

Example:
  staf convert Machine_Details.xls
  staf analyze Machine_Details.xlsx STAF.xlsm`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")
			in := args[0]

			out := outPath
			if out == "" {
				out = defaultXLSXPath(in)
			}
			if strings.EqualFold(in, out) {
				return fmt.Errorf("input and output are the same file: %s", in)
			}

			spinner := progress.NewSpinner(fmt.Sprintf("Converting %s via Excel...", in))
			spinner.Start()
			start := time.Now()
			err := automation.ConvertToXLSX(in, out)
			history.Record(config.HistoryPath(), "convert",
				&automation.Summary{InPath: in, OutPath: out, ShapesIntact: err == nil},
				time.Since(start), err)
			if err != nil {
				spinner.Fail("Conversion failed")
				if errors.Is(err, automation.ErrUnavailable) {
					return fmt.Errorf("%w\n\nConvert the file on a machine with Excel, or export it as .xlsx manually", err)
				}
				return err
			}
			spinner.Stop(fmt.Sprintf("Converted to %s", out))

			if jsonFlag {
				return output.PrintJSON("convert", map[string]string{"input": in, "output": out})
			}
			fmt.Printf("Converted: %s → %s\n", in, out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Output .xlsx path (default: beside the input)")

	return cmd
}

// defaultXLSXPath swaps the .xls extension for .xlsx regardless of case.
func defaultXLSXPath(in string) string {
	stem := in
	if ext := filepath.Ext(in); strings.EqualFold(ext, ".xls") {
		stem = strings.TrimSuffix(in, ext)
	}
	return stem + ".xlsx"
}
