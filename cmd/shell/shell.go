// Package shell provides the "staf shell" interactive REPL command.
package shell

import (
	"fmt"

	"github.com/spf13/cobra"

	shellpkg "github.com/klytics/stafkit/internal/shell"
)

// NewCommand creates the "shell" command.
func NewCommand() *cobra.Command {
	var (
		evalCmd string
		ship    string
		target  string
	)

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive STAF shell",
		Long: `Start an interactive REPL with persistent state and tab completion.

Commands run without re-paying startup cost. 'set ship GR' and
'set target STAF.xlsm' make subsequent analyze and note commands
pick up those defaults automatically.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := shellpkg.NewSession()
			if err != nil {
				return err
			}
			if ship != "" {
				session.DefaultShip = ship
			}
			if target != "" {
				session.DefaultTarget = target
			}
			if evalCmd != "" {
				output, err := session.Eval(cmd.Context(), evalCmd)
				if err != nil {
					return err
				}
				fmt.Print(output)
				return nil
			}
			return session.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&evalCmd, "eval", "", "Run a single command and exit")
	cmd.Flags().StringVar(&ship, "ship", "", "Default ship code for the session")
	cmd.Flags().StringVar(&target, "target", "", "Default target workbook for the session")
	return cmd
}
