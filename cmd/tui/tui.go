// Package tui provides the "staf tui" full-screen interface command.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/klytics/stafkit/internal/config"
	"github.com/klytics/stafkit/internal/tui"
)

// NewCommand creates the "tui" command.
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the full-screen note insertion interface",
		Long: `Opens a terminal interface mirroring the three-button workflow:
insert a single test note, run the full read-only logic, and batch-write
the planned notes. Arrow keys or Tab move between fields, Enter runs
the focused action, Esc quits.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			model := tui.NewModel(tui.NewActions(cfg), cfg.ShipCode)
			p := tea.NewProgram(model, tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
}
