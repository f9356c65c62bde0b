package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/mindflow/internal/cli"
	"github.com/julianstephens/mindflow/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	// Back up on startup, before anything is edited
	ctx.PerformAutomaticBackup()

	p := tea.NewProgram(tui.NewModel(ctx.Prefs, ctx.Clock), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run interactive view: %w", err)
	}
	return nil
}
