package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/five82/todoterm/internal/app"
)

type TuiCmd struct {
	flags *Flags
}

// NewTuiCmd creates the interactive command run when no subcommand is given.
func NewTuiCmd(flags *Flags) *TuiCmd {
	return &TuiCmd{flags: flags}
}

// Run executes the TUI. Exported for use as the root action.
func (cmd *TuiCmd) Run(ctx context.Context, _ *cli.Command) error {
	opts, err := cmd.flags.appOptions()
	if err != nil {
		return err
	}
	return app.Run(ctx, opts)
}
