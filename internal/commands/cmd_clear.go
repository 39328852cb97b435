package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"
)

type ClearCompletedCmd struct {
	flags *Flags
}

// NewClearCompletedCmd creates a new clear-completed command
func NewClearCompletedCmd(flags *Flags) *ClearCompletedCmd {
	return &ClearCompletedCmd{flags: flags}
}

// Register adds the clear-completed command to the application
func (cmd *ClearCompletedCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "clear-completed",
		Usage:     "Delete every completed todo",
		UsageText: "todoterm clear-completed",
		Description: `Loads the list and issues one delete per completed item, the same way the
TUI's clear action does. Deletes are independent: some may fail while others
succeed. The command reports what is left once all of them have resolved.`,
		Action: cmd.run,
	})

	return app
}

func (cmd *ClearCompletedCmd) run(ctx context.Context, c *cli.Command) error {
	svc, err := cmd.flags.services()
	if err != nil {
		return err
	}
	defer svc.Close()

	ctl := svc.Controller
	if err := ctl.Load(ctx); err != nil {
		return fmt.Errorf("load todos: %w", err)
	}

	issued := ctl.ClearCompleted(ctx)
	ctl.Wait()

	snap := ctl.Snapshot()
	out := c.Root().Writer
	cleared := issued - snap.CompletedCount()
	_, _ = fmt.Fprintf(out, "cleared %d of %d completed, %d remaining\n", cleared, issued, len(snap.Items))

	if snap.HasError() {
		return errors.New(snap.Notice.Message)
	}
	return nil
}
