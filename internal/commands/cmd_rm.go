package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v3"
)

type RmCmd struct {
	flags *Flags
}

// NewRmCmd creates a new rm command
func NewRmCmd(flags *Flags) *RmCmd {
	return &RmCmd{flags: flags}
}

// Register adds the rm command to the application
func (cmd *RmCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "rm",
		Usage:     "Delete todos by id",
		UsageText: "todoterm rm <id>...",
		Action:    cmd.run,
	})

	return app
}

func (cmd *RmCmd) run(ctx context.Context, c *cli.Command) error {
	args := c.Args().Slice()
	if len(args) == 0 {
		return errors.New("at least one id is required")
	}

	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid id %q", arg)
		}
		ids = append(ids, id)
	}

	svc, err := cmd.flags.services()
	if err != nil {
		return err
	}
	defer svc.Close()

	out := c.Root().Writer
	var errs []error
	for _, id := range ids {
		if err := svc.Client.Delete(ctx, id); err != nil {
			errs = append(errs, fmt.Errorf("delete #%d: %w", id, err))
			continue
		}
		_, _ = fmt.Fprintf(out, "deleted #%d\n", id)
	}
	return errors.Join(errs...)
}
