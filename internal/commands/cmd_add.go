package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

type AddCmd struct {
	flags *Flags

	stdin      io.Reader
	isTerminal func() bool
}

// NewAddCmd creates a new add command
func NewAddCmd(flags *Flags) *AddCmd {
	return &AddCmd{
		flags: flags,
		stdin: os.Stdin,
		isTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
	}
}

// Register adds the add command to the application
func (cmd *AddCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "add",
		Usage: "Add one todo per argument or per line of stdin",
		UsageText: `todoterm add "Buy milk" "Walk dog"

Read from stdin:
  printf 'Buy milk\nWalk dog\n' | todoterm add`,
		Action: cmd.run,
	})

	return app
}

func (cmd *AddCmd) run(ctx context.Context, c *cli.Command) error {
	titles := c.Args().Slice()
	if len(titles) == 0 {
		read, err := cmd.readTitles()
		if err != nil {
			return err
		}
		titles = read
	}
	if len(titles) == 0 {
		return errors.New("nothing to add")
	}

	svc, err := cmd.flags.services()
	if err != nil {
		return err
	}
	defer svc.Close()

	out := c.Root().Writer
	var errs []error
	for _, title := range titles {
		item, err := svc.Controller.Create(ctx, title)
		if err != nil {
			errs = append(errs, fmt.Errorf("add %q: %w", title, err))
			continue
		}
		_, _ = fmt.Fprintf(out, "added #%d %s\n", item.ID, item.Title)
	}

	log.Debug().Int("requested", len(titles)).Int("failed", len(errs)).Msg("add finished")
	return errors.Join(errs...)
}

// readTitles reads one title per non-blank line of stdin.
func (cmd *AddCmd) readTitles() ([]string, error) {
	if cmd.isTerminal != nil && cmd.isTerminal() {
		return nil, errors.New("no titles given (stdin is a terminal); pass titles as arguments or pipe them in")
	}

	var titles []string
	scanner := bufio.NewScanner(cmd.stdin)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			titles = append(titles, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return titles, nil
}
