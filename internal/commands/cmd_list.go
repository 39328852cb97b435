package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/five82/todoterm/internal/todos"
)

type ListCmd struct {
	flags *Flags

	// flags
	filter string
	format string
}

// NewListCmd creates a new list command
func NewListCmd(flags *Flags) *ListCmd {
	return &ListCmd{flags: flags}
}

// Register adds the list command to the application
func (cmd *ListCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "Print the todo list",
		UsageText: "todoterm list [--filter all|active|completed] [--format table|json|yaml]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "filter",
				Aliases:     []string{"f"},
				Usage:       "which items to show (all, active, completed)",
				Value:       todos.FilterAll.String(),
				Destination: &cmd.filter,
			},
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (table, json, yaml)",
				Value:       "table",
				Destination: &cmd.format,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ListCmd) run(ctx context.Context, c *cli.Command) error {
	filter, err := todos.ParseFilter(cmd.filter)
	if err != nil {
		return err
	}

	svc, err := cmd.flags.services()
	if err != nil {
		return err
	}
	defer svc.Close()

	items, err := svc.Client.List(ctx)
	if err != nil {
		return fmt.Errorf("list todos: %w", err)
	}
	items = todos.Apply(items, filter)

	out := c.Root().Writer
	switch cmd.format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(items); err != nil {
			return fmt.Errorf("encode todos: %w", err)
		}
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(items); err != nil {
			return fmt.Errorf("encode todos: %w", err)
		}
		return enc.Close()
	case "table":
		if len(items) == 0 {
			fmt.Fprintln(errWriter(c), "No todos found")
			return nil
		}
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "ID\tDONE\tTITLE")
		for _, item := range items {
			done := " "
			if item.Completed {
				done = "x"
			}
			_, _ = fmt.Fprintf(w, "%d\t%s\t%s\n", item.ID, done, item.Title)
		}
		_ = w.Flush()
	default:
		return fmt.Errorf("unknown format %q (want table, json or yaml)", cmd.format)
	}
	return nil
}
