package commands

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/five82/todoterm/internal/mockapi"
	"github.com/five82/todoterm/internal/todos"
)

const defaultServeAddr = "127.0.0.1:3005"

type ServeCmd struct {
	flags *Flags

	// flags
	addr     string
	latency  time.Duration
	failRate float64
	seed     string
}

// NewServeCmd creates a new serve command
func NewServeCmd(flags *Flags) *ServeCmd {
	return &ServeCmd{flags: flags}
}

// Register adds the serve command to the application
func (cmd *ServeCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "serve",
		Usage:     "Run an in-memory todo backend",
		UsageText: "todoterm serve [--addr host:port] [--latency 500ms] [--fail-rate 0.2] [--seed todos.yaml]",
		Description: `Serves the todos REST collection from memory so the TUI can be used without
a real backend. --latency and --fail-rate make the busy spinners and error
banner easy to see.

Seed file format:
  - id: 1
    userId: 1
    title: Buy milk
    completed: false`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address",
				Sources:     cli.EnvVars("TODOTERM_SERVE_ADDR"),
				Value:       defaultServeAddr,
				Destination: &cmd.addr,
			},
			&cli.DurationFlag{
				Name:        "latency",
				Usage:       "delay added to every response",
				Destination: &cmd.latency,
			},
			&cli.FloatFlag{
				Name:        "fail-rate",
				Usage:       "probability in [0, 1] that a request answers 500",
				Destination: &cmd.failRate,
			},
			&cli.StringFlag{
				Name:        "seed",
				Usage:       "YAML file with initial todos",
				Destination: &cmd.seed,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ServeCmd) run(ctx context.Context, c *cli.Command) error {
	if cmd.failRate < 0 || cmd.failRate > 1 {
		return fmt.Errorf("fail-rate must be within [0, 1], got %v", cmd.failRate)
	}

	var seed []todos.Item
	if cmd.seed != "" {
		items, err := mockapi.LoadSeed(cmd.seed)
		if err != nil {
			return err
		}
		seed = items
	}

	repo := mockapi.NewRepository(seed...)
	srv := mockapi.NewServer(repo, mockapi.Options{
		Latency:  cmd.latency,
		FailRate: cmd.failRate,
		Logger:   log.Logger,
	})

	ln, err := (&net.ListenConfig{}).Listen(ctx, "tcp", cmd.addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "serving %d todos on http://%s\n", repo.Len(), ln.Addr())
	return srv.Serve(ctx, ln)
}
