package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/five82/todoterm/internal/commands"
	"github.com/five82/todoterm/internal/config"
	"github.com/five82/todoterm/internal/logging"
	"github.com/five82/todoterm/internal/prefs"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "dev"
	commit  = "HEAD"
)

func build() string {
	v, c := version, commit
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				if s.Key == "vcs.revision" {
					c = s.Value
				}
			}
		}
	}
	if len(c) > 7 {
		c = c[:7]
	}
	return fmt.Sprintf("%s (%s)", v, c)
}

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var logCloser func()

	flags := &commands.Flags{UserAgent: "todoterm/" + version}

	app := &cli.Command{
		Name:      "todoterm",
		Usage:     "Keep a todo list in the terminal",
		UsageText: "todoterm [global options] [command [command options]]",
		Description: `todoterm manages a todo list stored behind a small REST API.

Run 'todoterm' with no arguments to open the interactive list.
Run 'todoterm serve' to start an in-memory backend to point it at.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("TODOTERM_CONFIG"),
				Value:       config.DefaultPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "api",
				Usage:       "todos API base URL (overrides api_url)",
				Sources:     cli.EnvVars("TODOTERM_API"),
				Destination: &flags.APIURL,
			},
			&cli.IntFlag{
				Name:        "user-id",
				Usage:       "user whose todos are shown (overrides user_id)",
				Sources:     cli.EnvVars("TODOTERM_USER_ID"),
				Destination: &flags.UserID,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("TODOTERM_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (overrides log_file)",
				Sources:     cli.EnvVars("TODOTERM_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "prefs",
				Usage:       "path to UI preferences file",
				Sources:     cli.EnvVars("TODOTERM_PREFS"),
				Value:       prefs.DefaultPath(),
				Destination: &flags.PrefsPath,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			cfg, err := flags.LoadConfig()
			if err != nil {
				return ctx, err
			}

			logger, closer, err := logging.New(flags.LogLevel, cfg.LogFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			log.Debug().
				Str("api", cfg.APIURL).
				Int64("user_id", cfg.UserID).
				Str("version", version).
				Msg("config loaded")
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	tuiCmd := commands.NewTuiCmd(flags)

	app = commands.NewListCmd(flags).Register(app)
	app = commands.NewAddCmd(flags).Register(app)
	app = commands.NewRmCmd(flags).Register(app)
	app = commands.NewClearCompletedCmd(flags).Register(app)
	app = commands.NewServeCmd(flags).Register(app)

	// Run the TUI when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'todoterm --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "todoterm: %v\n", err)
		return 1
	}
	return 0
}
