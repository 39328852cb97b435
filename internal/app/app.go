package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/five82/todoterm/internal/config"
	"github.com/five82/todoterm/internal/controller"
	"github.com/five82/todoterm/internal/prefs"
	"github.com/five82/todoterm/internal/state"
	"github.com/five82/todoterm/internal/todos"
	"github.com/five82/todoterm/internal/ui"
)

// Options configure the todoterm application.
type Options struct {
	Config    config.Config
	PrefsPath string // empty uses default ~/.config/todoterm/prefs.toml
	Logger    zerolog.Logger
	UserAgent string
}

// Services is the wired client, store and controller shared by the TUI and
// the headless commands.
type Services struct {
	Client     *todos.Client
	Store      *state.Store
	Controller *controller.Controller
}

// Build wires the services for cfg.
func Build(opts Options) (*Services, error) {
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	clientOpts := []todos.Option{todos.WithTimeout(cfg.RequestTimeout)}
	if opts.UserAgent != "" {
		clientOpts = append(clientOpts, todos.WithUserAgent(opts.UserAgent))
	}
	client, err := todos.NewClient(cfg.APIURL, cfg.UserID, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("init todos client: %w", err)
	}

	store := state.NewStore(cfg.ErrorTimeout)
	ctl := controller.New(client, store, cfg.UserID, opts.Logger)

	return &Services{Client: client, Store: store, Controller: ctl}, nil
}

// Close waits for outstanding clear-completed deletes and stops the store's
// timers.
func (s *Services) Close() {
	s.Controller.Wait()
	s.Store.Close()
}

// Run boots the todoterm TUI until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	svc, err := Build(opts)
	if err != nil {
		return err
	}
	defer svc.Close()

	userPrefs := prefs.Load(opts.PrefsPath)

	opts.Logger.Info().
		Str("api", svc.Client.BaseURL()).
		Int64("user_id", svc.Client.UserID()).
		Str("theme", userPrefs.Theme).
		Msg("starting tui")

	return ui.Run(ui.Options{
		Context:    ctx,
		Controller: svc.Controller,
		ThemeName:  userPrefs.Theme,
		PrefsPath:  opts.PrefsPath,
		LogFile:    opts.Config.LogFile,
		Logger:     opts.Logger,
	})
}
