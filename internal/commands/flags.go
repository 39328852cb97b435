package commands

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/five82/todoterm/internal/app"
	"github.com/five82/todoterm/internal/config"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	PrefsPath  string
	APIURL     string
	UserID     int

	// UserAgent is sent with every API request.
	UserAgent string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config
}

// LoadConfig reads the config file, applies flag overrides on top of it and
// validates the result. On success the config is stored on f.
func (f *Flags) LoadConfig() (config.Config, error) {
	cfg, err := config.Load(f.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}

	if f.APIURL != "" {
		cfg.APIURL = f.APIURL
	}
	if f.UserID != 0 {
		cfg.UserID = int64(f.UserID)
	}
	if f.LogFile != "" {
		path, err := config.ExpandPath(f.LogFile)
		if err != nil {
			return config.Config{}, fmt.Errorf("log file: %w", err)
		}
		cfg.LogFile = path
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid config: %w", err)
	}

	f.Config = &cfg
	return cfg, nil
}

func (f *Flags) appOptions() (app.Options, error) {
	if f.Config == nil {
		return app.Options{}, errors.New("config not loaded")
	}
	return app.Options{
		Config:    *f.Config,
		PrefsPath: f.PrefsPath,
		Logger:    log.Logger,
		UserAgent: f.UserAgent,
	}, nil
}

// services builds the client, store and controller for a headless command.
func (f *Flags) services() (*app.Services, error) {
	opts, err := f.appOptions()
	if err != nil {
		return nil, err
	}
	return app.Build(opts)
}
