package app

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/vk/releasegrid/internal/config"
	"github.com/vk/releasegrid/internal/ctxlog"
	"github.com/vk/releasegrid/internal/shell"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *config.Model
	runner shell.Runner
	now    func() time.Time
	getenv func(string) string
}

// Option customizes an App. Tests use it to replace process-level
// collaborators.
type Option func(*App)

// WithRunner replaces the runner used to spawn external tools.
func WithRunner(r shell.Runner) Option {
	return func(a *App) { a.runner = r }
}

// WithClock replaces the clock the default job group is derived from.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// WithGetenv replaces the environment lookup used by config env() calls and
// the CI job id.
func WithGetenv(getenv func(string) string) Option {
	return func(a *App) { a.getenv = getenv }
}

// NewApp is the constructor for the main application. User-facing results go
// to outW and logs to errW. It loads and validates the release config.
func NewApp(outW, errW io.Writer, appConfig *Config, opts ...Option) (*App, error) {
	a := &App{
		outW:   outW,
		logger: newLogger(appConfig.LogLevel, appConfig.LogFormat, errW),
		runner: shell.NewExecRunner(),
		now:    time.Now,
		getenv: os.Getenv,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger.Debug("Logger configured successfully.")

	model, err := loadModel(a.context(context.Background()), appConfig.ConfigPath, a.getenv)
	if err != nil {
		return nil, err
	}
	a.config = model
	a.logger.Debug("Configuration loaded.", "path", appConfig.ConfigPath,
		"runtimes", len(model.Release.Runtimes), "toolkits", len(model.Release.Toolkits), "platforms", len(model.Platforms))

	return a, nil
}

// Model returns the loaded release config. This is primarily for testing.
func (a *App) Model() *config.Model {
	return a.config
}

func (a *App) context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
