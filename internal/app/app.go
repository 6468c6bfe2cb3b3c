package app

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/weaveflow/flowc/internal/compiler"
	"github.com/weaveflow/flowc/internal/config"
)

// App encapsulates the flowc binary's dependencies and lifecycle.
type App struct {
	outW     io.Writer
	errW     io.Writer
	logger   *slog.Logger
	config   *Config
	compiler *compiler.Compiler
}

// NewApp constructs a fully initialized App: isolated logger, export
// options resolved, generator registry populated. A broken options file
// is a fatal startup error and panics; the command entrypoint recovers
// and turns it into a clean exit.
func NewApp(outW, errW io.Writer, appConfig *Config, modules ...compiler.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, errW)
	logger.Debug("Logger configured successfully.")

	opts := config.Default()
	if appConfig.OptionsPath != "" {
		loaded, err := config.Load(appConfig.OptionsPath)
		if err != nil {
			panic(fmt.Errorf("failed to load export options: %w", err))
		}
		opts = loaded
		logger.Debug("Export options loaded.", "path", appConfig.OptionsPath)
	}

	if len(modules) == 0 {
		modules = coreModules
	}
	c := compiler.New(opts, modules...)
	logger.Debug("Generator modules registered.", "count", len(modules))

	return &App{
		outW:     outW,
		errW:     errW,
		logger:   logger,
		config:   appConfig,
		compiler: c,
	}
}

// Compiler returns the app's compiler. This is primarily for testing.
func (a *App) Compiler() *compiler.Compiler {
	return a.compiler
}
