package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/bootkernel/internal/ctxlog"
	"github.com/specialistvlad/bootkernel/internal/kernel"
)

// App encapsulates the application's kernel, configuration and logger.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	kernel *kernel.Kernel
}

// NewApp is the constructor for the main application. It creates an
// unbooted kernel with the application's modules and processors.
func NewApp(outW io.Writer, cfg *Config) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	proc := &processor{}
	k, err := kernel.New(kernel.Options{
		Environment:        cfg.Environment,
		Debug:              cfg.Debug,
		RootPath:           cfg.RootPath,
		Extension:          cfg.ConfigExtension,
		RegisterModules:    RegisterModules,
		RequestProcessor:   proc,
		ExceptionProcessor: proc,
		Logger:             logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create kernel: %w", err)
	}
	logger.Debug("Kernel created.", "modules", k.Modules().Names())

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		kernel: k,
	}, nil
}

// Boot prepares the kernel's directories and boots it.
func (a *App) Boot(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	if err := a.kernel.EnsureDirectories(); err != nil {
		return fmt.Errorf("prepare kernel directories: %w", err)
	}
	return a.kernel.Boot(ctx)
}

// Kernel returns the application's kernel.
func (a *App) Kernel() *kernel.Kernel { return a.kernel }

// Config returns the configuration the app was created with.
func (a *App) Config() *Config { return a.config }

// Logger returns the application's logger.
func (a *App) Logger() *slog.Logger { return a.logger }

// Output returns the writer the app was created with.
func (a *App) Output() io.Writer { return a.outW }
