package kernel

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"github.com/specialistvlad/bootkernel/internal/config"
	"github.com/specialistvlad/bootkernel/internal/container"
	"github.com/specialistvlad/bootkernel/internal/ctxlog"
	"github.com/specialistvlad/bootkernel/internal/module"
)

// Boot brings the kernel to StateBooted. It is a no-op once booted.
//
// On failure the kernel enters safe mode and runs the sequence once more,
// building only modules that opted into safe mode. The retry falls back to an
// empty configuration and container when those steps fail again. Whatever
// the retry does, its state is discarded and the error of the first attempt
// is returned.
func (k *Kernel) Boot(ctx context.Context) error {
	if k.IsBooted() {
		return nil
	}

	k.bootMu.Lock()
	defer k.bootMu.Unlock()

	// Another caller may have booted while we waited.
	if k.IsBooted() {
		return nil
	}

	ctx = ctxlog.WithLogger(ctx, k.logger.With("environment", k.environment))
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Kernel boot started.", "root", k.RootPath(), "modules", k.modules.Len())

	scope, err := k.attempt(ctx, false)
	if err == nil {
		k.publish(scope)
		logger.Info("Kernel booted.", "config", scope.configuration.Path, "modules", k.modules.Len())
		return nil
	}

	k.setState(StateFailed, true, nil)
	logger.Error("Kernel boot failed, retrying in safe mode.", "error", err)

	if _, retryErr := k.attempt(ctx, true); retryErr != nil {
		logger.Warn("Safe-mode boot retry failed.", "error", retryErr)
	} else {
		logger.Warn("Safe-mode boot retry completed, reporting the original failure.")
	}

	k.setState(StateUnbooted, true, err)
	return err
}

func (k *Kernel) setState(state State, safeMode bool, lastErr error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.state = state
	k.safeMode = safeMode
	k.lastErr = lastErr
}

// publish makes a successful attempt visible to every reader at once.
func (k *Kernel) publish(s *bootScope) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.configuration = s.configuration
	k.container = s.container
	k.console = s.console
	k.state = StateBooted
	k.safeMode = false
	k.lastErr = nil
}

// attempt runs the boot sequence once into a fresh scope. safe restricts
// module building to modules that opted into safe mode.
func (k *Kernel) attempt(ctx context.Context, safe bool) (*bootScope, error) {
	k.mu.Lock()
	k.state = StateBooting
	k.mu.Unlock()

	s := &bootScope{k: k, safe: safe}
	if err := k.initialiseConfiguration(ctx, s); err != nil {
		return nil, err
	}
	if err := k.initialiseContainer(ctx, s); err != nil {
		return nil, err
	}
	if err := k.initialiseModules(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (k *Kernel) initialiseConfiguration(ctx context.Context, s *bootScope) error {
	logger := ctxlog.FromContext(ctx)
	dir := k.ConfigurationDirectory()
	logger.Debug("Initialising configuration.", "dir", dir, "extension", k.extension)

	err := capture(func() error {
		model, err := k.loader.Load(ctx, dir, k.environment, k.extension)
		if err != nil {
			return err
		}
		if model == nil {
			return errors.New("loader returned no configuration")
		}
		s.configuration = model
		return nil
	})
	if err != nil {
		if !s.safe {
			return &ConfigurationLoadError{Environment: k.environment, Path: k.ConfigurationFile(), Err: err}
		}
		logger.Warn("Configuration unavailable in safe mode, continuing with an empty one.", "error", err)
		s.configuration = config.NewModel(k.environment, k.ConfigurationFile())
	}

	logger.Debug("Configuration initialised.", "path", s.configuration.Path, "keys", len(s.configuration.Attributes))
	return nil
}

func (k *Kernel) initialiseContainer(ctx context.Context, s *bootScope) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Initialising container.")

	err := capture(func() error {
		c, err := k.containerFactory()
		if err != nil {
			return err
		}
		if c == nil {
			return errors.New("factory returned no container")
		}
		s.container = c
		return nil
	})
	if err != nil {
		if !s.safe {
			return &ContainerInitError{Err: err}
		}
		logger.Warn("Container factory failed in safe mode, continuing with an empty container.", "error", err)
		s.container = container.New()
	}

	s.console = &cobra.Command{
		Use:           k.consoleName,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	logger.Debug("Container initialised.")
	return nil
}

func (k *Kernel) initialiseModules(ctx context.Context, s *bootScope) error {
	logger := ctxlog.FromContext(ctx)
	mods := k.modules.Modules()
	if len(mods) == 0 {
		logger.Debug("No modules registered, nothing to build.")
		return nil
	}

	for _, m := range mods {
		if s.safe && !m.SafeMode() {
			logger.Debug("Skipping module in safe mode.", "module", m.Name())
			continue
		}
		mctx := ctxlog.With(ctx, "module", m.Name())

		if m.CanBuild() {
			logger.Debug("Building module.", "module", m.Name())
			if err := capture(func() error { return m.Build(mctx, s) }); err != nil {
				return &ModuleBuildError{Module: m.Name(), Stage: StageBuild, Err: err}
			}
		}
		if m.CanRegisterCommands() {
			logger.Debug("Registering module commands.", "module", m.Name())
			if err := capture(func() error { return m.RegisterCommands(mctx, s) }); err != nil {
				return &ModuleBuildError{Module: m.Name(), Stage: StageCommands, Err: err}
			}
		}
	}

	logger.Debug("Modules initialised.", "count", len(mods), "safe_mode", s.safe)
	return nil
}

// bootScope is the state one boot attempt builds. Modules receive it as
// their Host; the kernel only exposes it after the attempt succeeds.
type bootScope struct {
	k             *Kernel
	safe          bool
	configuration *config.Model
	container     *container.Container
	console       *cobra.Command
}

var _ module.Host = (*bootScope)(nil)

func (s *bootScope) Environment() string             { return s.k.Environment() }
func (s *bootScope) Debug() bool                     { return s.k.Debug() }
func (s *bootScope) SafeMode() bool                  { return s.safe }
func (s *bootScope) Configuration() *config.Model    { return s.configuration }
func (s *bootScope) Container() *container.Container { return s.container }
func (s *bootScope) Console() *cobra.Command         { return s.console }
func (s *bootScope) RootPath() string                { return s.k.RootPath() }
func (s *bootScope) CacheDirectory() string          { return s.k.CacheDirectory() }
func (s *bootScope) LogDirectory() string            { return s.k.LogDirectory() }
