package kernel

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/spf13/cobra"
	"github.com/specialistvlad/bootkernel/internal/config"
	"github.com/specialistvlad/bootkernel/internal/container"
	"github.com/specialistvlad/bootkernel/internal/module"
)

// State is the position of a Kernel in its boot lifecycle.
type State int

const (
	StateUnbooted State = iota
	StateBooting
	StateBooted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUnbooted:
		return "unbooted"
	case StateBooting:
		return "booting"
	case StateBooted:
		return "booted"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

var _ module.Host = (*Kernel)(nil)

// Kernel orchestrates configuration, container and module initialisation.
//
// Boot is serialized. The boot-scoped state is published in one step when an
// attempt succeeds, so concurrent readers see either nothing or a fully
// booted kernel.
type Kernel struct {
	environment string
	debug       bool
	extension   string
	consoleName string

	loader           config.Loader
	containerFactory container.Factory
	requests         RequestProcessor
	exceptions       ExceptionProcessor
	logger           *slog.Logger

	modules *module.Registry

	rootOnce sync.Once
	rootPath string

	bootMu sync.Mutex

	mu            sync.RWMutex
	state         State
	safeMode      bool
	lastErr       error
	configuration *config.Model
	container     *container.Container
	console       *cobra.Command
}

// New creates an unbooted kernel and registers the application's modules.
func New(opts Options) (*Kernel, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	opts.applyDefaults()

	k := &Kernel{
		environment:      opts.Environment,
		debug:            opts.Debug,
		extension:        opts.Extension,
		consoleName:      opts.ConsoleName,
		loader:           opts.Loader,
		containerFactory: opts.ContainerFactory,
		requests:         opts.RequestProcessor,
		exceptions:       opts.ExceptionProcessor,
		logger:           opts.Logger,
		rootPath:         opts.RootPath,
		modules:          module.NewRegistry(opts.Logger),
	}
	if opts.RegisterModules != nil {
		k.modules.Add(opts.RegisterModules(opts.Environment)...)
	}
	k.logger.Debug("Kernel created.", "environment", k.environment, "debug", k.debug, "modules", k.modules.Len())
	return k, nil
}

// Environment returns the environment the kernel was created for.
func (k *Kernel) Environment() string { return k.environment }

// Debug reports the debug flag given at construction.
func (k *Kernel) Debug() bool { return k.debug }

// Extension returns the configuration artifact extension.
func (k *Kernel) Extension() string { return k.extension }

// State returns the current lifecycle state.
func (k *Kernel) State() State {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.state
}

// IsBooted reports whether the last Boot succeeded.
func (k *Kernel) IsBooted() bool { return k.State() == StateBooted }

// SafeMode reports whether the kernel is retrying, or last retried, a failed
// boot. A successful boot clears it.
func (k *Kernel) SafeMode() bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.safeMode
}

// Err returns the error of the most recent failed Boot, or nil.
func (k *Kernel) Err() error {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.lastErr
}

// Configuration returns the loaded configuration, nil until booted.
func (k *Kernel) Configuration() *config.Model {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.configuration
}

// Container returns the container, nil until booted.
func (k *Kernel) Container() *container.Container {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.container
}

// Console returns the command tree modules registered commands on, nil until
// booted.
func (k *Kernel) Console() *cobra.Command {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.console
}

// Modules returns the module registry.
func (k *Kernel) Modules() *module.Registry { return k.modules }

// Logger returns the kernel logger.
func (k *Kernel) Logger() *slog.Logger { return k.logger }
