package kernel

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/specialistvlad/bootkernel/internal/config"
	"github.com/specialistvlad/bootkernel/internal/container"
	"github.com/specialistvlad/bootkernel/internal/hcl"
)

// Defaults applied by New when the corresponding option is empty.
const (
	DefaultExtension   = ".hcl"
	DefaultConsoleName = "kernel"
)

// Options configures a Kernel. Only Environment is required.
type Options struct {
	// Environment selects the configuration artifact and is passed to
	// RegisterModules.
	Environment string
	// Debug is informational; the kernel exposes it to modules unchanged.
	Debug bool
	// RootPath is the directory config/, cache/ and logs/ live under. When
	// empty the working directory is used, resolved once on first use.
	RootPath string
	// Extension of the configuration artifact, dot included.
	Extension string
	// Loader reads the configuration artifact. Defaults to DefaultLoader().
	Loader config.Loader
	// ContainerFactory constructs the container on every boot attempt.
	ContainerFactory container.Factory
	// ConsoleName is the Use of the console root modules register commands on.
	ConsoleName string
	// RegisterModules returns the application's modules for an environment,
	// in build order. Called once by New.
	RegisterModules func(environment string) []any
	// RequestProcessor and ExceptionProcessor are the dispatch extension
	// points. Both default to placeholder responses.
	RequestProcessor   RequestProcessor
	ExceptionProcessor ExceptionProcessor
	Logger             *slog.Logger
}

// DefaultLoader reads HCL, YAML and TOML artifacts by extension.
func DefaultLoader() config.Loader {
	return config.NewExtensions(map[string]config.Loader{
		".hcl":  hcl.NewLoader(),
		".yaml": config.YAMLLoader{},
		".yml":  config.YAMLLoader{},
		".toml": config.TOMLLoader{},
	})
}

func (o *Options) validate() error {
	if strings.TrimSpace(o.Environment) == "" {
		return errors.New("kernel environment is required")
	}
	return nil
}

func (o *Options) applyDefaults() {
	if o.Extension == "" {
		o.Extension = DefaultExtension
	}
	if o.Loader == nil {
		o.Loader = DefaultLoader()
	}
	if o.ContainerFactory == nil {
		o.ContainerFactory = container.DefaultFactory
	}
	if o.ConsoleName == "" {
		o.ConsoleName = DefaultConsoleName
	}
	if o.RequestProcessor == nil {
		o.RequestProcessor = Placeholder{}
	}
	if o.ExceptionProcessor == nil {
		o.ExceptionProcessor = Placeholder{}
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}
