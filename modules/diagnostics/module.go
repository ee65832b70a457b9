// Package diagnostics renders boot and dispatch failures. It is built during
// the safe-mode retry as well, so a failed boot still leaves a report behind.
package diagnostics

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/specialistvlad/bootkernel/internal/ctxlog"
	"github.com/specialistvlad/bootkernel/internal/module"
)

// RendererName is the container key the renderer is registered under.
const RendererName = "diagnostics.renderer"

// ReportFile is written to the log directory after a safe-mode build.
const ReportFile = "boot-report.yaml"

// Report describes the kernel as seen by a safe-mode build.
type Report struct {
	Environment string    `yaml:"environment"`
	Debug       bool      `yaml:"debug"`
	SafeMode    bool      `yaml:"safe_mode"`
	RootPath    string    `yaml:"root_path"`
	Config      string    `yaml:"config,omitempty"`
	Services    []string  `yaml:"services"`
	CreatedAt   time.Time `yaml:"created_at"`
}

// Module implements module.Builder, module.CommandRegistrar and
// module.SafeBuilder for this package.
type Module struct {
	// Now is used for report timestamps. Defaults to time.Now.
	Now func() time.Time
}

// ModuleName implements module.Namer.
func (m *Module) ModuleName() string { return "diagnostics" }

// BuildInSafeMode reports true; the renderer is needed most when boot failed.
func (m *Module) BuildInSafeMode() bool { return true }

// Build registers the renderer and, in safe mode, writes a boot report.
func (m *Module) Build(ctx context.Context, host module.Host) error {
	verbose := host.Debug() || host.Configuration().Bool("diagnostics_verbose", false)
	if err := host.Container().Set(RendererName, NewRenderer(verbose)); err != nil {
		return fmt.Errorf("register renderer: %w", err)
	}

	if !host.SafeMode() {
		return nil
	}

	path, err := m.writeReport(host)
	if err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Warn("Safe-mode boot report written.", "path", path)
	return nil
}

// RegisterCommands adds the "diagnostics" command to the console.
func (m *Module) RegisterCommands(ctx context.Context, host module.Host) error {
	host.Console().AddCommand(&cobra.Command{
		Use:   "diagnostics",
		Short: "Print the kernel state as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			defer enc.Close()
			return enc.Encode(m.report(host))
		},
	})
	return nil
}

func (m *Module) report(host module.Host) Report {
	now := time.Now
	if m.Now != nil {
		now = m.Now
	}
	r := Report{
		Environment: host.Environment(),
		Debug:       host.Debug(),
		SafeMode:    host.SafeMode(),
		RootPath:    host.RootPath(),
		Services:    host.Container().Names(),
		CreatedAt:   now().UTC(),
	}
	if cfg := host.Configuration(); cfg != nil {
		r.Config = cfg.Path
	}
	return r
}

func (m *Module) writeReport(host module.Host) (string, error) {
	dir := host.LogDirectory()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create log directory %s: %w", dir, err)
	}

	data, err := yaml.Marshal(m.report(host))
	if err != nil {
		return "", fmt.Errorf("marshal boot report: %w", err)
	}

	path := filepath.Join(dir, ReportFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write boot report: %w", err)
	}
	return path, nil
}
