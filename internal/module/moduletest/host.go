// Package moduletest provides a module.Host for testing modules without a
// kernel.
package moduletest

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/specialistvlad/bootkernel/internal/config"
	"github.com/specialistvlad/bootkernel/internal/container"
	"github.com/specialistvlad/bootkernel/internal/module"
)

// Host is a module.Host backed by plain fields.
type Host struct {
	Env    string
	Dbg    bool
	Safe   bool
	Root   string
	Config *config.Model
	Svc    *container.Container
	Cmd    *cobra.Command
}

var _ module.Host = (*Host)(nil)

// NewHost returns a Host for environment rooted at root with an empty
// configuration, container and console.
func NewHost(environment, root string) *Host {
	return &Host{
		Env:    environment,
		Root:   root,
		Config: config.NewModel(environment, ""),
		Svc:    container.New(),
		Cmd:    &cobra.Command{Use: "test"},
	}
}

func (h *Host) Environment() string              { return h.Env }
func (h *Host) Debug() bool                      { return h.Dbg }
func (h *Host) SafeMode() bool                   { return h.Safe }
func (h *Host) Configuration() *config.Model     { return h.Config }
func (h *Host) Container() *container.Container { return h.Svc }
func (h *Host) Console() *cobra.Command          { return h.Cmd }
func (h *Host) RootPath() string                 { return h.Root }
func (h *Host) CacheDirectory() string           { return filepath.Join(h.Root, "cache", h.Env) }
func (h *Host) LogDirectory() string             { return filepath.Join(h.Root, "logs") }
