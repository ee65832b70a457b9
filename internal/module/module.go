package module

import (
	"context"
	"fmt"
	"reflect"

	"github.com/spf13/cobra"
	"github.com/specialistvlad/bootkernel/internal/config"
	"github.com/specialistvlad/bootkernel/internal/container"
)

// Host is the part of the kernel a module can see while it is built.
type Host interface {
	Environment() string
	Debug() bool
	SafeMode() bool
	Configuration() *config.Model
	Container() *container.Container
	Console() *cobra.Command
	RootPath() string
	CacheDirectory() string
	LogDirectory() string
}

// Builder is implemented by modules that set themselves up during boot.
type Builder interface {
	Build(ctx context.Context, host Host) error
}

// CommandRegistrar is implemented by modules that contribute console commands.
type CommandRegistrar interface {
	RegisterCommands(ctx context.Context, host Host) error
}

// SafeBuilder marks a module as needed even when boot failed, for example
// one that renders diagnostics. Only modules reporting true are built during
// the safe-mode retry.
type SafeBuilder interface {
	BuildInSafeMode() bool
}

// Namer overrides the name derived from the module's type.
type Namer interface {
	ModuleName() string
}

// Locator overrides the path derived from the module's package.
type Locator interface {
	ModulePath() string
}

// Module is a registered module with its identity and capabilities resolved.
type Module struct {
	impl     any
	name     string
	path     string
	builder  Builder
	commands CommandRegistrar
	safe     bool
}

// New wraps impl. It panics on a nil value since that can only come from a
// broken registration list.
func New(impl any) *Module {
	if impl == nil {
		panic("module: cannot register a nil module")
	}
	m := &Module{
		impl: impl,
		name: deriveName(impl),
		path: derivePath(impl),
	}
	m.builder, _ = impl.(Builder)
	m.commands, _ = impl.(CommandRegistrar)
	if s, ok := impl.(SafeBuilder); ok {
		m.safe = s.BuildInSafeMode()
	}
	return m
}

// Name is the final component of the module's type name unless the module
// implements Namer.
func (m *Module) Name() string { return m.name }

// Path is the import path of the package that defines the module unless the
// module implements Locator.
func (m *Module) Path() string { return m.path }

// Impl returns the wrapped value.
func (m *Module) Impl() any { return m.impl }

// CanBuild reports the buildable capability.
func (m *Module) CanBuild() bool { return m.builder != nil }

// CanRegisterCommands reports the console capability.
func (m *Module) CanRegisterCommands() bool { return m.commands != nil }

// SafeMode reports whether the module is built during the safe-mode retry.
func (m *Module) SafeMode() bool { return m.safe }

// Build runs the module's Build. It is a no-op without the capability.
func (m *Module) Build(ctx context.Context, host Host) error {
	if m.builder == nil {
		return nil
	}
	return m.builder.Build(ctx, host)
}

// RegisterCommands runs the module's RegisterCommands. It is a no-op without
// the capability.
func (m *Module) RegisterCommands(ctx context.Context, host Host) error {
	if m.commands == nil {
		return nil
	}
	return m.commands.RegisterCommands(ctx, host)
}

// String implements fmt.Stringer.
func (m *Module) String() string {
	return fmt.Sprintf("%s (%s)", m.name, m.path)
}

func deriveName(impl any) string {
	if n, ok := impl.(Namer); ok {
		if name := n.ModuleName(); name != "" {
			return name
		}
	}
	t := indirect(reflect.TypeOf(impl))
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}

func derivePath(impl any) string {
	if l, ok := impl.(Locator); ok {
		if path := l.ModulePath(); path != "" {
			return path
		}
	}
	return indirect(reflect.TypeOf(impl)).PkgPath()
}

func indirect(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}
