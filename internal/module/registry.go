package module

import (
	"fmt"
	"log/slog"
)

// Registry is the ordered set of modules an application hands to the kernel.
type Registry struct {
	logger  *slog.Logger
	modules []*Module
	byName  map[string]*Module
}

// NewRegistry creates a registry holding impls in the given order.
// Registrations are logged to logger, or to slog.Default when it is nil.
func NewRegistry(logger *slog.Logger, impls ...any) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Registry{logger: logger, byName: make(map[string]*Module)}
	r.Add(impls...)
	return r
}

// Add appends impls in order. A name that is already registered panics:
// two modules sharing a name cannot be told apart in errors or logs.
func (r *Registry) Add(impls ...any) {
	for _, impl := range impls {
		m := New(impl)
		if existing, exists := r.byName[m.Name()]; exists {
			panic(fmt.Sprintf("module with name '%s' already registered (%s)", m.Name(), existing.Path()))
		}
		r.logger.Debug("Registering module.", "name", m.Name(), "path", m.Path(),
			"build", m.CanBuild(), "commands", m.CanRegisterCommands())
		r.modules = append(r.modules, m)
		r.byName[m.Name()] = m
	}
}

// Modules returns the registered modules in registration order. The slice is
// a copy; the registry itself cannot be reordered through it.
func (r *Registry) Modules() []*Module {
	if r == nil {
		return nil
	}
	out := make([]*Module, len(r.modules))
	copy(out, r.modules)
	return out
}

// Lookup returns the module registered under name.
func (r *Registry) Lookup(name string) (*Module, bool) {
	if r == nil {
		return nil, false
	}
	m, ok := r.byName[name]
	return m, ok
}

// Names returns module names in registration order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, len(r.modules))
	for i, m := range r.modules {
		names[i] = m.Name()
	}
	return names
}

// Len returns the number of registered modules.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.modules)
}
