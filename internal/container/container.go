package container

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

var (
	// ErrServiceNotFound is returned when a name has no registered service.
	ErrServiceNotFound = errors.New("service not found")
	// ErrServiceExists is returned when a name is registered twice.
	ErrServiceExists = errors.New("service already registered")
)

// ProviderFunc lazily constructs a service the first time it is resolved.
type ProviderFunc func(c *Container) (any, error)

// Factory constructs a fresh Container. The kernel calls it once per boot
// attempt.
type Factory func() (*Container, error)

// DefaultFactory is the Factory used when the kernel is not given one.
func DefaultFactory() (*Container, error) {
	return New(), nil
}

type provider struct {
	fn       ProviderFunc
	once     sync.Once
	resolved any
	err      error
}

// Container holds named services and lazily resolved providers.
type Container struct {
	mu        sync.RWMutex
	services  map[string]any
	providers map[string]*provider
}

// New creates an empty Container.
func New() *Container {
	return &Container{
		services:  make(map[string]any),
		providers: make(map[string]*provider),
	}
}

// Set registers a ready-made service under name.
func (c *Container) Set(name string, svc any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.existsLocked(name) {
		return fmt.Errorf("%w: %q", ErrServiceExists, name)
	}
	slog.Debug("Registering service.", "name", name, "type", fmt.Sprintf("%T", svc))
	c.services[name] = svc
	return nil
}

// MustSet is like Set but panics on a duplicate name. Registering the same
// service twice is a programming error in the module that does it.
func (c *Container) MustSet(name string, svc any) {
	if err := c.Set(name, svc); err != nil {
		panic(err)
	}
}

// Provide registers a provider that is invoked on first resolution. The
// result, including an error, is memoized.
func (c *Container) Provide(name string, fn ProviderFunc) error {
	if fn == nil {
		return fmt.Errorf("provider for %q is nil", name)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.existsLocked(name) {
		return fmt.Errorf("%w: %q", ErrServiceExists, name)
	}
	slog.Debug("Registering service provider.", "name", name)
	c.providers[name] = &provider{fn: fn}
	return nil
}

// Get resolves the service registered under name.
func (c *Container) Get(name string) (any, error) {
	c.mu.RLock()
	svc, ok := c.services[name]
	p, lazy := c.providers[name]
	c.mu.RUnlock()

	if ok {
		return svc, nil
	}
	if !lazy {
		return nil, fmt.Errorf("%w: %q", ErrServiceNotFound, name)
	}

	p.once.Do(func() {
		p.resolved, p.err = p.fn(c)
	})
	if p.err != nil {
		return nil, fmt.Errorf("resolve service %q: %w", name, p.err)
	}
	return p.resolved, nil
}

// Has reports whether name is registered, resolved or not.
func (c *Container) Has(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.existsLocked(name)
}

// Names returns all registered names in sorted order.
func (c *Container) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.services)+len(c.providers))
	for name := range c.services {
		names = append(names, name)
	}
	for name := range c.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *Container) existsLocked(name string) bool {
	if _, ok := c.services[name]; ok {
		return true
	}
	_, ok := c.providers[name]
	return ok
}

// Resolve fetches name from c and asserts it to T.
func Resolve[T any](c *Container, name string) (T, error) {
	var zero T
	if c == nil {
		return zero, fmt.Errorf("%w: %q (no container)", ErrServiceNotFound, name)
	}
	svc, err := c.Get(name)
	if err != nil {
		return zero, err
	}
	typed, ok := svc.(T)
	if !ok {
		return zero, fmt.Errorf("service %q has type %T, want %T", name, svc, zero)
	}
	return typed, nil
}
