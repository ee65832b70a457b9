package config

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnsupportedExtension is returned when no loader is registered for an
// artifact extension.
var ErrUnsupportedExtension = errors.New("unsupported configuration extension")

// Extensions dispatches to a Loader chosen by the artifact extension.
type Extensions struct {
	loaders map[string]Loader
}

// NewExtensions creates a dispatcher from an extension-to-loader map.
// Extensions are matched case-insensitively and must include the dot.
func NewExtensions(loaders map[string]Loader) *Extensions {
	e := &Extensions{loaders: make(map[string]Loader, len(loaders))}
	for ext, l := range loaders {
		e.Register(ext, l)
	}
	return e
}

// Register binds ext to l, replacing any previous binding.
func (e *Extensions) Register(ext string, l Loader) {
	e.loaders[strings.ToLower(ext)] = l
}

// Supported lists the registered extensions in sorted order.
func (e *Extensions) Supported() []string {
	exts := make([]string, 0, len(e.loaders))
	for ext := range e.loaders {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Load implements Loader.
func (e *Extensions) Load(ctx context.Context, dir, environment, extension string) (*Model, error) {
	l, ok := e.loaders[strings.ToLower(extension)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedExtension, extension, strings.Join(e.Supported(), ", "))
	}
	return l.Load(ctx, dir, environment, extension)
}
