package envvars

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/specialistvlad/bootkernel/internal/module"
)

// ServiceName is the container key the snapshot is registered under.
const ServiceName = "envvars"

// Snapshot is a copy of the process environment taken at boot.
type Snapshot struct {
	vars map[string]string
}

// NewSnapshot parses environ entries of the form KEY=VALUE. Entries without
// the prefix are skipped; an empty prefix keeps everything.
func NewSnapshot(environ []string, prefix string) *Snapshot {
	vars := make(map[string]string)
	for _, e := range environ {
		pair := strings.SplitN(e, "=", 2)
		if len(pair) != 2 || !strings.HasPrefix(pair[0], prefix) {
			continue
		}
		vars[pair[0]] = pair[1]
	}
	return &Snapshot{vars: vars}
}

// Get returns the value of key and whether it was set.
func (s *Snapshot) Get(key string) (string, bool) {
	v, ok := s.vars[key]
	return v, ok
}

// Keys returns the captured names in sorted order.
func (s *Snapshot) Keys() []string {
	keys := make([]string, 0, len(s.vars))
	for k := range s.vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// All returns a copy of the captured variables.
func (s *Snapshot) All() map[string]string {
	out := make(map[string]string, len(s.vars))
	for k, v := range s.vars {
		out[k] = v
	}
	return out
}

// Module implements module.Builder for this package.
type Module struct {
	// Environ is the source of variables. Defaults to os.Environ.
	Environ func() []string
}

// ModuleName implements module.Namer.
func (m *Module) ModuleName() string { return "envvars" }

// Build captures the environment, filtered by the "envvars_prefix"
// configuration key, and registers the snapshot.
func (m *Module) Build(ctx context.Context, host module.Host) error {
	environ := os.Environ
	if m.Environ != nil {
		environ = m.Environ
	}
	prefix := host.Configuration().String("envvars_prefix", "")

	if err := host.Container().Set(ServiceName, NewSnapshot(environ(), prefix)); err != nil {
		return fmt.Errorf("register env snapshot: %w", err)
	}
	return nil
}
