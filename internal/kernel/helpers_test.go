package kernel

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/specialistvlad/bootkernel/internal/config"
	"github.com/specialistvlad/bootkernel/internal/module"
	"github.com/stretchr/testify/require"
)

// safeBuffer is a thread-safe buffer for capturing log output in tests.
type safeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// newTestKernel creates a kernel with a debug logger captured in the returned
// buffer. Environment defaults to "test" and RootPath to a temp dir.
func newTestKernel(t *testing.T, opts Options) (*Kernel, *safeBuffer) {
	t.Helper()
	logs := &safeBuffer{}
	if opts.Environment == "" {
		opts.Environment = "test"
	}
	if opts.RootPath == "" {
		opts.RootPath = t.TempDir()
	}
	opts.Logger = slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	k, err := New(opts)
	require.NoError(t, err)
	t.Cleanup(func() {
		if os.Getenv("KERNEL_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})
	return k, logs
}

// writeConfig writes <root>/config/config_<env><ext>.
func writeConfig(t *testing.T, root, env, ext, content string) {
	t.Helper()
	dir := filepath.Join(root, "config")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(config.ArtifactPath(dir, env, ext), []byte(content), 0o644))
}

// stubLoader returns an empty model per call, or the queued error for that
// call number.
type stubLoader struct {
	calls int
	errs  []error
}

func (l *stubLoader) Load(_ context.Context, dir, env, ext string) (*config.Model, error) {
	l.calls++
	if l.calls <= len(l.errs) && l.errs[l.calls-1] != nil {
		return nil, l.errs[l.calls-1]
	}
	return config.NewModel(env, config.ArtifactPath(dir, env, ext)), nil
}

// journal records module calls across modules, in order.
type journal struct {
	entries []string
}

func (j *journal) add(s string) { j.entries = append(j.entries, s) }

// buildModule only has the buildable capability.
type buildModule struct {
	name   string
	j      *journal
	err    error
	panics bool
	hosts  []module.Host
}

func (m *buildModule) ModuleName() string { return m.name }

func (m *buildModule) Build(_ context.Context, host module.Host) error {
	m.j.add(m.name + ".build")
	m.hosts = append(m.hosts, host)
	if m.panics {
		panic("build exploded")
	}
	return m.err
}

// consoleModule is buildable and console-registrable.
type consoleModule struct {
	name       string
	j          *journal
	commandErr error
}

func (m *consoleModule) ModuleName() string { return m.name }

func (m *consoleModule) Build(_ context.Context, _ module.Host) error {
	m.j.add(m.name + ".build")
	return nil
}

func (m *consoleModule) RegisterCommands(_ context.Context, host module.Host) error {
	m.j.add(m.name + ".commands")
	if m.commandErr != nil {
		return m.commandErr
	}
	host.Console().AddCommand(&cobra.Command{Use: m.name})
	return nil
}

// safeModule is built in safe mode too.
type safeModule struct {
	buildModule
}

func (*safeModule) BuildInSafeMode() bool { return true }

func modules(impls ...any) func(string) []any {
	return func(string) []any { return impls }
}

// buildFunc adapts a function to a buildable module named "func".
type buildFunc func(host module.Host) error

func (f buildFunc) ModuleName() string { return "func" }

func (f buildFunc) Build(_ context.Context, host module.Host) error { return f(host) }
