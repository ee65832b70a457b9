package kernel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaths_DerivedFromRoot(t *testing.T) {
	root := t.TempDir()
	k, _ := newTestKernel(t, Options{Environment: "prod", RootPath: root + string(filepath.Separator)})

	assert.Equal(t, root, k.RootPath())
	assert.Equal(t, filepath.Join(root, "cache", "prod"), k.CacheDirectory())
	assert.Equal(t, filepath.Join(root, "logs"), k.LogDirectory())
	assert.Equal(t, filepath.Join(root, "config"), k.ConfigurationDirectory())
	assert.Equal(t, filepath.Join(root, "config", "config_prod.hcl"), k.ConfigurationFile())
	assert.Equal(t, ".hcl", k.Extension())
}

func TestRootPath_MemoizedFromWorkingDirectory(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	chdir(t, first)

	k, err := New(Options{Environment: "test"})
	require.NoError(t, err)

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, wd, k.RootPath())

	chdir(t, second)
	assert.Equal(t, wd, k.RootPath(), "root path must not follow the working directory")
}

func TestEnsureDirectories(t *testing.T) {
	root := t.TempDir()
	k, _ := newTestKernel(t, Options{RootPath: root})

	require.NoError(t, k.EnsureDirectories())

	for _, dir := range []string{k.CacheDirectory(), k.LogDirectory()} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
