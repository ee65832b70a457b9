package kernel

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/specialistvlad/bootkernel/internal/config"
)

// RootPath is the directory the kernel derives its other paths from. It is
// resolved once and never changes afterwards.
func (k *Kernel) RootPath() string {
	k.rootOnce.Do(func() {
		if k.rootPath == "" {
			wd, err := os.Getwd()
			if err != nil {
				wd = "."
			}
			k.rootPath = wd
		}
		k.rootPath = filepath.Clean(k.rootPath)
	})
	return k.rootPath
}

// CacheDirectory returns <root>/cache/<environment>.
func (k *Kernel) CacheDirectory() string {
	return filepath.Join(k.RootPath(), "cache", k.environment)
}

// LogDirectory returns <root>/logs.
func (k *Kernel) LogDirectory() string {
	return filepath.Join(k.RootPath(), "logs")
}

// ConfigurationDirectory returns <root>/config.
func (k *Kernel) ConfigurationDirectory() string {
	return filepath.Join(k.RootPath(), "config")
}

// ConfigurationFile returns the artifact Boot loads.
func (k *Kernel) ConfigurationFile() string {
	return config.ArtifactPath(k.ConfigurationDirectory(), k.environment, k.extension)
}

// EnsureDirectories creates the cache and log directories.
func (k *Kernel) EnsureDirectories() error {
	for _, dir := range []string{k.CacheDirectory(), k.LogDirectory()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}
