package config

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/bootkernel/internal/fsutil"
)

const artifactPrefix = "config_"

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads the artifact for environment from dir, using extension to
	// name the file, and translates it into the format-agnostic model.
	Load(ctx context.Context, dir, environment, extension string) (*Model, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, dir, environment, extension string) (*Model, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context, dir, environment, extension string) (*Model, error) {
	return f(ctx, dir, environment, extension)
}

// ArtifactPath returns the file a loader reads for environment.
func ArtifactPath(dir, environment, extension string) string {
	return filepath.Join(dir, artifactPrefix+environment+extension)
}

// Environments lists the environments that have an artifact with extension
// in dir, sorted.
func Environments(dir, extension string) ([]string, error) {
	files, err := fsutil.FindFiles(dir, fsutil.FindOptions{Extension: extension, Prefix: artifactPrefix})
	if err != nil {
		return nil, fmt.Errorf("list configuration artifacts in %s: %w", dir, err)
	}
	envs := make([]string, 0, len(files))
	for _, f := range files {
		name := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(f), artifactPrefix), extension)
		if name != "" {
			envs = append(envs, name)
		}
	}
	return envs, nil
}
