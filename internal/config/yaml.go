package config

import (
	"context"
	"fmt"
	"os"

	"github.com/specialistvlad/bootkernel/internal/ctxlog"
	"gopkg.in/yaml.v3"
)

// YAMLLoader reads YAML configuration artifacts.
type YAMLLoader struct{}

// Load implements Loader.
func (YAMLLoader) Load(ctx context.Context, dir, environment, extension string) (*Model, error) {
	path := ArtifactPath(dir, environment, extension)
	ctxlog.FromContext(ctx).Debug("Loading YAML configuration.", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config load failed (%s): %w", path, err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return modelFromMap(environment, path, doc)
}
