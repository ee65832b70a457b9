package config

import (
	"context"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/specialistvlad/bootkernel/internal/ctxlog"
)

// TOMLLoader reads TOML configuration artifacts.
type TOMLLoader struct{}

// Load implements Loader.
func (TOMLLoader) Load(ctx context.Context, dir, environment, extension string) (*Model, error) {
	path := ArtifactPath(dir, environment, extension)
	ctxlog.FromContext(ctx).Debug("Loading TOML configuration.", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config load failed (%s): %w", path, err)
	}

	doc := make(map[string]any)
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return nil, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return modelFromMap(environment, path, doc)
}
