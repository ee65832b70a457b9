package hcl

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/bootkernel/internal/config"
	"github.com/specialistvlad/bootkernel/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	// LookupEnv backs the env() function. Defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{LookupEnv: os.LookupEnv}
}

// Load parses the artifact for environment and evaluates every top-level
// attribute into the model.
func (l *Loader) Load(ctx context.Context, dir, environment, extension string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	path := config.ArtifactPath(dir, environment, extension)
	logger.Debug("HCL loader started.", "path", path)

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config load failed (%s): %w", path, err)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	evalCtx := l.evalContext(environment)
	model := config.NewModel(environment, path)
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(evalCtx)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to evaluate %q in %s: %w", name, path, diags)
		}
		model.Attributes[name] = val
	}

	logger.Debug("HCL loading complete.", "path", path, "attributes", len(model.Attributes))
	return model, nil
}

func (l *Loader) evalContext(environment string) *hcl.EvalContext {
	lookup := l.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"environment": cty.StringVal(environment),
		},
		Functions: map[string]function.Function{
			"env": envFunc(lookup),
		},
	}
}
