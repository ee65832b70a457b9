package app

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/bootkernel/internal/container"
	"github.com/specialistvlad/bootkernel/internal/kernel"
	"github.com/specialistvlad/bootkernel/modules/diagnostics"
	"github.com/specialistvlad/bootkernel/modules/greeter"
)

func TestNewConfig_Validation(t *testing.T) {
	valid := Config{Environment: "dev", ConfigExtension: ".hcl", LogFormat: "JSON", LogLevel: "Debug"}

	cfg, err := NewConfig(valid)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "debug", cfg.LogLevel)

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"empty environment", func(c *Config) { c.Environment = "  " }, "Environment is a required"},
		{"bad extension", func(c *Config) { c.ConfigExtension = "hcl" }, "invalid config extension"},
		{"bad format", func(c *Config) { c.LogFormat = "xml" }, "invalid log-format"},
		{"bad level", func(c *Config) { c.LogLevel = "trace" }, "invalid log-level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			_, err := NewConfig(c)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadConfig_EnvAndDotenv(t *testing.T) {
	dir := t.TempDir()
	dotenv := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(dotenv, []byte("KERNEL_ENV=staging\nKERNEL_LOG_LEVEL=warn\n"), 0o644))

	t.Setenv("KERNEL_LOG_LEVEL", "error")
	t.Setenv("KERNEL_DEBUG", "true")
	// godotenv only sets unset variables; register cleanup for the one it sets.
	t.Setenv("KERNEL_ENV", "")
	require.NoError(t, os.Unsetenv("KERNEL_ENV"))

	cfg, err := LoadConfig(dotenv, filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, "error", cfg.LogLevel, "process environment wins over dotenv")
	assert.True(t, cfg.Debug)
	assert.Equal(t, ".hcl", cfg.ConfigExtension)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
}

func TestLoadConfig_InvalidValue(t *testing.T) {
	t.Setenv("KERNEL_DEBUG", "not-a-bool")
	_, err := LoadConfig()
	require.Error(t, err)
}

func TestRegisterModules(t *testing.T) {
	assert.Len(t, RegisterModules("dev"), 4)
	assert.Len(t, RegisterModules("prod"), 3, "console printing is not compiled into prod")
}

func TestApp_BootAndServe(t *testing.T) {
	a, logs := SetupAppTest(t, "test", map[string]string{
		"config/config_test.hcl": `greeting = "Hello, ${environment}!"`,
	})

	require.NoError(t, a.Boot(context.Background()))
	k := a.Kernel()
	assert.True(t, k.IsBooted())
	assert.DirExists(t, k.CacheDirectory())
	assert.DirExists(t, k.LogDirectory())
	assert.True(t, k.Container().Has(greeter.ServiceName))
	assert.True(t, k.Container().Has(diagnostics.RendererName))

	resp := k.Serve(context.Background(), &kernel.Request{Method: http.MethodGet, Path: "/"})
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "Hello, test!", string(resp.Body))
	assert.Contains(t, logs.String(), "Logger configured successfully.")
}

func TestApp_ConfigurationFailureRendersError(t *testing.T) {
	a, _ := SetupAppTest(t, "test", map[string]string{
		"config/config_test.hcl": `greeting = env()`,
	})
	k := a.Kernel()

	err := a.Boot(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrConfigurationLoad)
	assert.False(t, k.IsBooted())
	assert.True(t, k.SafeMode())

	assert.FileExists(t, filepath.Join(k.LogDirectory(), diagnostics.ReportFile),
		"the safe retry reports even when the configuration is broken")

	resp := k.Serve(context.Background(), &kernel.Request{Path: "/"})
	assert.Equal(t, http.StatusServiceUnavailable, resp.Status)
	assert.Equal(t, diagnostics.GenericMessage, string(resp.Body))
}

func TestApp_ModuleFailureWritesSafeModeReport(t *testing.T) {
	a, logs := SetupAppTest(t, "test", map[string]string{
		"config/config_test.hcl": `greeting = ""`,
	})
	k := a.Kernel()

	err := a.Boot(context.Background())
	require.Error(t, err)

	var buildErr *kernel.ModuleBuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, "greeter", buildErr.Module)
	assert.Equal(t, kernel.StageBuild, buildErr.Stage)

	assert.FileExists(t, filepath.Join(k.LogDirectory(), diagnostics.ReportFile))
	assert.Contains(t, logs.String(), "Safe-mode boot report written.")
	assert.Nil(t, k.Container(), "boot-scoped state is discarded")
}

func TestApp_CleanBootWritesNoReport(t *testing.T) {
	a, _ := SetupAppTest(t, "test", map[string]string{
		"config/config_test.hcl": `greeting = 42`,
	})
	k := a.Kernel()

	require.NoError(t, a.Boot(context.Background()))

	svc, err := container.Resolve[*greeter.Service](k.Container(), greeter.ServiceName)
	require.NoError(t, err)
	assert.Equal(t, "42", svc.Greet())
	assert.NoFileExists(t, filepath.Join(k.LogDirectory(), diagnostics.ReportFile))
}
