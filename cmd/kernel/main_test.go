package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/bootkernel/internal/cli"
)

func setupRoot(t *testing.T, config string) string {
	t.Helper()
	root := t.TempDir()
	if config != "" {
		dir := filepath.Join(root, "config")
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config_test.hcl"), []byte(config), 0o644))
	}
	t.Setenv("KERNEL_ENV", "test")
	t.Setenv("KERNEL_ROOT", root)
	t.Setenv("KERNEL_LOG_LEVEL", "error")
	return root
}

func TestRun_Boot(t *testing.T) {
	setupRoot(t, `greeting = "hi"`)

	out := &bytes.Buffer{}
	require.NoError(t, run(context.Background(), out, []string{"boot"}))
	assert.Contains(t, out.String(), "booted environment=test")
}

func TestRun_BootFailureExitCode(t *testing.T) {
	setupRoot(t, "")

	err := run(context.Background(), &bytes.Buffer{}, []string{"boot"})

	var exitErr *cli.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 1, exitErr.Code)
}

func TestRun_InvalidEnvironmentConfig(t *testing.T) {
	setupRoot(t, "")
	t.Setenv("KERNEL_LOG_FORMAT", "xml")

	err := run(context.Background(), &bytes.Buffer{}, []string{"paths"})

	var exitErr *cli.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 2, exitErr.Code)
	assert.Contains(t, exitErr.Message, "invalid log-format")
}

func TestRun_Help(t *testing.T) {
	setupRoot(t, "")

	out := &bytes.Buffer{}
	require.NoError(t, run(context.Background(), out, []string{"--help"}))
	assert.Contains(t, out.String(), "Usage:")
	assert.Contains(t, out.String(), "serve")
}
