package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func writeArtifact(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestArtifactPath(t *testing.T) {
	assert.Equal(t, filepath.Join("root", "config", "config_test.hcl"), ArtifactPath(filepath.Join("root", "config"), "test", ".hcl"))
}

func TestEnvironments(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, "config_prod.hcl", "")
	writeArtifact(t, dir, "config_dev.hcl", "")
	writeArtifact(t, dir, "config_dev.yaml", "")
	writeArtifact(t, dir, "notes.hcl", "")

	envs, err := Environments(dir, ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{"dev", "prod"}, envs)

	envs, err = Environments(filepath.Join(dir, "absent"), ".hcl")
	require.NoError(t, err)
	assert.Empty(t, envs)
}

func TestModel_Accessors(t *testing.T) {
	m := NewModel("test", "inline")
	m.Attributes["greeting"] = cty.StringVal("hi")
	m.Attributes["debug"] = cty.True
	m.Attributes["port"] = cty.NumberIntVal(8080)
	m.Attributes["labels"] = cty.ObjectVal(map[string]cty.Value{
		"team": cty.StringVal("core"),
		"tier": cty.StringVal("1"),
	})
	m.Attributes["nothing"] = cty.NullVal(cty.String)

	assert.Equal(t, []string{"debug", "greeting", "labels", "nothing", "port"}, m.Keys())
	assert.Equal(t, "hi", m.String("greeting", "fallback"))
	assert.Equal(t, "fallback", m.String("missing", "fallback"))
	assert.Equal(t, "fallback", m.String("nothing", "fallback"))
	assert.True(t, m.Bool("debug", false))
	assert.True(t, m.Bool("missing", true))

	var port int
	require.NoError(t, m.Decode("port", &port))
	assert.Equal(t, 8080, port)

	// Numbers convert to strings under cty conversion rules.
	assert.Equal(t, "8080", m.String("port", ""))

	var labels map[string]string
	require.NoError(t, m.Decode("labels", &labels))
	if diff := cmp.Diff(map[string]string{"team": "core", "tier": "1"}, labels); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}

	var notBool bool
	require.Error(t, m.Decode("labels", &notBool))
	require.Error(t, m.Decode("port", port), "non-pointer target must be rejected")
}

func TestModel_NilSafe(t *testing.T) {
	var m *Model
	_, ok := m.Value("anything")
	assert.False(t, ok)
	assert.Equal(t, "x", m.String("anything", "x"))
}

func TestToCtyValue(t *testing.T) {
	v, err := ToCtyValue(map[string]any{
		"name":  "kernel",
		"n":     3,
		"ratio": 0.5,
		"tags":  []any{"a", 1, true},
		"empty": []any{},
		"obj":   map[string]any{},
		"null":  nil,
	})
	require.NoError(t, err)
	require.True(t, v.Type().IsObjectType())

	attrs := v.AsValueMap()
	assert.Equal(t, cty.StringVal("kernel"), attrs["name"])
	assert.True(t, attrs["n"].RawEquals(cty.NumberIntVal(3)))
	assert.True(t, attrs["tags"].Type().IsTupleType())
	assert.Equal(t, 3, attrs["tags"].LengthInt())
	assert.True(t, attrs["empty"].RawEquals(cty.EmptyTupleVal))
	assert.True(t, attrs["obj"].RawEquals(cty.EmptyObjectVal))
	assert.True(t, attrs["null"].IsNull())

	_, err = ToCtyValue(struct{}{})
	require.Error(t, err)
}

func TestYAMLLoader(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, "config_test.yaml", `
greeting: hello from yaml
debug: true
server:
  port: 9000
  hosts: [a, b]
`)

	m, err := YAMLLoader{}.Load(context.Background(), dir, "test", ".yaml")
	require.NoError(t, err)

	assert.Equal(t, "test", m.Environment)
	assert.Equal(t, filepath.Join(dir, "config_test.yaml"), m.Path)
	assert.Equal(t, "hello from yaml", m.String("greeting", ""))
	assert.True(t, m.Bool("debug", false))

	var server struct {
		Port  int      `cty:"port"`
		Hosts []string `cty:"hosts"`
	}
	require.NoError(t, m.Decode("server", &server))
	assert.Equal(t, 9000, server.Port)
	assert.Equal(t, []string{"a", "b"}, server.Hosts)
}

func TestYAMLLoader_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := YAMLLoader{}.Load(context.Background(), dir, "missing", ".yaml")
	require.ErrorIs(t, err, fs.ErrNotExist)

	writeArtifact(t, dir, "config_bad.yaml", "greeting: [unclosed")
	_, err = YAMLLoader{}.Load(context.Background(), dir, "bad", ".yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config parse failed")
}

func TestTOMLLoader(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, "config_prod.toml", `
greeting = "hello from toml"

[server]
port = 8443
`)

	m, err := TOMLLoader{}.Load(context.Background(), dir, "prod", ".toml")
	require.NoError(t, err)
	assert.Equal(t, "hello from toml", m.String("greeting", ""))

	var server map[string]int
	require.NoError(t, m.Decode("server", &server))
	assert.Equal(t, map[string]int{"port": 8443}, server)

	_, err = TOMLLoader{}.Load(context.Background(), dir, "dev", ".toml")
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestExtensions(t *testing.T) {
	var gotExt string
	stub := LoaderFunc(func(_ context.Context, dir, env, ext string) (*Model, error) {
		gotExt = ext
		return NewModel(env, ArtifactPath(dir, env, ext)), nil
	})
	e := NewExtensions(map[string]Loader{".HCL": stub, ".yaml": YAMLLoader{}})

	assert.Equal(t, []string{".hcl", ".yaml"}, e.Supported())

	m, err := e.Load(context.Background(), "dir", "test", ".hcl")
	require.NoError(t, err)
	assert.Equal(t, "test", m.Environment)
	assert.Equal(t, ".hcl", gotExt)

	_, err = e.Load(context.Background(), "dir", "test", ".ini")
	require.True(t, errors.Is(err, ErrUnsupportedExtension))
	assert.Contains(t, err.Error(), ".hcl, .yaml")
}
