package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recera/vango-sigma/internal/frontend"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(wd) })

	var out bytes.Buffer
	root := newRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err = root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestStageCommand(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, "--cwd", dir, "stage")
	require.NoError(t, err)

	for _, name := range []string{"SigmaGraphWrapper.jsx", "SigmaGraphViewer.jsx"} {
		_, err := os.Stat(filepath.Join(dir, ".web", "utils", name))
		assert.NoError(t, err, name)
	}
}

func TestStageInitWritesConfig(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, "--cwd", dir, "stage", "--init")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "vango.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"root": "."`)
	assert.NotContains(t, string(data), dir)
	assert.FileExists(t, filepath.Join(dir, ".web", "utils", "SigmaGraphWrapper.jsx"))
}

func TestStageInitKeepsExistingConfig(t *testing.T) {
	dir := t.TempDir()
	existing := []byte("dev:\n  port: 9001\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vango.yaml"), existing, 0o644))

	_, err := run(t, "--cwd", dir, "stage", "--init")
	require.NoError(t, err)

	assert.NoFileExists(t, filepath.Join(dir, "vango.json"))
	data, err := os.ReadFile(filepath.Join(dir, "vango.yaml"))
	require.NoError(t, err)
	assert.Equal(t, existing, data)
}

func TestBundlePath(t *testing.T) {
	assert.Equal(t, filepath.Join("dist", "js", "app.js"), bundlePath("dist", "/assets/js/app.js"))
	assert.Equal(t, "", bundlePath("dist", "https://cdn.example.com/app.js"))
	assert.Equal(t, "", bundlePath("", "/assets/app.js"))
}

func TestDepsCommand(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, "--cwd", dir, "deps")
	require.NoError(t, err)
	assert.Contains(t, out, "Frontend packages")
	assert.Contains(t, out, "@react-sigma/core")
	_, err = os.Stat(filepath.Join(dir, ".web", "package.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestDepsCommandWrite(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, "--cwd", dir, "deps", "--write")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, ".web", "package.json"))
	require.NoError(t, err)
	var manifest struct {
		Dependencies map[string]string `json:"dependencies"`
	}
	require.NoError(t, json.Unmarshal(data, &manifest))
	pkgs, err := frontend.ParsePackages(frontend.DefaultPackages)
	require.NoError(t, err)
	assert.Len(t, manifest.Dependencies, len(pkgs))
	for _, p := range pkgs {
		assert.Equal(t, p.Version, manifest.Dependencies[p.Name])
	}
}

func TestBadCwd(t *testing.T) {
	_, err := run(t, "--cwd", filepath.Join(t.TempDir(), "missing"), "deps")
	assert.Error(t, err)
}

func TestPrintPackages(t *testing.T) {
	var buf bytes.Buffer
	printPackages(&buf, []frontend.Package{{Name: "sigma", Version: "3.0.2"}})
	assert.Contains(t, buf.String(), "sigma")
	assert.Contains(t, buf.String(), "3.0.2")
}
