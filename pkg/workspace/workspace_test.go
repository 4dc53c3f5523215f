package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/olimci/depcat/pkg/policy"
	"github.com/olimci/depcat/pkg/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func names(ws *Workspace) []string {
	out := make([]string, len(ws.Modules))
	for i, m := range ws.Modules {
		out[i] = m.Name
	}
	return out
}

func TestLoad(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "depcat.toml"), `
[project]
name = "root"
modules = ["libs/*", "app", "libs/b"]
requires = ["junit:junit"]

[manifest]
path = "deps.properties"
`)
	writeFile(t, filepath.Join(root, "app", "depcat.toml"), `
[project]
name = "app"
requires = ["org.slf4j:slf4j-api", "com.google.code.gson:gson:2.10.1"]
`)
	writeFile(t, filepath.Join(root, "libs", "b", "depcat.yaml"), "project:\n  requires: [\"junit:junit\"]\n")
	writeFile(t, filepath.Join(root, "libs", "a", "depcat.json"), `{"project": {"name": "lib-a"}}`)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "libs", "no-config"), 0o755))
	writeFile(t, filepath.Join(root, "libs", "file.txt"), "")

	ws, err := Load(root)
	require.NoError(t, err)

	assert.Equal(t, []string{"root", "lib-a", "b", "app"}, names(ws))
	assert.Equal(t, 4, ws.RequestCount())

	app, ok := ws.Module("app")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "app"), app.Dir)
	assert.Equal(t, filepath.Join(root, "app", "depcat.toml"), app.ConfigPath)
	assert.Equal(t, []policy.Request{
		{Group: "org.slf4j", Name: "slf4j-api"},
		{Group: "com.google.code.gson", Name: "gson", Version: "2.10.1"},
	}, app.Requests())

	_, ok = ws.Module("no-config")
	assert.False(t, ok)
}

func TestLoadDoublestar(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "depcat.toml"), "[project]\nname = \"root\"\nmodules = [\"services/**\"]\n")
	writeFile(t, filepath.Join(root, "services", "billing", "api", "depcat.toml"), "")
	writeFile(t, filepath.Join(root, "services", "auth", "depcat.toml"), "")

	ws, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"root", "auth", "api"}, names(ws))
}

func TestLoadModuleNameDefaultsToDir(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "depcat.toml"), "[project]\nmodules = [\"core\"]\n")
	writeFile(t, filepath.Join(root, "core", "depcat.toml"), "")

	ws, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Base(root), "core"}, names(ws))
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
	}{
		{
			name:  "no root config",
			files: map[string]string{"app/depcat.toml": ""},
		},
		{
			name:  "bad pattern",
			files: map[string]string{"depcat.toml": "[project]\nmodules = [\"libs/[\"]\n"},
		},
		{
			name: "bad module config",
			files: map[string]string{
				"depcat.toml":     "[project]\nmodules = [\"app\"]\n",
				"app/depcat.toml": "[project]\nbogus = 1\n",
			},
		},
		{
			name:  "incompatible tool version",
			files: map[string]string{"depcat.toml": "[depcat]\nversion = \">= 99.0.0\"\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			for name, content := range tt.files {
				writeFile(t, filepath.Join(root, filepath.FromSlash(name)), content)
			}
			_, err := Load(root)
			assert.Error(t, err)
		})
	}
}

func TestLoadVersionConstraint(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "depcat.toml"), "[depcat]\nversion = \">= 99.0.0\"\n")

	_, err := Load(root)
	assert.ErrorIs(t, err, version.ErrIncompatible)
}

func TestWatchedPaths(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "depcat.toml"), "[project]\nmodules = [\"app\"]\n[manifest]\npath = \"deps.properties\"\n")
	writeFile(t, filepath.Join(root, "app", "depcat.toml"), "[manifest]\npath = \"../deps.properties\"\n")

	ws, err := Load(root)
	require.NoError(t, err)

	paths, globs := ws.WatchedPaths()
	assert.Equal(t, []string{
		filepath.Join(root, "depcat.toml"),
		filepath.Join(root, "deps.properties"),
		filepath.Join(root, "app", "depcat.toml"),
	}, paths)
	assert.Equal(t, []string{"app/depcat.*"}, globs)
}
