package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvPort, "")
	t.Setenv(EnvWebRoot, "")
	t.Setenv(EnvWatch, "")
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultPath)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), false)
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingRequiredFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deadlockdev init")
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
port: 9090
web_root: public
watch: true
read_timeout: 2s
`)

	cfg, err := Load(path, true)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "public", cfg.WebRoot)
	assert.True(t, cfg.Watch)
	assert.Equal(t, 2*time.Second, cfg.ReadTimeout)
	assert.Equal(t, DefaultWriteTimeout, cfg.WriteTimeout)
}

func TestLoadZeroedFieldsFallBack(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "port: 0\nweb_root: \"\"\n")

	cfg, err := Load(path, true)
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultWebRoot, cfg.WebRoot)
}

func TestLoadInvalidYAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "port: [not a number\n")

	_, err := Load(path, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "port: 9090\nweb_root: public\n")
	t.Setenv(EnvPort, "7070")
	t.Setenv(EnvWebRoot, "/srv/www")
	t.Setenv(EnvWatch, "true")

	cfg, err := Load(path, true)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, "/srv/www", cfg.WebRoot)
	assert.True(t, cfg.Watch)
}

func TestEnvInvalidPort(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvPort, "eighty")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvPort)
}

func TestApplyFlagsOnlyChanged(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("port", DefaultPort, "")
	fs.String("web-root", DefaultWebRoot, "")
	fs.Bool("watch", false, "")
	require.NoError(t, fs.Parse([]string{"--web-root", "dist"}))

	cfg := Default()
	cfg.Port = 9090
	require.NoError(t, cfg.ApplyFlags(fs))

	assert.Equal(t, 9090, cfg.Port, "unset flag must not override")
	assert.Equal(t, "dist", cfg.WebRoot)
	assert.False(t, cfg.Watch)
}

func TestValidate(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	tests := []struct {
		name    string
		port    int
		webRoot string
		wantErr string
	}{
		{name: "valid", port: 8080, webRoot: root},
		{name: "port too low", port: -1, webRoot: root, wantErr: "out of range"},
		{name: "port too high", port: 70000, webRoot: root, wantErr: "out of range"},
		{name: "missing root", port: 8080, webRoot: filepath.Join(root, "nope"), wantErr: "does not exist"},
		{name: "root is file", port: 8080, webRoot: file, wantErr: "not a directory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Port = tt.port
			cfg.WebRoot = tt.webRoot

			err := cfg.Validate()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, filepath.IsAbs(cfg.WebRoot))
		})
	}
}

func TestInitWritesLoadableConfig(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), DefaultPath)

	assert.False(t, Exists(path))
	require.NoError(t, Init(path))
	assert.True(t, Exists(path))

	cfg, err := Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
