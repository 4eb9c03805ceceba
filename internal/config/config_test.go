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

// isolate points every lookup at a fresh temp dir and clears overrides.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	for _, k := range Keys {
		t.Setenv(EnvName(k), "")
		os.Unsetenv(EnvName(k))
	}
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultEndpoint, cfg.Endpoint)
	assert.Equal(t, DefaultResultsPath, cfg.ResultsPath)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, time.Duration(0), cfg.Timeout)
	assert.Equal(t, filepath.Join(dir, "state", "perfil", "perfil.log"), cfg.LogFile)
	assert.Empty(t, cfg.DB)
	assert.Empty(t, cfg.File)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Precedence(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "perfil.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
endpoint: http://file.example/score
log_level: warn
timeout: 3s
bank_file: /tmp/bank.yaml
`), 0o644))

	t.Run("FileOverridesDefaults", func(t *testing.T) {
		cfg, err := Load(path, nil)
		require.NoError(t, err)
		assert.Equal(t, "http://file.example/score", cfg.Endpoint)
		assert.Equal(t, "warn", cfg.LogLevel)
		assert.Equal(t, 3*time.Second, cfg.Timeout)
		assert.Equal(t, "/tmp/bank.yaml", cfg.BankFile)
		assert.Equal(t, path, cfg.File)
	})

	t.Run("EnvOverridesFile", func(t *testing.T) {
		t.Setenv("PERFIL_ENDPOINT", "https://env.example/score")
		t.Setenv("PERFIL_LOG_LEVEL", "debug")

		cfg, err := Load(path, nil)
		require.NoError(t, err)
		assert.Equal(t, "https://env.example/score", cfg.Endpoint)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("FlagOverridesEnv", func(t *testing.T) {
		t.Setenv("PERFIL_ENDPOINT", "https://env.example/score")

		fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
		fs.String("endpoint", "", "")
		fs.String("log-level", "", "")
		require.NoError(t, fs.Parse([]string{"--endpoint", "http://flag.example/score"}))

		cfg, err := Load(path, fs)
		require.NoError(t, err)
		assert.Equal(t, "http://flag.example/score", cfg.Endpoint)
		// Unset flags must not clobber lower layers.
		assert.Equal(t, "warn", cfg.LogLevel)
	})
}

func TestLoad_GlobalFile(t *testing.T) {
	isolate(t)
	cfg := &Config{
		Endpoint:    "http://global.example/score",
		ResultsPath: "/results",
		LogLevel:    "error",
	}
	require.NoError(t, Write(cfg, GlobalPath()))

	loaded, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "http://global.example/score", loaded.Endpoint)
	assert.Equal(t, "/results", loaded.ResultsPath)
	assert.Equal(t, GlobalPath(), loaded.File)
}

func TestLoad_Errors(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "missing.yaml"), nil)
	assert.Error(t, err, "an explicit config path must exist")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("endpoint: [unterminated"), 0o644))
	_, err = Load(bad, nil)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{Endpoint: DefaultEndpoint, ResultsPath: DefaultResultsPath}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default", func(*Config) {}, false},
		{"https", func(c *Config) { c.Endpoint = "https://score.example/api" }, false},
		{"empty endpoint", func(c *Config) { c.Endpoint = "" }, true},
		{"ftp endpoint", func(c *Config) { c.Endpoint = "ftp://score.example" }, true},
		{"relative endpoint", func(c *Config) { c.Endpoint = "/salvar-resposta" }, true},
		{"negative timeout", func(c *Config) { c.Timeout = -time.Second }, true},
		{"relative results path", func(c *Config) { c.ResultsPath = "resultado" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetAndEnvName(t *testing.T) {
	c := &Config{Endpoint: "http://x", Timeout: 2 * time.Second}
	assert.Equal(t, "http://x", c.Get("endpoint"))
	assert.Equal(t, "2s", c.Get("timeout"))
	assert.Equal(t, "", c.Get("nope"))
	assert.Equal(t, "PERFIL_RESULTS_PATH", EnvName("results_path"))
}
