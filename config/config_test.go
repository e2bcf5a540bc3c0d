package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drblury/hostweaver/info"
)

// isolate runs the test in an empty directory so stray hostweaver.yaml or
// .env files cannot leak in.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func newCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "serve", RunE: func(*cobra.Command, []string) error { return nil }}
	BindFlags(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, Default(), *cfg)
	assert.Equal(t, info.UISwaggerUI, cfg.UI())
}

func TestLoad_Precedence(t *testing.T) {
	dir := isolate(t)

	writeFile(t, filepath.Join(dir, "custom.yaml"), `
server:
  addr: "127.0.0.1:9000"
  read_timeout: 3s
docs:
  title: from-file
  ui_type: redoc
log:
  level: debug
cors:
  origins: ["https://file.example"]
`)
	writeFile(t, filepath.Join(dir, "test.env"), "HOSTWEAVER_DOCS__TITLE=from-dotenv\nHOSTWEAVER_LOG__LEVEL=warn\n")
	// godotenv writes straight into the process environment.
	t.Cleanup(func() { os.Unsetenv("HOSTWEAVER_DOCS__TITLE") })
	t.Setenv("HOSTWEAVER_LOG__LEVEL", "error")
	t.Setenv("HOSTWEAVER_SERVER__ADDR", "127.0.0.1:9100")
	t.Setenv("HOSTWEAVER_CORS__ORIGINS", "https://a.example,https://b.example")
	t.Setenv("HOSTWEAVER_PROBE__TIMEOUT", "750ms")

	cmd := newCommand(t,
		"--config", filepath.Join(dir, "custom.yaml"),
		"--env-file", filepath.Join(dir, "test.env"),
		"--addr", "127.0.0.1:9200",
		"--metrics=false",
	)

	cfg, err := Load(cmd)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9200", cfg.Server.Addr, "flags beat env")
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout, "file beats defaults")
	assert.Equal(t, Default().Server.WriteTimeout, cfg.Server.WriteTimeout)
	assert.Equal(t, "from-dotenv", cfg.Docs.Title, ".env beats file")
	assert.Equal(t, "error", cfg.Log.Level, "process env beats .env")
	assert.Equal(t, info.UIRedoc, cfg.UI())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.Origins)
	assert.Equal(t, 750*time.Millisecond, cfg.Probe.Timeout)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoad_EnvListValues(t *testing.T) {
	isolate(t)
	t.Setenv("HOSTWEAVER_CORS__ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("HOSTWEAVER_CORS__METHODS", "GET,OPTIONS")
	t.Setenv("HOSTWEAVER_DOCS__DESCRIPTION", "one, two")

	cfg, err := Load(newCommand(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.Origins)
	assert.Equal(t, []string{"GET", "OPTIONS"}, cfg.CORS.Methods)
	assert.Equal(t, "one, two", cfg.Docs.Description, "scalar values are not split")
}

func TestLoad_DefaultFilesInWorkingDirectory(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, defaultConfigFile), "docs:\n  version: 2.0.0\n")
	writeFile(t, filepath.Join(dir, defaultEnvFile), "HOSTWEAVER_DOCS__DESCRIPTION=from-dotenv\n")
	t.Cleanup(func() { os.Unsetenv("HOSTWEAVER_DOCS__DESCRIPTION") })

	cfg, err := Load(newCommand(t))
	require.NoError(t, err)

	assert.Equal(t, "2.0.0", cfg.Docs.Version)
	assert.Equal(t, "from-dotenv", cfg.Docs.Description)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing explicit config file", func(t *testing.T) {
		isolate(t)
		_, err := Load(newCommand(t, "--config", "nope.yaml"))
		assert.ErrorContains(t, err, "reading config file")
	})

	t.Run("missing explicit env file", func(t *testing.T) {
		isolate(t)
		_, err := Load(newCommand(t, "--env-file", "nope.env"))
		assert.ErrorContains(t, err, "loading env file")
	})

	t.Run("invalid value", func(t *testing.T) {
		isolate(t)
		t.Setenv("HOSTWEAVER_LOG__FORMAT", "xml")
		_, err := Load(nil)
		assert.ErrorIs(t, err, ErrInvalid)
	})
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "empty addr", mutate: func(c *Config) { c.Server.Addr = "" }},
		{name: "addr without port", mutate: func(c *Config) { c.Server.Addr = "localhost" }},
		{name: "negative timeout", mutate: func(c *Config) { c.Server.ReadTimeout = -time.Second }},
		{name: "zero shutdown timeout", mutate: func(c *Config) { c.Server.ShutdownTimeout = 0 }},
		{name: "relative ui path", mutate: func(c *Config) { c.Docs.UIPath = "swagger_ui/" }},
		{name: "root ui path", mutate: func(c *Config) { c.Docs.UIPath = "/" }},
		{name: "ui path shadows api route", mutate: func(c *Config) { c.Docs.UIPath = "/hostinfo/" }},
		{name: "document path not json", mutate: func(c *Config) { c.Docs.DocumentPath = "/openapi.yaml" }},
		{name: "unknown ui type", mutate: func(c *Config) { c.Docs.UIType = "rapidoc" }},
		{name: "empty title", mutate: func(c *Config) { c.Docs.Title = "" }},
		{name: "unknown log level", mutate: func(c *Config) { c.Log.Level = "trace" }},
		{name: "metrics path missing", mutate: func(c *Config) { c.Metrics.Path = "" }},
		{name: "metrics path collides", mutate: func(c *Config) { c.Metrics.Path = "/healthz" }},
		{name: "zero probe timeout", mutate: func(c *Config) { c.Probe.Timeout = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}

	t.Run("defaults are valid", func(t *testing.T) {
		cfg := Default()
		assert.NoError(t, cfg.Validate())
	})

	t.Run("metrics path ignored when disabled", func(t *testing.T) {
		cfg := Default()
		cfg.Metrics.Enabled = false
		cfg.Metrics.Path = ""
		assert.NoError(t, cfg.Validate())
	})
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger := NewLogger(LogConfig{Level: "warn", Format: "json"}, &buf)
	logger.Info("dropped")
	logger.Warn("kept", "component", "config")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), `"msg":"kept"`)

	buf.Reset()
	logger = NewLogger(LogConfig{Level: "bogus", Format: "text"}, &buf)
	logger.Debug("dropped")
	logger.Info("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "msg=kept")
}
