package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
)

const (
	envPrefix         = "HOSTWEAVER_"
	defaultConfigFile = "hostweaver.yaml"
	defaultEnvFile    = ".env"
)

// BindFlags registers the configuration flags shared by every subcommand.
func BindFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringP("config", "c", "", "Config file path (default: hostweaver.yaml when present)")
	flags.String("env-file", "", "dotenv file path (default: .env when present)")
	flags.String("addr", "", "Listen address, host:port")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	flags.String("log-format", "", "Log format: json or text")
	flags.String("ui-type", "", "Documentation UI: swaggerui, redoc, scalar, stoplight")
	flags.Bool("metrics", true, "Expose Prometheus metrics")
}

// Load resolves the configuration for cmd. A nil cmd uses defaults, files in
// the working directory and the environment only.
func Load(cmd *cobra.Command) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultsMap(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	configFile := flagString(cmd, "config")
	if configFile == "" && fileExists(defaultConfigFile) {
		configFile = defaultConfigFile
	}
	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	if err := loadDotenv(flagString(cmd, "env-file")); err != nil {
		return nil, err
	}

	err := k.Load(env.ProviderWithValue(envPrefix, ".", envValue), nil)
	if err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	if flagsMap := buildFlagsMap(cmd); len(flagsMap) > 0 {
		if err := k.Load(confmap.Provider(flagsMap, "."), nil); err != nil {
			return nil, fmt.Errorf("loading flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envValue maps HOSTWEAVER_CORS__ORIGINS to cors.origins. CORS settings are
// lists, written comma separated.
func envValue(name, value string) (string, any) {
	key := strings.ToLower(strings.TrimPrefix(name, envPrefix))
	key = strings.ReplaceAll(key, "__", ".")
	if strings.HasPrefix(key, "cors.") {
		return key, splitList(value)
	}
	return key, value
}

func splitList(value string) []string {
	items := make([]string, 0, strings.Count(value, ",")+1)
	for item := range strings.SplitSeq(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// loadDotenv never overrides variables already present in the process
// environment. An explicit path must exist; the default is optional.
func loadDotenv(path string) error {
	if path == "" {
		if !fileExists(defaultEnvFile) {
			return nil
		}
		path = defaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading env file %s: %w", path, err)
	}
	return nil
}

func defaultsMap() map[string]any {
	d := Default()
	return map[string]any{
		"server.addr":             d.Server.Addr,
		"server.read_timeout":     d.Server.ReadTimeout,
		"server.write_timeout":    d.Server.WriteTimeout,
		"server.idle_timeout":     d.Server.IdleTimeout,
		"server.request_timeout":  d.Server.RequestTimeout,
		"server.shutdown_timeout": d.Server.ShutdownTimeout,
		"docs.title":              d.Docs.Title,
		"docs.version":            d.Docs.Version,
		"docs.description":        d.Docs.Description,
		"docs.ui_path":            d.Docs.UIPath,
		"docs.document_path":      d.Docs.DocumentPath,
		"docs.ui_type":            d.Docs.UIType,
		"log.level":               d.Log.Level,
		"log.format":              d.Log.Format,
		"cors.methods":            d.CORS.Methods,
		"cors.headers":            d.CORS.Headers,
		"metrics.enabled":         d.Metrics.Enabled,
		"metrics.path":            d.Metrics.Path,
		"probe.timeout":           d.Probe.Timeout,
	}
}

func buildFlagsMap(cmd *cobra.Command) map[string]any {
	m := make(map[string]any)
	if cmd == nil {
		return m
	}

	for flag, key := range map[string]string{
		"addr":       "server.addr",
		"log-level":  "log.level",
		"log-format": "log.format",
		"ui-type":    "docs.ui_type",
	} {
		if v := flagString(cmd, flag); v != "" {
			m[key] = v
		}
	}

	if cmd.Flags().Changed("metrics") {
		if v, err := cmd.Flags().GetBool("metrics"); err == nil {
			m["metrics.enabled"] = v
		}
	}

	return m
}

func flagString(cmd *cobra.Command, name string) string {
	if cmd == nil {
		return ""
	}
	if v, err := cmd.Flags().GetString(name); err == nil && v != "" {
		return v
	}
	if v, err := cmd.PersistentFlags().GetString(name); err == nil && v != "" {
		return v
	}
	return ""
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
