package router

import "time"

// Config holds the tunables of the default middleware chain.
type Config struct {
	// Timeout bounds the time a handler may take. Zero disables the limit.
	Timeout time.Duration
	CORS    CORSConfig
	// QuietdownRoutes lists request paths that are never logged, typically
	// probe and scrape endpoints.
	QuietdownRoutes []string
	// HideHeaders lists request headers whose values are redacted in logs.
	HideHeaders []string
}

// CORSConfig enables cross-origin access when Origins is non-empty.
type CORSConfig struct {
	Origins          []string
	Methods          []string
	Headers          []string
	AllowCredentials bool
}

func sanitizeConfig(cfg Config) Config {
	cfg.QuietdownRoutes = cloneStrings(cfg.QuietdownRoutes)
	cfg.HideHeaders = cloneStrings(cfg.HideHeaders)
	cfg.CORS = sanitizeCORSConfig(cfg.CORS)
	return cfg
}

func sanitizeCORSConfig(cfg CORSConfig) CORSConfig {
	cfg.Headers = cloneStrings(cfg.Headers)
	cfg.Methods = cloneStrings(cfg.Methods)
	cfg.Origins = cloneStrings(cfg.Origins)
	return cfg
}

func cloneStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}

	cloned := make([]string, len(values))
	copy(cloned, values)
	return cloned
}

func shouldApplyCORS(cfg CORSConfig) bool {
	return len(cfg.Origins) > 0
}
