package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/km-arc/go-bootstrap/framework/validation"
)

// Config is the central typed configuration struct.
type Config struct {
	App     AppConfig
	Log     LogConfig
	Inspect InspectConfig
}

type AppConfig struct {
	Name  string
	Env   string // local | production | testing
	Debug bool
}

type LogConfig struct {
	Level  string // debug | info | warn | error
	Format string // text | json
}

// InspectConfig controls the registry inspection surface of the CLI.
type InspectConfig struct {
	Addr   string // listen address of `serve`
	Format string // yaml | json, output of `inspect`
}

// Load reads .env (if present) and populates a Config from environment variables.
// Call once at startup: cfg := config.Load()
func Load(envFiles ...string) *Config {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	// Non-fatal: .env may not exist in production
	_ = godotenv.Load(files...)

	return &Config{
		App: AppConfig{
			Name:  env("APP_NAME", "go-bootstrap"),
			Env:   env("APP_ENV", "local"),
			Debug: envBool("APP_DEBUG", false),
		},
		Log: LogConfig{
			Level:  env("LOG_LEVEL", "info"),
			Format: env("LOG_FORMAT", "text"),
		},
		Inspect: InspectConfig{
			Addr:   env("INSPECT_ADDR", ":8080"),
			Format: env("INSPECT_FORMAT", "yaml"),
		},
	}
}

// Rules are the validation rules applied by Validate, keyed by env name.
var Rules = validation.Rules{
	"APP_NAME":       "required|alpha_dash",
	"APP_ENV":        "required|in:local,production,testing",
	"LOG_LEVEL":      "required|in:debug,info,warn,error",
	"LOG_FORMAT":     "required|in:text,json",
	"INSPECT_ADDR":   "required|address",
	"INSPECT_FORMAT": "required|in:yaml,json",
}

// Validate checks the loaded values. The returned error is a *validation.Errors.
func (c *Config) Validate() error {
	return validation.Make(c.values(), Rules).Err()
}

func (c *Config) values() map[string]string {
	return map[string]string{
		"APP_NAME":       c.App.Name,
		"APP_ENV":        c.App.Env,
		"LOG_LEVEL":      c.Log.Level,
		"LOG_FORMAT":     c.Log.Format,
		"INSPECT_ADDR":   c.Inspect.Addr,
		"INSPECT_FORMAT": c.Inspect.Format,
	}
}

// Get returns a raw env value, falling back to defaultVal.
func Get(key, defaultVal string) string {
	return env(key, defaultVal)
}

// GetInt returns an int env value.
func GetInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

// GetBool returns a bool env value.
func GetBool(key string, defaultVal bool) bool {
	return envBool(key, defaultVal)
}

// ── helpers ─────────────────────────────────────────────────────────────────

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
