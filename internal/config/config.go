// Package config loads environment-driven defaults for the gscp CLI.
package config

import (
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the CLI defaults. Every field can be overridden per run by a
// command-line flag.
type Config struct {
	// Parallel is the default worker count; 0 means sequential
	Parallel int

	// LogLevel is the default zerolog level name
	LogLevel string

	// PathBoundary enables path-boundary recursive matching by default
	PathBoundary bool

	// KeepPartial leaves partial files in place on failed transfers by default
	KeepPartial bool
}

// Load reads configuration from the environment, honoring a .env file if one
// is present in the working directory. Environment variables use the GSCP_
// prefix: GSCP_PARALLEL, GSCP_LOG_LEVEL, GSCP_PATH_BOUNDARY, GSCP_KEEP_PARTIAL.
func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("gscp")
	v.AutomaticEnv()

	v.SetDefault("parallel", 0)
	v.SetDefault("log_level", "info")
	v.SetDefault("path_boundary", false)
	v.SetDefault("keep_partial", false)

	return &Config{
		Parallel:     v.GetInt("parallel"),
		LogLevel:     v.GetString("log_level"),
		PathBoundary: v.GetBool("path_boundary"),
		KeepPartial:  v.GetBool("keep_partial"),
	}
}
