// Package config loads composer configuration from an optional YAML file
// with environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all composer settings.
type Config struct {
	Completion CompletionConfig `yaml:"completion"`
	Render     RenderConfig     `yaml:"render"`
	Staging    StagingConfig    `yaml:"staging"`
}

// CompletionConfig configures the external completion service.
type CompletionConfig struct {
	APIKey         string        `yaml:"api_key"`
	Model          string        `yaml:"model"`
	TimeoutSeconds int           `yaml:"timeout_seconds"`
	Timeout        time.Duration `yaml:"-"`
}

// RenderConfig configures the layout engine.
type RenderConfig struct {
	GraphvizPath   string        `yaml:"graphviz_path"`
	Format         string        `yaml:"format"` // png or svg
	TimeoutSeconds int           `yaml:"timeout_seconds"`
	Timeout        time.Duration `yaml:"-"`
}

// StagingConfig configures artifact staging.
type StagingConfig struct {
	Dirs []string `yaml:"dirs"`
}

// Load reads the YAML file at path (missing file is not an error), then
// applies environment overrides and defaults.
func Load(path string) (Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("config: unmarshal %s: %w", path, err)
			}
		}
	}

	cfg.Completion.APIKey = getenv("COMPOSER_OPENAI_API_KEY", cfg.Completion.APIKey)
	cfg.Completion.Model = getenv("COMPOSER_OPENAI_MODEL", cfg.Completion.Model)
	cfg.Render.GraphvizPath = getenv("COMPOSER_GRAPHVIZ_PATH", cfg.Render.GraphvizPath)
	cfg.Render.Format = getenv("COMPOSER_FORMAT", cfg.Render.Format)
	if cfg.Render.Format == "" {
		cfg.Render.Format = "png"
	}
	if dir := os.Getenv("COMPOSER_STAGING_DIR"); dir != "" {
		cfg.Staging.Dirs = append([]string{dir}, cfg.Staging.Dirs...)
	}

	cfg.Completion.Timeout = seconds(getenvInt("COMPOSER_COMPLETION_TIMEOUT", cfg.Completion.TimeoutSeconds), 12*time.Second)
	cfg.Render.Timeout = seconds(getenvInt("COMPOSER_RENDER_TIMEOUT", cfg.Render.TimeoutSeconds), 20*time.Second)
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func seconds(n int, def time.Duration) time.Duration {
	if n <= 0 {
		return def
	}
	return time.Duration(n) * time.Second
}
