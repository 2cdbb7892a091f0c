package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/glamour/styles"
)

const (
	defaultTheme          = "dracula"
	defaultRedrawInterval = 1500 * time.Millisecond
)

type Config struct {
	DataDir        string `toml:"data_dir"`
	Theme          string `toml:"theme"`
	Color          string `toml:"color"`
	LogLevel       string `toml:"log_level"`
	RedrawInterval string `toml:"redraw_interval"`
	Watch          *bool  `toml:"watch"`
}

// Settings is a validated Config with paths expanded and defaults applied
type Settings struct {
	DataDir        string
	Theme          string
	Color          string
	LogLevel       string
	RedrawInterval time.Duration
	Watch          bool
}

type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("config: %v", e.Err)
	}

	return fmt.Sprintf("config: %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

var (
	ErrUnknownColorMode = errors.New("unknown color mode")
	ErrUnknownLogLevel  = errors.New("unknown log level")
	ErrBadInterval      = errors.New("interval must be a positive duration")
	ErrUnknownTheme     = errors.New("unknown theme")
)

var colorModes = []string{"", "auto", "none", "256", "truecolor"}

func validateConfig(cfg Config) error {
	if !slices.Contains(colorModes, strings.ToLower(strings.TrimSpace(cfg.Color))) {
		return &ConfigError{Field: "color", Err: fmt.Errorf("%w: %q", ErrUnknownColorMode, cfg.Color)}
	}

	if theme := strings.TrimSpace(cfg.Theme); theme != "" && theme != styles.AutoStyle {
		if _, ok := styles.DefaultStyles[theme]; !ok {
			return &ConfigError{Field: "theme", Err: fmt.Errorf("%w: %q", ErrUnknownTheme, cfg.Theme)}
		}
	}

	if _, ok := parseLogLevel(cfg.LogLevel); !ok {
		return &ConfigError{Field: "log_level", Err: fmt.Errorf("%w: %q", ErrUnknownLogLevel, cfg.LogLevel)}
	}

	if _, err := parseInterval(cfg.RedrawInterval); err != nil {
		return &ConfigError{Field: "redraw_interval", Err: err}
	}

	return nil
}

func parseInterval(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)

	if value == "" {
		return defaultRedrawInterval, nil
	}

	d, err := time.ParseDuration(value)

	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBadInterval, err)
	}

	if d <= 0 {
		return 0, fmt.Errorf("%w: %s", ErrBadInterval, value)
	}

	return d, nil
}

// resolveSettings validates cfg and fills in defaults. The data directory
// falls back to ~/.rtasks.
func resolveSettings(cfg Config) (*Settings, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	dataDir, err := resolveDataDir(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	interval, _ := parseInterval(cfg.RedrawInterval)

	theme := strings.TrimSpace(cfg.Theme)
	if theme == "" {
		theme = defaultTheme
	}

	color := strings.ToLower(strings.TrimSpace(cfg.Color))
	if color == "" {
		color = "auto"
	}

	watch := true
	if cfg.Watch != nil {
		watch = *cfg.Watch
	}

	return &Settings{
		DataDir:        dataDir,
		Theme:          theme,
		Color:          color,
		LogLevel:       cfg.LogLevel,
		RedrawInterval: interval,
		Watch:          watch,
	}, nil
}

func resolveDataDir(value string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return DefaultDir()
	}

	expanded, err := expandPath(value)
	if err != nil {
		return "", &ConfigError{Field: "data_dir", Err: err}
	}

	if !filepath.IsAbs(expanded) {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrHomeNotFound, err)
		}
		expanded = filepath.Join(homeDir, expanded)
	}

	return filepath.Clean(expanded), nil
}

func configPath() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "rtasks", "config.toml"), nil
}

func loadConfig() (Config, string, error) {
	path, err := configPath()

	if err != nil {
		return Config{}, "", err
	}

	data, err := os.ReadFile(path)

	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, path, nil
		}

		return Config{}, path, err
	}

	var cfg Config

	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return Config{}, path, &ConfigError{Err: err}
	}

	return cfg, path, nil
}

func expandPath(value string) (string, error) {
	value = strings.TrimSpace(value)

	if value == "" {
		return value, nil
	}

	expanded := os.ExpandEnv(value)

	if !strings.HasPrefix(expanded, "~") {
		return expanded, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if expanded == "~" {
		return homeDir, nil
	}

	if strings.HasPrefix(expanded, "~/") {
		return filepath.Join(homeDir, expanded[2:]), nil
	}

	if strings.HasPrefix(expanded, "~\\") {
		return filepath.Join(homeDir, expanded[2:]), nil
	}

	return expanded, nil
}
