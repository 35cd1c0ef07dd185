package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the fields voltaview needs to reach a Voltaserve
// deployment.
type Config struct {
	APIURL       string
	AccessKey    string
	PageSize     int
	SyncInterval time.Duration
	LogDir       string
}

const (
	defaultConfigPath = "~/.config/voltaview/config.toml"
	defaultLogDir     = "~/.local/share/voltaview/logs"
	defaultAPIURL     = "http://localhost:8080"

	defaultPageSize            = 50
	defaultSyncIntervalSeconds = 5

	// Environment overrides, applied after the file is parsed. The access
	// key in particular tends to live in the environment rather than on
	// disk.
	envAPIURL    = "VOLTAVIEW_API_URL"
	envAccessKey = "VOLTAVIEW_ACCESS_KEY"
)

// Load locates and parses the voltaview config, falling back to defaults
// when missing. Environment variables override file values.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		APIURL:       defaultAPIURL,
		PageSize:     defaultPageSize,
		SyncInterval: defaultSyncIntervalSeconds * time.Second,
		LogDir:       defaultLogDir,
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.LogDir = mustExpand(defaultLogDir)
			applyEnv(&cfg)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL              string `toml:"api_url"`
		AccessKey           string `toml:"access_key"`
		PageSize            int    `toml:"page_size"`
		SyncIntervalSeconds int    `toml:"sync_interval_seconds"`
		LogDir              string `toml:"log_dir"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.APIURL = strings.TrimSpace(raw.APIURL)
	if cfg.APIURL == "" {
		cfg.APIURL = defaultAPIURL
	}
	cfg.AccessKey = strings.TrimSpace(raw.AccessKey)

	if raw.PageSize > 0 {
		cfg.PageSize = raw.PageSize
	}
	if raw.SyncIntervalSeconds > 0 {
		cfg.SyncInterval = time.Duration(raw.SyncIntervalSeconds) * time.Second
	}

	cfg.LogDir = strings.TrimSpace(raw.LogDir)
	if cfg.LogDir == "" {
		cfg.LogDir = defaultLogDir
	}
	cfg.LogDir = mustExpand(cfg.LogDir)

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(envAPIURL)); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(os.Getenv(envAccessKey)); v != "" {
		cfg.AccessKey = v
	}
}

// LogPath returns the path to the voltaview log file.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogDir) == "" {
		return mustExpand(defaultLogDir + "/voltaview.log")
	}
	return filepath.Join(c.LogDir, "voltaview.log")
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
