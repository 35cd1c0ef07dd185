// Package prefs handles voltaview user preferences persistence.
// Preferences are stored in ~/.config/voltaview/prefs.toml.
package prefs

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds user preferences for voltaview.
type Prefs struct {
	Theme        string `toml:"theme"`
	FileViewMode string `toml:"file_view_mode"`
}

// File view modes.
const (
	ViewModeList = "list"
	ViewModeGrid = "grid"
)

const (
	defaultPrefsPath = "~/.config/voltaview/prefs.toml"
	defaultTheme     = "Dracula"
	defaultViewMode  = ViewModeList
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Load reads preferences from the given path, falling back to defaults if
// missing or unreadable. Preferences are cosmetic, so nothing here is fatal.
func Load(path string) (Prefs, error) {
	defaults := Prefs{Theme: defaultTheme, FileViewMode: defaultViewMode}

	resolved, err := resolvePath(path)
	if err != nil {
		return defaults, nil
	}

	prefs := defaults

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return prefs, nil
		}
		return prefs, nil // Graceful degradation
	}
	defer func() { _ = file.Close() }()

	raw, err := io.ReadAll(file)
	if err != nil {
		return prefs, nil // Graceful degradation
	}

	if err := toml.Unmarshal(raw, &prefs); err != nil {
		return defaults, nil // Graceful degradation
	}

	if strings.TrimSpace(prefs.Theme) == "" {
		prefs.Theme = defaultTheme
	}
	switch prefs.FileViewMode {
	case ViewModeList, ViewModeGrid:
	default:
		prefs.FileViewMode = defaultViewMode
	}

	return prefs, nil
}

// Save writes preferences to the given path, creating directories as needed.
// The write is atomic so a crash mid-save cannot corrupt the file.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	raw, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := atomic.WriteFile(resolved, bytes.NewReader(raw)); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}

	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
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
