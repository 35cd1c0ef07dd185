package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/kouprlabs/voltaview/internal/api"
	"github.com/kouprlabs/voltaview/internal/config"
	"github.com/kouprlabs/voltaview/internal/prefs"
	"github.com/kouprlabs/voltaview/internal/store"
	"github.com/kouprlabs/voltaview/internal/ui"
)

// Options configure the voltaview application.
type Options struct {
	ConfigPath  string
	PrefsPath   string // empty uses default ~/.config/voltaview/prefs.toml
	APIURL      string // overrides the config file when set
	AccessKey   string // overrides the config file when set
	SyncSeconds int    // overrides the configured sync interval when > 0
}

// authWatcher latches the first credential rejection so the UI can surface
// it. Stores fire the callback from fetch goroutines; the UI polls Err.
type authWatcher struct {
	mu  sync.Mutex
	err error
}

func (w *authWatcher) set(err error) {
	w.mu.Lock()
	if w.err == nil {
		w.err = err
	}
	w.mu.Unlock()
}

func (w *authWatcher) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

// Run boots the voltaview TUI until the context is cancelled or the user
// quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.APIURL != "" {
		cfg.APIURL = opts.APIURL
	}
	if opts.AccessKey != "" {
		cfg.AccessKey = opts.AccessKey
	}
	if opts.SyncSeconds > 0 {
		cfg.SyncInterval = time.Duration(opts.SyncSeconds) * time.Second
	}

	log, closeLog, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		log.Debug().Err(err).Msg("prefs load failed, using defaults")
	}

	client, err := api.NewClient(api.Config{
		BaseURL:   cfg.APIURL,
		AccessKey: cfg.AccessKey,
		Logger:    &log,
	})
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	watcher := &authWatcher{}
	storeOpts := store.Options{
		PageSize:     cfg.PageSize,
		SyncInterval: cfg.SyncInterval,
		Logger:       &log,
		OnAuthError: func(err error) {
			log.Warn().Err(err).Msg("access key rejected")
			watcher.set(err)
		},
	}

	workspaces := store.NewWorkspaceStore(client, storeOpts)
	tasks := store.NewTaskStore(client, storeOpts)

	workspaces.StartSync(ctx)
	tasks.StartSync(ctx)
	defer workspaces.StopSync()
	defer tasks.StopSync()

	log.Info().Str("api_url", cfg.APIURL).Msg("voltaview starting")

	return ui.Run(ui.Options{
		Context:      ctx,
		Client:       client,
		Workspaces:   workspaces,
		Tasks:        tasks,
		StoreOptions: storeOpts,
		ThemeName:    userPrefs.Theme,
		ViewMode:     userPrefs.FileViewMode,
		PrefsPath:    opts.PrefsPath,
		AuthErr:      watcher.Err,
	})
}

// openLogger writes structured logs to the configured log file. The terminal
// belongs to the TUI, so nothing ever logs to stderr while it runs.
func openLogger(cfg config.Config) (zerolog.Logger, func(), error) {
	path := cfg.LogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}
	log := zerolog.New(file).With().Timestamp().Logger()
	return log, func() { _ = file.Close() }, nil
}
