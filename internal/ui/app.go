// Package ui provides the Bubble Tea TUI for voltaview.
package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kouprlabs/voltaview/internal/api"
	"github.com/kouprlabs/voltaview/internal/prefs"
	"github.com/kouprlabs/voltaview/internal/store"
)

// View represents the current active view.
type View int

const (
	ViewWorkspaces View = iota
	ViewFiles
	ViewTasks
)

// Options configures the UI.
type Options struct {
	Context      context.Context
	Client       *api.Client
	Workspaces   *store.WorkspaceStore
	Tasks        *store.TaskStore
	StoreOptions store.Options
	ThemeName    string
	ViewMode     string
	PrefsPath    string
	// AuthErr is polled every tick; a non-nil result flips the credential
	// banner on and stays on until the process restarts with a fresh key.
	AuthErr func() error
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	client    *api.Client
	storeOpts store.Options

	workspaces *store.WorkspaceStore
	tasks      *store.TaskStore
	// folders is the navigation stack; the last element is the folder on
	// screen. Each push creates a fresh store, each pop stops its sync.
	folders []*store.FileStore

	keys      keyMap
	theme     Theme
	styles    Styles
	viewMode  string
	prefsPath string
	authErr   func() error

	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool

	selWorkspaces int
	selFiles      int
	selTasks      int

	search    textinput.Model
	searching bool
	spin      spinner.Model

	status         string
	credentialLost bool
}

type tickMsg time.Time

type loadDoneMsg struct{ err error }

type actionDoneMsg struct {
	status string
	err    error
}

const uiTick = 500 * time.Millisecond

// New creates the root model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	theme := themeByName(opts.ThemeName)

	search := textinput.New()
	search.Placeholder = "search"
	search.CharLimit = 256
	search.Prompt = "/"

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	viewMode := opts.ViewMode
	if viewMode == "" {
		viewMode = prefs.ViewModeList
	}

	return Model{
		ctx:        ctx,
		client:     opts.Client,
		storeOpts:  opts.StoreOptions,
		workspaces: opts.Workspaces,
		tasks:      opts.Tasks,
		keys:       DefaultKeyMap(),
		theme:      theme,
		styles:     theme.Styles(),
		viewMode:   viewMode,
		prefsPath:  opts.PrefsPath,
		authErr:    opts.AuthErr,
		search:     search,
		spin:       spin,
	}
}

// Init kicks off the spinner, the redraw tick, and the initial loads.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spin.Tick,
		tickCmd(),
		loadCmd(m.ctx, m.workspaces, false),
		loadCmd(m.ctx, m.tasks, false),
		taskCountCmd(m.ctx, m.tasks),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(uiTick, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// pager is the slice of the list store API the UI drives directly.
type pager interface {
	FetchNextPage(ctx context.Context, replace bool) error
}

func loadCmd(ctx context.Context, p pager, replace bool) tea.Cmd {
	return func() tea.Msg { return loadDoneMsg{err: p.FetchNextPage(ctx, replace)} }
}

// taskCountCmd fetches the pending-task badge once at startup; afterwards
// the store's sync loop keeps it fresh.
func taskCountCmd(ctx context.Context, ts *store.TaskStore) tea.Cmd {
	return func() tea.Msg { return loadDoneMsg{err: ts.RefreshCount(ctx)} }
}

func actionCmd(status string, fn func() error) tea.Cmd {
	return func() tea.Msg { return actionDoneMsg{status: status, err: fn()} }
}

// Update handles all messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tickMsg:
		if m.authErr != nil && m.authErr() != nil {
			m.credentialLost = true
		}
		return m, tickCmd()

	case loadDoneMsg:
		// Load errors already live in the store snapshot; nothing to do.
		return m, nil

	case actionDoneMsg:
		if msg.err != nil {
			m.status = "error: " + msg.err.Error()
		} else {
			m.status = msg.status
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.handleSearchKey(msg)
	}

	keys := m.keys
	switch {
	case key.Matches(msg, keys.Quit):
		m.stopAllSyncs()
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, keys.CycleTheme):
		m.theme = nextTheme(m.theme.Name)
		m.styles = m.theme.Styles()
		return m, m.savePrefsCmd()

	case key.Matches(msg, keys.ToggleView):
		if m.viewMode == prefs.ViewModeList {
			m.viewMode = prefs.ViewModeGrid
		} else {
			m.viewMode = prefs.ViewModeList
		}
		return m, m.savePrefsCmd()

	case key.Matches(msg, keys.Tab):
		m.currentView = m.nextView()
		return m, nil

	case key.Matches(msg, keys.ViewWorkspaces):
		m.currentView = ViewWorkspaces
		return m, nil

	case key.Matches(msg, keys.ViewTasks):
		m.currentView = ViewTasks
		return m, nil

	case key.Matches(msg, keys.Search):
		if m.currentView == ViewTasks {
			return m, nil
		}
		m.searching = true
		m.search.SetValue("")
		m.search.Focus()
		return m, textinput.Blink

	case key.Matches(msg, keys.Refresh):
		return m, m.refreshCmd()

	case key.Matches(msg, keys.Up):
		m.moveSelection(-1)
		return m, nil
	case key.Matches(msg, keys.Down):
		m.moveSelection(1)
		return m, m.maybePrefetch()
	case key.Matches(msg, keys.PageUp):
		m.moveSelection(-m.visibleRows())
		return m, nil
	case key.Matches(msg, keys.PageDown):
		m.moveSelection(m.visibleRows())
		return m, m.maybePrefetch()
	case key.Matches(msg, keys.Top):
		m.setSelection(0)
		return m, nil
	case key.Matches(msg, keys.Bottom):
		m.setSelection(m.currentLen() - 1)
		return m, m.maybePrefetch()

	case key.Matches(msg, keys.Open):
		return m.open()

	case key.Matches(msg, keys.Back), key.Matches(msg, keys.Escape):
		return m.back()

	case key.Matches(msg, keys.Dismiss):
		return m.dismissTask(false)
	case key.Matches(msg, keys.DismissAll):
		return m.dismissTask(true)
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.searching = false
		m.search.Blur()
		m.applyQuery("")
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.applyQuery(m.search.Value())
	return m, cmd
}

// applyQuery routes the live search text into the store behind the current
// view. Debouncing happens inside the store.
func (m *Model) applyQuery(text string) {
	switch m.currentView {
	case ViewWorkspaces:
		m.workspaces.SetQuery(m.ctx, text)
		m.selWorkspaces = 0
	case ViewFiles:
		if fs := m.fileStore(); fs != nil {
			fs.SetQuery(m.ctx, api.FileQuery{Text: text})
			m.selFiles = 0
		}
	}
}

func (m Model) open() (tea.Model, tea.Cmd) {
	switch m.currentView {
	case ViewWorkspaces:
		snap := m.workspaces.Snapshot()
		if m.selWorkspaces >= len(snap.Entities) {
			return m, nil
		}
		ws := snap.Entities[m.selWorkspaces]
		root := api.File{
			ID:          ws.RootID,
			WorkspaceID: ws.ID,
			Name:        ws.Name,
			Type:        api.FileTypeFolder,
		}
		return m.pushFolder(root)

	case ViewFiles:
		fs := m.fileStore()
		if fs == nil {
			return m, nil
		}
		snap := fs.Snapshot()
		if m.selFiles >= len(snap.Entities) {
			return m, nil
		}
		entry := snap.Entities[m.selFiles]
		if !entry.IsFolder() {
			m.status = entry.Name
			return m, nil
		}
		return m.pushFolder(entry)
	}
	return m, nil
}

func (m Model) pushFolder(folder api.File) (tea.Model, tea.Cmd) {
	fs := store.NewFileStore(m.client, folder, m.storeOpts)
	fs.StartSync(m.ctx)
	m.folders = append(m.folders, fs)
	m.currentView = ViewFiles
	m.selFiles = 0
	return m, loadCmd(m.ctx, fs, false)
}

func (m Model) back() (tea.Model, tea.Cmd) {
	if m.currentView != ViewFiles || len(m.folders) == 0 {
		return m, nil
	}
	popped := m.folders[len(m.folders)-1]
	popped.StopSync()
	m.folders = m.folders[:len(m.folders)-1]
	m.selFiles = 0
	if len(m.folders) == 0 {
		m.currentView = ViewWorkspaces
	}
	return m, nil
}

func (m Model) dismissTask(all bool) (tea.Model, tea.Cmd) {
	if m.currentView != ViewTasks {
		return m, nil
	}
	if all {
		tasks := m.tasks
		ctx := m.ctx
		return m, actionCmd("dismissed all finished tasks", func() error {
			return tasks.DismissAll(ctx)
		})
	}
	snap := m.tasks.Snapshot()
	if m.selTasks >= len(snap.Entities) {
		return m, nil
	}
	id := snap.Entities[m.selTasks].ID
	tasks := m.tasks
	ctx := m.ctx
	return m, actionCmd("task dismissed", func() error {
		return tasks.Dismiss(ctx, id)
	})
}

func (m Model) refreshCmd() tea.Cmd {
	ctx := m.ctx
	switch m.currentView {
	case ViewWorkspaces:
		ws := m.workspaces
		return actionCmd("refreshed", func() error { ws.Sync(ctx); return nil })
	case ViewFiles:
		if fs := m.fileStore(); fs != nil {
			return actionCmd("refreshed", func() error { fs.Sync(ctx); return nil })
		}
	case ViewTasks:
		ts := m.tasks
		return actionCmd("refreshed", func() error { ts.Sync(ctx); return nil })
	}
	return nil
}

// maybePrefetch issues the next page load when the selection has moved into
// the near-end window of the current list.
func (m Model) maybePrefetch() tea.Cmd {
	switch m.currentView {
	case ViewWorkspaces:
		snap := m.workspaces.Snapshot()
		if m.selWorkspaces < len(snap.Entities) &&
			m.workspaces.IsNearEnd(snap.Entities[m.selWorkspaces].ID) {
			return loadCmd(m.ctx, m.workspaces, false)
		}
	case ViewFiles:
		fs := m.fileStore()
		if fs == nil {
			return nil
		}
		snap := fs.Snapshot()
		if m.selFiles < len(snap.Entities) &&
			fs.IsNearEnd(snap.Entities[m.selFiles].ID) {
			return loadCmd(m.ctx, fs, false)
		}
	case ViewTasks:
		snap := m.tasks.Snapshot()
		if m.selTasks < len(snap.Entities) &&
			m.tasks.IsNearEnd(snap.Entities[m.selTasks].ID) {
			return loadCmd(m.ctx, m.tasks, false)
		}
	}
	return nil
}

func (m *Model) moveSelection(delta int) {
	m.setSelection(m.currentSel() + delta)
}

func (m *Model) setSelection(v int) {
	max := m.currentLen() - 1
	if max < 0 {
		max = 0
	}
	v = clamp(v, 0, max)
	switch m.currentView {
	case ViewWorkspaces:
		m.selWorkspaces = v
	case ViewFiles:
		m.selFiles = v
	case ViewTasks:
		m.selTasks = v
	}
}

func (m Model) currentSel() int {
	switch m.currentView {
	case ViewFiles:
		return m.selFiles
	case ViewTasks:
		return m.selTasks
	default:
		return m.selWorkspaces
	}
}

func (m Model) currentLen() int {
	switch m.currentView {
	case ViewWorkspaces:
		return len(m.workspaces.Snapshot().Entities)
	case ViewFiles:
		if fs := m.fileStore(); fs != nil {
			return len(fs.Snapshot().Entities)
		}
		return 0
	case ViewTasks:
		return len(m.tasks.Snapshot().Entities)
	}
	return 0
}

func (m Model) fileStore() *store.FileStore {
	if len(m.folders) == 0 {
		return nil
	}
	return m.folders[len(m.folders)-1]
}

func (m Model) nextView() View {
	switch m.currentView {
	case ViewWorkspaces:
		if len(m.folders) > 0 {
			return ViewFiles
		}
		return ViewTasks
	case ViewFiles:
		return ViewTasks
	default:
		return ViewWorkspaces
	}
}

func (m Model) stopAllSyncs() {
	m.workspaces.StopSync()
	m.tasks.StopSync()
	for _, fs := range m.folders {
		fs.StopSync()
	}
}

func (m Model) savePrefsCmd() tea.Cmd {
	path := m.prefsPath
	p := prefs.Prefs{Theme: m.theme.Name, FileViewMode: m.viewMode}
	return func() tea.Msg {
		if err := prefs.Save(path, p); err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits.
func Run(opts Options) error {
	program := tea.NewProgram(New(opts), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
