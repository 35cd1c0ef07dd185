package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/kouprlabs/voltaview/internal/api"
	"github.com/kouprlabs/voltaview/internal/prefs"
	"github.com/kouprlabs/voltaview/internal/store"
)

// View renders the whole screen.
func (m Model) View() string {
	if !m.ready {
		return "starting…"
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderBody())
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	if m.showHelp {
		b.WriteString("\n")
		b.WriteString(m.renderHelp())
	}
	return b.String()
}

func (m Model) renderHeader() string {
	tabs := []struct {
		view  View
		label string
	}{
		{ViewWorkspaces, "1:Workspaces"},
		{ViewFiles, "Files"},
		{ViewTasks, "2:Tasks"},
	}

	parts := []string{m.styles.Header.Render("voltaview")}
	for _, tab := range tabs {
		label := tab.label
		if tab.view == ViewTasks {
			if pending := m.tasks.PendingCount(); pending > 0 {
				label = fmt.Sprintf("%s (%d)", label, pending)
			}
		}
		if tab.view == m.currentView {
			parts = append(parts, m.styles.TabActive.Render(label))
		} else {
			parts = append(parts, m.styles.Tab.Render(label))
		}
	}
	if m.currentView == ViewFiles {
		parts = append(parts, m.styles.Muted.Render(m.breadcrumb()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

func (m Model) breadcrumb() string {
	names := make([]string, 0, len(m.folders))
	for _, fs := range m.folders {
		names = append(names, fs.Current().Name)
	}
	return truncate(strings.Join(names, " / "), m.width/2)
}

func (m Model) renderBody() string {
	switch m.currentView {
	case ViewWorkspaces:
		return m.renderWorkspaces()
	case ViewFiles:
		return m.renderFiles()
	case ViewTasks:
		return m.renderTasks()
	}
	return ""
}

// renderList is the shared three-state list shell: a spinner before the
// first page ever lands, a placeholder for a loaded-but-empty list, and the
// rows otherwise.
func renderList(m Model, loaded bool, loading bool, count int, rows func() string) string {
	if !loaded {
		if loading {
			return m.styles.Muted.Render(m.spin.View() + " loading…")
		}
		return m.styles.Muted.Render("not loaded")
	}
	if count == 0 {
		return m.styles.Muted.Render("no items")
	}
	return rows()
}

func (m Model) renderWorkspaces() string {
	snap := m.workspaces.Snapshot()
	return renderList(m, snap.Loaded, snap.IsLoading, len(snap.Entities), func() string {
		now := time.Now()
		start, end := visibleRange(m.selWorkspaces, len(snap.Entities), m.visibleRows())
		var b strings.Builder
		for i := start; i < end; i++ {
			ws := snap.Entities[i]
			line := fmt.Sprintf("%-40s %-24s %10s  %s",
				truncate(ws.Name, 40),
				truncate(ws.Organization.Name, 24),
				humanSize(ws.StorageCapacity),
				humanTime(ws.CreateTime, now))
			b.WriteString(m.renderRow(line, i == m.selWorkspaces))
			b.WriteString("\n")
		}
		return b.String()
	})
}

func (m Model) renderFiles() string {
	fs := m.fileStore()
	if fs == nil {
		return m.styles.Muted.Render("open a workspace first")
	}
	snap := fs.Snapshot()
	return renderList(m, snap.Loaded, snap.IsLoading, len(snap.Entities), func() string {
		if m.viewMode == prefs.ViewModeGrid {
			return m.renderFileGrid(snap.Entities)
		}
		return m.renderFileList(snap.Entities)
	})
}

func (m Model) renderFileList(files []api.File) string {
	now := time.Now()
	start, end := visibleRange(m.selFiles, len(files), m.visibleRows())
	var b strings.Builder
	for i := start; i < end; i++ {
		f := files[i]
		marker := " "
		if f.IsFolder() {
			marker = "/"
		}
		shared := ""
		if f.IsShared {
			shared = "shared"
		}
		line := fmt.Sprintf("%-48s %-8s %-8s %s",
			truncate(f.Name+marker, 48),
			f.Permission,
			shared,
			humanTime(f.CreateTime, now))
		b.WriteString(m.renderRow(line, i == m.selFiles))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderFileGrid(files []api.File) string {
	const cellWidth = 24
	columns := m.width / cellWidth
	if columns < 1 {
		columns = 1
	}
	rows := m.visibleRows()
	start, end := visibleRange(m.selFiles/columns*columns, len(files), rows*columns)

	var b strings.Builder
	for i := start; i < end; i++ {
		f := files[i]
		name := f.Name
		if f.IsFolder() {
			name += "/"
		}
		cell := fmt.Sprintf("%-*s", cellWidth-1, truncate(name, cellWidth-2))
		b.WriteString(m.renderRow(cell, i == m.selFiles))
		if (i-start)%columns == columns-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) renderTasks() string {
	snap := m.tasks.Snapshot()
	return renderList(m, snap.Loaded, snap.IsLoading, len(snap.Entities), func() string {
		start, end := visibleRange(m.selTasks, len(snap.Entities), m.visibleRows())
		var b strings.Builder
		for i := start; i < end; i++ {
			t := snap.Entities[i]
			line := fmt.Sprintf("%-48s %-10s %s",
				truncate(t.Name, 48),
				t.Status,
				taskProgress(t))
			var styled string
			switch {
			case i == m.selTasks:
				styled = m.renderRow(line, true)
			case t.Status == api.TaskStatusError:
				styled = m.styles.Danger.Render(truncate(line, m.width))
			case t.Status == api.TaskStatusSuccess:
				styled = m.styles.Success.Render(truncate(line, m.width))
			default:
				styled = m.renderRow(line, false)
			}
			b.WriteString(styled)
			b.WriteString("\n")
		}
		return b.String()
	})
}

func taskProgress(t api.Task) string {
	if t.IsIndeterminate || t.Percentage == nil {
		if t.IsPending() {
			return "…"
		}
		return ""
	}
	return fmt.Sprintf("%d%%", *t.Percentage)
}

func (m Model) renderRow(line string, selected bool) string {
	line = truncate(line, m.width)
	if selected {
		return m.styles.RowSelected.Render(line)
	}
	return m.styles.Row.Render(line)
}

func (m Model) renderStatusBar() string {
	var parts []string

	if m.credentialLost {
		parts = append(parts, m.styles.Danger.Render("access key rejected, restart with a fresh key"))
	}

	if m.searching {
		parts = append(parts, m.search.View())
	}

	snap, ok := m.currentSnapshotInfo()
	if ok {
		counter := fmt.Sprintf("%d of %d", snap.loadedCount, snap.total)
		if snap.hasNext {
			counter += " +"
		}
		parts = append(parts, counter)
		if snap.loading {
			parts = append(parts, m.spin.View())
		}
		if snap.err != nil {
			parts = append(parts, m.styles.Danger.Render(truncate(snap.err.Error(), m.width/2)))
		}
	}

	if m.status != "" {
		parts = append(parts, m.styles.Accent.Render(truncate(m.status, m.width/3)))
	}
	parts = append(parts, m.styles.Help.Render("? help"))

	return m.styles.StatusBar.Width(m.width).Render(strings.Join(parts, "  "))
}

type snapshotInfo struct {
	loadedCount int
	total       int
	hasNext     bool
	loading     bool
	err         error
}

func (m Model) currentSnapshotInfo() (snapshotInfo, bool) {
	switch m.currentView {
	case ViewWorkspaces:
		return infoOf(m.workspaces.Snapshot()), true
	case ViewFiles:
		if fs := m.fileStore(); fs != nil {
			return infoOf(fs.Snapshot()), true
		}
	case ViewTasks:
		return infoOf(m.tasks.Snapshot()), true
	}
	return snapshotInfo{}, false
}

func infoOf[T store.Entity](snap store.Snapshot[T]) snapshotInfo {
	return snapshotInfo{
		loadedCount: len(snap.Entities),
		total:       snap.TotalElements,
		hasNext:     snap.HasNextPage,
		loading:     snap.IsLoading,
		err:         snap.Err,
	}
}

func (m Model) renderHelp() string {
	lines := []string{
		"tab next view   1 workspaces   2 tasks   enter open   bksp parent",
		"/ search   r refresh   v list/grid   T theme   d dismiss task   D dismiss all",
		"j/k move   g/G top/bottom   pgup/pgdn page   q quit",
	}
	return m.styles.Help.Render(strings.Join(lines, "\n"))
}

// visibleRows returns how many list rows fit between header and status bar.
func (m Model) visibleRows() int {
	rows := m.height - 3
	if m.showHelp {
		rows -= 4
	}
	if rows < 1 {
		rows = 1
	}
	return rows
}

// visibleRange windows the list around the selection.
func visibleRange(sel, total, visible int) (int, int) {
	if total <= visible {
		return 0, total
	}
	start := sel - visible/2
	start = clamp(start, 0, total-visible)
	return start, start + visible
}
