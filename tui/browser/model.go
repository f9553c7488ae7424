// Package browser is a terminal front end for the navigation host: it draws
// the current destination and forwards key presses as host actions.
package browser

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/grovetools/navcore/channels"
	"github.com/grovetools/navcore/nav"
	"github.com/grovetools/navcore/tui/theme"
)

type rowKind int

const (
	rowLink rowKind = iota
	rowChannel
	rowSetting
	rowInstallPackage
	rowInstallFolder
)

type row struct {
	kind      rowKind
	label     string
	route     string
	detail    string
	selected  bool
	deletable bool
}

// SnapshotMsg carries a channel store snapshot to the model.
type SnapshotMsg struct {
	Snapshot channels.Snapshot
	feed     <-chan channels.Snapshot
}

// PrefsChangedMsg tells the model the preferences file changed on disk.
type PrefsChangedMsg struct{}

type installDoneMsg struct {
	what string
	err  error
}

// Model is the Bubble Tea model of the browser.
type Model struct {
	host  *nav.Host
	keys  KeyMap
	help  help.Model
	input textinput.Model

	adding bool
	cursor int
	rows   []row
	status string

	feeds   []<-chan channels.Snapshot
	cancels []func()

	width  int
	height int
}

// New creates a browser over a started host and subscribes to every channel
// store so external edits redraw the screen.
func New(host *nav.Host) *Model {
	ti := textinput.New()
	ti.Placeholder = "owner/repository"
	ti.Prompt = "+ "
	ti.CharLimit = 200
	ti.Width = 40

	m := &Model{
		host:  host,
		keys:  DefaultKeyMap(),
		help:  help.New(),
		input: ti,
	}
	m.keys.Fab.SetEnabled(host.HasInstaller())
	for _, cat := range host.Registry().Categories() {
		store, _ := host.Registry().Store(cat)
		feed, cancel := store.Subscribe()
		m.feeds = append(m.feeds, feed)
		m.cancels = append(m.cancels, cancel)
	}
	m.refresh()
	return m
}

// Close cancels the store subscriptions.
func (m *Model) Close() {
	for _, cancel := range m.cancels {
		cancel()
	}
	m.cancels = nil
}

func waitForSnapshot(feed <-chan channels.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-feed
		if !ok {
			return nil
		}
		return SnapshotMsg{Snapshot: snap, feed: feed}
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.feeds))
	for _, feed := range m.feeds {
		cmds = append(cmds, waitForSnapshot(feed))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case SnapshotMsg:
		m.refresh()
		return m, waitForSnapshot(msg.feed)

	case PrefsChangedMsg:
		m.host.Registry().LoadAll()
		m.refresh()
		return m, nil

	case installDoneMsg:
		if msg.err != nil {
			m.status = theme.RenderStatus("error", fmt.Sprintf("Install %s failed: %v", msg.what, msg.err))
		} else {
			m.status = theme.RenderStatus("success", fmt.Sprintf("Installed %s", msg.what))
		}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		if m.adding {
			return m.updateAdding(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m *Model) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.adding = false
		m.input.Blur()
		m.input.Reset()
		return m, nil
	case tea.KeyEnter:
		label := strings.TrimSpace(m.input.Value())
		m.adding = false
		m.input.Blur()
		m.input.Reset()
		if label == "" {
			return m, nil
		}
		cat := m.host.Current().Category
		before := len(m.rows)
		if _, err := m.host.AddChannel(cat, label); err != nil {
			m.status = theme.RenderStatus("error", err.Error())
		}
		m.refresh()
		if len(m.rows) == before {
			m.status = theme.RenderStatus("warning", fmt.Sprintf("'%s' is already listed or reserved", label))
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Back):
		if m.host.Back() {
			m.cursor = 0
		}
		m.refresh()

	case key.Matches(msg, m.keys.Drawer):
		if m.host.Current().Kind == nav.KindGames {
			m.host.ToggleDrawer()
			m.cursor = 0
			m.refresh()
		}

	case key.Matches(msg, m.keys.Fab):
		if m.host.Current().Kind == nav.KindGames && !m.host.DrawerOpen() {
			m.host.ToggleFab()
			m.cursor = 0
			m.refresh()
		}

	case key.Matches(msg, m.keys.Add):
		if m.host.Current().Kind == nav.KindChannelList {
			m.adding = true
			return m, m.input.Focus()
		}

	case key.Matches(msg, m.keys.Delete):
		r, ok := m.currentRow()
		if ok && r.kind == rowChannel && r.deletable {
			if _, err := m.host.DeleteChannel(m.host.Current().Category, r.label); err != nil {
				m.status = theme.RenderStatus("error", err.Error())
			}
			m.refresh()
		}

	case key.Matches(msg, m.keys.Enter):
		return m, m.activate()
	}
	return m, nil
}

// activate runs the action of the row under the cursor.
func (m *Model) activate() tea.Cmd {
	r, ok := m.currentRow()
	if !ok {
		return nil
	}
	switch r.kind {
	case rowLink:
		if err := m.host.Navigate(r.route); err != nil {
			m.status = theme.RenderStatus("error", err.Error())
		}
		m.cursor = 0
	case rowChannel:
		if err := m.host.SelectChannel(m.host.Current().Category, r.label); err != nil {
			m.status = theme.RenderStatus("error", err.Error())
		}
		m.cursor = 0
	case rowInstallPackage:
		return m.install("package", m.host.PackageInstall())
	case rowInstallFolder:
		return m.install("folder", m.host.FolderInstall())
	}
	m.refresh()
	return nil
}

// install wraps an install call obtained on the event loop. The command runs
// on its own goroutine and must not touch the host.
func (m *Model) install(what string, run func(context.Context) error) tea.Cmd {
	m.refresh()
	return func() tea.Msg {
		return installDoneMsg{what: what, err: run(context.Background())}
	}
}

func (m *Model) currentRow() (row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.cursor], true
}

// refresh rebuilds the rows of the current destination.
func (m *Model) refresh() {
	m.rows = m.buildRows()
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) buildRows() []row {
	dest := m.host.Current()
	var rows []row

	switch dest.Kind {
	case nav.KindGames:
		switch {
		case m.host.DrawerOpen():
			for _, l := range m.host.DrawerLinks() {
				rows = append(rows, row{kind: rowLink, label: l.Label, route: l.Route})
			}
		case m.host.FabExpanded() && m.host.HasInstaller():
			rows = append(rows,
				row{kind: rowInstallPackage, label: "Install package"},
				row{kind: rowInstallFolder, label: "Install folder"},
			)
		}

	case nav.KindSettings, nav.KindAdvancedSettings:
		screen, err := m.host.SettingsScreen(dest.Route)
		if err != nil {
			m.status = theme.RenderStatus("error", err.Error())
			return nil
		}
		for _, l := range screen.Links {
			rows = append(rows, row{kind: rowLink, label: l.Label, route: l.Route})
		}
		for _, e := range screen.Entries {
			if e.IsGroup {
				rows = append(rows, row{kind: rowLink, label: e.Key, route: e.Route})
			} else {
				rows = append(rows, row{kind: rowSetting, label: e.Key, detail: e.Type})
			}
		}

	case nav.KindUpdateChannels:
		for _, l := range m.host.UpdateChannelLinks() {
			rows = append(rows, row{kind: rowLink, label: l.Label, route: l.Route})
		}

	case nav.KindChannelList:
		screen, err := m.host.ChannelScreen(dest.Category)
		if err != nil {
			m.status = theme.RenderStatus("error", err.Error())
			return nil
		}
		for _, it := range screen.Items {
			r := row{kind: rowChannel, label: it.Label, selected: it.Selected, deletable: it.Deletable}
			if it.Label != it.ID {
				r.detail = it.ID
			}
			rows = append(rows, r)
		}
	}
	return rows
}

// View implements tea.Model.
func (m *Model) View() string {
	t := theme.DefaultTheme
	dest := m.host.Current()
	var b strings.Builder

	b.WriteString(t.Header.Render(dest.Title))
	b.WriteString("\n")

	if len(m.rows) == 0 {
		b.WriteString(t.Muted.Render(emptyText(dest.Kind, m.host.GamesOnly(), m.host.HasInstaller())))
		b.WriteString("\n")
	}

	for i, r := range m.rows {
		line := r.label
		switch {
		case r.kind == rowChannel && r.selected:
			line = t.Success.Render("● ") + t.Bold.Render(line)
		case r.kind == rowChannel:
			line = "  " + line
		case r.kind == rowLink:
			line += t.Muted.Render(" ›")
		}
		if r.detail != "" {
			line += t.Muted.Render(" " + r.detail)
		}
		if r.kind == rowChannel && !r.deletable {
			line += t.Muted.Render(" [protected]")
		}
		if i == m.cursor {
			line = t.Cursor.Render("> ") + t.Selected.Render(line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	body := b.String()
	if dest.Kind == nav.KindGames && m.host.DrawerOpen() {
		body = t.Drawer.Render(strings.TrimRight(body, "\n")) + "\n"
	}

	var out strings.Builder
	out.WriteString(body)
	if m.adding {
		out.WriteString("\n")
		out.WriteString(m.input.View())
		out.WriteString("\n")
	}
	if m.status != "" {
		out.WriteString("\n")
		out.WriteString(m.status)
		out.WriteString("\n")
	}
	out.WriteString("\n")
	out.WriteString(m.help.View(m.keys))
	return out.String()
}

func emptyText(kind nav.Kind, gamesOnly, canInstall bool) string {
	switch kind {
	case nav.KindGames:
		switch {
		case gamesOnly && canInstall:
			return "Emulator library not loaded. Press + to install."
		case gamesOnly:
			return "Emulator library not loaded."
		case canInstall:
			return "No games installed. Press + to install, m for the menu."
		}
		return "No games installed. Press m for the menu."
	case nav.KindUsers, nav.KindControls, nav.KindDrivers:
		return "Nothing to configure here from the terminal."
	default:
		return "Empty."
	}
}
