package ui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aurelialabs/faro/internal/config"
	"github.com/aurelialabs/faro/internal/state"
	"github.com/aurelialabs/faro/internal/ui/components"
)

// --- Tab Constants ---

const (
	tabLeads   = 0
	tabClients = 1
	tabTickets = 2
	tabCount   = 3
)

var tabNames = []string{"Leads", "Clients", "Tickets"}

// --- Messages ---

type clearToastMsg struct{}

type appToast struct {
	level string
	text  string
}

// NoticeQueue buffers workspace notices until the UI drains them into a
// toast. The engine writes from command goroutines, so access is locked.
type NoticeQueue struct {
	mu      sync.Mutex
	pending []state.Notice
}

func NewNoticeQueue() *NoticeQueue {
	return &NoticeQueue{}
}

func (q *NoticeQueue) Notify(n state.Notice) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, n)
}

func (q *NoticeQueue) Drain() []state.Notice {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.pending
	q.pending = nil
	return out
}

// --- App Model ---

// App is the root TUI model that routes between tabs.
type App struct {
	engine      *state.Engine
	config      *config.Config
	notices     *NoticeQueue
	tab         int
	tabNav      bool
	width       int
	height      int
	helpOpen    bool
	quitConfirm bool
	toast       *appToast
	toastTTL    time.Duration

	leads   LeadsModel
	clients ClientsModel
	tickets TicketsModel
}

// NewApp creates the root application model.
func NewApp(engine *state.Engine, cfg *config.Config, notices *NoticeQueue) App {
	author := state.Author{}
	if cfg != nil {
		author.Name = cfg.Username
	}
	return App{
		engine:   engine,
		config:   cfg,
		notices:  notices,
		tab:      tabLeads,
		tabNav:   true,
		toastTTL: 2500 * time.Millisecond,
		leads:    NewLeadsModel(engine, author),
		clients:  NewClientsModel(engine, author),
		tickets:  NewTicketsModel(engine),
	}
}

// runCommand lifts a workspace command into a bubbletea command. The
// resulting event is fed back through Update and applied to the engine.
func runCommand(c state.Command) tea.Cmd {
	if c == nil {
		return nil
	}
	return func() tea.Msg {
		if ev := c(); ev != nil {
			return ev
		}
		return nil
	}
}

func runCommands(cmds []state.Command) tea.Cmd {
	out := make([]tea.Cmd, 0, len(cmds))
	for _, c := range cmds {
		if cmd := runCommand(c); cmd != nil {
			out = append(out, cmd)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return tea.Batch(out...)
}

func (a App) Init() tea.Cmd {
	return runCommand(a.engine.Load())
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.leads.width = msg.Width
		a.leads.height = msg.Height
		a.clients.width = msg.Width
		a.clients.height = msg.Height
		a.tickets.width = msg.Width
		a.tickets.height = msg.Height
		return a, nil

	case clearToastMsg:
		a.toast = nil
		return a, nil

	case state.Event:
		followUps := a.engine.Apply(msg)
		a.refreshTabs()
		cmd := runCommands(followUps)
		toastCmd := a.drainNotices()
		if cmd != nil && toastCmd != nil {
			return a, tea.Batch(cmd, toastCmd)
		}
		if toastCmd != nil {
			return a, toastCmd
		}
		return a, cmd

	case tea.KeyMsg:
		if a.quitConfirm {
			switch {
			case isKey(msg, "y"):
				return a, tea.Quit
			case isKey(msg, "n"), isBack(msg):
				a.quitConfirm = false
			}
			return a, nil
		}
		if a.helpOpen {
			if isBack(msg) || isKey(msg, "?") {
				a.helpOpen = false
			}
			return a, nil
		}

		// Text entry in the active tab gets every key except ctrl+c.
		if a.textEntryActive() {
			if isKey(msg, "ctrl+c") {
				a.quitConfirm = true
				return a, nil
			}
			return a.delegate(msg)
		}

		// Global keys
		if isKey(msg, "?") {
			a.helpOpen = true
			return a, nil
		}
		if isQuit(msg) {
			if a.hasUnsaved() {
				a.quitConfirm = true
				return a, nil
			}
			return a, tea.Quit
		}
		if isKey(msg, "r") && a.engine.Phase() == state.PhaseError {
			return a, runCommand(a.engine.Load())
		}

		for n := 1; n <= tabCount; n++ {
			if isTab(msg, n) {
				return a.switchTab(n - 1)
			}
		}

		// Arrow tab navigation until user enters content with Down
		if a.tabNav {
			if isKey(msg, "left") {
				return a.switchTab((a.tab - 1 + tabCount) % tabCount)
			}
			if isKey(msg, "right") {
				return a.switchTab((a.tab + 1) % tabCount)
			}
			if isDown(msg) {
				a.tabNav = false
				return a, nil
			}
			a.tabNav = false
		} else if isUp(msg) && a.canExitToTabNav() {
			a.tabNav = true
			return a, nil
		}
	}

	return a.delegate(msg)
}

func (a App) delegate(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.tab {
	case tabLeads:
		a.leads, cmd = a.leads.Update(msg)
	case tabClients:
		a.clients, cmd = a.clients.Update(msg)
	case tabTickets:
		a.tickets, cmd = a.tickets.Update(msg)
	}
	a.refreshTabs()
	toastCmd := a.drainNotices()
	if toastCmd != nil && cmd != nil {
		return a, tea.Batch(cmd, toastCmd)
	}
	if toastCmd != nil {
		return a, toastCmd
	}
	return a, cmd
}

func (a App) View() string {
	banner := centerBlockUniform(RenderBanner(), a.width)
	tabs := centerBlockUniform(a.renderTabs(), a.width)

	var content string
	switch a.engine.Phase() {
	case state.PhaseIdle, state.PhaseLoading:
		content = "  " + MutedStyle.Render("Loading workspace...")
	case state.PhaseError:
		message := "workspace load failed"
		if err := a.engine.Err(); err != nil {
			message = err.Error()
		}
		message += "\n\nPress r to retry."
		content = components.Indent(components.ErrorBox("Error", message, a.width), 1)
	default:
		switch a.tab {
		case tabLeads:
			content = a.leads.View()
		case tabClients:
			content = a.clients.View()
		case tabTickets:
			content = a.tickets.View()
		}
	}
	content = centerBlockUniform(content, a.width)

	if a.quitConfirm {
		content = centerBlockUniform(a.renderQuitConfirm(), a.width)
	} else if a.helpOpen {
		content = centerBlockUniform(a.renderHelp(), a.width)
	}

	hints := components.StatusBar(a.statusHints(), a.width)

	feedback := ""
	if a.toast != nil {
		feedback = "\n\n" + centerBlockUniform(a.renderToast(), a.width)
	}

	return fmt.Sprintf("%s\n%s\n\n%s\n\n\n%s%s", banner, tabs, content, hints, feedback)
}

func (a *App) switchTab(newTab int) (App, tea.Cmd) {
	oldTab := a.tab
	a.tab = newTab
	if oldTab == newTab {
		return *a, nil
	}
	switch newTab {
	case tabLeads:
		a.engine.SetViewContext(state.ContextLeads)
	case tabClients:
		a.engine.SetViewContext(state.ContextClients)
	}
	a.refreshTabs()
	toastCmd := a.drainNotices()
	return *a, toastCmd
}

func (a *App) refreshTabs() {
	a.leads.refresh()
	a.clients.refresh()
	a.tickets.refresh()
}

// drainNotices converts queued workspace notices into a toast. Only the
// most recent notice is shown; errors win over everything else.
func (a *App) drainNotices() tea.Cmd {
	if a.notices == nil {
		return nil
	}
	pending := a.notices.Drain()
	if len(pending) == 0 {
		return nil
	}
	pick := pending[len(pending)-1]
	for _, n := range pending {
		if n.Level == state.NoticeError {
			pick = n
		}
	}
	level := "info"
	switch pick.Level {
	case state.NoticeSuccess:
		level = "success"
	case state.NoticeError:
		level = "error"
	}
	return a.setToast(level, pick.Text)
}

func (a *App) setToast(level, text string) tea.Cmd {
	a.toast = &appToast{
		level: level,
		text:  components.SanitizeOneLine(text),
	}
	if a.toastTTL <= 0 {
		return nil
	}
	return tea.Tick(a.toastTTL, func(time.Time) tea.Msg {
		return clearToastMsg{}
	})
}

func (a App) renderToast() string {
	if a.toast == nil {
		return ""
	}
	title := "Info"
	switch a.toast.level {
	case "success":
		title = "Success"
	case "error":
		return components.ErrorBox("Error", a.toast.text, a.width)
	}
	return components.TitledBox(title, a.toast.text, a.width)
}

func (a App) renderTabs() string {
	segments := make([]string, 0, len(tabNames))
	for i, name := range tabNames {
		if i == a.tab {
			segments = append(segments, TabActiveStyle.Render(name))
		} else {
			segments = append(segments, TabInactiveStyle.Render(name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, segments...)
}

func (a App) renderHelp() string {
	hints := a.statusHintsForTab()
	lines := make([]string, 0, len(hints)+2)
	lines = append(lines, MutedStyle.Render("esc to close"))
	lines = append(lines, "")
	for _, hint := range hints {
		lines = append(lines, "  "+hint)
	}
	body := strings.Join(lines, "\n")
	return components.Indent(components.TitledBox("Help", body, a.width), 1)
}

func (a App) renderQuitConfirm() string {
	body := "You have an unsent note or lead. Quit anyway?"
	return components.Indent(components.ConfirmDialog("Quit", body), 1)
}

func (a App) textEntryActive() bool {
	switch a.tab {
	case tabLeads:
		return a.leads.mode != leadsModeBrowse
	case tabClients:
		return a.clients.composing
	}
	return false
}

func (a App) hasUnsaved() bool {
	switch a.tab {
	case tabLeads:
		if a.leads.mode == leadsModeCompose {
			return strings.TrimSpace(a.leads.note.Value()) != ""
		}
		return a.leads.mode == leadsModeAdd
	case tabClients:
		return a.clients.composing && strings.TrimSpace(a.clients.note.Value()) != ""
	}
	return false
}

func (a App) canExitToTabNav() bool {
	switch a.tab {
	case tabLeads:
		if a.leads.mode != leadsModeBrowse {
			return false
		}
		return a.leads.list == nil || a.leads.list.Selected() == 0
	case tabClients:
		if a.clients.composing {
			return false
		}
		return a.clients.list == nil || a.clients.list.Selected() == 0
	case tabTickets:
		return a.tickets.list == nil || a.tickets.list.Selected() == 0
	}
	return false
}

func (a App) statusHints() []string {
	if a.quitConfirm {
		return []string{
			components.Hint("y", "Confirm"),
			components.Hint("n", "Cancel"),
		}
	}
	if a.helpOpen {
		return []string{
			components.Hint("esc", "Back"),
		}
	}
	return a.statusHintsForTab()
}

func (a App) statusHintsForTab() []string {
	base := []string{
		components.Hint("1-3", "Tabs"),
		components.Hint("?", "Help"),
		components.Hint("q", "Quit"),
	}

	switch a.tab {
	case tabLeads:
		switch a.leads.mode {
		case leadsModeCompose:
			return []string{
				components.Hint("enter", "Send"),
				components.Hint("esc", "Cancel"),
			}
		case leadsModeAdd:
			return []string{
				components.Hint("tab", "Next Field"),
				components.Hint("enter", "Save"),
				components.Hint("esc", "Cancel"),
			}
		}
		return append(base,
			components.Hint("↑/↓", "Scroll"),
			components.Hint("space", "Select"),
			components.Hint("w", "Note"),
			components.Hint("n", "New Lead"),
			components.Hint("t", "Classify"),
		)
	case tabClients:
		if a.clients.composing {
			return []string{
				components.Hint("enter", "Send"),
				components.Hint("esc", "Cancel"),
			}
		}
		return append(base,
			components.Hint("↑/↓", "Scroll"),
			components.Hint("space", "Select"),
			components.Hint("w", "Note"),
		)
	case tabTickets:
		return append(base,
			components.Hint("↑/↓", "Scroll"),
		)
	}
	return base
}

func centerBlockUniform(s string, width int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	maxWidth := 0
	for _, line := range lines {
		w := lipgloss.Width(line)
		if w > maxWidth {
			maxWidth = w
		}
	}
	if maxWidth <= 0 || maxWidth >= width {
		return s
	}
	pad := (width - maxWidth) / 2
	if pad <= 0 {
		return s
	}
	prefix := strings.Repeat(" ", pad)
	for i := range lines {
		if lines[i] != "" {
			lines[i] = prefix + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
