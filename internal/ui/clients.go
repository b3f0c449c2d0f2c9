package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aurelialabs/faro/internal/state"
	"github.com/aurelialabs/faro/internal/ui/components"
)

// ClientsModel drives the clients tab. Clients are read-only apart from
// the note composer; their feed is derived locally from the per-client
// bucket.
type ClientsModel struct {
	engine    *state.Engine
	author    state.Author
	items     []state.Entity
	list      *components.List
	composing bool
	note      textinput.Model
	width     int
	height    int
}

func NewClientsModel(engine *state.Engine, author state.Author) ClientsModel {
	note := textinput.New()
	note.Placeholder = "Write a note..."
	note.CharLimit = 500
	note.Width = 60
	return ClientsModel{
		engine: engine,
		author: author,
		list:   components.NewList(10),
		note:   note,
	}
}

func (m *ClientsModel) refresh() {
	m.items = m.engine.Clients()
	labels := make([]string, len(m.items))
	for i, client := range m.items {
		labels[i] = client.Name
	}
	m.list.SetItems(labels)
}

func (m ClientsModel) Update(msg tea.Msg) (ClientsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.composing {
			return m.handleComposeKeys(msg)
		}
		return m.handleBrowseKeys(msg)
	}

	if m.composing {
		var cmd tea.Cmd
		m.note, cmd = m.note.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m ClientsModel) handleBrowseKeys(msg tea.KeyMsg) (ClientsModel, tea.Cmd) {
	switch {
	case isDown(msg):
		m.list.Down()
	case isUp(msg):
		m.list.Up()
	case isEnter(msg), isSpace(msg):
		if idx := m.list.Selected(); idx < len(m.items) {
			m.engine.SelectClient(m.items[idx].ID)
		}
	case isKey(msg, "w"):
		if _, ok := m.engine.Selected(); ok {
			m.composing = true
			m.note.SetValue("")
			return m, m.note.Focus()
		}
	}
	return m, nil
}

func (m ClientsModel) handleComposeKeys(msg tea.KeyMsg) (ClientsModel, tea.Cmd) {
	switch {
	case isEnter(msg):
		text := strings.TrimSpace(m.note.Value())
		m.composing = false
		m.note.Blur()
		if text == "" {
			return m, nil
		}
		cmds := m.engine.SaveNote(text, m.author)
		return m, runCommands(cmds)
	case isBack(msg):
		m.composing = false
		m.note.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.note, cmd = m.note.Update(msg)
	return m, cmd
}

func (m ClientsModel) View() string {
	if m.composing {
		target := ""
		if sel, ok := m.engine.Selected(); ok {
			target = MutedStyle.Render("To: ") + NormalStyle.Render(sel.Name)
		}
		body := target + "\n\n" + m.note.View()
		return components.Indent(components.TitledBox("New Note", body, m.width), 1)
	}
	return m.renderList()
}

func (m ClientsModel) renderList() string {
	if len(m.items) == 0 {
		content := MutedStyle.Render("No clients yet.")
		return components.Indent(components.Box(content, m.width), 1)
	}

	contentWidth := components.BoxContentWidth(m.width)
	visible := m.list.Visible()

	previewWidth := preferredPreviewWidth(contentWidth)
	gap := 3
	tableWidth := contentWidth
	sideBySide := contentWidth >= 100
	if sideBySide {
		tableWidth = contentWidth - previewWidth - gap
		if tableWidth < 50 {
			sideBySide = false
			tableWidth = contentWidth
		}
	}

	sepWidth := 1
	if b := lipgloss.RoundedBorder().Left; b != "" {
		sepWidth = lipgloss.Width(b)
	}

	// 3 columns -> 2 separators.
	availableCols := tableWidth - (2 * sepWidth)
	if availableCols < 30 {
		availableCols = 30
	}

	categoryWidth := 16
	statusWidth := 10
	nameWidth := availableCols - (categoryWidth + statusWidth)
	if nameWidth < 14 {
		nameWidth = 14
	}

	cols := []components.TableColumn{
		{Header: "Client", Width: nameWidth, Align: lipgloss.Left},
		{Header: "Category", Width: categoryWidth, Align: lipgloss.Left},
		{Header: "Status", Width: statusWidth, Align: lipgloss.Left},
	}

	tableRows := make([][]string, 0, len(visible))
	activeRowRel := -1
	for i := range visible {
		absIdx := m.list.RelToAbs(i)
		if absIdx < 0 || absIdx >= len(m.items) {
			continue
		}
		client := m.items[absIdx]
		if m.list.IsSelected(absIdx) {
			activeRowRel = len(tableRows)
		}
		name := client.Name
		if client.Selected {
			name = "▸ " + name
		}
		tableRows = append(tableRows, []string{
			components.ClampTextWidthEllipsis(name, nameWidth),
			components.ClampTextWidthEllipsis(client.Category, categoryWidth),
			components.ClampTextWidthEllipsis(client.Status, statusWidth),
		})
	}

	countLine := MutedStyle.Render(fmt.Sprintf("%d total", len(m.items)))

	table := components.TableGridWithActiveRow(cols, tableRows, tableWidth, activeRowRel)

	preview := ""
	if idx := m.list.Selected(); idx >= 0 && idx < len(m.items) {
		content := m.renderClientPreview(m.items[idx], previewBoxContentWidth(previewWidth))
		preview = renderPreviewBox(content, previewWidth)
	}

	body := table
	if sideBySide && preview != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, table, strings.Repeat(" ", gap), preview)
	} else if preview != "" {
		body = table + "\n\n" + preview
	}

	content := countLine + "\n\n" + body + "\n"
	return components.Indent(components.TitledBox("Clients", content, m.width), 1)
}

func (m ClientsModel) renderClientPreview(client state.Entity, width int) string {
	if width <= 0 {
		return ""
	}

	var lines []string
	lines = append(lines, MetaKeyStyle.Render("Client"))
	for _, part := range wrapPreviewText(client.Name, width) {
		lines = append(lines, SelectedStyle.Render(part))
	}
	lines = append(lines, "")

	if client.Status != "" {
		lines = append(lines, renderPreviewRow("Status", client.Status, width))
	}
	if client.Category != "" {
		lines = append(lines, renderPreviewRow("Category", client.Category, width))
	}
	if client.Phone != "" {
		lines = append(lines, renderPreviewRow("Phone", client.Phone, width))
	}
	if client.Email != "" {
		lines = append(lines, renderPreviewRow("Email", client.Email, width))
	}
	if client.Website != "" {
		lines = append(lines, renderPreviewRow("Website", client.Website, width))
	}
	if client.Address != "" {
		lines = append(lines, renderPreviewRow("Address", client.Address, width))
	}

	feed := m.engine.Displayed()
	if len(feed) > 0 {
		lines = append(lines, "", MetaKeyStyle.Render("Activity"))
		lines = append(lines, renderFeedLines(feed, width, feedPreviewMax)...)
	}

	return padPreviewLines(lines, width)
}
