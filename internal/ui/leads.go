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

type leadsMode int

const (
	leadsModeBrowse leadsMode = iota
	leadsModeCompose
	leadsModeAdd
)

var leadClassCycle = []string{"", "A", "B", "C"}

const (
	leadFieldName = iota
	leadFieldPhone
	leadFieldEmail
	leadFieldWebsite
	leadFieldCount
)

var leadFieldLabels = []string{"Name", "Phone", "Email", "Website"}

// LeadsModel drives the leads tab: the lead table, the note composer and
// the new-lead form.
type LeadsModel struct {
	engine *state.Engine
	author state.Author
	items  []state.Entity
	list   *components.List
	mode   leadsMode
	note   textinput.Model
	fields []textinput.Model
	focus  int
	width  int
	height int
}

// NewLeadsModel builds the leads tab model.
func NewLeadsModel(engine *state.Engine, author state.Author) LeadsModel {
	note := textinput.New()
	note.Placeholder = "Write a note..."
	note.CharLimit = 500
	note.Width = 60

	fields := make([]textinput.Model, leadFieldCount)
	for i := range fields {
		ti := textinput.New()
		ti.Placeholder = leadFieldLabels[i]
		ti.CharLimit = 120
		ti.Width = 40
		fields[i] = ti
	}

	return LeadsModel{
		engine: engine,
		author: author,
		list:   components.NewList(10),
		note:   note,
		fields: fields,
	}
}

func (m *LeadsModel) refresh() {
	m.items = m.engine.Leads()
	labels := make([]string, len(m.items))
	for i, lead := range m.items {
		labels[i] = lead.Name
	}
	m.list.SetItems(labels)
}

func (m LeadsModel) Update(msg tea.Msg) (LeadsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case leadsModeCompose:
			return m.handleComposeKeys(msg)
		case leadsModeAdd:
			return m.handleAddKeys(msg)
		}
		return m.handleBrowseKeys(msg)
	}

	var cmd tea.Cmd
	switch m.mode {
	case leadsModeCompose:
		m.note, cmd = m.note.Update(msg)
	case leadsModeAdd:
		m.fields[m.focus], cmd = m.fields[m.focus].Update(msg)
	}
	return m, cmd
}

func (m LeadsModel) handleBrowseKeys(msg tea.KeyMsg) (LeadsModel, tea.Cmd) {
	switch {
	case isDown(msg):
		m.list.Down()
	case isUp(msg):
		m.list.Up()
	case isEnter(msg), isSpace(msg):
		if idx := m.list.Selected(); idx < len(m.items) {
			cmd := m.engine.SelectLead(m.items[idx].ID)
			return m, runCommand(cmd)
		}
	case isKey(msg, "w"):
		if _, ok := m.engine.Selected(); ok {
			m.mode = leadsModeCompose
			m.note.SetValue("")
			return m, m.note.Focus()
		}
	case isKey(msg, "n"):
		m.mode = leadsModeAdd
		m.focus = leadFieldName
		for i := range m.fields {
			m.fields[i].SetValue("")
			m.fields[i].Blur()
		}
		return m, m.fields[leadFieldName].Focus()
	case isKey(msg, "t"):
		if idx := m.list.Selected(); idx < len(m.items) {
			lead := m.items[idx]
			cmd := m.engine.ChangeClassification(lead.ID, nextLeadClass(lead.Class))
			return m, runCommand(cmd)
		}
	}
	return m, nil
}

func (m LeadsModel) handleComposeKeys(msg tea.KeyMsg) (LeadsModel, tea.Cmd) {
	switch {
	case isEnter(msg):
		text := strings.TrimSpace(m.note.Value())
		m.mode = leadsModeBrowse
		m.note.Blur()
		if text == "" {
			return m, nil
		}
		cmds := m.engine.SaveNote(text, m.author)
		return m, runCommands(cmds)
	case isBack(msg):
		m.mode = leadsModeBrowse
		m.note.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.note, cmd = m.note.Update(msg)
	return m, cmd
}

func (m LeadsModel) handleAddKeys(msg tea.KeyMsg) (LeadsModel, tea.Cmd) {
	switch {
	case isBack(msg):
		m.mode = leadsModeBrowse
		m.fields[m.focus].Blur()
		return m, nil
	case isEnter(msg):
		if m.focus < leadFieldCount-1 {
			return m.focusField(m.focus + 1)
		}
		return m.submitLead()
	case isKey(msg, "tab"):
		return m.focusField((m.focus + 1) % leadFieldCount)
	case isKey(msg, "shift+tab"):
		return m.focusField((m.focus - 1 + leadFieldCount) % leadFieldCount)
	}
	var cmd tea.Cmd
	m.fields[m.focus], cmd = m.fields[m.focus].Update(msg)
	return m, cmd
}

func (m LeadsModel) focusField(idx int) (LeadsModel, tea.Cmd) {
	m.fields[m.focus].Blur()
	m.focus = idx
	return m, m.fields[m.focus].Focus()
}

func (m LeadsModel) submitLead() (LeadsModel, tea.Cmd) {
	name := strings.TrimSpace(m.fields[leadFieldName].Value())
	if name == "" {
		return m.focusField(leadFieldName)
	}
	lead := state.Entity{
		Name:    name,
		Phone:   strings.TrimSpace(m.fields[leadFieldPhone].Value()),
		Email:   strings.TrimSpace(m.fields[leadFieldEmail].Value()),
		Website: strings.TrimSpace(m.fields[leadFieldWebsite].Value()),
		Status:  "New",
	}
	m.mode = leadsModeBrowse
	m.fields[m.focus].Blur()
	cmd := m.engine.AddLead(lead)
	return m, runCommand(cmd)
}

func nextLeadClass(current string) string {
	for i, class := range leadClassCycle {
		if class == current {
			return leadClassCycle[(i+1)%len(leadClassCycle)]
		}
	}
	return leadClassCycle[1]
}

func (m LeadsModel) View() string {
	switch m.mode {
	case leadsModeCompose:
		return m.renderCompose()
	case leadsModeAdd:
		return m.renderAddForm()
	}
	return m.renderList()
}

func (m LeadsModel) renderCompose() string {
	target := ""
	if sel, ok := m.engine.Selected(); ok {
		target = MutedStyle.Render("To: ") + NormalStyle.Render(sel.Name)
	}
	body := target + "\n\n" + m.note.View()
	return components.Indent(components.TitledBox("New Note", body, m.width), 1)
}

func (m LeadsModel) renderAddForm() string {
	var lines []string
	for i, field := range m.fields {
		label := leadFieldLabels[i]
		if i == m.focus {
			lines = append(lines, SelectedStyle.Render(label))
		} else {
			lines = append(lines, MutedStyle.Render(label))
		}
		lines = append(lines, field.View())
		if i < len(m.fields)-1 {
			lines = append(lines, "")
		}
	}
	body := strings.Join(lines, "\n")
	return components.Indent(components.TitledBox("New Lead", body, m.width), 1)
}

func (m LeadsModel) renderList() string {
	if len(m.items) == 0 {
		content := MutedStyle.Render("No leads yet. Press n to add one.")
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

	// 4 columns -> 3 separators.
	availableCols := tableWidth - (3 * sepWidth)
	if availableCols < 30 {
		availableCols = 30
	}

	statusWidth := 10
	classWidth := 5
	syncWidth := 6
	nameWidth := availableCols - (statusWidth + classWidth + syncWidth)
	if nameWidth < 14 {
		nameWidth = 14
	}

	cols := []components.TableColumn{
		{Header: "Lead", Width: nameWidth, Align: lipgloss.Left},
		{Header: "Status", Width: statusWidth, Align: lipgloss.Left},
		{Header: "Class", Width: classWidth, Align: lipgloss.Center},
		{Header: "Sync", Width: syncWidth, Align: lipgloss.Center},
	}

	tableRows := make([][]string, 0, len(visible))
	activeRowRel := -1
	for i := range visible {
		absIdx := m.list.RelToAbs(i)
		if absIdx < 0 || absIdx >= len(m.items) {
			continue
		}
		lead := m.items[absIdx]
		if m.list.IsSelected(absIdx) {
			activeRowRel = len(tableRows)
		}
		name := lead.Name
		if lead.Selected {
			name = "▸ " + name
		}
		tableRows = append(tableRows, []string{
			components.ClampTextWidthEllipsis(name, nameWidth),
			components.ClampTextWidthEllipsis(lead.Status, statusWidth),
			lead.Class,
			syncMark(lead.Synced),
		})
	}

	countLine := MutedStyle.Render(fmt.Sprintf("%d total", len(m.items)))

	table := components.TableGridWithActiveRow(cols, tableRows, tableWidth, activeRowRel)

	preview := ""
	if idx := m.list.Selected(); idx >= 0 && idx < len(m.items) {
		content := m.renderLeadPreview(m.items[idx], previewBoxContentWidth(previewWidth))
		preview = renderPreviewBox(content, previewWidth)
	}

	body := table
	if sideBySide && preview != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, table, strings.Repeat(" ", gap), preview)
	} else if preview != "" {
		body = table + "\n\n" + preview
	}

	content := countLine + "\n\n" + body + "\n"
	return components.Indent(components.TitledBox("Leads", content, m.width), 1)
}

func (m LeadsModel) renderLeadPreview(lead state.Entity, width int) string {
	if width <= 0 {
		return ""
	}

	var lines []string
	lines = append(lines, MetaKeyStyle.Render("Lead"))
	for _, part := range wrapPreviewText(lead.Name, width) {
		lines = append(lines, SelectedStyle.Render(part))
	}
	lines = append(lines, "")

	if lead.Status != "" {
		lines = append(lines, renderPreviewRow("Status", lead.Status, width))
	}
	if lead.Category != "" {
		lines = append(lines, renderPreviewRow("Category", lead.Category, width))
	}
	if lead.Class != "" {
		lines = append(lines, renderPreviewRow("Class", lead.Class, width))
	}
	if lead.Phone != "" {
		lines = append(lines, renderPreviewRow("Phone", lead.Phone, width))
	}
	if lead.Email != "" {
		lines = append(lines, renderPreviewRow("Email", lead.Email, width))
	}
	if lead.Website != "" {
		lines = append(lines, renderPreviewRow("Website", lead.Website, width))
	}
	if !lead.Synced {
		lines = append(lines, MutedStyle.Render("Local draft, not synced yet."))
	}

	feed := m.engine.Displayed()
	if len(feed) > 0 {
		lines = append(lines, "", MetaKeyStyle.Render("Activity"))
		lines = append(lines, renderFeedLines(feed, width, feedPreviewMax)...)
	}

	return padPreviewLines(lines, width)
}

func syncMark(synced bool) string {
	if synced {
		return "✓"
	}
	return "…"
}
