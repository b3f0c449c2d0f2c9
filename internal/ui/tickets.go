package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aurelialabs/faro/internal/state"
	"github.com/aurelialabs/faro/internal/ui/components"
)

// TicketsModel is the read-only support tickets tab.
type TicketsModel struct {
	engine *state.Engine
	items  []state.Ticket
	list   *components.List
	width  int
	height int
}

func NewTicketsModel(engine *state.Engine) TicketsModel {
	return TicketsModel{
		engine: engine,
		list:   components.NewList(10),
	}
}

func (m *TicketsModel) refresh() {
	m.items = m.engine.Tickets()
	labels := make([]string, len(m.items))
	for i, ticket := range m.items {
		labels[i] = ticket.Title
	}
	m.list.SetItems(labels)
}

func (m TicketsModel) Update(msg tea.Msg) (TicketsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case isDown(msg):
			m.list.Down()
		case isUp(msg):
			m.list.Up()
		}
	}
	return m, nil
}

func (m TicketsModel) View() string {
	if len(m.items) == 0 {
		content := MutedStyle.Render("No support tickets.")
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

	statusWidth := 12
	editedWidth := 11
	titleWidth := availableCols - (statusWidth + editedWidth)
	if titleWidth < 14 {
		titleWidth = 14
	}

	cols := []components.TableColumn{
		{Header: "Ticket", Width: titleWidth, Align: lipgloss.Left},
		{Header: "Status", Width: statusWidth, Align: lipgloss.Left},
		{Header: "Edited", Width: editedWidth, Align: lipgloss.Left},
	}

	tableRows := make([][]string, 0, len(visible))
	activeRowRel := -1
	for i := range visible {
		absIdx := m.list.RelToAbs(i)
		if absIdx < 0 || absIdx >= len(m.items) {
			continue
		}
		ticket := m.items[absIdx]
		if m.list.IsSelected(absIdx) {
			activeRowRel = len(tableRows)
		}
		edited := ""
		if !ticket.LastEdited.IsZero() {
			edited = ticket.LastEdited.Local().Format("01-02 15:04")
		}
		tableRows = append(tableRows, []string{
			components.ClampTextWidthEllipsis(ticket.Title, titleWidth),
			components.ClampTextWidthEllipsis(ticket.Status, statusWidth),
			edited,
		})
	}

	countLine := MutedStyle.Render(fmt.Sprintf("%d total", len(m.items)))

	table := components.TableGridWithActiveRow(cols, tableRows, tableWidth, activeRowRel)

	preview := ""
	if idx := m.list.Selected(); idx >= 0 && idx < len(m.items) {
		content := m.renderTicketPreview(m.items[idx], previewBoxContentWidth(previewWidth))
		preview = renderPreviewBox(content, previewWidth)
	}

	body := table
	if sideBySide && preview != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, table, strings.Repeat(" ", gap), preview)
	} else if preview != "" {
		body = table + "\n\n" + preview
	}

	content := countLine + "\n\n" + body + "\n"
	return components.Indent(components.TitledBox("Support Tickets", content, m.width), 1)
}

func (m TicketsModel) renderTicketPreview(ticket state.Ticket, width int) string {
	if width <= 0 {
		return ""
	}

	var lines []string
	lines = append(lines, MetaKeyStyle.Render("Ticket"))
	for _, part := range wrapPreviewText(ticket.Title, width) {
		lines = append(lines, SelectedStyle.Render(part))
	}
	lines = append(lines, "")

	if ticket.Status != "" {
		lines = append(lines, renderPreviewRow("Status", ticket.Status, width))
	}
	if !ticket.LastEdited.IsZero() {
		lines = append(lines, renderPreviewRow("Edited", ticket.LastEdited.Local().Format("2006-01-02 15:04"), width))
	}
	if ticket.URL != "" {
		lines = append(lines, renderPreviewRow("URL", ticket.URL, width))
	}

	return padPreviewLines(lines, width)
}
