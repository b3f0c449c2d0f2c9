package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurelialabs/faro/internal/config"
	"github.com/aurelialabs/faro/internal/state"
)

// gatewayStub is an in-memory remote for UI tests. Zero value serves
// empty collections; function fields override individual calls.
type gatewayStub struct {
	leads       []state.Entity
	clients     []state.Entity
	global      []state.HistoryItem
	perClient   []state.HistoryItem
	tickets     []state.Ticket
	leadHistory func(entityID, dateFrom, dateTo string) ([]state.HistoryItem, error)
	promote     func(e state.Entity) (string, error)
	appendLead  func(entityID, text, author, kind string) (*state.HistoryItem, error)
}

func (g *gatewayStub) FetchLeads() ([]state.Entity, error)   { return g.leads, nil }
func (g *gatewayStub) FetchClients() ([]state.Entity, error) { return g.clients, nil }

func (g *gatewayStub) FetchLeadHistory(entityID, dateFrom, dateTo string) ([]state.HistoryItem, error) {
	if g.leadHistory != nil {
		return g.leadHistory(entityID, dateFrom, dateTo)
	}
	return g.global, nil
}

func (g *gatewayStub) FetchClientHistory() ([]state.HistoryItem, error) { return g.perClient, nil }
func (g *gatewayStub) FetchSupportTickets() ([]state.Ticket, error)     { return g.tickets, nil }

func (g *gatewayStub) PromoteEntity(e state.Entity) (string, error) {
	if g.promote != nil {
		return g.promote(e)
	}
	return "remote-" + e.ID, nil
}

func (g *gatewayStub) AppendLeadHistory(entityID, text, author, kind string) (*state.HistoryItem, error) {
	if g.appendLead != nil {
		return g.appendLead(entityID, text, author, kind)
	}
	return &state.HistoryItem{ID: "h-new", Kind: state.KindNote, Description: text, EntityID: entityID}, nil
}

func (g *gatewayStub) AppendClientHistory(entityID, text, author, kind string) (*state.HistoryItem, error) {
	return g.AppendLeadHistory(entityID, text, author, kind)
}

func (g *gatewayStub) UpdateLeadClass(id, class string) error { return nil }
func (g *gatewayStub) NotifyNote(p state.NotePing) error      { return nil }

func newTestApp(t *testing.T, gw state.Gateway) App {
	t.Helper()
	notices := NewNoticeQueue()
	engine := state.New(gw, nil, notices, nil)
	app := NewApp(engine, &config.Config{Username: "agent"}, notices)
	app.width = 120
	app.height = 40
	app.toastTTL = 0 // keep command chains free of timer ticks
	return app
}

// loadApp runs Init and feeds the load result back through Update.
func loadApp(t *testing.T, app App) App {
	t.Helper()
	cmd := app.Init()
	require.NotNil(t, cmd)
	msg := cmd()
	require.NotNil(t, msg)
	model, _ := app.Update(msg)
	return model.(App)
}

func keyRunes(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestAppStartsOnLeadsTab(t *testing.T) {
	app := newTestApp(t, &gatewayStub{})
	assert.Equal(t, tabLeads, app.tab)
	assert.True(t, app.tabNav)
}

func TestAppLoadPopulatesTabs(t *testing.T) {
	gw := &gatewayStub{
		leads:   []state.Entity{{ID: "l-1", Name: "Acme", Synced: true}},
		clients: []state.Entity{{ID: "c-1", Name: "Globex", Synced: true}},
		tickets: []state.Ticket{{ID: "t-1", Title: "Outage"}},
	}
	app := loadApp(t, newTestApp(t, gw))

	assert.Equal(t, state.PhaseReady, app.engine.Phase())
	require.Len(t, app.leads.items, 1)
	assert.Equal(t, "Acme", app.leads.items[0].Name)
	require.Len(t, app.clients.items, 1)
	require.Len(t, app.tickets.items, 1)
}

func TestTabSwitchChangesViewContext(t *testing.T) {
	gw := &gatewayStub{
		leads:   []state.Entity{{ID: "l-1", Name: "Acme", Synced: true}},
		clients: []state.Entity{{ID: "c-1", Name: "Globex", Synced: true}},
	}
	app := loadApp(t, newTestApp(t, gw))

	model, _ := app.Update(keyRunes('2'))
	app = model.(App)
	assert.Equal(t, tabClients, app.tab)
	assert.Equal(t, state.ContextClients, app.engine.Context())

	model, _ = app.Update(keyRunes('3'))
	app = model.(App)
	assert.Equal(t, tabTickets, app.tab)

	model, _ = app.Update(keyRunes('1'))
	app = model.(App)
	assert.Equal(t, tabLeads, app.tab)
	assert.Equal(t, state.ContextLeads, app.engine.Context())
}

func TestTabSwitchClearsSelection(t *testing.T) {
	gw := &gatewayStub{
		leads: []state.Entity{{ID: "l-1", Name: "Acme", Synced: true}},
	}
	app := loadApp(t, newTestApp(t, gw))
	app.tabNav = false

	model, cmd := app.Update(tea.KeyMsg{Type: tea.KeySpace})
	app = model.(App)
	if cmd != nil {
		if msg := cmd(); msg != nil {
			model, _ = app.Update(msg)
			app = model.(App)
		}
	}
	_, ok := app.engine.Selected()
	require.True(t, ok)

	model, _ = app.Update(keyRunes('2'))
	app = model.(App)
	model, _ = app.Update(keyRunes('1'))
	app = model.(App)
	_, ok = app.engine.Selected()
	assert.False(t, ok)
}

func TestHelpOverlayToggles(t *testing.T) {
	app := loadApp(t, newTestApp(t, &gatewayStub{}))

	model, _ := app.Update(keyRunes('?'))
	app = model.(App)
	assert.True(t, app.helpOpen)

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	app = model.(App)
	assert.False(t, app.helpOpen)
}

func TestQuitConfirmGuardsUnsentNote(t *testing.T) {
	gw := &gatewayStub{
		leads: []state.Entity{{ID: "l-1", Name: "Acme", Synced: true}},
	}
	app := loadApp(t, newTestApp(t, gw))
	app.tabNav = false

	// Select a lead, open the composer and type something.
	model, cmd := app.Update(tea.KeyMsg{Type: tea.KeySpace})
	app = model.(App)
	if cmd != nil {
		if msg := cmd(); msg != nil {
			model, _ = app.Update(msg)
			app = model.(App)
		}
	}
	model, _ = app.Update(keyRunes('w'))
	app = model.(App)
	assert.Equal(t, leadsModeCompose, app.leads.mode)

	model, _ = app.Update(keyRunes('x'))
	app = model.(App)

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	app = model.(App)
	assert.True(t, app.quitConfirm)

	model, _ = app.Update(keyRunes('n'))
	app = model.(App)
	assert.False(t, app.quitConfirm)
}

func TestComposerCapturesTabKeys(t *testing.T) {
	gw := &gatewayStub{
		leads: []state.Entity{{ID: "l-1", Name: "Acme", Synced: true}},
	}
	app := loadApp(t, newTestApp(t, gw))
	app.tabNav = false

	model, cmd := app.Update(tea.KeyMsg{Type: tea.KeySpace})
	app = model.(App)
	if cmd != nil {
		if msg := cmd(); msg != nil {
			model, _ = app.Update(msg)
			app = model.(App)
		}
	}
	model, _ = app.Update(keyRunes('w'))
	app = model.(App)

	// Digits go to the note, not the tab bar.
	model, _ = app.Update(keyRunes('2'))
	app = model.(App)
	assert.Equal(t, tabLeads, app.tab)
	assert.Equal(t, "2", app.leads.note.Value())
}

func TestNoticesBecomeToasts(t *testing.T) {
	app := loadApp(t, newTestApp(t, &gatewayStub{}))

	app.notices.Notify(state.Notice{Level: state.NoticeSuccess, Text: "Note saved."})
	app.drainNotices()
	require.NotNil(t, app.toast)
	assert.Equal(t, "success", app.toast.level)
	assert.Equal(t, "Note saved.", app.toast.text)

	// Errors take precedence over later info notices.
	app.notices.Notify(state.Notice{Level: state.NoticeError, Text: "boom"})
	app.notices.Notify(state.Notice{Level: state.NoticeInfo, Text: "later"})
	app.drainNotices()
	assert.Equal(t, "error", app.toast.level)
	assert.Equal(t, "boom", app.toast.text)

	model, _ := app.Update(clearToastMsg{})
	app = model.(App)
	assert.Nil(t, app.toast)
}

func TestViewRendersByPhase(t *testing.T) {
	app := newTestApp(t, &gatewayStub{
		leads: []state.Entity{{ID: "l-1", Name: "Acme", Synced: true}},
	})

	// Before the load settles the view shows the loading hint.
	app.engine.Load()
	assert.Contains(t, app.View(), "Loading workspace")

	app = loadApp(t, app)
	view := app.View()
	assert.Contains(t, view, "Leads")
	assert.Contains(t, view, "Acme")
}
