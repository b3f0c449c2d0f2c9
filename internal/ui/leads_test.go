package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurelialabs/faro/internal/state"
)

// pump runs a command chain to quiescence, feeding every event back
// through the app.
func pump(t *testing.T, app App, cmd tea.Cmd) App {
	t.Helper()
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			return app
		}
		if batch, ok := msg.(tea.BatchMsg); ok {
			for _, c := range batch {
				app = pump(t, app, c)
			}
			return app
		}
		var model tea.Model
		model, cmd = app.Update(msg)
		app = model.(App)
	}
	return app
}

func typeText(app App, text string) App {
	for _, r := range text {
		model, _ := app.Update(keyRunes(r))
		app = model.(App)
	}
	return app
}

func TestLeadsComposeSavesNote(t *testing.T) {
	gw := &gatewayStub{
		leads: []state.Entity{{ID: "l-1", Name: "Acme", Synced: true}},
		appendLead: func(entityID, text, author, kind string) (*state.HistoryItem, error) {
			return &state.HistoryItem{
				ID:          "h-new",
				Kind:        state.KindNote,
				Title:       "Note",
				Description: text,
				EntityID:    entityID,
				Author:      state.Author{Name: author},
			}, nil
		},
	}
	app := loadApp(t, newTestApp(t, gw))
	app.tabNav = false

	model, cmd := app.Update(tea.KeyMsg{Type: tea.KeySpace})
	app = pump(t, model.(App), cmd)

	model, _ = app.Update(keyRunes('w'))
	app = model.(App)
	app = typeText(app, "called back")

	model, cmd = app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	app = model.(App)
	assert.Equal(t, leadsModeBrowse, app.leads.mode)
	app = pump(t, app, cmd)

	feed := app.engine.Displayed()
	require.Len(t, feed, 1)
	assert.Equal(t, "h-new", feed[0].ID)
	assert.Equal(t, "called back", feed[0].Description)
	assert.True(t, feed[0].Synced)
}

func TestLeadsComposeRollsBackOnFailure(t *testing.T) {
	gw := &gatewayStub{
		leads: []state.Entity{{ID: "l-1", Name: "Acme", Synced: true}},
		appendLead: func(entityID, text, author, kind string) (*state.HistoryItem, error) {
			return nil, errors.New("remote down")
		},
	}
	app := loadApp(t, newTestApp(t, gw))
	app.tabNav = false

	model, cmd := app.Update(tea.KeyMsg{Type: tea.KeySpace})
	app = pump(t, model.(App), cmd)

	model, _ = app.Update(keyRunes('w'))
	app = model.(App)
	app = typeText(app, "lost note")

	model, cmd = app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	app = pump(t, model.(App), cmd)

	assert.Empty(t, app.engine.Displayed())
	require.NotNil(t, app.toast)
	assert.Equal(t, "error", app.toast.level)
}

func TestLeadsComposeRequiresSelection(t *testing.T) {
	gw := &gatewayStub{
		leads: []state.Entity{{ID: "l-1", Name: "Acme", Synced: true}},
	}
	app := loadApp(t, newTestApp(t, gw))
	app.tabNav = false

	model, _ := app.Update(keyRunes('w'))
	app = model.(App)
	assert.Equal(t, leadsModeBrowse, app.leads.mode)
}

func TestLeadsAddFormCreatesAndPromotes(t *testing.T) {
	gw := &gatewayStub{}
	app := loadApp(t, newTestApp(t, gw))
	app.tabNav = false

	model, _ := app.Update(keyRunes('n'))
	app = model.(App)
	assert.Equal(t, leadsModeAdd, app.leads.mode)

	app = typeText(app, "Initech")
	for i := 0; i < leadFieldCount-1; i++ {
		model, _ = app.Update(tea.KeyMsg{Type: tea.KeyTab})
		app = model.(App)
	}
	model, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	app = model.(App)
	assert.Equal(t, leadsModeBrowse, app.leads.mode)

	// The draft is visible before the promotion settles.
	require.Len(t, app.leads.items, 1)
	assert.Equal(t, "Initech", app.leads.items[0].Name)
	assert.False(t, app.leads.items[0].Synced)
	assert.True(t, strings.HasPrefix(app.leads.items[0].ID, state.DraftIDPrefix))

	app = pump(t, app, cmd)
	require.Len(t, app.leads.items, 1)
	assert.True(t, app.leads.items[0].Synced)
	assert.True(t, strings.HasPrefix(app.leads.items[0].ID, "remote-"))
}

func TestLeadsAddFormRequiresName(t *testing.T) {
	app := loadApp(t, newTestApp(t, &gatewayStub{}))
	app.tabNav = false

	model, _ := app.Update(keyRunes('n'))
	app = model.(App)
	for i := 0; i < leadFieldCount; i++ {
		model, _ = app.Update(tea.KeyMsg{Type: tea.KeyEnter})
		app = model.(App)
	}
	assert.Equal(t, leadsModeAdd, app.leads.mode)
	assert.Empty(t, app.leads.items)
}

func TestClassifyCyclesThroughClasses(t *testing.T) {
	gw := &gatewayStub{
		leads: []state.Entity{{ID: "l-1", Name: "Acme", Synced: true}},
	}
	app := loadApp(t, newTestApp(t, gw))
	app.tabNav = false

	for _, want := range []string{"A", "B", "C", ""} {
		model, cmd := app.Update(keyRunes('t'))
		app = pump(t, model.(App), cmd)
		assert.Equal(t, want, app.leads.items[0].Class)
	}
}

func TestNextLeadClass(t *testing.T) {
	assert.Equal(t, "A", nextLeadClass(""))
	assert.Equal(t, "B", nextLeadClass("A"))
	assert.Equal(t, "C", nextLeadClass("B"))
	assert.Equal(t, "", nextLeadClass("C"))
	assert.Equal(t, "A", nextLeadClass("unknown"))
}

func TestFeedTimestampFormats(t *testing.T) {
	assert.Equal(t, state.SendingPlaceholder, feedTimestamp(state.SendingPlaceholder))
	assert.Equal(t, "", feedTimestamp(""))
	assert.NotEmpty(t, feedTimestamp("2026-03-01T10:00:00Z"))
	assert.Equal(t, "garbage", feedTimestamp("garbage"))
}
