package state

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Phase tracks where the engine is in its lifecycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseError:
		return "error"
	default:
		return "idle"
	}
}

// DraftIDPrefix marks locally created leads that the remote store has not
// assigned an id to yet.
const DraftIDPrefix = "draft-"

// Engine owns all synchronized state: the two entity collections, the
// history buckets and the support tickets. It is not safe for concurrent
// use; drive it from a single loop and run the returned Commands off that
// loop, feeding their events back through Apply.
type Engine struct {
	gw     Gateway
	drafts DraftStore
	notify Notifier
	logger *slog.Logger

	phase   Phase
	loadErr error
	ctx     ViewContext

	leads   Collection
	clients Collection
	buckets Buckets
	tickets []Ticket

	// bumped whenever the selection or context changes, so in-flight
	// history refreshes for a previous selection can be discarded
	historyGen int
}

// New wires an engine to its remote gateway and draft store. notify and
// logger may be nil.
func New(gw Gateway, drafts DraftStore, notify Notifier, logger *slog.Logger) *Engine {
	if notify == nil {
		notify = NotifierFunc(func(Notice) {})
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{gw: gw, drafts: drafts, notify: notify, logger: logger}
}

func (e *Engine) Phase() Phase             { return e.phase }
func (e *Engine) Err() error               { return e.loadErr }
func (e *Engine) Context() ViewContext     { return e.ctx }
func (e *Engine) Leads() []Entity          { return e.leads.Items() }
func (e *Engine) Clients() []Entity        { return e.clients.Items() }
func (e *Engine) Tickets() []Ticket        { return append([]Ticket(nil), e.tickets...) }
func (e *Engine) Displayed() []HistoryItem { return e.buckets.Displayed() }

// Selected returns the selected entity of the current view context, if any.
func (e *Engine) Selected() (Entity, bool) {
	return e.active().Selected()
}

func (e *Engine) active() *Collection {
	if e.ctx == ContextClients {
		return &e.clients
	}
	return &e.leads
}

// Load kicks off the initial fan-out fetch. All five collections are
// fetched concurrently and the result is all-or-nothing.
func (e *Engine) Load() Command {
	e.phase = PhaseLoading
	e.loadErr = nil
	gw := e.gw
	return func() Event {
		var ev collectionsLoaded
		var g errgroup.Group
		g.Go(func() (err error) { ev.leads, err = gw.FetchLeads(); return })
		g.Go(func() (err error) { ev.clients, err = gw.FetchClients(); return })
		g.Go(func() (err error) { ev.global, err = gw.FetchLeadHistory("", "", ""); return })
		g.Go(func() (err error) { ev.perClient, err = gw.FetchClientHistory(); return })
		g.Go(func() (err error) { ev.tickets, err = gw.FetchSupportTickets(); return })
		if err := g.Wait(); err != nil {
			return loadFailed{err: err}
		}
		return ev
	}
}

// SetViewContext switches between the leads and clients views. Switching
// always clears both selections before the displayed feed is rederived.
func (e *Engine) SetViewContext(ctx ViewContext) {
	if ctx == e.ctx {
		return
	}
	e.ctx = ctx
	e.leads.ClearSelection()
	e.clients.ClearSelection()
	e.historyGen++
	e.refreshDisplayed()
}

// SelectLead toggles selection of a lead. When a synced lead becomes
// selected in the leads view, a remote refresh of its history is issued;
// the locally derived feed is shown in the meantime.
func (e *Engine) SelectLead(id string) Command {
	if !e.leads.SelectOne(id) {
		return nil
	}
	e.historyGen++
	e.refreshDisplayed()

	sel, ok := e.leads.Selected()
	if !ok || !sel.Synced || e.ctx != ContextLeads {
		return nil
	}
	gen := e.historyGen
	gw := e.gw
	return func() Event {
		items, err := gw.FetchLeadHistory(sel.ID, "", "")
		if err != nil {
			return leadHistoryRefreshed{gen: gen}
		}
		return leadHistoryRefreshed{gen: gen, items: items}
	}
}

// SelectClient toggles selection of a client. Client feeds are derived
// purely from the already loaded per-client bucket.
func (e *Engine) SelectClient(id string) {
	if !e.clients.SelectOne(id) {
		return
	}
	e.historyGen++
	e.refreshDisplayed()
}

// ChangeClassification updates a lead's class optimistically. The remote
// write is best effort; a failure is logged but the local value stands.
func (e *Engine) ChangeClassification(id, class string) Command {
	if !e.leads.SetClass(id, class) {
		return nil
	}
	gw := e.gw
	return func() Event {
		if err := gw.UpdateLeadClass(id, class); err != nil {
			return classificationSaveFailed{id: id, err: err}
		}
		return classificationSaved{id: id, class: class}
	}
}

// AddLead appends a new lead immediately and tries to persist it remotely.
// If the remote write fails the lead stays as a local draft and is promoted
// later, on its first saved note.
func (e *Engine) AddLead(lead Entity) Command {
	if lead.ID == "" {
		lead.ID = DraftIDPrefix + uuid.NewString()
	}
	lead.Synced = false
	e.leads.Append(lead)
	if e.drafts != nil {
		if err := e.drafts.Put(lead); err != nil {
			e.logger.Warn("persisting draft lead", "id", lead.ID, "error", err)
		}
	}
	gw := e.gw
	return func() Event {
		newID, err := gw.PromoteEntity(lead)
		if err != nil {
			return leadAddFailed{err: err}
		}
		return leadAdded{oldID: lead.ID, newID: newID}
	}
}

// SaveNote records a note against the selected entity. The note shows up
// immediately with a temporary id and a placeholder timestamp; it is
// confirmed or rolled back when the remote write settles. An unsynced
// entity is promoted first, in the same command.
func (e *Engine) SaveNote(text string, author Author) []Command {
	sel, ok := e.active().Selected()
	if !ok {
		e.notify.Notify(Notice{Level: NoticeInfo, Text: "Select a lead or client first."})
		return nil
	}
	if text == "" {
		return nil
	}

	temp := HistoryItem{
		ID:            TempIDPrefix + uuid.NewString(),
		Kind:          KindNote,
		Title:         "Note",
		Timestamp:     SendingPlaceholder,
		Description:   text,
		Author:        author,
		EntityID:      sel.ID,
		EntityName:    sel.Name,
		EntityWebsite: sel.Website,
	}
	e.buckets.Prepend(e.ctx, temp)
	e.notify.Notify(Notice{Level: NoticeInfo, Text: "Saving note..."})

	ctx := e.ctx
	gw := e.gw
	logger := e.logger

	ping := func() Event {
		err := gw.NotifyNote(NotePing{
			Client:    sel.Name,
			Agent:     author.Name,
			Detail:    text,
			Contact:   temp.Title,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
		if err != nil {
			logger.Warn("note webhook", "error", err)
		}
		return nil
	}

	save := func() Event {
		entityID := sel.ID
		var promotedFrom, promotedTo string
		if !sel.Synced {
			newID, err := gw.PromoteEntity(sel)
			if err != nil {
				return noteSaveFailed{tempID: temp.ID, err: err}
			}
			promotedFrom, promotedTo = sel.ID, newID
			entityID = newID
		}

		var confirmed *HistoryItem
		var err error
		if ctx == ContextClients {
			confirmed, err = gw.AppendClientHistory(entityID, text, author.Name, string(KindNote))
		} else {
			confirmed, err = gw.AppendLeadHistory(entityID, text, author.Name, string(KindNote))
		}
		if err != nil {
			return noteSaveFailed{tempID: temp.ID, err: err}
		}
		if confirmed == nil {
			return noteSaveFailed{tempID: temp.ID, err: errors.New("remote store returned no item")}
		}
		return notePersisted{
			tempID:       temp.ID,
			confirmed:    *confirmed,
			promotedFrom: promotedFrom,
			promotedTo:   promotedTo,
		}
	}

	return []Command{ping, save}
}

// Apply folds a settled event into the state and returns any follow-up
// commands.
func (e *Engine) Apply(ev Event) []Command {
	switch ev := ev.(type) {
	case collectionsLoaded:
		e.applyLoaded(ev)
	case loadFailed:
		e.applyLoadFailed(ev)
	case leadHistoryRefreshed:
		e.applyHistoryRefreshed(ev)
	case notePersisted:
		e.applyNotePersisted(ev)
	case noteSaveFailed:
		e.buckets.RemoveByID(ev.tempID)
		e.refreshDisplayed()
		e.logger.Warn("saving note", "error", ev.err)
		e.notify.Notify(Notice{Level: NoticeError, Text: "Could not save the note: " + ev.err.Error()})
	case classificationSaved:
		e.logger.Debug("classification saved", "id", ev.id, "class", ev.class)
	case classificationSaveFailed:
		e.logger.Warn("saving classification", "id", ev.id, "error", ev.err)
	case leadAdded:
		e.leads.MarkSynced(ev.oldID, ev.newID)
		e.removeDraft(ev.oldID)
		e.notify.Notify(Notice{Level: NoticeSuccess, Text: "Lead saved."})
	case leadAddFailed:
		e.logger.Warn("creating lead", "error", ev.err)
		e.notify.Notify(Notice{Level: NoticeInfo, Text: "Lead kept locally; it will sync with its first note."})
	}
	return nil
}

func (e *Engine) applyLoaded(ev collectionsLoaded) {
	e.leads.Replace(ev.leads)
	e.clients.Replace(ev.clients)

	if e.drafts != nil {
		for _, d := range e.drafts.List() {
			if _, ok := e.leads.Find(d.ID); !ok {
				e.leads.Append(d)
			}
		}
	}

	lookup := e.combinedLookup()
	global := make([]HistoryItem, len(ev.global))
	for i, h := range ev.global {
		global[i] = restamp(h, lookup)
	}
	e.buckets.SetGlobal(global)
	e.buckets.SetPerClient(ev.perClient)
	e.tickets = ev.tickets

	e.phase = PhaseReady
	e.refreshDisplayed()
}

func (e *Engine) applyLoadFailed(ev loadFailed) {
	e.leads.Replace(nil)
	e.clients.Replace(nil)
	e.buckets.SetGlobal(nil)
	e.buckets.SetPerClient(nil)
	e.buckets.SetDisplayed(nil)
	e.tickets = nil

	e.phase = PhaseError
	e.loadErr = ev.err
	e.logger.Error("initial load", "error", ev.err)
	e.notify.Notify(Notice{Level: NoticeError, Text: "Could not load CRM data: " + ev.err.Error()})
}

func (e *Engine) applyHistoryRefreshed(ev leadHistoryRefreshed) {
	if ev.gen != e.historyGen {
		e.logger.Debug("stale history refresh dropped", "gen", ev.gen)
		return
	}
	if len(ev.items) == 0 {
		return
	}
	lookup := e.combinedLookup()
	items := make([]HistoryItem, len(ev.items))
	for i, h := range ev.items {
		items[i] = restamp(h, lookup)
	}
	e.buckets.SetDisplayed(items)
}

func (e *Engine) applyNotePersisted(ev notePersisted) {
	if ev.promotedFrom != "" {
		e.leads.MarkSynced(ev.promotedFrom, ev.promotedTo)
		e.clients.MarkSynced(ev.promotedFrom, ev.promotedTo)
		e.removeDraft(ev.promotedFrom)
	}

	item := restamp(ev.confirmed, e.combinedLookup())
	item.Timestamp = time.Now().UTC().Format(time.RFC3339)
	item.Synced = true
	e.buckets.ReplaceByID(ev.tempID, item)
	e.refreshDisplayed()
	e.notify.Notify(Notice{Level: NoticeSuccess, Text: "Note saved."})
}

func (e *Engine) refreshDisplayed() {
	sel, _ := e.active().Selected()
	e.buckets.SetDisplayed(e.buckets.DeriveDisplayed(e.ctx, sel.ID, e.combinedLookup()))
}

func (e *Engine) combinedLookup() Lookup {
	lookup := e.clients.Lookup()
	for id, ent := range e.leads.Lookup() {
		if _, ok := lookup[id]; !ok {
			lookup[id] = ent
		}
	}
	return lookup
}

func (e *Engine) removeDraft(id string) {
	if e.drafts == nil {
		return
	}
	if err := e.drafts.Remove(id); err != nil {
		e.logger.Warn("removing draft lead", "id", id, "error", err)
	}
}
