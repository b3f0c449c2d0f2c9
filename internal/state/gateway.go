package state

import "time"

// Ticket is a read-only support ticket surfaced alongside the feeds.
type Ticket struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Status     string    `json:"status,omitempty"`
	URL        string    `json:"url,omitempty"`
	LastEdited time.Time `json:"last_edited"`
}

// NotePing is the best-effort telemetry payload sent when a note is saved.
// Its outcome never affects the save protocol.
type NotePing struct {
	Client    string
	Agent     string
	Detail    string
	// Contact carries the interaction type the receiving automation expects.
	Contact   string
	Timestamp string
}

// Gateway is the remote record store boundary. All calls block until the
// remote operation settles; the engine only ever invokes them from inside
// commands, off the update loop.
type Gateway interface {
	FetchLeads() ([]Entity, error)
	FetchClients() ([]Entity, error)
	// FetchLeadHistory filters by entity and date range; empty arguments
	// mean unfiltered.
	FetchLeadHistory(entityID, dateFrom, dateTo string) ([]HistoryItem, error)
	FetchClientHistory() ([]HistoryItem, error)
	FetchSupportTickets() ([]Ticket, error)
	// PromoteEntity persists a locally fabricated entity and returns its
	// remote-assigned id.
	PromoteEntity(e Entity) (string, error)
	// Append operations return the confirmed item, or nil when the remote
	// store accepted nothing.
	AppendLeadHistory(entityID, text, author, kind string) (*HistoryItem, error)
	AppendClientHistory(entityID, text, author, kind string) (*HistoryItem, error)
	UpdateLeadClass(id, class string) error
	NotifyNote(ping NotePing) error
}

// DraftStore persists locally created leads that have not been promoted yet.
type DraftStore interface {
	List() []Entity
	Put(e Entity) error
	Remove(id string) error
}
