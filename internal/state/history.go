package state

import (
	"sort"
	"strings"
)

// ItemKind classifies a history item.
type ItemKind string

const (
	KindNote  ItemKind = "note"
	KindEmail ItemKind = "email"
	KindCall  ItemKind = "call"
	KindOther ItemKind = "other"
)

// Author is the agent a history item is attributed to.
type Author struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// HistoryItem is one entry of the activity feed. Confirmed items carry a
// remote id and a sortable timestamp; optimistic items carry a temp- id,
// Synced=false and the sending placeholder until the remote write resolves.
type HistoryItem struct {
	ID            string   `json:"id"`
	Kind          ItemKind `json:"type"`
	Title         string   `json:"title"`
	Timestamp     string   `json:"timestamp"`
	Description   string   `json:"description"`
	Author        Author   `json:"user"`
	EntityID      string   `json:"clientId,omitempty"`
	EntityName    string   `json:"clientName,omitempty"`
	EntityWebsite string   `json:"clientWebsite,omitempty"`
	Synced        bool     `json:"isSynced"`
}

const (
	// TempIDPrefix marks a locally fabricated, not yet confirmed item.
	TempIDPrefix = "temp-"
	// SendingPlaceholder replaces the timestamp of an optimistic item. It is
	// not sortable; the confirmation assigns the final timestamp.
	SendingPlaceholder = "Sending..."
	// UnassignedLabel names history items whose entity cannot be resolved.
	UnassignedLabel = "Unassigned"
)

// Pending reports whether the item is an optimistic insert awaiting its
// remote confirmation.
func (h HistoryItem) Pending() bool {
	return strings.HasPrefix(h.ID, TempIDPrefix)
}

// KindOf maps a free-form interaction title to an item kind. The tab copy
// is Spanish-first, so both vocabularies are recognized.
func KindOf(title string) ItemKind {
	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "mail") || strings.Contains(t, "correo"):
		return KindEmail
	case strings.Contains(t, "call") || strings.Contains(t, "llamada"):
		return KindCall
	case strings.Contains(t, "nota") || strings.Contains(t, "note"):
		return KindNote
	}
	return KindOther
}

// Buckets holds the three history feeds. global carries the lead-context
// items, perClient the client-context items, displayed the derived feed the
// UI renders. displayed is only ever recomputed, never edited in place.
type Buckets struct {
	displayed []HistoryItem
	global    []HistoryItem
	perClient []HistoryItem
}

func (b *Buckets) Displayed() []HistoryItem { return copyItems(b.displayed) }
func (b *Buckets) Global() []HistoryItem    { return copyItems(b.global) }
func (b *Buckets) PerClient() []HistoryItem { return copyItems(b.perClient) }

func (b *Buckets) SetDisplayed(items []HistoryItem) { b.displayed = items }
func (b *Buckets) SetGlobal(items []HistoryItem)    { b.global = items }
func (b *Buckets) SetPerClient(items []HistoryItem) { b.perClient = items }

// Prepend inserts an optimistic item at the head of the displayed feed and
// of the backing bucket for the given context, so it is visible before any
// network round-trip completes.
func (b *Buckets) Prepend(ctx ViewContext, item HistoryItem) {
	b.displayed = append([]HistoryItem{item}, b.displayed...)
	if ctx == ContextClients {
		b.perClient = append([]HistoryItem{item}, b.perClient...)
	} else {
		b.global = append([]HistoryItem{item}, b.global...)
	}
}

// ReplaceByID substitutes the item with the given id in every bucket that
// contains it, keeping its position. Buckets without the id are untouched,
// which makes the replacement idempotent under interleaved mutations.
func (b *Buckets) ReplaceByID(id string, item HistoryItem) {
	for _, bucket := range [][]HistoryItem{b.displayed, b.global, b.perClient} {
		for i := range bucket {
			if bucket[i].ID == id {
				bucket[i] = item
			}
		}
	}
}

// RemoveByID deletes the item with the given id from every bucket. Used to
// roll an optimistic insert back after a failed remote write.
func (b *Buckets) RemoveByID(id string) {
	b.displayed = dropItem(b.displayed, id)
	b.global = dropItem(b.global, id)
	b.perClient = dropItem(b.perClient, id)
}

// DeriveDisplayed computes the feed for the given context and selection.
// It is a pure function of its inputs and the backing buckets:
//
//   - clients: the per-client bucket, filtered to the selected entity when
//     one is set, re-stamped with current entity names either way, and
//     sorted most-recent-first only when nothing is selected.
//   - leads: the global bucket, filtered to the selected entity when one is
//     set; insertion order is preserved in both cases.
func (b *Buckets) DeriveDisplayed(ctx ViewContext, selectedID string, lookup Lookup) []HistoryItem {
	if ctx == ContextClients {
		items := filterItems(b.perClient, selectedID)
		for i := range items {
			items[i] = restamp(items[i], lookup)
		}
		if selectedID == "" {
			sort.SliceStable(items, func(i, j int) bool {
				return items[i].Timestamp > items[j].Timestamp
			})
		}
		return items
	}
	return filterItems(b.global, selectedID)
}

func restamp(item HistoryItem, lookup Lookup) HistoryItem {
	if e, ok := lookup[item.EntityID]; ok {
		item.EntityName = e.Name
		item.EntityWebsite = e.Website
	} else if item.EntityName == "" {
		item.EntityName = UnassignedLabel
	}
	return item
}

func filterItems(items []HistoryItem, entityID string) []HistoryItem {
	if entityID == "" {
		return copyItems(items)
	}
	out := make([]HistoryItem, 0, len(items))
	for _, h := range items {
		if h.EntityID == entityID {
			out = append(out, h)
		}
	}
	return out
}

func dropItem(items []HistoryItem, id string) []HistoryItem {
	out := items[:0]
	for _, h := range items {
		if h.ID != id {
			out = append(out, h)
		}
	}
	return out
}

func copyItems(items []HistoryItem) []HistoryItem {
	out := make([]HistoryItem, len(items))
	copy(out, items)
	return out
}
