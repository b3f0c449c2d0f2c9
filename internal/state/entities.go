package state

// ViewContext identifies the active top-level view, which decides which
// entity collection and history bucket are in scope.
type ViewContext int

const (
	ContextLeads ViewContext = iota
	ContextClients
)

func (c ViewContext) String() string {
	if c == ContextClients {
		return "clients"
	}
	return "leads"
}

// Entity is a lead or client record. Leads and clients share the shape but
// live in two independent collections; Class is only meaningful for leads.
// An unsynced entity carries a locally fabricated id until it is promoted
// to the remote store.
type Entity struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Website  string `json:"website,omitempty"`
	Category string `json:"category,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	Address  string `json:"address,omitempty"`
	Status   string `json:"status,omitempty"`
	Class    string `json:"clase,omitempty"`
	Selected bool   `json:"isSelected,omitempty"`
	Synced   bool   `json:"isSynced"`
}

// Lookup resolves entity ids to their current records, used to re-stamp
// history items with up-to-date names and websites.
type Lookup map[string]Entity

// Collection holds one entity list with exclusive selection: at most one
// entity is selected at any time.
type Collection struct {
	items    []Entity
	activeID string
}

// Replace swaps the whole collection. The active id is recomputed from the
// incoming Selected flags so a reload cannot leave a dangling selection.
func (c *Collection) Replace(items []Entity) {
	c.items = items
	c.activeID = ""
	for i := range c.items {
		if c.items[i].Selected {
			if c.activeID == "" {
				c.activeID = c.items[i].ID
			} else {
				c.items[i].Selected = false
			}
		}
	}
}

// Append adds an entity to the end of the collection without touching
// selection.
func (c *Collection) Append(e Entity) {
	e.Selected = false
	c.items = append(c.items, e)
}

// Items returns a copy of the collection.
func (c *Collection) Items() []Entity {
	out := make([]Entity, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Collection) Len() int { return len(c.items) }

// ActiveID returns the selected entity's id, or "" when nothing is selected.
func (c *Collection) ActiveID() string { return c.activeID }

// Find returns the entity with the given id.
func (c *Collection) Find(id string) (Entity, bool) {
	for _, e := range c.items {
		if e.ID == id {
			return e, true
		}
	}
	return Entity{}, false
}

// Selected returns the currently selected entity, if any.
func (c *Collection) Selected() (Entity, bool) {
	if c.activeID == "" {
		return Entity{}, false
	}
	return c.Find(c.activeID)
}

// SelectOne toggles the Selected flag of the entity with the given id,
// forcing every other entity to unselected first. Toggling an already
// selected entity deselects it. Unknown ids leave the collection unchanged.
// Returns false when nothing changed.
func (c *Collection) SelectOne(id string) bool {
	target := -1
	for i := range c.items {
		if c.items[i].ID == id {
			target = i
			break
		}
	}
	if target == -1 {
		return false
	}
	for i := range c.items {
		if i != target {
			c.items[i].Selected = false
		}
	}
	next := !c.items[target].Selected
	c.items[target].Selected = next
	if next {
		c.activeID = id
	} else {
		c.activeID = ""
	}
	return true
}

// ClearSelection unselects every entity.
func (c *Collection) ClearSelection() {
	for i := range c.items {
		c.items[i].Selected = false
	}
	c.activeID = ""
}

// SetClass updates the classification of the entity with the given id.
// Selection is untouched. Returns false for unknown ids.
func (c *Collection) SetClass(id, class string) bool {
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Class = class
			return true
		}
	}
	return false
}

// MarkSynced re-ids a locally fabricated entity after it was persisted
// remotely and flags it as synced.
func (c *Collection) MarkSynced(oldID, newID string) {
	for i := range c.items {
		if c.items[i].ID == oldID {
			c.items[i].ID = newID
			c.items[i].Synced = true
			if c.activeID == oldID {
				c.activeID = newID
			}
			return
		}
	}
}

// Lookup snapshots the collection as an id index.
func (c *Collection) Lookup() Lookup {
	l := make(Lookup, len(c.items))
	for _, e := range c.items {
		l[e.ID] = e
	}
	return l
}
