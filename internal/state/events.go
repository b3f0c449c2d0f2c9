package state

// Event is the settled outcome of a Command. Events are opaque to callers;
// the UI forwards any value satisfying this interface back into
// Engine.Apply.
type Event interface{ isEvent() }

// Command performs one blocking remote interaction and reports its outcome.
// A nil Event means the command has nothing for the engine to process.
type Command func() Event

type collectionsLoaded struct {
	leads     []Entity
	clients   []Entity
	global    []HistoryItem
	perClient []HistoryItem
	tickets   []Ticket
}

type loadFailed struct {
	err error
}

type leadHistoryRefreshed struct {
	gen   int
	items []HistoryItem
}

type notePersisted struct {
	tempID    string
	confirmed HistoryItem
	// promotion outcome for the owning entity, when one happened
	promotedFrom string
	promotedTo   string
}

type noteSaveFailed struct {
	tempID string
	err    error
}

type classificationSaved struct {
	id    string
	class string
}

type classificationSaveFailed struct {
	id  string
	err error
}

type leadAdded struct {
	oldID string
	newID string
}

type leadAddFailed struct {
	err error
}

func (collectionsLoaded) isEvent()        {}
func (loadFailed) isEvent()               {}
func (leadHistoryRefreshed) isEvent()     {}
func (notePersisted) isEvent()            {}
func (noteSaveFailed) isEvent()           {}
func (classificationSaved) isEvent()      {}
func (classificationSaveFailed) isEvent() {}
func (leadAdded) isEvent()                {}
func (leadAddFailed) isEvent()            {}
