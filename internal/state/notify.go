package state

// NoticeLevel classifies a user-facing notice.
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeSuccess
	NoticeError
)

// Notice is a transient message for the user, emitted by the engine while
// it processes events.
type Notice struct {
	Level NoticeLevel
	Text  string
}

// Notifier receives notices. Implementations must be cheap; the engine
// calls it synchronously from Apply.
type Notifier interface {
	Notify(n Notice)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(n Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }
