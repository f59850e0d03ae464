package leadlist

// Level is the severity of a notification
type Level int

const (
	LevelSuccess Level = iota
	LevelError
)

func (l Level) String() string {
	if l == LevelError {
		return "error"
	}
	return "success"
}

// Notification is a transient message for the user
type Notification struct {
	Level   Level
	Message string
}

// Notifier receives user notifications
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(n Notification)

// Notify calls f(n)
func (f NotifierFunc) Notify(n Notification) { f(n) }

// NopNotifier drops notifications
type NopNotifier struct{}

// Notify does nothing
func (NopNotifier) Notify(Notification) {}
