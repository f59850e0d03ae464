package tui

import (
	"sync"

	"github.com/jordanlanch/leadmanager/pkg/leadlist"
)

// Notices keeps the latest transient notification. It implements
// leadlist.Notifier so the list controller can report into the status bar.
type Notices struct {
	mu     sync.Mutex
	latest *leadlist.Notification
}

// NewNotices creates an empty notification holder
func NewNotices() *Notices {
	return &Notices{}
}

// Notify replaces the current notification
func (n *Notices) Notify(note leadlist.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.latest = &note
}

// Latest returns the current notification, if any
func (n *Notices) Latest() (leadlist.Notification, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.latest == nil {
		return leadlist.Notification{}, false
	}
	return *n.latest, true
}

// Dismiss clears the current notification
func (n *Notices) Dismiss() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.latest = nil
}
