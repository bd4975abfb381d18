// Package notify is the toast queue. Expiry is driven from outside the
// reducer by whoever presents the queue.
package notify

import (
	"time"

	"github.com/google/uuid"
)

// Kind is the toast style.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

const (
	SuccessDuration = 3 * time.Second
	FailureDuration = 5 * time.Second
)

// Notification is one queued toast. A zero Duration never expires.
type Notification struct {
	ID       string        `json:"id"`
	Kind     Kind          `json:"type"`
	Title    string        `json:"title"`
	Message  string        `json:"message"`
	Duration time.Duration `json:"duration,omitempty"`
}

type State struct {
	Notifications []Notification
}

// Action is implemented by every notify action.
type Action interface {
	Type() string
	notifyAction()
}

type (
	Add      struct{ Notification Notification }
	Remove   struct{ ID string }
	ClearAll struct{}
)

func (Add) Type() string      { return "notifications/addNotification" }
func (Remove) Type() string   { return "notifications/removeNotification" }
func (ClearAll) Type() string { return "notifications/clearAllNotifications" }

func (Add) notifyAction()      {}
func (Remove) notifyAction()   {}
func (ClearAll) notifyAction() {}

// New builds an Add action with a fresh id.
func New(kind Kind, title, message string, d time.Duration) Add {
	return Add{Notification: Notification{
		ID:       uuid.NewString(),
		Kind:     kind,
		Title:    title,
		Message:  message,
		Duration: d,
	}}
}

func Success(title, message string) Add {
	return New(KindSuccess, title, message, SuccessDuration)
}

func Failure(title, message string) Add {
	return New(KindError, title, message, FailureDuration)
}

func Info(title, message string) Add {
	return New(KindInfo, title, message, SuccessDuration)
}

func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case Add:
		n := a.Notification
		if n.ID == "" {
			n.ID = uuid.NewString()
		}
		list := make([]Notification, 0, len(s.Notifications)+1)
		list = append(list, s.Notifications...)
		s.Notifications = append(list, n)
	case Remove:
		list := make([]Notification, 0, len(s.Notifications))
		for _, n := range s.Notifications {
			if n.ID != a.ID {
				list = append(list, n)
			}
		}
		s.Notifications = list
	case ClearAll:
		s.Notifications = []Notification{}
	}
	return s
}

// Find returns the queued notification with id.
func Find(s State, id string) (Notification, bool) {
	for _, n := range s.Notifications {
		if n.ID == id {
			return n, true
		}
	}
	return Notification{}, false
}
