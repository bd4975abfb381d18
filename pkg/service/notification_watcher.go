package service

import (
	"sync"
	"time"

	"github.com/zfogg/blogfront/pkg/logger"
	"github.com/zfogg/blogfront/pkg/store"
	"github.com/zfogg/blogfront/pkg/store/notify"
)

// NotificationWatcher expires queued notifications. It keeps one timer per
// notification with a positive duration and dispatches notify.Remove when
// it fires; a notification removed some other way cancels its timer.
type NotificationWatcher struct {
	store *store.Store

	mu          sync.Mutex
	timers      map[string]*time.Timer
	stopped     bool
	unsubscribe func()
}

// NewNotificationWatcher starts watching s, including notifications already
// queued.
func NewNotificationWatcher(s *store.Store) *NotificationWatcher {
	w := &NotificationWatcher{
		store:  s,
		timers: make(map[string]*time.Timer),
	}
	w.unsubscribe = s.Subscribe(func(store.State) { w.sync() })
	w.sync()
	return w
}

// sync reconciles timers against the store's current state. Listener
// deliveries can arrive out of order, so the delivered snapshot is ignored.
func (w *NotificationWatcher) sync() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}

	state := w.store.State()

	live := make(map[string]struct{}, len(state.Notify.Notifications))
	for _, n := range state.Notify.Notifications {
		live[n.ID] = struct{}{}
		if n.Duration <= 0 {
			continue
		}
		if _, ok := w.timers[n.ID]; ok {
			continue
		}
		id := n.ID
		w.timers[id] = time.AfterFunc(n.Duration, func() {
			logger.Debug("Notification expired", "id", id)
			w.store.Dispatch(notify.Remove{ID: id})
		})
	}

	for id, t := range w.timers {
		if _, ok := live[id]; !ok {
			t.Stop()
			delete(w.timers, id)
		}
	}
}

// Pending returns the number of scheduled expiries.
func (w *NotificationWatcher) Pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.timers)
}

// Stop cancels every pending expiry and stops watching.
func (w *NotificationWatcher) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	for id, t := range w.timers {
		t.Stop()
		delete(w.timers, id)
	}
	w.mu.Unlock()

	w.unsubscribe()
}
