package service

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/zfogg/blogfront/pkg/store"
	"github.com/zfogg/blogfront/pkg/store/notify"
)

func TestNotificationWatcher_Expires(t *testing.T) {
	st := store.New(store.Initial())
	w := NewNotificationWatcher(st)
	defer w.Stop()

	st.Dispatch(notify.New(notify.KindSuccess, "Saved", "", 20*time.Millisecond))
	sticky := notify.New(notify.KindInfo, "Sticky", "", 0)
	st.Dispatch(sticky)

	assert.Eventually(t, func() bool {
		return len(st.State().Notify.Notifications) == 1
	}, time.Second, 5*time.Millisecond)

	_, ok := notify.Find(st.State().Notify, sticky.Notification.ID)
	assert.True(t, ok)
	assert.Eventually(t, func() bool { return w.Pending() == 0 }, time.Second, 5*time.Millisecond)
}

func TestNotificationWatcher_PicksUpQueued(t *testing.T) {
	st := store.New(store.Initial())
	st.Dispatch(notify.New(notify.KindError, "Failed", "", 10*time.Millisecond))

	w := NewNotificationWatcher(st)
	defer w.Stop()

	assert.Eventually(t, func() bool {
		return len(st.State().Notify.Notifications) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestNotificationWatcher_ClearCancelsTimers(t *testing.T) {
	st := store.New(store.Initial())
	w := NewNotificationWatcher(st)
	defer w.Stop()

	st.Dispatch(notify.Failure("a", ""), notify.Failure("b", ""))
	assert.Equal(t, 2, w.Pending())

	st.Dispatch(notify.ClearAll{})
	assert.Equal(t, 0, w.Pending())
}

func TestNotificationWatcher_Stop(t *testing.T) {
	st := store.New(store.Initial())
	w := NewNotificationWatcher(st)

	st.Dispatch(notify.New(notify.KindInfo, "x", "", 10*time.Millisecond))
	w.Stop()
	w.Stop()
	assert.Equal(t, 0, w.Pending())

	time.Sleep(30 * time.Millisecond)
	assert.Len(t, st.State().Notify.Notifications, 1)
}

func TestNotificationWatcher_LateDeliveryKeepsTimers(t *testing.T) {
	st := store.New(store.Initial())
	w := NewNotificationWatcher(st)
	defer w.Stop()

	slow := make(chan struct{})
	var once sync.Once
	unsubscribe := st.Subscribe(func(s store.State) {
		if len(s.Notify.Notifications) == 1 {
			once.Do(func() { close(slow) })
			time.Sleep(20 * time.Millisecond)
		}
	})
	defer unsubscribe()

	done := make(chan struct{})
	go func() {
		defer close(done)
		st.Dispatch(notify.New(notify.KindInfo, "first", "", time.Minute))
	}()
	<-slow
	st.Dispatch(notify.New(notify.KindInfo, "second", "", time.Minute))
	<-done

	assert.Len(t, st.State().Notify.Notifications, 2)
	assert.Equal(t, 2, w.Pending())
}
