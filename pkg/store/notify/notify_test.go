package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAppendsWithUniqueIDs(t *testing.T) {
	s := Reduce(State{}, Success("Welcome back!", "You have successfully signed in"))
	s = Reduce(s, Failure("Sign In Failed", "Invalid email or password"))
	s = Reduce(s, Add{Notification: Notification{Kind: KindInfo, Title: "no id"}})

	require.Len(t, s.Notifications, 3)
	assert.Equal(t, KindSuccess, s.Notifications[0].Kind)
	assert.Equal(t, SuccessDuration, s.Notifications[0].Duration)
	assert.Equal(t, KindError, s.Notifications[1].Kind)
	assert.Equal(t, FailureDuration, s.Notifications[1].Duration)

	seen := map[string]bool{}
	for _, n := range s.Notifications {
		assert.NotEmpty(t, n.ID)
		assert.False(t, seen[n.ID])
		seen[n.ID] = true
	}
}

func TestRemoveByID(t *testing.T) {
	first := Info("a", "")
	second := Info("b", "")
	s := Reduce(Reduce(State{}, first), second)

	s = Reduce(s, Remove{ID: first.Notification.ID})
	require.Len(t, s.Notifications, 1)
	assert.Equal(t, "b", s.Notifications[0].Title)

	_, ok := Find(s, first.Notification.ID)
	assert.False(t, ok)
	n, ok := Find(s, second.Notification.ID)
	assert.True(t, ok)
	assert.Equal(t, "b", n.Title)

	s = Reduce(s, Remove{ID: "missing"})
	assert.Len(t, s.Notifications, 1)
}

func TestClearAll(t *testing.T) {
	s := Reduce(State{}, Info("a", ""))
	s = Reduce(s, ClearAll{})
	assert.Empty(t, s.Notifications)
}

func TestReduceDoesNotAlias(t *testing.T) {
	base := Reduce(State{}, Info("a", ""))
	x := Reduce(base, Info("x", ""))
	y := Reduce(base, Info("y", ""))
	assert.Len(t, base.Notifications, 1)
	assert.Equal(t, "x", x.Notifications[1].Title)
	assert.Equal(t, "y", y.Notifications[1].Title)
}
