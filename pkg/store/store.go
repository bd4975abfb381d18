// Package store composes the slices into one application state and
// serializes every change to it.
package store

import (
	"sync"

	"github.com/zfogg/blogfront/pkg/store/auth"
	"github.com/zfogg/blogfront/pkg/store/favorites"
	"github.com/zfogg/blogfront/pkg/store/likes"
	"github.com/zfogg/blogfront/pkg/store/notify"
	"github.com/zfogg/blogfront/pkg/store/posts"
	"github.com/zfogg/blogfront/pkg/store/preview"
	"github.com/zfogg/blogfront/pkg/store/search"
	"github.com/zfogg/blogfront/pkg/store/ui"
)

// Action is anything that can be dispatched. Each slice seals its own
// action set; actions no slice recognises pass through unchanged.
type Action interface {
	Type() string
}

// State is the whole application state. Slices never read each other.
type State struct {
	Auth      auth.State
	Posts     posts.State
	Likes     likes.State
	Favorites favorites.State
	Search    search.State
	Preview   preview.State
	Notify    notify.State
	UI        ui.State
}

// Initial is the empty state before hydration.
func Initial() State {
	return State{
		Likes:     likes.State{},
		Favorites: favorites.State{IDs: []int{}},
		Search:    search.State{History: []string{}},
		UI:        ui.Initial(),
	}
}

// Reduce routes a to the slice that owns it.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case auth.Action:
		s.Auth = auth.Reduce(s.Auth, a)
	case posts.Action:
		s.Posts = posts.Reduce(s.Posts, a)
	case likes.Action:
		s.Likes = likes.Reduce(s.Likes, a)
	case favorites.Action:
		s.Favorites = favorites.Reduce(s.Favorites, a)
	case search.Action:
		s.Search = search.Reduce(s.Search, a)
	case preview.Action:
		s.Preview = preview.Reduce(s.Preview, a)
	case notify.Action:
		s.Notify = notify.Reduce(s.Notify, a)
	case ui.Action:
		s.UI = ui.Reduce(s.UI, a)
	}
	return s
}

// Hook runs after every reduction, before Dispatch returns. Hooks run with
// the dispatch lock held and must not dispatch.
type Hook func(prev, next State, a Action)

// Listener is told about each new state after the dispatch lock is released.
type Listener func(next State)

// Store holds the current State.
type Store struct {
	mu    sync.Mutex
	state State
	hooks []Hook

	listenersMu sync.RWMutex
	listeners   map[int]Listener
	nextID      int
}

// New creates a store starting at initial.
func New(initial State, hooks ...Hook) *Store {
	return &Store{
		state:     initial,
		hooks:     hooks,
		listeners: make(map[int]Listener),
	}
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch reduces each action in order, one at a time.
func (s *Store) Dispatch(actions ...Action) {
	for _, a := range actions {
		if a == nil {
			continue
		}

		s.mu.Lock()
		prev := s.state
		next := Reduce(prev, a)
		s.state = next
		for _, h := range s.hooks {
			h(prev, next, a)
		}
		s.mu.Unlock()

		s.notify(next)
	}
}

// Subscribe registers fn and returns a function that removes it.
func (s *Store) Subscribe(fn Listener) func() {
	s.listenersMu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.listenersMu.Unlock()

	return func() {
		s.listenersMu.Lock()
		delete(s.listeners, id)
		s.listenersMu.Unlock()
	}
}

func (s *Store) notify(next State) {
	s.listenersMu.RLock()
	callbacks := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		callbacks = append(callbacks, fn)
	}
	s.listenersMu.RUnlock()

	for _, fn := range callbacks {
		fn(next)
	}
}
