// Package favorites is the user's set of favorited post ids, kept in
// insertion order.
package favorites

import "slices"

type State struct {
	IDs []int
}

// Action is implemented by every favorites action.
type Action interface {
	Type() string
	favoritesAction()
}

type (
	// Load replaces the set with persisted ids at startup.
	Load   struct{ IDs []int }
	Add    struct{ ID int }
	Remove struct{ ID int }
	Toggle struct{ ID int }
	Clear  struct{}
)

func (Load) Type() string   { return "favorites/load" }
func (Add) Type() string    { return "favorites/add" }
func (Remove) Type() string { return "favorites/remove" }
func (Toggle) Type() string { return "favorites/toggle" }
func (Clear) Type() string  { return "favorites/clear" }

func (Load) favoritesAction()   {}
func (Add) favoritesAction()    {}
func (Remove) favoritesAction() {}
func (Toggle) favoritesAction() {}
func (Clear) favoritesAction()  {}

func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case Load:
		ids := make([]int, 0, len(a.IDs))
		for _, id := range a.IDs {
			if !slices.Contains(ids, id) {
				ids = append(ids, id)
			}
		}
		s.IDs = ids
	case Add:
		if !slices.Contains(s.IDs, a.ID) {
			s.IDs = append(slices.Clip(s.IDs), a.ID)
		}
	case Remove:
		s.IDs = without(s.IDs, a.ID)
	case Toggle:
		if slices.Contains(s.IDs, a.ID) {
			s.IDs = without(s.IDs, a.ID)
		} else {
			s.IDs = append(slices.Clip(s.IDs), a.ID)
		}
	case Clear:
		s.IDs = []int{}
	}
	return s
}

func IsFavorite(s State, id int) bool {
	return slices.Contains(s.IDs, id)
}

func without(ids []int, id int) []int {
	out := make([]int, 0, len(ids))
	for _, x := range ids {
		if x != id {
			out = append(out, x)
		}
	}
	return out
}
