// Package likes tracks per-post reaction counts and the user's own toggle.
package likes

// Entry is the reaction state of one post. Liked and Disliked are never
// both true.
type Entry struct {
	Likes    int  `json:"likes"`
	Dislikes int  `json:"dislikes"`
	Liked    bool `json:"userLiked"`
	Disliked bool `json:"userDisliked"`
}

// State maps post id to its entry. Entries are created lazily and never
// removed.
type State map[int]Entry

// Action is implemented by every likes action.
type Action interface {
	Type() string
	likesAction()
}

type (
	// InitializePost seeds an entry unless one already exists.
	InitializePost struct {
		PostID   int
		Likes    int
		Dislikes int
	}
	ToggleLike    struct{ PostID int }
	ToggleDislike struct{ PostID int }
)

func (InitializePost) Type() string { return "likes/initializePost" }
func (ToggleLike) Type() string     { return "likes/toggleLike" }
func (ToggleDislike) Type() string  { return "likes/toggleDislike" }

func (InitializePost) likesAction() {}
func (ToggleLike) likesAction()     {}
func (ToggleDislike) likesAction()  {}

// Reduce applies a to s. The input map is never written; a changed state is
// a fresh copy.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case InitializePost:
		if _, ok := s[a.PostID]; ok {
			return s
		}
		next := clone(s)
		next[a.PostID] = Entry{Likes: a.Likes, Dislikes: a.Dislikes}
		return next

	case ToggleLike:
		e, ok := s[a.PostID]
		if !ok {
			return s
		}
		if e.Liked {
			e.Likes--
			e.Liked = false
		} else {
			e.Likes++
			e.Liked = true
			if e.Disliked {
				e.Dislikes--
				e.Disliked = false
			}
		}
		next := clone(s)
		next[a.PostID] = e
		return next

	case ToggleDislike:
		e, ok := s[a.PostID]
		if !ok {
			return s
		}
		if e.Disliked {
			e.Dislikes--
			e.Disliked = false
		} else {
			e.Dislikes++
			e.Disliked = true
			if e.Liked {
				e.Likes--
				e.Liked = false
			}
		}
		next := clone(s)
		next[a.PostID] = e
		return next
	}
	return s
}

// Get returns the entry for id.
func Get(s State, id int) (Entry, bool) {
	e, ok := s[id]
	return e, ok
}

func clone(s State) State {
	next := make(State, len(s)+1)
	for k, v := range s {
		next[k] = v
	}
	return next
}
