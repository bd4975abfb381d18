// Package posts holds the paginated post listing, the detail cache and the
// create/update/delete lifecycles.
package posts

import "github.com/zfogg/blogfront/pkg/model"

// DefaultPageSize is used when a fulfilled page does not say otherwise.
const DefaultPageSize = 12

// State is the posts slice.
//
// Loading is true while any list or mutation lifecycle is in flight.
// ListSeq and CurrentSeq are the newest request numbers issued; settlements
// tagged with an older number are stale and only release their in-flight
// slot.
type State struct {
	Items   []model.Post
	Loaded  bool
	Loading bool
	Error   string

	// MutationError is the message of the last failed create, update or
	// delete. It never replaces the listing error.
	MutationError string

	Current        *model.Post
	CurrentLoading bool
	CurrentError   string

	CurrentPage int
	// RequestedPage is the page the last fulfilled fetch asked for, before
	// CurrentPage was clamped into range.
	RequestedPage int
	TotalPages    int
	HasNextPage   bool
	HasPrevPage   bool
	PageSize      int
	Count         int

	InFlight   int
	ListSeq    uint64
	CurrentSeq uint64
}

// Action is implemented by every posts action.
type Action interface {
	Type() string
	postsAction()
}

type (
	FetchPagePending struct {
		Seq  uint64
		Page int
	}
	FetchPageFulfilled struct {
		Seq      uint64
		Page     int
		PageSize int
		Count    int
		Items    []model.Post
	}
	FetchPageRejected struct {
		Seq uint64
		Err string
	}

	FetchByIDPending struct {
		Seq uint64
		ID  int
	}
	FetchByIDFulfilled struct {
		Seq  uint64
		Post model.Post
	}
	FetchByIDRejected struct {
		Seq uint64
		Err string
	}

	CreatePending   struct{}
	CreateFulfilled struct{ Post model.Post }
	CreateRejected  struct{ Err string }

	UpdatePending   struct{ ID int }
	UpdateFulfilled struct{ Post model.Post }
	UpdateRejected  struct{ Err string }

	DeletePending   struct{ ID int }
	DeleteFulfilled struct{ ID int }
	DeleteRejected  struct{ Err string }

	// SetAll replaces the listing outside any lifecycle.
	SetAll   struct{ Items []model.Post }
	SetError struct{ Err string }
	Clear    struct{}
)

func (FetchPagePending) Type() string   { return "posts/fetchPage/pending" }
func (FetchPageFulfilled) Type() string { return "posts/fetchPage/fulfilled" }
func (FetchPageRejected) Type() string  { return "posts/fetchPage/rejected" }
func (FetchByIDPending) Type() string   { return "posts/fetchById/pending" }
func (FetchByIDFulfilled) Type() string { return "posts/fetchById/fulfilled" }
func (FetchByIDRejected) Type() string  { return "posts/fetchById/rejected" }
func (CreatePending) Type() string      { return "posts/create/pending" }
func (CreateFulfilled) Type() string    { return "posts/create/fulfilled" }
func (CreateRejected) Type() string     { return "posts/create/rejected" }
func (UpdatePending) Type() string      { return "posts/update/pending" }
func (UpdateFulfilled) Type() string    { return "posts/update/fulfilled" }
func (UpdateRejected) Type() string     { return "posts/update/rejected" }
func (DeletePending) Type() string      { return "posts/delete/pending" }
func (DeleteFulfilled) Type() string    { return "posts/delete/fulfilled" }
func (DeleteRejected) Type() string     { return "posts/delete/rejected" }
func (SetAll) Type() string             { return "posts/setAll" }
func (SetError) Type() string           { return "posts/setError" }
func (Clear) Type() string              { return "posts/clear" }

func (FetchPagePending) postsAction()   {}
func (FetchPageFulfilled) postsAction() {}
func (FetchPageRejected) postsAction()  {}
func (FetchByIDPending) postsAction()   {}
func (FetchByIDFulfilled) postsAction() {}
func (FetchByIDRejected) postsAction()  {}
func (CreatePending) postsAction()      {}
func (CreateFulfilled) postsAction()    {}
func (CreateRejected) postsAction()     {}
func (UpdatePending) postsAction()      {}
func (UpdateFulfilled) postsAction()    {}
func (UpdateRejected) postsAction()     {}
func (DeletePending) postsAction()      {}
func (DeleteFulfilled) postsAction()    {}
func (DeleteRejected) postsAction()     {}
func (SetAll) postsAction()             {}
func (SetError) postsAction()           {}
func (Clear) postsAction()              {}

// Reduce applies a to s and returns the next state. Items is never mutated
// in place; every change allocates a new slice.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case FetchPagePending:
		s = begin(s)
		if a.Seq > s.ListSeq {
			s.ListSeq = a.Seq
		}
		s.Error = ""

	case FetchPageFulfilled:
		s = settle(s)
		if stale(a.Seq, s.ListSeq) {
			return s
		}
		s.Items = dedupe(a.Items)
		s.Loaded = true
		s.Error = ""
		s = paginate(s, a.Page, a.PageSize, a.Count)

	case FetchPageRejected:
		s = settle(s)
		if stale(a.Seq, s.ListSeq) {
			return s
		}
		s.Loaded = true
		s.Error = a.Err

	case FetchByIDPending:
		if a.Seq > s.CurrentSeq {
			s.CurrentSeq = a.Seq
		}
		s.CurrentLoading = true
		s.CurrentError = ""

	case FetchByIDFulfilled:
		if stale(a.Seq, s.CurrentSeq) {
			return s
		}
		post := a.Post
		s.Current = &post
		s.CurrentLoading = false
		s.CurrentError = ""

	case FetchByIDRejected:
		if stale(a.Seq, s.CurrentSeq) {
			return s
		}
		s.CurrentLoading = false
		s.CurrentError = a.Err

	case CreatePending, UpdatePending, DeletePending:
		s = begin(s)
		s.MutationError = ""

	case CreateFulfilled:
		s = settle(s)
		items := make([]model.Post, 0, len(s.Items)+1)
		items = append(items, a.Post)
		for _, p := range s.Items {
			if p.ID != a.Post.ID {
				items = append(items, p)
			}
		}
		s.Items = items

	case UpdateFulfilled:
		s = settle(s)
		if i := indexOf(s.Items, a.Post.ID); i >= 0 {
			items := append([]model.Post(nil), s.Items...)
			items[i] = a.Post
			s.Items = items
		}
		if s.Current != nil && s.Current.ID == a.Post.ID {
			post := a.Post
			s.Current = &post
		}

	case DeleteFulfilled:
		s = settle(s)
		if i := indexOf(s.Items, a.ID); i >= 0 {
			items := make([]model.Post, 0, len(s.Items)-1)
			items = append(items, s.Items[:i]...)
			items = append(items, s.Items[i+1:]...)
			s.Items = items
		}
		if s.Current != nil && s.Current.ID == a.ID {
			s.Current = nil
		}

	case CreateRejected:
		s = settle(s)
		s.MutationError = a.Err
	case UpdateRejected:
		s = settle(s)
		s.MutationError = a.Err
	case DeleteRejected:
		s = settle(s)
		s.MutationError = a.Err

	case SetAll:
		s.Items = dedupe(a.Items)
		s.Loaded = true
		s.Error = ""
	case SetError:
		s.Error = a.Err
		s.Loaded = true
	case Clear:
		s.Items = nil
		s.Loaded = false
		s.Error = ""
	}
	return s
}

func begin(s State) State {
	s.InFlight++
	s.Loading = true
	return s
}

func settle(s State) State {
	if s.InFlight > 0 {
		s.InFlight--
	}
	s.Loading = s.InFlight > 0
	return s
}

func paginate(s State, page, pageSize, count int) State {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if count < 0 {
		count = 0
	}

	s.PageSize = pageSize
	s.Count = count
	s.RequestedPage = page
	s.TotalPages = TotalPages(count, pageSize)

	last := s.TotalPages
	if last < 1 {
		last = 1
	}
	switch {
	case page < 1:
		page = 1
	case page > last:
		page = last
	}
	s.CurrentPage = page
	s.HasNextPage = page < s.TotalPages
	s.HasPrevPage = page > 1
	return s
}

// OutOfRange reports whether the last fetched page lay outside
// [1, TotalPages]. Items then hold that page's (empty) results while
// CurrentPage names the nearest real page.
func (s State) OutOfRange() bool {
	return s.Loaded && s.RequestedPage != s.CurrentPage
}

// TotalPages is ceil(count / pageSize).
func TotalPages(count, pageSize int) int {
	if count <= 0 || pageSize <= 0 {
		return 0
	}
	return (count + pageSize - 1) / pageSize
}

func indexOf(items []model.Post, id int) int {
	for i, p := range items {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// dedupe copies items keeping the first occurrence of each id.
func dedupe(items []model.Post) []model.Post {
	out := make([]model.Post, 0, len(items))
	seen := make(map[int]struct{}, len(items))
	for _, p := range items {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out
}

// stale reports whether seq was superseded. Untagged (zero) settlements
// always apply.
func stale(seq, latest uint64) bool {
	return seq != 0 && seq < latest
}
