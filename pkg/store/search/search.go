// Package search holds the live search input, the recent query history and
// the results of the last executed search.
package search

import (
	"strings"

	"github.com/zfogg/blogfront/pkg/model"
)

// MaxHistory bounds the recent query list.
const MaxHistory = 10

// State is the search slice. Query is what the user is typing; Executed is
// the query the current Results belong to.
type State struct {
	Query   string
	History []string

	Executed string
	Results  []model.Post
	Loading  bool
	Error    string
	Seq      uint64
}

// Action is implemented by every search action.
type Action interface {
	Type() string
	searchAction()
}

type (
	// SetQuery updates the input text; it never runs a search.
	SetQuery     struct{ Text string }
	AddQuery     struct{ Query string }
	RemoveQuery  struct{ Query string }
	ClearHistory struct{}
	// LoadHistory restores persisted queries at startup.
	LoadHistory struct{ Queries []string }

	ResultsPending struct {
		Seq   uint64
		Query string
	}
	ResultsFulfilled struct {
		Seq     uint64
		Results []model.Post
	}
	ResultsRejected struct {
		Seq uint64
		Err string
	}
	// ClearResults empties the results. A non-zero Seq also retires every
	// search issued before it.
	ClearResults struct{ Seq uint64 }
)

func (SetQuery) Type() string         { return "search/setQuery" }
func (AddQuery) Type() string         { return "searchHistory/addQuery" }
func (RemoveQuery) Type() string      { return "searchHistory/removeQuery" }
func (ClearHistory) Type() string     { return "searchHistory/clearHistory" }
func (LoadHistory) Type() string      { return "searchHistory/load" }
func (ResultsPending) Type() string   { return "searchResults/pending" }
func (ResultsFulfilled) Type() string { return "searchResults/fulfilled" }
func (ResultsRejected) Type() string  { return "searchResults/rejected" }
func (ClearResults) Type() string     { return "searchResults/clearResults" }

func (SetQuery) searchAction()         {}
func (AddQuery) searchAction()         {}
func (RemoveQuery) searchAction()      {}
func (ClearHistory) searchAction()     {}
func (LoadHistory) searchAction()      {}
func (ResultsPending) searchAction()   {}
func (ResultsFulfilled) searchAction() {}
func (ResultsRejected) searchAction()  {}
func (ClearResults) searchAction()     {}

func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SetQuery:
		s.Query = a.Text

	case AddQuery:
		s.History = pushHistory(s.History, a.Query)
	case RemoveQuery:
		history := make([]string, 0, len(s.History))
		for _, q := range s.History {
			if q != a.Query {
				history = append(history, q)
			}
		}
		s.History = history
	case ClearHistory:
		s.History = []string{}
	case LoadHistory:
		history := []string{}
		for i := len(a.Queries) - 1; i >= 0; i-- {
			history = pushHistory(history, a.Queries[i])
		}
		s.History = history

	case ResultsPending:
		if a.Seq > s.Seq {
			s.Seq = a.Seq
		}
		s.Executed = a.Query
		s.Loading = true
		s.Error = ""
	case ResultsFulfilled:
		if stale(a.Seq, s.Seq) {
			return s
		}
		s.Results = append([]model.Post{}, a.Results...)
		s.Loading = false
		s.Error = ""
	case ResultsRejected:
		if stale(a.Seq, s.Seq) {
			return s
		}
		s.Loading = false
		s.Error = a.Err
	case ClearResults:
		if a.Seq > s.Seq {
			s.Seq = a.Seq
		}
		s.Results = []model.Post{}
		s.Executed = ""
		s.Loading = false
		s.Error = ""
	}
	return s
}

// pushHistory front-inserts the trimmed query, dropping any earlier copy
// and anything past MaxHistory.
func pushHistory(history []string, query string) []string {
	query = strings.TrimSpace(query)
	if query == "" {
		return history
	}

	out := make([]string, 0, MaxHistory)
	out = append(out, query)
	for _, q := range history {
		if len(out) == MaxHistory {
			break
		}
		if q != query {
			out = append(out, q)
		}
	}
	return out
}

func stale(seq, latest uint64) bool {
	return seq != 0 && seq < latest
}
