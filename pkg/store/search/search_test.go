package search

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zfogg/blogfront/pkg/model"
)

func TestSetQueryDoesNotSearch(t *testing.T) {
	s := Reduce(State{}, SetQuery{Text: "ma"})
	assert.Equal(t, "ma", s.Query)
	assert.False(t, s.Loading)
	assert.Empty(t, s.History)
}

func TestHistoryDedupMoveToFront(t *testing.T) {
	s := State{}
	for _, q := range []string{"mars", "moon", "mars"} {
		s = Reduce(s, AddQuery{Query: q})
	}
	assert.Equal(t, []string{"mars", "moon"}, s.History)
}

func TestHistoryTrimsAndSkipsBlank(t *testing.T) {
	s := Reduce(State{}, AddQuery{Query: "  venus "})
	s = Reduce(s, AddQuery{Query: "   "})
	s = Reduce(s, AddQuery{Query: ""})
	assert.Equal(t, []string{"venus"}, s.History)
}

func TestHistoryCapped(t *testing.T) {
	s := State{}
	for i := 0; i < 35; i++ {
		s = Reduce(s, AddQuery{Query: fmt.Sprintf("q%d", i)})
		assert.LessOrEqual(t, len(s.History), MaxHistory)
	}
	assert.Len(t, s.History, MaxHistory)
	assert.Equal(t, "q34", s.History[0])
	assert.Equal(t, "q25", s.History[MaxHistory-1])
}

func TestRemoveAndClearHistory(t *testing.T) {
	s := Reduce(State{}, LoadHistory{Queries: []string{"a", "b", "c"}})
	assert.Equal(t, []string{"a", "b", "c"}, s.History)

	s = Reduce(s, RemoveQuery{Query: "b"})
	assert.Equal(t, []string{"a", "c"}, s.History)

	s = Reduce(s, ClearHistory{})
	assert.Empty(t, s.History)
}

func TestLoadHistorySanitizes(t *testing.T) {
	queries := []string{"a", " a ", "", "b"}
	for i := 0; i < 15; i++ {
		queries = append(queries, fmt.Sprintf("x%d", i))
	}
	s := Reduce(State{}, LoadHistory{Queries: queries})
	assert.Len(t, s.History, MaxHistory)
	assert.Equal(t, []string{"a", "b"}, s.History[:2])
}

func TestResultsLifecycle(t *testing.T) {
	s := Reduce(State{}, ResultsPending{Seq: 1, Query: "mars"})
	assert.True(t, s.Loading)
	assert.Equal(t, "mars", s.Executed)

	s = Reduce(s, ResultsFulfilled{Seq: 1, Results: []model.Post{{ID: 1}}})
	assert.False(t, s.Loading)
	assert.Len(t, s.Results, 1)

	s = Reduce(s, ResultsPending{Seq: 2, Query: "moon"})
	s = Reduce(s, ResultsRejected{Seq: 2, Err: "Network Error"})
	assert.False(t, s.Loading)
	assert.Equal(t, "Network Error", s.Error)
	assert.Len(t, s.Results, 1)
}

func TestStaleResultsDiscarded(t *testing.T) {
	s := Reduce(State{}, ResultsPending{Seq: 1, Query: "ma"})
	s = Reduce(s, ResultsPending{Seq: 2, Query: "mars"})
	s = Reduce(s, ResultsFulfilled{Seq: 2, Results: []model.Post{{ID: 2}}})
	s = Reduce(s, ResultsFulfilled{Seq: 1, Results: []model.Post{{ID: 1}}})

	assert.Equal(t, 2, s.Results[0].ID)
	assert.Equal(t, "mars", s.Executed)
}

func TestClearResults(t *testing.T) {
	s := Reduce(State{}, ResultsFulfilled{Results: []model.Post{{ID: 1}}})
	s = Reduce(s, ClearResults{})
	assert.Empty(t, s.Results)
	assert.Empty(t, s.Executed)
	assert.False(t, s.Loading)
}

func TestClearResults_RetiresInFlightSearch(t *testing.T) {
	s := Reduce(State{}, ResultsPending{Seq: 1, Query: "mars"})
	s = Reduce(s, ClearResults{Seq: 2})
	s = Reduce(s, ResultsFulfilled{Seq: 1, Results: []model.Post{{ID: 1}}})

	assert.Empty(t, s.Results)
	assert.False(t, s.Loading)
}
