package service

import (
	"context"
	"strings"

	"github.com/zfogg/blogfront/pkg/api"
	"github.com/zfogg/blogfront/pkg/async"
	"github.com/zfogg/blogfront/pkg/errors"
	"github.com/zfogg/blogfront/pkg/model"
	"github.com/zfogg/blogfront/pkg/store"
	"github.com/zfogg/blogfront/pkg/store/search"
)

// SearchService runs text searches over the listing endpoint.
type SearchService struct {
	*base
}

// NewSearchService creates a new search service
func NewSearchService(opts Options) *SearchService {
	return &SearchService{base: newBase(opts)}
}

// SetQuery records the input text without searching.
func (s *SearchService) SetQuery(text string) {
	s.store.Dispatch(search.SetQuery{Text: text})
}

// Submit runs the search for query: it is recorded in the history, becomes
// the input text, and its results are fetched. A blank query clears the
// results and makes no request.
func (s *SearchService) Submit(ctx context.Context, query string) *async.Task[[]model.Post] {
	q := strings.TrimSpace(query)
	if q == "" {
		s.store.Dispatch(search.ClearResults{Seq: s.nextSeq()})
		return async.Resolved([]model.Post{})
	}
	s.store.Dispatch(search.AddQuery{Query: q}, search.SetQuery{Text: q})
	return s.Search(ctx, q)
}

// Search fetches results for query without touching the history. Failures
// stay on the slice.
func (s *SearchService) Search(ctx context.Context, query string) *async.Task[[]model.Post] {
	q := strings.TrimSpace(query)
	seq := s.nextSeq()
	if q == "" {
		s.store.Dispatch(search.ClearResults{Seq: seq})
		return async.Resolved([]model.Post{})
	}

	params := api.ListParams{
		Search:      q,
		CourseGroup: s.courseGroup,
		Ordering:    s.ordering,
	}
	return run(s.base, ctx, lifecycle[[]model.Post]{
		op:      "search/fetchResults",
		pending: actions(search.ResultsPending{Seq: seq, Query: q}),
		call: func(ctx context.Context) ([]model.Post, error) {
			resp, err := s.api.ListPosts(ctx, params)
			if err != nil {
				return nil, err
			}
			return s.mapper.SearchResults(resp.Results), nil
		},
		fulfilled: func(results []model.Post) []store.Action {
			return actions(search.ResultsFulfilled{Seq: seq, Results: results})
		},
		rejected: func(err error) []store.Action {
			return actions(search.ResultsRejected{Seq: seq, Err: errors.Message(err, "Search failed")})
		},
	})
}
