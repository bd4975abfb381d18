package service

import (
	"context"

	"github.com/zfogg/blogfront/pkg/api"
	"github.com/zfogg/blogfront/pkg/async"
	"github.com/zfogg/blogfront/pkg/errors"
	"github.com/zfogg/blogfront/pkg/model"
	"github.com/zfogg/blogfront/pkg/store"
	"github.com/zfogg/blogfront/pkg/store/likes"
	"github.com/zfogg/blogfront/pkg/store/notify"
	"github.com/zfogg/blogfront/pkg/store/posts"
)

// PostService runs the listing, detail and mutation lifecycles.
type PostService struct {
	*base
}

// NewPostService creates a new post service
func NewPostService(opts Options) *PostService {
	return &PostService{base: newBase(opts)}
}

// Page is one fetched listing page.
type Page struct {
	Number int
	Count  int
	Posts  []model.Post
}

// FetchPage loads page (1-based) of the listing. A zero group uses the
// configured course group. Failures are kept on the slice, not toasted.
func (s *PostService) FetchPage(ctx context.Context, page, group int) *async.Task[Page] {
	if page < 1 {
		page = 1
	}
	if group == 0 {
		group = s.courseGroup
	}
	seq := s.nextSeq()
	params := api.ListParams{
		Limit:       s.pageSize,
		Offset:      posts.Offset(page, s.pageSize),
		Ordering:    s.ordering,
		CourseGroup: group,
	}

	return run(s.base, ctx, lifecycle[Page]{
		op:      "posts/fetchPage",
		pending: actions(posts.FetchPagePending{Seq: seq, Page: page}),
		call: func(ctx context.Context) (Page, error) {
			resp, err := s.api.ListPosts(ctx, params)
			if err != nil {
				return Page{}, err
			}
			return Page{Number: page, Count: resp.Count, Posts: s.mapper.Posts(resp.Results)}, nil
		},
		fulfilled: func(p Page) []store.Action {
			out := make([]store.Action, 0, len(p.Posts)+1)
			for _, post := range p.Posts {
				out = append(out, seedLikes(post))
			}
			return append(out, posts.FetchPageFulfilled{
				Seq:      seq,
				Page:     p.Number,
				PageSize: s.pageSize,
				Count:    p.Count,
				Items:    p.Posts,
			})
		},
		rejected: func(err error) []store.Action {
			return actions(posts.FetchPageRejected{Seq: seq, Err: errors.Message(err, "Failed to fetch posts")})
		},
	})
}

// FetchByID loads one post into the detail view.
func (s *PostService) FetchByID(ctx context.Context, id int) *async.Task[model.Post] {
	seq := s.nextSeq()
	return run(s.base, ctx, lifecycle[model.Post]{
		op:      "posts/fetchById",
		pending: actions(posts.FetchByIDPending{Seq: seq, ID: id}),
		call: func(ctx context.Context) (model.Post, error) {
			dto, err := s.api.GetPost(ctx, id)
			if err != nil {
				return model.Post{}, err
			}
			return s.mapper.Post(*dto), nil
		},
		fulfilled: func(p model.Post) []store.Action {
			return actions(seedLikes(p), posts.FetchByIDFulfilled{Seq: seq, Post: p})
		},
		rejected: func(err error) []store.Action {
			return actions(posts.FetchByIDRejected{Seq: seq, Err: errors.Message(err, "Failed to fetch post")})
		},
	})
}

// Create submits a new post. On success it is prepended to the listing.
func (s *PostService) Create(ctx context.Context, in api.PostInput) *async.Task[model.Post] {
	return run(s.base, ctx, lifecycle[model.Post]{
		op:      "posts/create",
		pending: actions(posts.CreatePending{}),
		call: func(ctx context.Context) (model.Post, error) {
			dto, err := s.api.CreatePost(ctx, in)
			if err != nil {
				return model.Post{}, err
			}
			return s.mapper.Post(*dto), nil
		},
		fulfilled: func(p model.Post) []store.Action {
			return actions(
				seedLikes(p),
				posts.CreateFulfilled{Post: p},
				notify.Success("Post Created", "Your post has been published"),
			)
		},
		rejected: func(err error) []store.Action {
			msg := errors.Message(err, "Failed to create post")
			return actions(
				posts.CreateRejected{Err: msg},
				notify.Failure("Failed to Create Post", msg),
			)
		},
	})
}

// Update sends the non-empty fields of in. A post missing from the listing
// is not an error.
func (s *PostService) Update(ctx context.Context, id int, in api.PostInput) *async.Task[model.Post] {
	return run(s.base, ctx, lifecycle[model.Post]{
		op:      "posts/update",
		pending: actions(posts.UpdatePending{ID: id}),
		call: func(ctx context.Context) (model.Post, error) {
			dto, err := s.api.UpdatePost(ctx, id, in)
			if err != nil {
				return model.Post{}, err
			}
			return s.mapper.Post(*dto), nil
		},
		fulfilled: func(p model.Post) []store.Action {
			return actions(
				posts.UpdateFulfilled{Post: p},
				notify.Success("Post Updated", "Your changes have been saved"),
			)
		},
		rejected: func(err error) []store.Action {
			msg := errors.Message(err, "Failed to update post")
			return actions(
				posts.UpdateRejected{Err: msg},
				notify.Failure("Failed to Update Post", msg),
			)
		},
	})
}

// Delete removes a post. Deleting an id absent from the listing leaves the
// listing unchanged.
func (s *PostService) Delete(ctx context.Context, id int) *async.Task[int] {
	return run(s.base, ctx, lifecycle[int]{
		op:      "posts/delete",
		pending: actions(posts.DeletePending{ID: id}),
		call: func(ctx context.Context) (int, error) {
			return id, s.api.DeletePost(ctx, id)
		},
		fulfilled: func(id int) []store.Action {
			return actions(
				posts.DeleteFulfilled{ID: id},
				notify.Success("Post Deleted", "The post has been removed"),
			)
		},
		rejected: func(err error) []store.Action {
			msg := errors.Message(err, "Failed to delete post")
			return actions(
				posts.DeleteRejected{Err: msg},
				notify.Failure("Failed to Delete Post", msg),
			)
		},
	})
}

func seedLikes(p model.Post) likes.InitializePost {
	return likes.InitializePost{PostID: p.ID, Likes: p.Likes, Dislikes: p.Dislikes}
}
