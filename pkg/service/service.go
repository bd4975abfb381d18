// Package service runs the asynchronous action lifecycles. Each operation
// dispatches its pending action, calls the API on its own goroutine and
// settles with exactly one fulfilled or rejected dispatch.
package service

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/zfogg/blogfront/pkg/api"
	"github.com/zfogg/blogfront/pkg/async"
	"github.com/zfogg/blogfront/pkg/logger"
	"github.com/zfogg/blogfront/pkg/model"
	"github.com/zfogg/blogfront/pkg/store"
	"github.com/zfogg/blogfront/pkg/store/posts"
)

// ThunkObserver is told how every lifecycle settled.
type ThunkObserver interface {
	ObserveThunk(op string, err error)
}

// Options wires a service to its collaborators.
type Options struct {
	Store   *store.Store
	API     *api.Client
	Mapper  model.Mapper
	Metrics ThunkObserver

	PageSize    int
	CourseGroup int
	Ordering    string

	// Now defaults to time.Now.
	Now func() time.Time
}

type base struct {
	store   *store.Store
	api     *api.Client
	mapper  model.Mapper
	metrics ThunkObserver
	now     func() time.Time
	seq     atomic.Uint64

	pageSize    int
	courseGroup int
	ordering    string
}

func newBase(opts Options) *base {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = posts.DefaultPageSize
	}
	return &base{
		store:   opts.Store,
		api:     opts.API,
		mapper:  opts.Mapper,
		metrics: opts.Metrics,
		now:     now,

		pageSize:    pageSize,
		courseGroup: opts.CourseGroup,
		ordering:    opts.Ordering,
	}
}

// nextSeq issues the next request number for stale-response detection.
func (b *base) nextSeq() uint64 {
	return b.seq.Add(1)
}

func (b *base) observe(op string, err error) {
	if b.metrics != nil {
		b.metrics.ObserveThunk(op, err)
	}
	if err != nil {
		logger.Warn("Action rejected", "op", op, "error", err)
	}
}

// lifecycle describes one thunk.
type lifecycle[T any] struct {
	op        string
	pending   []store.Action
	call      func(ctx context.Context) (T, error)
	fulfilled func(T) []store.Action
	rejected  func(error) []store.Action
	// mapErr rewrites the error the task rejects with.
	mapErr func(error) error
}

// run dispatches the pending actions and starts the call. The returned task
// settles after the fulfilled or rejected actions have been dispatched. A
// panicking call still dispatches its rejection.
func run[T any](b *base, ctx context.Context, lc lifecycle[T]) *async.Task[T] {
	b.store.Dispatch(lc.pending...)

	call := async.Go(ctx, lc.call)
	return async.Then(call, func(value T, err error) (T, error) {
		b.observe(lc.op, err)
		if err != nil {
			if lc.rejected != nil {
				b.store.Dispatch(lc.rejected(err)...)
			}
			if lc.mapErr != nil {
				err = lc.mapErr(err)
			}
			var zero T
			return zero, err
		}
		if lc.fulfilled != nil {
			b.store.Dispatch(lc.fulfilled(value)...)
		}
		return value, nil
	})
}

func actions(a ...store.Action) []store.Action {
	return a
}
