// Package async runs action lifecycles as futures that always settle.
package async

import (
	"context"
	"fmt"
	"sync"
)

// Status is the lifecycle stage of a Task.
type Status int

const (
	Pending Status = iota
	Fulfilled
	Rejected
)

func (s Status) String() string {
	switch s {
	case Fulfilled:
		return "fulfilled"
	case Rejected:
		return "rejected"
	default:
		return "pending"
	}
}

// PanicError is the rejection reason of a task whose function panicked.
type PanicError struct {
	Value interface{}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("task panicked: %v", e.Value)
}

// Task is the eventual result of an asynchronous call.
type Task[T any] struct {
	done   chan struct{}
	mu     sync.RWMutex
	status Status
	value  T
	err    error
}

func newTask[T any]() *Task[T] {
	return &Task[T]{done: make(chan struct{})}
}

// Go runs fn on a new goroutine. A panic inside fn rejects the task with a
// *PanicError instead of crashing the process.
func Go[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) *Task[T] {
	t := newTask[T]()
	go func() {
		var (
			value T
			err   error
		)
		defer func() {
			if r := recover(); r != nil {
				var zero T
				t.settle(zero, &PanicError{Value: r})
				return
			}
			t.settle(value, err)
		}()
		value, err = fn(ctx)
	}()
	return t
}

// Resolved returns an already fulfilled task.
func Resolved[T any](value T) *Task[T] {
	t := newTask[T]()
	t.settle(value, nil)
	return t
}

// Failed returns an already rejected task.
func Failed[T any](err error) *Task[T] {
	t := newTask[T]()
	var zero T
	t.settle(zero, err)
	return t
}

func (t *Task[T]) settle(value T, err error) {
	t.mu.Lock()
	t.value, t.err = value, err
	if err != nil {
		t.status = Rejected
	} else {
		t.status = Fulfilled
	}
	t.mu.Unlock()
	close(t.done)
}

// Done is closed once the task settles.
func (t *Task[T]) Done() <-chan struct{} {
	return t.done
}

// Status reports the current lifecycle stage.
func (t *Task[T]) Status() Status {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.status
}

// Wait blocks until the task settles.
func (t *Task[T]) Wait() (T, error) {
	<-t.done
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.value, t.err
}

// Await is Wait bounded by ctx. The task keeps running if ctx ends first.
func (t *Task[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-t.done:
		return t.Wait()
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Then chains fn onto t's settlement.
func Then[T, U any](t *Task[T], fn func(T, error) (U, error)) *Task[U] {
	return Go(context.Background(), func(context.Context) (U, error) {
		return fn(t.Wait())
	})
}
