package pages

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// task is the background work of one visit to a screen. Stop cancels it
// and waits for every goroutine.
type task struct {
	ctx    context.Context
	cancel context.CancelFunc
	g      *errgroup.Group
}

func startTask(parent context.Context) *task {
	ctx, cancel := context.WithCancel(parent)
	g, ctx := errgroup.WithContext(ctx)
	return &task{ctx: ctx, cancel: cancel, g: g}
}

// Go runs fn in the group. An error from fn cancels the others.
func (t *task) Go(fn func(ctx context.Context) error) {
	t.g.Go(func() error { return fn(t.ctx) })
}

// Stop cancels the task and returns the first error other than
// cancellation. It is safe on a nil task.
func (t *task) Stop() error {
	if t == nil {
		return nil
	}
	t.cancel()
	err := t.g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
