package client

import (
	"context"
	"fmt"

	"github.com/xxxsen/nsdav/transport"
)

// Future is the pending result of an AsyncClient call.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

func (f *Future[T]) resolve(v T, err error) *Future[T] {
	f.val = v
	f.err = err
	close(f.done)
	return f
}

// Done is closed once the result is available.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the result is ready or ctx ends. A canceled ctx does not cancel
// the call itself.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// submit starts cl, local failures resolve the future before any request is sent.
func submit[T any](ctx context.Context, c *core, cl *call[T], opts []CallOption) *Future[T] {
	f := newFuture[T]()
	var zero T
	tr, cred, err := c.prepare(opts)
	if err != nil {
		return f.resolve(zero, err)
	}
	req, err := cl.build(cred)
	if err != nil {
		return f.resolve(zero, err)
	}
	ch := transport.Go(ctx, tr, req)
	go func() {
		res := <-ch
		if res.Err != nil {
			logFailure(ctx, cl.name, res.Err)
			f.resolve(zero, fmt.Errorf("call %s failed, err:%w", cl.name, res.Err))
			return
		}
		if res.Response == nil {
			err := errNilResponse(cl.name)
			logFailure(ctx, cl.name, err)
			f.resolve(zero, err)
			return
		}
		v, err := cl.decode(res.Response)
		if err != nil {
			logFailure(ctx, cl.name, err)
		}
		f.resolve(v, err)
	}()
	return f
}
