package transport

import (
	"context"
	"net/http"
)

// Request is one fully built http exchange. Body is sent as is, an empty Username
// means no basic auth.
type Request struct {
	Method   string
	URL      string
	Header   http.Header
	Body     []byte
	Username string
	Password string
}

type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Transport carries requests for the blocking client. Cancellation, timeout and retry
// policy all live in the implementation. A non nil error is handed back to the caller
// wrapped as "call <op> failed, err:%w", so errors.Is/As still see the original; a nil
// error must come with a non nil Response.
type Transport interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

type Result struct {
	Response *Response
	Err      error
}

// AsyncTransport is implemented by transports with their own non blocking dispatch.
// The returned channel yields exactly one Result.
type AsyncTransport interface {
	Go(ctx context.Context, req *Request) <-chan Result
}

// Go dispatches req without blocking, through t.Go when t implements AsyncTransport.
func Go(ctx context.Context, t Transport, req *Request) <-chan Result {
	if at, ok := t.(AsyncTransport); ok {
		return at.Go(ctx, req)
	}
	ch := make(chan Result, 1)
	go func() {
		rsp, err := t.Do(ctx, req)
		ch <- Result{Response: rsp, Err: err}
	}()
	return ch
}
