package transport

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingTransport struct {
	calls int
}

func (c *countingTransport) Do(ctx context.Context, req *Request) (*Response, error) {
	c.calls++
	return &Response{StatusCode: http.StatusOK, Body: []byte(req.Method)}, nil
}

type nativeAsync struct {
	countingTransport
	asyncCalls int
}

func (n *nativeAsync) Go(ctx context.Context, req *Request) <-chan Result {
	n.asyncCalls++
	ch := make(chan Result, 1)
	ch <- Result{Response: &Response{StatusCode: http.StatusCreated}}
	return ch
}

func TestGoFallsBackToDo(t *testing.T) {
	ct := &countingTransport{}
	res := <-Go(context.Background(), ct, &Request{Method: "GET"})
	require.NoError(t, res.Err)
	assert.Equal(t, "GET", string(res.Response.Body))
	assert.Equal(t, 1, ct.calls)
}

func TestGoPrefersNativeAsync(t *testing.T) {
	nt := &nativeAsync{}
	res := <-Go(context.Background(), nt, &Request{Method: "GET"})
	require.NoError(t, res.Err)
	assert.Equal(t, http.StatusCreated, res.Response.StatusCode)
	assert.Equal(t, 1, nt.asyncCalls)
	assert.Equal(t, 0, nt.calls)
}

func TestStaticCredential(t *testing.T) {
	cred, ok := StaticCredential("u", "p").Credential()
	assert.True(t, ok)
	assert.Equal(t, Credential{Username: "u", Password: "p"}, cred)

	_, ok = StaticCredential("", "p").Credential()
	assert.False(t, ok)
}

func TestHTTPTransportDo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pwd, ok := r.BasicAuth()
		if !ok || user != "u" || pwd != "p" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("X-Depth", r.Header.Get("Depth"))
		w.WriteHeader(207)
		_, _ = w.Write(append([]byte(r.Method+":"), body...))
	}))
	defer srv.Close()

	tr := NewHTTP(WithTimeout(5*time.Second), WithTracing(true))
	rsp, err := tr.Do(context.Background(), &Request{
		Method:   "PROPFIND",
		URL:      srv.URL + "/dav/",
		Header:   http.Header{"Depth": []string{"1"}},
		Body:     []byte("<x/>"),
		Username: "u",
		Password: "p",
	})
	require.NoError(t, err)
	assert.Equal(t, 207, rsp.StatusCode)
	assert.Equal(t, "1", rsp.Header.Get("X-Depth"))
	assert.Equal(t, "PROPFIND:<x/>", string(rsp.Body))

	rsp, err = tr.Do(context.Background(), &Request{Method: "GET", URL: srv.URL})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rsp.StatusCode)
}

func TestHTTPTransportCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewHTTP().Do(ctx, &Request{Method: "GET", URL: srv.URL})
	assert.Error(t, err)
}

func TestHTTPClientOptionLeavesCallerClient(t *testing.T) {
	cli := &http.Client{}
	tr := NewHTTP(WithHTTPClient(cli), WithTimeout(3*time.Second), WithTracing(true))
	assert.Equal(t, time.Duration(0), cli.Timeout)
	assert.Nil(t, cli.Transport)

	ht, ok := tr.(*httpTransport)
	require.True(t, ok)
	assert.NotSame(t, cli, ht.client)
	assert.Equal(t, 3*time.Second, ht.client.Timeout)
	assert.NotNil(t, ht.client.Transport)
}
