package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const defaultTimeout = 30 * time.Second

func newDefaultHTTPClient() *http.Client {
	return &http.Client{
		Timeout: defaultTimeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			IdleConnTimeout:     20 * time.Second,
			MaxIdleConns:        5,
			MaxIdleConnsPerHost: 1,
		},
	}
}

type httpTransport struct {
	client *http.Client
}

// NewHTTP builds the net/http backed transport.
func NewHTTP(opts ...Option) Transport {
	c := &config{}
	for _, opt := range opts {
		opt(c)
	}
	var cli *http.Client
	if c.client != nil {
		cp := *c.client
		cli = &cp
	} else {
		cli = newDefaultHTTPClient()
	}
	if c.timeout > 0 {
		cli.Timeout = c.timeout
	}
	if c.tracing {
		base := cli.Transport
		if base == nil {
			base = http.DefaultTransport
		}
		cli.Transport = otelhttp.NewTransport(base)
	}
	return &httpTransport{client: cli}
}

func (h *httpTransport) Do(ctx context.Context, req *Request) (*Response, error) {
	hreq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, bytes.NewReader(req.Body))
	if err != nil {
		return nil, fmt.Errorf("build http request failed, err:%w", err)
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			hreq.Header.Add(k, v)
		}
	}
	if len(req.Username) != 0 {
		hreq.SetBasicAuth(req.Username, req.Password)
	}
	start := time.Now()
	rsp, err := h.client.Do(hreq)
	if err != nil {
		logutil.GetLogger(ctx).Error("send request failed", zap.String("method", req.Method),
			zap.String("url", req.URL), zap.Error(err))
		return nil, err
	}
	defer rsp.Body.Close()
	body, err := io.ReadAll(rsp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body failed, err:%w", err)
	}
	logutil.GetLogger(ctx).Debug("request finish", zap.String("method", req.Method), zap.String("url", req.URL),
		zap.Int("status", rsp.StatusCode), zap.Int("body_size", len(body)), zap.Duration("cost", time.Since(start)))
	return &Response{
		StatusCode: rsp.StatusCode,
		Header:     rsp.Header,
		Body:       body,
	}, nil
}
