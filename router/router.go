package router

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/xxxsen/nsdav/errs"
	"github.com/xxxsen/nsdav/render"
	"github.com/xxxsen/nsdav/transport"
)

const (
	DefaultBaseURL         = "https://dav.jianguoyun.com"
	DefaultDavPrefix       = "/dav"
	DefaultOperationPrefix = "/nsdav"

	contentTypeXML = "text/xml; charset=utf-8"
)

var davVerbs = map[string]struct{}{
	"PROPFIND":        {},
	"MKCOL":           {},
	http.MethodPut:    {},
	http.MethodGet:    {},
	"MOVE":            {},
	"COPY":            {},
	http.MethodDelete: {},
}

// Router turns calls into transport requests for one server.
type Router struct {
	davPrefix string
	davRoot   string
	opRoot    string
}

func New(baseURL string, opts ...Option) (*Router, error) {
	c := &config{
		davPrefix: DefaultDavPrefix,
		opPrefix:  DefaultOperationPrefix,
	}
	for _, opt := range opts {
		opt(c)
	}
	if len(baseURL) == 0 {
		baseURL = DefaultBaseURL
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url failed, err:%w", err)
	}
	if !base.IsAbs() || len(base.Host) == 0 {
		return nil, fmt.Errorf("base url should be absolute, url:%s", baseURL)
	}
	davRoot, err := join(base, c.davPrefix)
	if err != nil {
		return nil, err
	}
	opRoot, err := join(base, c.opPrefix)
	if err != nil {
		return nil, err
	}
	return &Router{
		davPrefix: strings.TrimRight(c.davPrefix, "/"),
		davRoot:   strings.TrimRight(davRoot, "/"),
		opRoot:    strings.TrimRight(opRoot, "/"),
	}, nil
}

func join(base *url.URL, prefix string) (string, error) {
	ref, err := url.Parse(prefix)
	if err != nil {
		return "", fmt.Errorf("parse prefix:%s failed, err:%w", prefix, err)
	}
	return base.ResolveReference(ref).String(), nil
}

func escape(p string) string {
	return (&url.URL{Path: p}).EscapedPath()
}

func checkPath(field string, p string) error {
	if !strings.HasPrefix(p, "/") {
		return errs.Invalid(field, "path should start with '/', path:%s", p)
	}
	return nil
}

// DavURL is the absolute url of path under the dav root.
func (r *Router) DavURL(p string) string {
	return r.davRoot + escape(p)
}

func (r *Router) OperationURL(op render.Operation) string {
	return r.opRoot + "/" + op.Name()
}

// Href is the server side form of path used inside operation bodies.
func (r *Router) Href(p string) string {
	return r.davPrefix + p
}

func newRequest(method string, u string, body []byte, cred transport.Credential) *transport.Request {
	return &transport.Request{
		Method:   method,
		URL:      u,
		Header:   make(http.Header),
		Body:     body,
		Username: cred.Username,
		Password: cred.Password,
	}
}

// Dav builds a path style request. PROPFIND lists one level deep.
func (r *Router) Dav(verb string, p string, body []byte, cred transport.Credential) (*transport.Request, error) {
	if _, ok := davVerbs[verb]; !ok || verb == "MOVE" || verb == "COPY" {
		return nil, errs.Invalid("verb", "unsupported verb:%s", verb)
	}
	if err := checkPath("path", p); err != nil {
		return nil, err
	}
	if len(body) != 0 && verb != http.MethodPut {
		return nil, errs.Invalid("body", "body not allowed for verb:%s", verb)
	}
	req := newRequest(verb, r.DavURL(p), body, cred)
	if verb == "PROPFIND" {
		req.Header.Set("Depth", "1")
	}
	return req, nil
}

// Transfer builds a MOVE or COPY from one path to another.
func (r *Router) Transfer(verb string, from string, to string, cred transport.Credential) (*transport.Request, error) {
	if verb != "MOVE" && verb != "COPY" {
		return nil, errs.Invalid("verb", "unsupported transfer verb:%s", verb)
	}
	if err := checkPath("from", from); err != nil {
		return nil, err
	}
	if err := checkPath("to", to); err != nil {
		return nil, err
	}
	req := newRequest(verb, r.DavURL(from), nil, cred)
	req.Header.Set("Destination", r.DavURL(to))
	return req, nil
}

// Operation renders args and builds the POST for it.
func (r *Router) Operation(args render.Args, cred transport.Credential) (*transport.Request, error) {
	body, err := render.Render(args)
	if err != nil {
		return nil, err
	}
	req := newRequest(http.MethodPost, r.OperationURL(args.Operation()), body, cred)
	req.Header.Set("Content-Type", contentTypeXML)
	return req, nil
}

// ResolveCredential picks override when set, then provider.
func ResolveCredential(override *transport.Credential, provider transport.CredentialProvider) (transport.Credential, error) {
	if override != nil && len(override.Username) != 0 {
		return *override, nil
	}
	if provider != nil {
		if cred, ok := provider.Credential(); ok {
			return cred, nil
		}
	}
	return transport.Credential{}, errs.ErrNoCredential
}
