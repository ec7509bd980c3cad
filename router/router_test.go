package router

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xxxsen/nsdav/errs"
	"github.com/xxxsen/nsdav/render"
	"github.com/xxxsen/nsdav/transport"
)

var testCred = transport.Credential{Username: "u", Password: "p"}

func TestNewDefaults(t *testing.T) {
	r, err := New("")
	require.NoError(t, err)
	assert.Equal(t, "https://dav.jianguoyun.com/dav/a", r.DavURL("/a"))
	assert.Equal(t, "https://dav.jianguoyun.com/nsdav/pubObject", r.OperationURL(render.OpPubObject))
	assert.Equal(t, "/dav/a", r.Href("/a"))
}

func TestNewCustomPrefix(t *testing.T) {
	r, err := New("http://127.0.0.1:8080/root/", WithDavPrefix("/webdav/"), WithOperationPrefix("ops"))
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8080/webdav/x", r.DavURL("/x"))
	assert.Equal(t, "http://127.0.0.1:8080/root/ops/delta", r.OperationURL(render.OpDelta))
	assert.Equal(t, "/webdav/x", r.Href("/x"))

	_, err = New("relative/path")
	assert.Error(t, err)
}

func TestDavRequest(t *testing.T) {
	r, err := New("https://dav.example.com")
	require.NoError(t, err)

	req, err := r.Dav("PROPFIND", "/my docs/", nil, testCred)
	require.NoError(t, err)
	assert.Equal(t, "https://dav.example.com/dav/my%20docs/", req.URL)
	assert.Equal(t, "1", req.Header.Get("Depth"))
	assert.Equal(t, "u", req.Username)
	assert.Equal(t, "p", req.Password)

	req, err = r.Dav(http.MethodPut, "/a.txt", []byte("x"), testCred)
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), req.Body)
	assert.Empty(t, req.Header.Get("Depth"))

	_, err = r.Dav(http.MethodGet, "/a.txt", []byte("x"), testCred)
	assert.True(t, errors.Is(err, errs.ErrInvalidArgument))
	_, err = r.Dav("PATCH", "/a.txt", nil, testCred)
	assert.True(t, errors.Is(err, errs.ErrInvalidArgument))
	_, err = r.Dav("MOVE", "/a.txt", nil, testCred)
	assert.True(t, errors.Is(err, errs.ErrInvalidArgument))
	_, err = r.Dav(http.MethodGet, "a.txt", nil, testCred)
	assert.True(t, errors.Is(err, errs.ErrInvalidArgument))
}

func TestTransferEscapesBothPaths(t *testing.T) {
	r, err := New("https://dav.example.com")
	require.NoError(t, err)
	req, err := r.Transfer("MOVE", "/a b.txt", "/c d.txt", testCred)
	require.NoError(t, err)
	assert.Equal(t, "https://dav.example.com/dav/a%20b.txt", req.URL)
	assert.Equal(t, "https://dav.example.com/dav/c%20d.txt", req.Header.Get("Destination"))
	assert.Empty(t, req.Header.Get("Overwrite"))

	_, err = r.Transfer("DELETE", "/a", "/b", testCred)
	assert.True(t, errors.Is(err, errs.ErrInvalidArgument))
	_, err = r.Transfer("COPY", "/a", "b", testCred)
	assert.True(t, errors.Is(err, errs.ErrInvalidArgument))
}

func TestOperationRequest(t *testing.T) {
	r, err := New("https://dav.example.com")
	require.NoError(t, err)
	req, err := r.Operation(&render.GetACLArgs{Href: r.Href("/a")}, testCred)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "https://dav.example.com/nsdav/getSandboxAcl", req.URL)
	assert.Equal(t, "text/xml; charset=utf-8", req.Header.Get("Content-Type"))
	assert.Contains(t, string(req.Body), "<s:href>/dav/a</s:href>")

	_, err = r.Operation(&render.GetACLArgs{}, testCred)
	assert.True(t, errors.Is(err, errs.ErrInvalidArgument))
}

func TestResolveCredential(t *testing.T) {
	cred, err := ResolveCredential(nil, transport.StaticCredential("cfg", "s"))
	require.NoError(t, err)
	assert.Equal(t, "cfg", cred.Username)

	cred, err = ResolveCredential(&transport.Credential{Username: "call", Password: "x"}, transport.StaticCredential("cfg", "s"))
	require.NoError(t, err)
	assert.Equal(t, "call", cred.Username)

	_, err = ResolveCredential(nil, nil)
	assert.True(t, errors.Is(err, errs.ErrNoCredential))
	_, err = ResolveCredential(&transport.Credential{}, transport.StaticCredential("", ""))
	assert.True(t, errors.Is(err, errs.ErrNoCredential))
}
