package nstest

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doRequest(t *testing.T, s *Server, method string, p string, body string, user string, password string) (int, string) {
	req, err := http.NewRequest(method, s.URL+p, strings.NewReader(body))
	require.NoError(t, err)
	req.SetBasicAuth(user, password)
	rsp, err := s.Client().Do(req)
	require.NoError(t, err)
	defer rsp.Body.Close()
	raw, err := io.ReadAll(rsp.Body)
	require.NoError(t, err)
	return rsp.StatusCode, string(raw)
}

func TestServerAuth(t *testing.T) {
	s := New("u", "p")
	defer s.Close()
	code, _ := doRequest(t, s, "PROPFIND", "/dav/", "", "u", "bad")
	assert.Equal(t, http.StatusUnauthorized, code)
	code, _ = doRequest(t, s, "PROPFIND", "/dav/", "", "u", "p")
	assert.Equal(t, http.StatusMultiStatus, code)
}

func TestServerPutOverwrite(t *testing.T) {
	s := New("u", "p")
	defer s.Close()
	code, _ := doRequest(t, s, http.MethodPut, "/dav/a.txt", "1", "u", "p")
	assert.Equal(t, http.StatusCreated, code)
	code, _ = doRequest(t, s, http.MethodPut, "/dav/a.txt", "22", "u", "p")
	assert.Equal(t, http.StatusNoContent, code)
	assert.Equal(t, 2, len(s.st.history))
	assert.Equal(t, int64(2), s.st.history[1].revision)
	assert.Equal(t, 2, len(s.st.activities))
}

func TestServerOperationErrors(t *testing.T) {
	s := New("u", "p")
	defer s.Close()
	code, body := doRequest(t, s, http.MethodPost, "/nsdav/noSuchOp", "<a/>", "u", "p")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Contains(t, body, "UnknownOperation")

	code, body = doRequest(t, s, http.MethodPost, "/nsdav/getSandboxAcl", "<broken", "u", "p")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, body, "MalformedXml")

	s.Reply("getUserInfo", http.StatusTeapot, "<x/>")
	code, body = doRequest(t, s, http.MethodPost, "/nsdav/getUserInfo", "<s:user_info/>", "u", "p")
	assert.Equal(t, http.StatusTeapot, code)
	assert.Equal(t, "<x/>", body)
}

func TestServerPublish(t *testing.T) {
	s := New("u", "p")
	defer s.Close()
	require.NoError(t, s.Put("/src.txt", []byte("data")))
	code, body := doRequest(t, s, http.MethodPost, "/nsdav/pubObject", "<s:publish><s:href>/dav/src.txt</s:href></s:publish>", "u", "p")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, s.URL+"/p/")
	assert.Equal(t, 1, len(s.st.shares))
	assert.Empty(t, s.st.history)
}
