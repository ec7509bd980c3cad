// Package nstest runs an in-process fake of the Nutstore dav service for tests.
package nstest

import (
	"encoding/xml"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/net/webdav"
)

const (
	DavPrefix       = "/dav"
	OperationPrefix = "/nsdav"
	namespace       = "http://ns.jianguoyun.com"
)

func init() {
	gin.SetMode(gin.ReleaseMode)
}

var davMethods = []string{
	"OPTIONS", "PROPFIND", "PROPPATCH", "MKCOL", "GET", "HEAD", "PUT",
	"DELETE", "COPY", "MOVE", "LOCK", "UNLOCK",
}

// OpHandler answers one operation post. A nil doc sends an empty body.
type OpHandler func(s *Server, c *gin.Context, req *OpRequest) (int, interface{})

// Server is a fake dav service, the dav namespace is served from memory and operations
// are answered from a small in-memory team model.
type Server struct {
	*httptest.Server

	user     string
	password string
	fs       webdav.FileSystem

	mu       sync.Mutex
	handlers map[string]OpHandler
	st       *state
}

func New(user string, password string) *Server {
	s := &Server{
		user:     user,
		password: password,
		fs:       webdav.NewMemFS(),
		handlers: defaultHandlers(),
		st:       newState(user),
	}
	s.Server = httptest.NewServer(s.engine())
	return s
}

func (s *Server) engine() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	authed := engine.Group("/", gin.BasicAuth(gin.Accounts{s.user: s.password}))

	dav := &webdav.Handler{
		Prefix:     DavPrefix,
		FileSystem: s.fs,
		LockSystem: webdav.NewMemLS(),
	}
	davRouter := authed.Group(DavPrefix, s.recordChange)
	for _, method := range davMethods {
		davRouter.Handle(method, "/*path", gin.WrapH(dav))
	}
	authed.POST(OperationPrefix+"/:op", s.handleOperation)
	return engine
}

// Handle replaces the handler of operation op.
func (s *Server) Handle(op string, h OpHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[op] = h
}

// Reply makes operation op always answer with status and raw body.
func (s *Server) Reply(op string, status int, body string) {
	s.Handle(op, func(s *Server, c *gin.Context, req *OpRequest) (int, interface{}) {
		return status, rawBody(body)
	})
}

// BreakHistory makes the delta feed report reset=false.
func (s *Server) BreakHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.reset = false
}

// FileSystem exposes the backing dav store.
func (s *Server) FileSystem() webdav.FileSystem {
	return s.fs
}

type rawBody string

func (s *Server) handleOperation(c *gin.Context) {
	op := c.Param("op")
	s.mu.Lock()
	h, ok := s.handlers[op]
	s.mu.Unlock()
	if !ok {
		writeDoc(c, http.StatusNotFound, newFault("UnknownOperation", "operation not supported:"+op))
		return
	}
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		writeDoc(c, http.StatusBadRequest, newFault("BadRequest", err.Error()))
		return
	}
	req := &OpRequest{}
	if err := xml.Unmarshal(raw, req); err != nil {
		writeDoc(c, http.StatusBadRequest, newFault("MalformedXml", err.Error()))
		return
	}
	s.mu.Lock()
	code, doc := h(s, c, req)
	s.mu.Unlock()
	writeDoc(c, code, doc)
}

func writeDoc(c *gin.Context, code int, doc interface{}) {
	if doc == nil {
		c.Status(code)
		return
	}
	if raw, ok := doc.(rawBody); ok {
		c.Data(code, "text/xml; charset=utf-8", []byte(raw))
		return
	}
	body, err := xml.Marshal(doc)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(code, "text/xml; charset=utf-8", append([]byte(xml.Header), body...))
}

var changeOps = map[string]string{
	http.MethodPut:    "UPLOAD",
	http.MethodGet:    "DOWNLOAD",
	http.MethodDelete: "DELETE",
	"MOVE":            "MOVE",
	"COPY":            "UPLOAD",
	"MKCOL":           "UPLOAD",
}

// recordChange feeds successful dav writes into the delta feed and every tracked
// method into the audit log.
func (s *Server) recordChange(c *gin.Context) {
	method := c.Request.Method
	p := strings.TrimPrefix(c.Request.URL.Path, DavPrefix)
	if method == http.MethodPut {
		if _, err := s.fs.Stat(c.Request.Context(), p); err == nil {
			c.Writer = &statusRewriter{ResponseWriter: c.Writer, from: http.StatusCreated, to: http.StatusNoContent}
		}
	}
	c.Next()
	opType, tracked := changeOps[method]
	if !tracked || c.Writer.Status() >= 300 {
		return
	}
	user, _, _ := c.Request.BasicAuth()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.addActivity(user, opType, c.ClientIP())
	switch method {
	case http.MethodGet:
	case http.MethodDelete:
		s.st.addHistory(p, true, false, 0)
	case "MKCOL":
		s.st.addHistory(p, false, true, 0)
	case "MOVE":
		s.st.addHistory(p, true, false, 0)
		s.st.addHistory(destPath(c.GetHeader("Destination")), false, false, 0)
	case "COPY":
		s.st.addHistory(destPath(c.GetHeader("Destination")), false, false, 0)
	default:
		s.st.addHistory(p, false, false, c.Request.ContentLength)
	}
}

func destPath(dst string) string {
	idx := strings.Index(dst, DavPrefix+"/")
	if idx < 0 {
		return dst
	}
	p := dst[idx+len(DavPrefix):]
	if un, err := url.PathUnescape(p); err == nil {
		return un
	}
	return p
}

// statusRewriter answers an overwriting PUT with 204 like the real service, the
// in-memory dav handler always says 201.
type statusRewriter struct {
	gin.ResponseWriter
	from int
	to   int
}

func (w *statusRewriter) WriteHeader(code int) {
	if code == w.from {
		code = w.to
	}
	w.ResponseWriter.WriteHeader(code)
}
