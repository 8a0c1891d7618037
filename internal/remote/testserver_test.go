package remote

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/simpledav/simpledav/internal/davpath"
	"github.com/simpledav/simpledav/pkg/client"
)

// davServer is a minimal in-memory WebDAV server for tests: PROPFIND,
// MKCOL, DELETE, PUT, GET over two maps. It records every mutating
// request in order so tests can assert on request sequences. DELETE on a
// non-empty directory is rejected, matching the cooperative server the
// client targets.
type davServer struct {
	files map[string][]byte
	dirs  map[string]bool
	log   []string
}

func newDAVServer() *davServer {
	return &davServer{
		files: make(map[string][]byte),
		dirs:  map[string]bool{"/": true},
	}
}

// addDir registers a directory and all its ancestors.
func (s *davServer) addDir(p string) {
	for _, prefix := range ancestors(p) {
		s.dirs[prefix] = true
	}
}

// addFile registers a file, creating parent directories.
func (s *davServer) addFile(p string, content []byte) {
	s.addDir(parentPath(p))
	s.files[p] = content
}

func (s *davServer) deletes() []string {
	var out []string
	for _, l := range s.log {
		if strings.HasPrefix(l, "DELETE ") {
			out = append(out, strings.TrimPrefix(l, "DELETE "))
		}
	}
	return out
}

func (s *davServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p := cleanPath(r.URL.Path)

	switch r.Method {
	case "PROPFIND":
		s.propfind(w, r, p)
	case "MKCOL":
		s.log = append(s.log, "MKCOL "+p)
		s.mkcol(w, p)
	case http.MethodDelete:
		s.log = append(s.log, "DELETE "+p)
		s.delete(w, p)
	case http.MethodPut:
		s.log = append(s.log, "PUT "+p)
		s.put(w, r, p)
	case http.MethodGet:
		s.get(w, p)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *davServer) propfind(w http.ResponseWriter, r *http.Request, p string) {
	_, isFile := s.files[p]
	if !isFile && !s.dirs[p] {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="utf-8"?><D:multistatus xmlns:D="DAV:">`)
	if isFile {
		writeFileResponse(&b, p, int64(len(s.files[p])))
	} else {
		writeDirResponse(&b, p)
		if r.Header.Get("Depth") != "0" {
			for child := range s.dirs {
				if isChildOf(child, p) {
					writeDirResponse(&b, child)
				}
			}
			for child, content := range s.files {
				if isChildOf(child, p) {
					writeFileResponse(&b, child, int64(len(content)))
				}
			}
		}
	}
	b.WriteString(`</D:multistatus>`)

	w.WriteHeader(http.StatusMultiStatus)
	io.WriteString(w, b.String())
}

func (s *davServer) mkcol(w http.ResponseWriter, p string) {
	_, isFile := s.files[p]
	if isFile || s.dirs[p] {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !s.dirs[parentPath(p)] {
		w.WriteHeader(http.StatusConflict)
		return
	}
	s.dirs[p] = true
	w.WriteHeader(http.StatusCreated)
}

func (s *davServer) delete(w http.ResponseWriter, p string) {
	if _, ok := s.files[p]; ok {
		delete(s.files, p)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if !s.dirs[p] || p == "/" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	for child := range s.dirs {
		if isChildOf(child, p) {
			w.WriteHeader(http.StatusConflict)
			return
		}
	}
	for child := range s.files {
		if isChildOf(child, p) {
			w.WriteHeader(http.StatusConflict)
			return
		}
	}
	delete(s.dirs, p)
	w.WriteHeader(http.StatusNoContent)
}

func (s *davServer) put(w http.ResponseWriter, r *http.Request, p string) {
	if !s.dirs[parentPath(p)] {
		w.WriteHeader(http.StatusConflict)
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	s.files[p] = body
	w.WriteHeader(http.StatusCreated)
}

func (s *davServer) get(w http.ResponseWriter, p string) {
	content, ok := s.files[p]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Write(content)
}

func writeDirResponse(b *strings.Builder, p string) {
	href := (&url.URL{Path: p}).EscapedPath()
	if p != "/" {
		href += "/"
	}
	fmt.Fprintf(b, `<D:response><D:href>%s</D:href><D:propstat><D:prop>`+
		`<D:resourcetype><D:collection/></D:resourcetype>`+
		`</D:prop><D:status>HTTP/1.1 200 OK</D:status></D:propstat></D:response>`, href)
}

func writeFileResponse(b *strings.Builder, p string, size int64) {
	href := (&url.URL{Path: p}).EscapedPath()
	fmt.Fprintf(b, `<D:response><D:href>%s</D:href><D:propstat><D:prop>`+
		`<D:resourcetype/><D:getcontentlength>%d</D:getcontentlength>`+
		`</D:prop><D:status>HTTP/1.1 200 OK</D:status></D:propstat></D:response>`, href, size)
}

func cleanPath(p string) string {
	if p != "/" {
		p = strings.TrimSuffix(p, "/")
	}
	if p == "" {
		return "/"
	}
	return p
}

func parentPath(p string) string {
	if p == "/" {
		return "/"
	}
	idx := strings.LastIndex(p, "/")
	if idx <= 0 {
		return "/"
	}
	return p[:idx]
}

func ancestors(p string) []string {
	out := []string{"/"}
	cur := ""
	for _, seg := range strings.Split(strings.Trim(p, "/"), "/") {
		if seg == "" {
			continue
		}
		cur += "/" + seg
		out = append(out, cur)
	}
	return out
}

func isChildOf(p, dir string) bool {
	if dir == "/" {
		return p != "/" && !strings.Contains(strings.Trim(p, "/"), "/")
	}
	if !strings.HasPrefix(p, dir+"/") {
		return false
	}
	return !strings.Contains(p[len(dir)+1:], "/")
}

// newTestSetup starts the fake server and points a real client at it.
func newTestSetup(t *testing.T) (*davServer, *client.Client) {
	t.Helper()
	srv := newDAVServer()
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	host, portStr, err := net.SplitHostPort(ts.Listener.Addr().String())
	if err != nil {
		t.Fatalf("split host port: %v", err)
	}
	port, _ := strconv.Atoi(portStr)
	return srv, client.New(host, port)
}

func mustParse(t *testing.T, raw string) davpath.Token {
	t.Helper()
	tok, err := davpath.Parse(raw)
	if err != nil {
		t.Fatalf("Parse(%q): %v", raw, err)
	}
	return tok
}
