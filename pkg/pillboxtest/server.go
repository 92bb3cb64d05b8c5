// Package pillboxtest provides an in-process fake of the Pillbox service for
// tests.
//
// The fake records every query it receives and answers with a canned body,
// so tests can check both what a client sends and how it handles what comes
// back:
//
//	srv := pillboxtest.NewServer()
//	defer srv.Close()
//	srv.RespondWithPills(pillboxtest.Fields{"SPLCOLOR": "C48333"})
//
//	client, _ := pillbox.New("key", pillbox.WithBaseURL(srv.Endpoint()))
package pillboxtest

import (
	"bytes"
	"encoding/xml"
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"sync"

	"github.com/go-chi/chi/v5"
)

// Path is the endpoint path of the real service.
const Path = "/PHP/pillboxAPIService.php"

// NoRecordsFound is the body the service sends for an empty result.
const NoRecordsFound = "No records found"

// Fields are the tag/text pairs of one <pill> element.
type Fields map[string]string

// Server is a fake Pillbox endpoint. It is safe for concurrent use.
type Server struct {
	*httptest.Server

	mu      sync.Mutex
	status  int
	body    string
	queries []url.Values
}

// NewServer starts a fake that answers every search with [NoRecordsFound].
func NewServer() *Server {
	s := &Server{status: http.StatusOK, body: NoRecordsFound}

	r := chi.NewRouter()
	r.Get(Path, s.search)
	s.Server = httptest.NewServer(r)
	return s
}

// Endpoint returns the full search URL to hand to a client.
func (s *Server) Endpoint() string { return s.URL + Path }

// RespondWith makes subsequent searches return body with status 200.
func (s *Server) RespondWith(body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status, s.body = http.StatusOK, body
}

// RespondWithPills makes subsequent searches return an XML document holding pills.
func (s *Server) RespondWithPills(pills ...Fields) {
	s.RespondWith(PillsXML(pills...))
}

// RespondWithStatus makes subsequent searches fail with the given status.
func (s *Server) RespondWithStatus(code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status, s.body = code, http.StatusText(code)
}

// Queries returns the query of every request received so far, oldest first.
func (s *Server) Queries() []url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.queries)
}

// LastQuery returns the most recent query, or nil if none was received.
func (s *Server) LastQuery() url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queries) == 0 {
		return nil
	}
	return s.queries[len(s.queries)-1]
}

// Requests returns the number of searches received.
func (s *Server) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queries)
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.queries = append(s.queries, r.URL.Query())
	status, body := s.status, s.body
	s.mu.Unlock()

	if body != NoRecordsFound {
		w.Header().Set("Content-Type", "text/xml; charset=utf-8")
	}
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// PillsXML renders pills the way the service does: a <Pills> root with one
// <pill> element per entry, children sorted by tag.
func PillsXML(pills ...Fields) string {
	var b bytes.Buffer
	b.WriteString(xml.Header)
	b.WriteString("<Pills>\n")
	for _, p := range pills {
		b.WriteString("  <pill>\n")
		tags := make([]string, 0, len(p))
		for tag := range p {
			tags = append(tags, tag)
		}
		slices.Sort(tags)
		for _, tag := range tags {
			b.WriteString("    <" + tag + ">")
			_ = xml.EscapeText(&b, []byte(p[tag]))
			b.WriteString("</" + tag + ">\n")
		}
		b.WriteString("  </pill>\n")
	}
	b.WriteString("</Pills>\n")
	return b.String()
}
