// Package mockserver provides a configurable fake StackExchange API for tests.
package mockserver

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"time"
)

// Server is an httptest server that answers with canned responses per path
// and records every request it receives.
type Server struct {
	server *httptest.Server

	mu          sync.Mutex
	responses   map[string]*Response
	defaultResp *Response
	requestLog  []RequestEntry
	callCount   map[string]int
}

// RequestEntry logs incoming requests
type RequestEntry struct {
	Method    string
	Path      string
	Query     url.Values
	Headers   http.Header
	Timestamp time.Time
}

// Response defines a canned API response
type Response struct {
	Status  int
	Body    string
	Headers map[string]string
	Delay   time.Duration
}

// New starts a server whose default answer is an empty items wrapper.
func New() *Server {
	s := &Server{
		responses: make(map[string]*Response),
		callCount: make(map[string]int),
		defaultResp: &Response{
			Status: http.StatusOK,
			Body:   `{"items":[],"has_more":false,"quota_max":300,"quota_remaining":299}`,
		},
	}
	s.server = httptest.NewServer(s)
	return s
}

// URL returns the base URL of the server
func (s *Server) URL() string {
	return s.server.URL
}

// Client returns an http.Client wired to the server
func (s *Server) Client() *http.Client {
	return s.server.Client()
}

// Close shuts down the server
func (s *Server) Close() {
	s.server.Close()
}

// SetResponse configures a response for an exact request path
func (s *Server) SetResponse(path string, response *Response) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses[path] = response
}

// SetItems answers path with a wrapper holding the given items JSON array.
func (s *Server) SetItems(path, items string) {
	s.SetResponse(path, &Response{
		Status: http.StatusOK,
		Body:   fmt.Sprintf(`{"items":%s,"has_more":false,"quota_max":300,"quota_remaining":299}`, items),
	})
}

// SetError answers path with an API error wrapper.
func (s *Server) SetError(path string, status, errorID int, errorName, message string) {
	s.SetResponse(path, &Response{
		Status: status,
		Body:   fmt.Sprintf(`{"error_id":%d,"error_name":%q,"error_message":%q}`, errorID, errorName, message),
	})
}

// SetDefaultResponse configures the answer for paths with no response of their own
func (s *Server) SetDefaultResponse(response *Response) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaultResp = response
}

// CallCount returns how many requests hit path
func (s *Server) CallCount(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.callCount[path]
}

// TotalCalls returns the number of requests received on any path
func (s *Server) TotalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requestLog)
}

// RequestLog returns a copy of the request log
func (s *Server) RequestLog() []RequestEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RequestEntry{}, s.requestLog...)
}

// LastRequest returns the last request made to path
func (s *Server) LastRequest(path string) (*RequestEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := len(s.requestLog) - 1; i >= 0; i-- {
		if s.requestLog[i].Path == path {
			entry := s.requestLog[i]
			return &entry, nil
		}
	}

	return nil, fmt.Errorf("no requests found for path: %s", path)
}

// ServeHTTP implements http.Handler. Paths are matched verbatim, without
// cleaning, so repeated slashes stay significant.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.callCount[r.URL.Path]++
	s.requestLog = append(s.requestLog, RequestEntry{
		Method:    r.Method,
		Path:      r.URL.Path,
		Query:     r.URL.Query(),
		Headers:   r.Header.Clone(),
		Timestamp: time.Now(),
	})
	response, ok := s.responses[r.URL.Path]
	if !ok {
		response = s.defaultResp
	}
	s.mu.Unlock()

	if response.Delay > 0 {
		select {
		case <-time.After(response.Delay):
		case <-r.Context().Done():
			return
		}
	}

	for key, value := range response.Headers {
		w.Header().Set(key, value)
	}
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
	}

	status := response.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = w.Write([]byte(response.Body))
}
