package helpers

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"sync/atomic"
)

// ChaosMode defines the type of chaos to inject
type ChaosMode int

const (
	// ChaosNone forwards requests unchanged
	ChaosNone ChaosMode = iota

	// ChaosConnectionReset fails the round trip outright
	ChaosConnectionReset

	// ChaosPartialRead returns a body that fails after PartialReadBytes
	ChaosPartialRead

	// ChaosEmptyBody returns a 200 with no body
	ChaosEmptyBody

	// ChaosInvalidJSON returns a 200 with a body that is not JSON
	ChaosInvalidJSON
)

// ErrChaosReset is returned by ChaosConnectionReset.
var ErrChaosReset = errors.New("connection reset by peer")

// ErrChaosPartialRead is returned mid-body by ChaosPartialRead.
var ErrChaosPartialRead = errors.New("unexpected EOF during partial read")

// ChaosTransport is an http.RoundTripper that injects failures in front of
// Next, or answers directly when Next is nil.
type ChaosTransport struct {
	Mode ChaosMode

	// PartialReadBytes is how much of the body is delivered before failing
	PartialReadBytes int

	// Next handles ChaosNone and ChaosPartialRead. Defaults to http.DefaultTransport.
	Next http.RoundTripper

	requests uint64
}

// Requests returns the number of round trips attempted.
func (c *ChaosTransport) Requests() uint64 {
	return atomic.LoadUint64(&c.requests)
}

// Client returns an http.Client using this transport.
func (c *ChaosTransport) Client() *http.Client {
	return &http.Client{Transport: c}
}

// RoundTrip implements http.RoundTripper.
func (c *ChaosTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	atomic.AddUint64(&c.requests, 1)

	next := c.Next
	if next == nil {
		next = http.DefaultTransport
	}

	switch c.Mode {
	case ChaosConnectionReset:
		return nil, ErrChaosReset

	case ChaosEmptyBody:
		return syntheticResponse(req, ""), nil

	case ChaosInvalidJSON:
		return syntheticResponse(req, `{"items":[{"comment_id":1},`), nil

	case ChaosPartialRead:
		resp, err := next.RoundTrip(req)
		if err != nil {
			return nil, err
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, err
		}

		n := c.PartialReadBytes
		if n <= 0 || n >= len(body) {
			n = len(body) / 2
		}
		resp.Body = &partialReadCloser{reader: bytes.NewReader(body[:n])}
		resp.ContentLength = -1
		return resp, nil

	default:
		return next.RoundTrip(req)
	}
}

func syntheticResponse(req *http.Request, body string) *http.Response {
	return &http.Response{
		StatusCode:    http.StatusOK,
		Status:        "200 OK",
		Header:        http.Header{"Content-Type": {"application/json"}},
		Body:          io.NopCloser(bytes.NewReader([]byte(body))),
		ContentLength: int64(len(body)),
		Request:       req,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
	}
}

// partialReadCloser delivers its reader and then fails instead of returning EOF.
type partialReadCloser struct {
	reader *bytes.Reader
}

func (p *partialReadCloser) Read(b []byte) (int, error) {
	n, err := p.reader.Read(b)
	if err == io.EOF {
		return n, ErrChaosPartialRead
	}
	return n, err
}

func (p *partialReadCloser) Close() error {
	return nil
}
