package stackexchange

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/jamesprial/go-stackexchange-api-wrapper/internal"
	pkgerrs "github.com/jamesprial/go-stackexchange-api-wrapper/pkg/errors"
	"github.com/jamesprial/go-stackexchange-api-wrapper/pkg/types"
)

// Request is one call of a bound Fetcher with concrete ids and query parameters.
//
// Nothing is sent until the first of Text, Bytes, JSON, Decode, Wrapper, URL or
// StatusCode is called. That call performs the GET with its context. Once a
// response arrives, it is reused by every later call on the same Request,
// together with the *APIError of a non-2xx status. Transport and context
// errors are not kept; the next call sends the request again.
type Request struct {
	path    string
	params  url.Values
	fetcher *Fetcher

	result *internal.Once[fetched]
}

// fetched is a response that arrived, with the error it was reported with.
type fetched struct {
	resp *internal.Response
	err  error
}

func newRequest(path string, params url.Values, fetcher *Fetcher) *Request {
	return &Request{
		path:    path,
		params:  params,
		fetcher: fetcher,
		result:  internal.NewOnce[fetched](),
	}
}

// Path returns the composed endpoint path, without query parameters.
func (r *Request) Path() string {
	return r.path
}

// Params returns a copy of the query parameters that will be sent.
func (r *Request) Params() url.Values {
	out := make(url.Values, len(r.params))
	for k, vs := range r.params {
		out[k] = append([]string(nil), vs...)
	}
	return out
}

// Site returns the value of the site query parameter.
func (r *Request) Site() string {
	return r.params.Get("site")
}

// Fetcher returns the bound Fetcher that produced this request.
func (r *Request) Fetcher() *Fetcher {
	return r.fetcher
}

// Fetched reports whether a response has been received.
func (r *Request) Fetched() bool {
	return r.result.Done()
}

// Child returns the sub-endpoint name of the producing Fetcher, bound to this
// request so that its path continues from Path().
func (r *Request) Child(name string) (*Fetcher, error) {
	child, ok := r.fetcher.children[name]
	if !ok {
		return nil, &pkgerrs.NoSuchChildError{Endpoint: r.fetcher.name, Child: name, Available: r.fetcher.Children()}
	}
	return child.accessVia(requestOwner(r)), nil
}

func (r *Request) fetch(ctx context.Context) (*internal.Response, error) {
	f, err := r.result.Do(ctx, func(ctx context.Context) (fetched, error) {
		api, err := r.fetcher.API()
		if err != nil {
			return fetched{}, err
		}
		resp, err := api.transport.Get(ctx, r.path, r.params)
		if resp == nil {
			return fetched{}, err
		}
		return fetched{resp: resp, err: err}, nil
	})
	if err != nil {
		return nil, err
	}
	return f.resp, f.err
}

// Bytes returns the raw response body.
func (r *Request) Bytes(ctx context.Context) ([]byte, error) {
	resp, err := r.fetch(ctx)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// Text returns the response body as a string.
func (r *Request) Text(ctx context.Context) (string, error) {
	body, err := r.Bytes(ctx)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// JSON decodes the response body into a tree of map[string]any, []any and
// scalars. Numbers are returned as json.Number.
func (r *Request) JSON(ctx context.Context) (any, error) {
	resp, err := r.fetch(ctx)
	if err != nil {
		return nil, err
	}

	v, err := internal.NewParser().ParseAny(resp.Body)
	if err != nil {
		return nil, &pkgerrs.DecodeError{URL: resp.URL, Err: err}
	}
	return v, nil
}

// Decode unmarshals the response body into v.
func (r *Request) Decode(ctx context.Context, v any) error {
	resp, err := r.fetch(ctx)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(resp.Body, v); err != nil {
		return &pkgerrs.DecodeError{URL: resp.URL, Err: err}
	}
	return nil
}

// Wrapper decodes the common StackExchange response envelope.
func (r *Request) Wrapper(ctx context.Context) (*types.Wrapper, error) {
	resp, err := r.fetch(ctx)
	if err != nil {
		return nil, err
	}

	w, err := internal.NewParser().ParseWrapper(resp.Body)
	if err != nil {
		return nil, &pkgerrs.DecodeError{URL: resp.URL, Err: err}
	}
	return w, nil
}

// URL returns the URL the request was sent to, after redirects.
func (r *Request) URL(ctx context.Context) (string, error) {
	resp, err := r.fetch(ctx)
	if err != nil {
		return "", err
	}
	return resp.URL, nil
}

// StatusCode returns the HTTP status code of the response.
func (r *Request) StatusCode(ctx context.Context) (int, error) {
	resp, err := r.fetch(ctx)
	if err != nil {
		return 0, err
	}
	return resp.StatusCode, nil
}

func (r *Request) String() string {
	return fmt.Sprintf("<Request '%s' %s?%s>", r.fetcher.name, r.path, r.params.Encode())
}

// DecodeItems fetches r and decodes the items of the response envelope as T.
//
//	answers, err := stackexchange.DecodeItems[types.Answer](ctx, req)
func DecodeItems[T any](ctx context.Context, r *Request) ([]T, error) {
	w, err := r.Wrapper(ctx)
	if err != nil {
		return nil, err
	}

	items, err := internal.ExtractItems[T](w)
	if err != nil {
		u, _ := r.URL(ctx)
		return nil, &pkgerrs.DecodeError{URL: u, Err: err}
	}
	return items, nil
}
