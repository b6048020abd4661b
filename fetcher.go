package stackexchange

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	pkgerrs "github.com/jamesprial/go-stackexchange-api-wrapper/pkg/errors"
)

// argSeparator joins multiple ids in one path segment, e.g. /questions/1;2;3.
const argSeparator = ";"

// ownerKind tags which of the three owner types a Fetcher is bound to.
type ownerKind int

const (
	ownerNone ownerKind = iota
	ownerAPI
	ownerFetcher
	ownerRequest
)

// owner is the binding parent of a Fetcher. Exactly one pointer matches kind.
type owner struct {
	kind    ownerKind
	api     *API
	fetcher *Fetcher
	request *Request
}

func apiOwner(a *API) owner {
	if a == nil {
		return owner{}
	}
	return owner{kind: ownerAPI, api: a}
}

func fetcherOwner(f *Fetcher) owner {
	if f == nil {
		return owner{}
	}
	return owner{kind: ownerFetcher, fetcher: f}
}

func requestOwner(r *Request) owner {
	if r == nil {
		return owner{}
	}
	return owner{kind: ownerRequest, request: r}
}

func (o owner) String() string {
	switch o.kind {
	case ownerAPI:
		return o.api.String()
	case ownerFetcher:
		return o.fetcher.String()
	case ownerRequest:
		return o.request.String()
	}
	return "<nil>"
}

// Fetcher describes one endpoint path segment, how many positional ids it
// accepts, and its sub-endpoints.
//
// Declared Fetchers are templates: they are never modified after declaration.
// Reading one through an owner (an *API, another *Fetcher or a *Request)
// produces a fresh bound copy, so bound state never leaks between owners.
type Fetcher struct {
	name     string
	segment  string
	minArgs  int
	maxArgs  int
	owner    owner
	children map[string]*Fetcher
}

// FetcherOption configures a Fetcher at declaration time.
type FetcherOption func(*Fetcher)

// WithName sets the display name. Defaults to the path segment.
func WithName(name string) FetcherOption {
	return func(f *Fetcher) {
		f.name = name
	}
}

// WithArgs sets the inclusive bounds on the number of positional ids.
func WithArgs(minArgs, maxArgs int) FetcherOption {
	return func(f *Fetcher) {
		f.minArgs = minArgs
		f.maxArgs = maxArgs
	}
}

// WithMaxArgs allows between zero and maxArgs positional ids.
func WithMaxArgs(maxArgs int) FetcherOption {
	return WithArgs(0, maxArgs)
}

// WithChild declares a sub-endpoint reachable as name. The child is copied and
// takes name as its display name.
func WithChild(name string, child *Fetcher) FetcherOption {
	return func(f *Fetcher) {
		if child == nil {
			return
		}
		c := child.bind(owner{})
		c.name = name
		if f.children == nil {
			f.children = make(map[string]*Fetcher)
		}
		f.children[name] = c
	}
}

// NewFetcher declares an unbound endpoint for the given path segment. With no
// options it accepts no positional ids and has no children.
func NewFetcher(segment string, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		name:    segment,
		segment: segment,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Name returns the display name.
func (f *Fetcher) Name() string {
	return f.name
}

// Segment returns the path fragment this Fetcher contributes.
func (f *Fetcher) Segment() string {
	return f.segment
}

// ArgBounds returns the inclusive bounds on positional ids.
func (f *Fetcher) ArgBounds() (minArgs, maxArgs int) {
	return f.minArgs, f.maxArgs
}

// IsBound reports whether the Fetcher has a binding parent.
func (f *Fetcher) IsBound() bool {
	return f.owner.kind != ownerNone
}

// bind returns a copy of f owned by o. Every child is re-bound to the new copy,
// recursively, so the whole subtree hangs off the new owner.
func (f *Fetcher) bind(o owner) *Fetcher {
	b := &Fetcher{
		name:    f.name,
		segment: f.segment,
		minArgs: f.minArgs,
		maxArgs: f.maxArgs,
		owner:   o,
	}
	if len(f.children) > 0 {
		b.children = make(map[string]*Fetcher, len(f.children))
		self := fetcherOwner(b)
		for name, child := range f.children {
			b.children[name] = child.bind(self)
		}
	}
	return b
}

// BindAPI returns a copy of f bound to the API root a.
func (f *Fetcher) BindAPI(a *API) *Fetcher {
	return f.bind(apiOwner(a))
}

// BindFetcher returns a copy of f bound to parent. Its path is resolved
// below parent's own path.
func (f *Fetcher) BindFetcher(parent *Fetcher) *Fetcher {
	return f.bind(fetcherOwner(parent))
}

// BindRequest returns a copy of f bound to r. Its path is resolved below the
// request path and it inherits the request's site.
func (f *Fetcher) BindRequest(r *Request) *Fetcher {
	return f.bind(requestOwner(r))
}

// accessVia is what reading f off o yields. With no owner the template itself
// is returned; a Fetcher owner hands over its own binding parent, so siblings
// share a parent instead of nesting under each other.
func (f *Fetcher) accessVia(o owner) *Fetcher {
	switch o.kind {
	case ownerAPI, ownerRequest:
		return f.bind(o)
	case ownerFetcher:
		return f.bind(o.fetcher.owner)
	}
	return f
}

// SiblingOf returns f bound to the same parent as other.
func (f *Fetcher) SiblingOf(other *Fetcher) *Fetcher {
	return f.accessVia(fetcherOwner(other))
}

// Children returns the names of the declared sub-endpoints, sorted.
func (f *Fetcher) Children() []string {
	names := make([]string, 0, len(f.children))
	for name := range f.children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Child returns a fresh copy of the sub-endpoint declared as name, bound to f.
func (f *Fetcher) Child(name string) (*Fetcher, error) {
	child, ok := f.children[name]
	if !ok {
		return nil, &pkgerrs.NoSuchChildError{Endpoint: f.name, Child: name, Available: f.Children()}
	}
	return child.bind(fetcherOwner(f)), nil
}

// Path returns the full URL path for this endpoint with args as its ids.
func (f *Fetcher) Path(args ...any) (string, error) {
	if len(args) > f.maxArgs || len(args) < f.minArgs {
		return "", &pkgerrs.ArgumentCountError{Endpoint: f.name, Min: f.minArgs, Max: f.maxArgs, Got: len(args)}
	}

	suffix := "/" + f.segment + "/" + joinArgs(args)

	switch f.owner.kind {
	case ownerFetcher:
		parent, err := f.owner.fetcher.Path()
		if err != nil {
			return "", err
		}
		return parent + suffix, nil
	case ownerAPI:
		return f.owner.api.baseURL + f.segment + "/" + joinArgs(args), nil
	case ownerRequest:
		return f.owner.request.path + suffix, nil
	}

	return "", &pkgerrs.UnboundFetchError{Endpoint: f.name, Operation: "resolve path"}
}

// API walks the binding chain up to the API root.
func (f *Fetcher) API() (*API, error) {
	switch f.owner.kind {
	case ownerAPI:
		return f.owner.api, nil
	case ownerFetcher:
		return f.owner.fetcher.API()
	case ownerRequest:
		return f.owner.request.fetcher.API()
	}
	return nil, &pkgerrs.UnboundFetchError{Endpoint: f.name, Operation: "find api"}
}

// Call builds a Request for this endpoint with args as its ids.
func (f *Fetcher) Call(args ...any) (*Request, error) {
	return f.CallWithParams(nil, args...)
}

// CallWithParams is like Call and also sends params as query parameters.
// The site parameter is always set from the owner chain: a Request owner
// passes on its own site, otherwise the API root's site is used.
func (f *Fetcher) CallWithParams(params url.Values, args ...any) (*Request, error) {
	path, err := f.Path(args...)
	if err != nil {
		return nil, err
	}

	query := make(url.Values, len(params)+1)
	for k, vs := range params {
		query[k] = append([]string(nil), vs...)
	}

	switch f.owner.kind {
	case ownerRequest:
		query.Set("site", f.owner.request.params.Get("site"))
	default:
		api, err := f.API()
		if err != nil {
			return nil, err
		}
		query.Set("site", api.site)
	}

	return newRequest(path, query, f), nil
}

func (f *Fetcher) String() string {
	if f.owner.kind == ownerNone {
		return fmt.Sprintf("<unbound Fetcher '%s'>", f.name)
	}
	return fmt.Sprintf("<bound Fetcher '%s' (bound to %s)>", f.name, f.owner)
}

func joinArgs(args []any) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = fmt.Sprint(arg)
	}
	return strings.Join(parts, argSeparator)
}
