// Package stackexchange is a declarative client for the StackExchange API.
//
// # Overview
//
// Endpoints are not assembled from URL strings. They are read off an API root
// as Fetchers, called with their ids, and chained into sub-endpoints:
//
//	api := stackexchange.New("stackoverflow")
//
//	req, err := api.Comment().Call(12345)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	u, err := req.URL(ctx)
//	// https://api.stackexchange.com/comments/12345?site=stackoverflow
//
// # Binding
//
// The endpoint tree (comments, comment, badges with name, recipients and
// tags, questions with answers) is declared once as unbound templates. Every
// read through an owner returns a fresh copy bound to that owner, together
// with its whole subtree. Two API roots, or two reads off the same root, never
// share bound state, so the declared tree is safe to use from any number of
// goroutines.
//
// A Fetcher composes its path from its binding parent:
//
//   - bound to an API root: BaseURL + segment + "/" + ids
//   - bound to another Fetcher: parent path + "/" + segment + "/" + ids
//   - bound to a Request: request path + "/" + segment + "/" + ids
//
// Multiple ids are joined with ";", the API's convention for vectorized
// lookups. With no ids the path keeps its trailing slash.
//
// # Requests
//
// Calling a Fetcher returns a Request. The site query parameter is always
// set: from the API root, or from the parent Request when chaining. Nothing
// is sent until the first of Text, Bytes, JSON, Decode, Wrapper, URL or
// StatusCode. The first response that arrives is kept for the life of the
// Request, non-2xx included; a transport or context error leaves the Request
// to be fetched again by the next call.
//
//	req, err := api.Questions().Call(1, 2)
//	answers, err := req.Child("answers")
//	areq, err := answers.Call()
//	items, err := stackexchange.DecodeItems[types.Answer](ctx, areq)
//
// # Errors
//
// Validation failures are typed: ArgumentCountError, UnboundFetchError,
// NoSuchChildError, DecodeError and ConfigError. Non-2xx responses return an
// APIError. Errors from the underlying http.Client are returned unchanged;
// there are no retries.
//
// # Logging and throttling
//
// Set Config.Logger to get debug logs of every response through log/slog.
// Set Config.RateLimit to throttle requests client-side and honour the
// backoff field the API may return. Both are off by default.
package stackexchange
