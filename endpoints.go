package stackexchange

import (
	"sort"

	pkgerrs "github.com/jamesprial/go-stackexchange-api-wrapper/pkg/errors"
)

// Names of the declared top-level endpoints.
const (
	EndpointComments  = "comments"
	EndpointComment   = "comment"
	EndpointBadges    = "badges"
	EndpointQuestions = "questions"
)

// maxIDs is how many ids the API accepts in one vectorized request.
const maxIDs = 100

// templates is the declared endpoint tree. It is built once and never modified.
var templates = declareEndpoints()

func declareEndpoints() map[string]*Fetcher {
	return map[string]*Fetcher{
		EndpointComments: NewFetcher("/comments", WithName(EndpointComments), WithMaxArgs(maxIDs)),
		EndpointComment:  NewFetcher("/comments", WithName(EndpointComment), WithArgs(1, 1)),
		EndpointBadges: NewFetcher("/badges", WithName(EndpointBadges), WithMaxArgs(maxIDs),
			WithChild("name", NewFetcher("name")),
			WithChild("recipients", NewFetcher("/recipients")),
			WithChild("tags", NewFetcher("tags")),
		),
		EndpointQuestions: NewFetcher("/questions", WithName(EndpointQuestions), WithMaxArgs(maxIDs),
			WithChild("answers", NewFetcher("answers")),
		),
	}
}

// Template returns the unbound declaration of a top-level endpoint. It can be
// inspected but calling it fails with an UnboundFetchError.
func Template(name string) (*Fetcher, error) {
	f, ok := templates[name]
	if !ok {
		return nil, &pkgerrs.NoSuchChildError{Endpoint: "API", Child: name, Available: Templates()}
	}
	return f, nil
}

// Templates returns the names of the declared top-level endpoints, sorted.
func Templates() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
