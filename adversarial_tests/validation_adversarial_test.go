package adversarial_tests

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	stackexchange "github.com/jamesprial/go-stackexchange-api-wrapper"
	"github.com/jamesprial/go-stackexchange-api-wrapper/adversarial_tests/helpers"
	"github.com/jamesprial/go-stackexchange-api-wrapper/internal/mockserver"
)

func isSiteChar(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '.' || r == '-'
}

// TestSiteFuzzing checks that NewFromConfig only accepts sites that are safe
// to send as a query value.
func TestSiteFuzzing(t *testing.T) {
	fuzzer := helpers.NewFuzzer(42)

	for _, site := range fuzzer.FuzzSites() {
		t.Run(site, func(t *testing.T) {
			api, err := stackexchange.NewFromConfig(&stackexchange.Config{Site: site})

			valid := len(site) <= 64 && strings.IndexFunc(site, func(r rune) bool { return !isSiteChar(r) }) < 0
			if valid {
				if err != nil {
					t.Fatalf("expected %q to be accepted, got %v", site, err)
				}
				if api.Site() != site {
					t.Errorf("Site() = %q, want %q", api.Site(), site)
				}
				return
			}

			var cfgErr *stackexchange.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigError for %q, got %v", site, err)
			}
			if cfgErr.Field != "Site" {
				t.Errorf("Field = %q, want Site", cfgErr.Field)
			}
		})
	}
}

// TestCallerSiteParamIgnored checks that a site smuggled in through the
// parameters never replaces the site of the API root.
func TestCallerSiteParamIgnored(t *testing.T) {
	srv := mockserver.New()
	t.Cleanup(srv.Close)

	api, err := stackexchange.NewFromConfig(&stackexchange.Config{BaseURL: srv.URL(), HTTPClient: srv.Client()})
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}

	fuzzer := helpers.NewFuzzer(42)
	for _, site := range fuzzer.FuzzSites() {
		t.Run(site, func(t *testing.T) {
			params := url.Values{"site": {site, "serverfault"}}
			req, err := api.Badges().CallWithParams(params, 1)
			if err != nil {
				t.Fatalf("CallWithParams returned error: %v", err)
			}
			if got := req.Params()["site"]; len(got) != 1 || got[0] != api.Site() {
				t.Fatalf("Params() site = %q, want only %q", got, api.Site())
			}
			if _, err := req.Text(context.Background()); err != nil {
				t.Fatalf("Text returned error: %v", err)
			}

			last, err := srv.LastRequest("/badges/1")
			if err != nil {
				t.Fatal(err)
			}
			if got := last.Query["site"]; len(got) != 1 || got[0] != api.Site() {
				t.Errorf("server saw site=%q, want only %q", got, api.Site())
			}
		})
	}
}

// TestHostileIDsCannotOverrideSite checks that positional arguments are
// joined verbatim yet never replace the injected site.
func TestHostileIDsCannotOverrideSite(t *testing.T) {
	srv := mockserver.New()
	t.Cleanup(srv.Close)

	api, err := stackexchange.NewFromConfig(&stackexchange.Config{BaseURL: srv.URL(), HTTPClient: srv.Client()})
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}

	fuzzer := helpers.NewFuzzer(42)
	for _, id := range fuzzer.FuzzIDs() {
		t.Run(id, func(t *testing.T) {
			req, err := api.Comments().Call(id)
			if err != nil {
				t.Fatalf("Call returned error: %v", err)
			}
			if want := srv.URL() + "/comments/" + id; req.Path() != want {
				t.Errorf("Path() = %q, want %q", req.Path(), want)
			}

			before := srv.TotalCalls()
			_, err = req.Text(context.Background())
			if err != nil {
				var reqErr *stackexchange.RequestError
				if !errors.As(err, &reqErr) {
					t.Fatalf("expected RequestError for an unparseable URL, got %v", err)
				}
				return
			}

			log := srv.RequestLog()
			if srv.TotalCalls() != before+1 || len(log) == 0 {
				t.Fatal("request did not reach the server")
			}
			last := log[len(log)-1]
			if got := last.Query["site"]; len(got) != 1 || got[0] != stackexchange.DefaultSite {
				t.Errorf("server saw site=%q, want only %q", got, stackexchange.DefaultSite)
			}
		})
	}
}

// TestArgumentFlood checks the id limit of list endpoints.
func TestArgumentFlood(t *testing.T) {
	api := stackexchange.New("")
	fuzzer := helpers.NewFuzzer(7)

	ids := fuzzer.RandomIDs(100)
	path, err := api.Questions().Path(ids...)
	if err != nil {
		t.Fatalf("100 ids should be accepted: %v", err)
	}
	if got := strings.Count(path, ";"); got != 99 {
		t.Errorf("expected 99 separators, got %d", got)
	}

	_, err = api.Questions().Call(fuzzer.RandomIDs(101)...)
	var countErr *stackexchange.ArgumentCountError
	if !errors.As(err, &countErr) {
		t.Fatalf("expected ArgumentCountError, got %v", err)
	}
	if countErr.Got != 101 || countErr.Max != 100 {
		t.Errorf("unexpected error: %+v", countErr)
	}

	_, err = api.Questions().Call(fuzzer.RandomIDs(10000)...)
	if !errors.As(err, &countErr) {
		t.Fatalf("expected ArgumentCountError, got %v", err)
	}
}
