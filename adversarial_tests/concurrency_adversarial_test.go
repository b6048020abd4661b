package adversarial_tests

import (
	"context"
	"fmt"
	"net/http"
	"runtime"
	"testing"
	"time"

	stackexchange "github.com/jamesprial/go-stackexchange-api-wrapper"
	"github.com/jamesprial/go-stackexchange-api-wrapper/adversarial_tests/helpers"
	"github.com/jamesprial/go-stackexchange-api-wrapper/internal/mockserver"
)

// TestRequestFetchStorm checks that hundreds of readers of one request share
// a single network call.
func TestRequestFetchStorm(t *testing.T) {
	api, srv := newServedAPI(t)
	srv.SetResponse("/questions/1;2", &mockserver.Response{
		Status: http.StatusOK,
		Body:   `{"items":[{"question_id":1},{"question_id":2}]}`,
		Delay:  20 * time.Millisecond,
	})

	req, err := api.Questions().Call(1, 2)
	if err != nil {
		t.Fatalf("Call returned error: %v", err)
	}

	detector := helpers.NewDeadlockDetector(10 * time.Second)
	err = detector.Run(func() error {
		errs := helpers.RunConcurrently(500, func(id int) error {
			var err error
			switch id % 3 {
			case 0:
				_, err = req.JSON(context.Background())
			case 1:
				_, err = req.Text(context.Background())
			default:
				_, err = req.Wrapper(context.Background())
			}
			return err
		})
		if len(errs) > 0 {
			return errs[0]
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	if got := srv.CallCount("/questions/1;2"); got != 1 {
		t.Errorf("server saw %d calls, want 1", got)
	}
}

// TestConcurrentRootsStayIsolated checks that endpoints read off many API
// roots at once never pick up another root's site.
func TestConcurrentRootsStayIsolated(t *testing.T) {
	errs := helpers.RunConcurrently(200, func(id int) error {
		site := fmt.Sprintf("site%d", id)
		api := stackexchange.New(site)

		req, err := api.Badges().Call(id)
		if err != nil {
			return err
		}
		if got := req.Site(); got != site {
			return fmt.Errorf("site = %q, want %q", got, site)
		}

		child, err := req.Child("recipients")
		if err != nil {
			return err
		}
		childReq, err := child.Call()
		if err != nil {
			return err
		}
		if got := childReq.Site(); got != site {
			return fmt.Errorf("child site = %q, want %q", got, site)
		}
		want := fmt.Sprintf("%s/badges/%d//recipients/", stackexchange.DefaultBaseURL, id)
		if childReq.Path() != want {
			return fmt.Errorf("child path = %q, want %q", childReq.Path(), want)
		}
		return nil
	})

	for _, err := range errs {
		t.Error(err)
	}

	for _, name := range stackexchange.Templates() {
		tmpl, err := stackexchange.Template(name)
		if err != nil {
			t.Fatal(err)
		}
		if tmpl.IsBound() {
			t.Errorf("template %q was bound by concurrent use", name)
		}
	}
}

// TestNoGoroutineLeakAfterRequests checks that finished requests leave no
// goroutines behind.
func TestNoGoroutineLeakAfterRequests(t *testing.T) {
	api, _ := newServedAPI(t)

	runtime.GC()
	before := helpers.TakeGoroutineSnapshot()

	errs := helpers.RunConcurrently(100, func(id int) error {
		req, err := api.Comments().Call(id)
		if err != nil {
			return err
		}
		_, err = req.Text(context.Background())
		return err
	})
	for _, err := range errs {
		t.Fatal(err)
	}

	// keep-alive connections of the test server account for some slack
	if n, err := helpers.WaitForGoroutineCleanup(2*time.Second, before.Count, 20); err != nil {
		t.Errorf("goroutines: %d: %v", n, err)
	}
}
