package main

import (
	"io"
	"log/slog"
	"os"

	stackexchange "github.com/jamesprial/go-stackexchange-api-wrapper"
	"github.com/spf13/cobra"
)

// siteEnv names the environment variable that overrides the default site.
const siteEnv = "STACKEXCHANGE_SITE"

// globalOptions are the flags shared by every subcommand.
type globalOptions struct {
	site      string
	baseURL   string
	userAgent string
	rate      float64
	verbose   bool

	stdout io.Writer
	stderr io.Writer
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := &globalOptions{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:          "sequery",
		Short:        "Query the StackExchange API",
		SilenceUsage: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	defaultSite := os.Getenv(siteEnv)
	if defaultSite == "" {
		defaultSite = stackexchange.DefaultSite
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.site, "site", defaultSite, "site to query (env "+siteEnv+")")
	flags.StringVar(&opts.baseURL, "base-url", stackexchange.DefaultBaseURL, "API base URL")
	flags.StringVar(&opts.userAgent, "user-agent", stackexchange.DefaultUserAgent, "User-Agent header")
	flags.Float64Var(&opts.rate, "rate", 0, "requests per second; 0 disables throttling")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log HTTP responses to stderr")

	root.AddCommand(getSubcommand(opts))
	root.AddCommand(endpointsSubcommand())
	return root
}

// api builds the API root from the global flags.
func (o *globalOptions) api() (*stackexchange.API, error) {
	cfg := &stackexchange.Config{
		Site:      o.site,
		BaseURL:   o.baseURL,
		UserAgent: o.userAgent,
	}
	if o.rate > 0 {
		cfg.RateLimit = &stackexchange.RateLimitConfig{RequestsPerSecond: o.rate}
	}
	if o.verbose {
		cfg.Logger = slog.New(slog.NewTextHandler(o.stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return stackexchange.NewFromConfig(cfg)
}
