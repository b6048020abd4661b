package stackexchange

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jamesprial/go-stackexchange-api-wrapper/internal"
	pkgerrs "github.com/jamesprial/go-stackexchange-api-wrapper/pkg/errors"
)

const (
	// DefaultSite is the site queried when none is given
	DefaultSite = "stackoverflow"
	// DefaultBaseURL is the default StackExchange API base URL
	DefaultBaseURL = "https://api.stackexchange.com"
	// DefaultUserAgent is the default user agent string
	DefaultUserAgent = "go-stackexchange-api-wrapper/0.01"
	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 30 * time.Second
)

// RateLimitConfig enables client-side throttling. See Config.RateLimit.
type RateLimitConfig = internal.RateLimitConfig

// Config holds the configuration for an API root.
// Only Site is commonly set; every other field has a usable default.
//
//	api, err := stackexchange.NewFromConfig(&stackexchange.Config{
//		Site:   "superuser",
//		Logger: slog.Default(),
//	})
type Config struct {
	// Site is the StackExchange site every request targets, sent as the
	// site query parameter. Defaults to DefaultSite.
	Site string

	// BaseURL is prepended verbatim to the path of every top-level endpoint.
	// Defaults to DefaultBaseURL. A trailing slash is removed.
	BaseURL string

	// UserAgent string to identify your application.
	// Defaults to DefaultUserAgent.
	UserAgent string

	// HTTPClient to use for requests.
	// Defaults to a client with DefaultTimeout if not specified.
	HTTPClient *http.Client

	// Logger for structured diagnostics.
	// Optional. If provided, every response is logged at debug level.
	Logger *slog.Logger

	// RateLimit enables client-side throttling and honours the backoff field
	// of API responses. Nil disables both.
	RateLimit *RateLimitConfig
}

// API is the root every endpoint is reached from. It carries the site and
// the transport; endpoints read off it are bound to it and to no other API.
type API struct {
	site      string
	baseURL   string
	transport *internal.Client
	config    *Config
}

// New returns an API root for site using default settings.
// An empty site selects DefaultSite; no request is ever sent with an empty
// site parameter.
func New(site string) *API {
	if site == "" {
		site = DefaultSite
	}
	cfg := &Config{Site: site}
	applyDefaults(cfg)
	return newAPI(cfg)
}

// NewFromConfig validates config, fills in defaults and returns an API root.
// The config is copied; later changes to it have no effect.
func NewFromConfig(config *Config) (*API, error) {
	if config == nil {
		return nil, &pkgerrs.ConfigError{Message: "config cannot be nil"}
	}

	cfg := *config
	applyDefaults(&cfg)

	v := internal.NewValidator()
	if err := v.ValidateSite(cfg.Site); err != nil {
		return nil, err
	}
	if err := v.ValidateBaseURL(cfg.BaseURL); err != nil {
		return nil, err
	}
	if err := v.ValidateUserAgent(cfg.UserAgent); err != nil {
		return nil, err
	}
	if err := v.ValidateRateLimit(cfg.RateLimit); err != nil {
		return nil, err
	}

	return newAPI(&cfg), nil
}

func applyDefaults(cfg *Config) {
	if cfg.Site == "" {
		cfg.Site = DefaultSite
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: DefaultTimeout}
	}
}

func newAPI(cfg *Config) *API {
	return &API{
		site:      cfg.Site,
		baseURL:   cfg.BaseURL,
		transport: internal.NewClient(cfg.HTTPClient, cfg.UserAgent, cfg.RateLimit, cfg.Logger),
		config:    cfg,
	}
}

// Site returns the site identifier of this API root.
func (a *API) Site() string {
	return a.site
}

// BaseURL returns the URL prefix of every top-level endpoint.
func (a *API) BaseURL() string {
	return a.baseURL
}

// Endpoint returns the declared top-level endpoint name bound to a.
func (a *API) Endpoint(name string) (*Fetcher, error) {
	tmpl, err := Template(name)
	if err != nil {
		return nil, err
	}
	return tmpl.accessVia(apiOwner(a)), nil
}

// Comments returns /comments/{ids} (up to 100 ids).
func (a *API) Comments() *Fetcher {
	return a.mustEndpoint(EndpointComments)
}

// Comment returns /comments/{id} (exactly one id).
func (a *API) Comment() *Fetcher {
	return a.mustEndpoint(EndpointComment)
}

// Badges returns /badges/{ids} (up to 100 ids) with the children name,
// recipients and tags.
func (a *API) Badges() *Fetcher {
	return a.mustEndpoint(EndpointBadges)
}

// Questions returns /questions/{ids} (up to 100 ids) with the child answers.
func (a *API) Questions() *Fetcher {
	return a.mustEndpoint(EndpointQuestions)
}

func (a *API) mustEndpoint(name string) *Fetcher {
	f, err := a.Endpoint(name)
	if err != nil {
		panic(fmt.Sprintf("stackexchange: endpoint %q is not declared: %v", name, err))
	}
	return f
}

func (a *API) String() string {
	return fmt.Sprintf("API(%q)", a.site)
}
