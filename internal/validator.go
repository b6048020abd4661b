package internal

import (
	"fmt"
	"net/url"
	"strings"

	pkgerrs "github.com/jamesprial/go-stackexchange-api-wrapper/pkg/errors"
)

const (
	// Site name constraints
	maxSiteLength = 64

	// User agent constraints
	maxUserAgentLength = 256
)

// Validator provides validation operations for client configuration.
type Validator struct{}

// NewValidator creates a new Validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateSite checks that a site identifier can be sent as the site query parameter.
// Both short names ("stackoverflow") and domains ("math.stackexchange.com") are accepted.
func (v *Validator) ValidateSite(site string) error {
	if site == "" {
		return &pkgerrs.ConfigError{Field: "Site", Message: "site cannot be empty"}
	}
	if len(site) > maxSiteLength {
		return &pkgerrs.ConfigError{Field: "Site", Message: fmt.Sprintf("site cannot exceed %d characters", maxSiteLength)}
	}
	for i, ch := range site {
		if !(ch >= 'a' && ch <= 'z') && !(ch >= 'A' && ch <= 'Z') && !(ch >= '0' && ch <= '9') && ch != '.' && ch != '-' {
			return &pkgerrs.ConfigError{Field: "Site", Message: fmt.Sprintf("site contains invalid character '%c' at position %d", ch, i)}
		}
	}
	return nil
}

// ValidateBaseURL checks that the base URL is an absolute http(s) URL without query or fragment.
func (v *Validator) ValidateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return &pkgerrs.ConfigError{Field: "BaseURL", Message: err.Error()}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &pkgerrs.ConfigError{Field: "BaseURL", Message: fmt.Sprintf("unsupported scheme %q", u.Scheme)}
	}
	if u.Host == "" {
		return &pkgerrs.ConfigError{Field: "BaseURL", Message: "host cannot be empty"}
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return &pkgerrs.ConfigError{Field: "BaseURL", Message: "base URL cannot carry a query or fragment"}
	}
	return nil
}

// ValidateUserAgent validates the User-Agent string to prevent header injection attacks.
func (v *Validator) ValidateUserAgent(ua string) error {
	// User-Agent cannot be empty (should have been set to default before this check)
	if len(ua) == 0 {
		return &pkgerrs.ConfigError{Field: "UserAgent", Message: "user agent cannot be empty"}
	}

	if strings.ContainsAny(ua, "\r\n") {
		return &pkgerrs.ConfigError{Field: "UserAgent", Message: "user agent cannot contain newline characters"}
	}

	if len(ua) > maxUserAgentLength {
		return &pkgerrs.ConfigError{Field: "UserAgent", Message: fmt.Sprintf("user agent too long (max %d characters)", maxUserAgentLength)}
	}

	return nil
}

// ValidateRateLimit rejects negative throttling values. A nil config disables throttling.
func (v *Validator) ValidateRateLimit(cfg *RateLimitConfig) error {
	if cfg == nil {
		return nil
	}
	if cfg.RequestsPerSecond < 0 {
		return &pkgerrs.ConfigError{Field: "RateLimit.RequestsPerSecond", Message: "cannot be negative"}
	}
	if cfg.Burst < 0 {
		return &pkgerrs.ConfigError{Field: "RateLimit.Burst", Message: "cannot be negative"}
	}
	return nil
}
