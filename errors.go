package stackexchange

import pkgerrs "github.com/jamesprial/go-stackexchange-api-wrapper/pkg/errors"

// Error types returned by this package. They are defined in pkg/errors and
// re-exported here so callers can use errors.As without a second import.
type (
	ArgumentCountError = pkgerrs.ArgumentCountError
	UnboundFetchError  = pkgerrs.UnboundFetchError
	NoSuchChildError   = pkgerrs.NoSuchChildError
	DecodeError        = pkgerrs.DecodeError
	ConfigError        = pkgerrs.ConfigError
	RequestError       = pkgerrs.RequestError
	APIError           = pkgerrs.APIError
)
