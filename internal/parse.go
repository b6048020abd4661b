package internal

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jamesprial/go-stackexchange-api-wrapper/pkg/types"
)

// Parser handles parsing of StackExchange API responses
type Parser struct{}

// NewParser creates a new parser instance
func NewParser() *Parser {
	return &Parser{}
}

// ParseWrapper decodes the common response envelope.
func (p *Parser) ParseWrapper(body []byte) (*types.Wrapper, error) {
	if len(body) == 0 {
		return nil, fmt.Errorf("empty response body")
	}

	var w types.Wrapper
	if err := json.Unmarshal(body, &w); err != nil {
		return nil, fmt.Errorf("failed to parse response wrapper: %w", err)
	}
	return &w, nil
}

// ParseAny decodes a body into a generic tree of maps, slices and scalars.
// Numbers are kept as json.Number so large ids survive the round trip.
func (p *Parser) ParseAny(body []byte) (any, error) {
	var v any
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("unexpected data after top-level value")
	}
	return v, nil
}

// ParseError extracts the error fields of an error envelope. ok is false when
// the body is not an error wrapper.
func (p *Parser) ParseError(body []byte) (id int, name, message string, ok bool) {
	var w types.Wrapper
	if err := json.Unmarshal(body, &w); err != nil || !w.IsError() {
		return 0, "", "", false
	}
	return w.ErrorID, w.ErrorName, w.ErrorMessage, true
}

// ExtractItems decodes the items array of an envelope into a slice of T.
func ExtractItems[T any](w *types.Wrapper) ([]T, error) {
	if w == nil {
		return nil, fmt.Errorf("wrapper is nil")
	}
	if len(w.Items) == 0 || string(w.Items) == "null" {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(w.Items, &items); err != nil {
		return nil, fmt.Errorf("failed to parse items: %w", err)
	}
	return items, nil
}
