package helpers

import (
	"fmt"
	"strings"
)

// JSONGenerator creates malicious and malformed JSON for testing
type JSONGenerator struct{}

// NewJSONGenerator creates a new JSON generator
func NewJSONGenerator() *JSONGenerator {
	return &JSONGenerator{}
}

// GenerateDeeplyNested returns an items envelope whose single item nests
// depth arrays deep.
func (g *JSONGenerator) GenerateDeeplyNested(depth int) string {
	return `{"items":[` + strings.Repeat("[", depth) + strings.Repeat("]", depth) + `]}`
}

// GenerateLargeItems returns an items envelope with n comments.
func (g *JSONGenerator) GenerateLargeItems(n int) string {
	var sb strings.Builder
	sb.WriteString(`{"items":[`)
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, `{"comment_id":%d,"post_id":%d,"score":%d,"body":"comment %d"}`, i, i*10, i%7, i)
	}
	sb.WriteString(`],"has_more":true,"quota_max":10000,"quota_remaining":9999}`)
	return sb.String()
}

// GenerateMalformedBodies returns bodies that are not a single JSON value.
func (g *JSONGenerator) GenerateMalformedBodies() []string {
	return []string{
		// Truncated
		`{"items":[`,
		`{"items":[{"comment_id":1}`,
		`{"items"`,

		// Not JSON
		`<html><body>502 Bad Gateway</body></html>`,
		`undefined`,
		`NaN`,

		// Trailing data
		`{"items":[]} {"items":[]}`,
		`{"items":[]}garbage`,

		// Broken escapes and literals
		`{"items":["\x"]}`,
		`{"items":[tru]}`,
		`{'items':[]}`,
	}
}

// GenerateMistypedEnvelopes returns valid JSON whose fields have the wrong types.
func (g *JSONGenerator) GenerateMistypedEnvelopes() []string {
	return []string{
		`{"items":"not an array"}`,
		`{"items":{"comment_id":1}}`,
		`{"items":[{"comment_id":"one"}]}`,
		`{"items":[{"score":1.5}]}`,
		`{"items":[{"creation_date":"yesterday"}]}`,
	}
}
