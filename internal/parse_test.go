package internal

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jamesprial/go-stackexchange-api-wrapper/pkg/types"
)

func TestNewParser(t *testing.T) {
	parser := NewParser()
	if parser == nil {
		t.Fatal("NewParser returned nil")
	}
}

func TestParseWrapper(t *testing.T) {
	parser := NewParser()

	tests := []struct {
		name        string
		body        string
		expectError bool
		check       func(t *testing.T, w *types.Wrapper)
	}{
		{name: "empty body", body: "", expectError: true},
		{name: "invalid json", body: "{not json", expectError: true},
		{name: "array body", body: `[1,2]`, expectError: true},
		{
			name: "items envelope",
			body: `{"items":[{"comment_id":1}],"has_more":true,"quota_max":300,"quota_remaining":42}`,
			check: func(t *testing.T, w *types.Wrapper) {
				if !w.HasMore || w.QuotaMax != 300 || w.QuotaRemaining != 42 {
					t.Errorf("unexpected envelope: %+v", w)
				}
				if string(w.Items) != `[{"comment_id":1}]` {
					t.Errorf("Items = %s", w.Items)
				}
				if w.IsError() {
					t.Error("IsError() = true for a successful envelope")
				}
			},
		},
		{
			name: "error envelope",
			body: `{"error_id":400,"error_name":"bad_parameter","error_message":"site is required"}`,
			check: func(t *testing.T, w *types.Wrapper) {
				if !w.IsError() {
					t.Error("IsError() = false for an error envelope")
				}
				if w.ErrorName != "bad_parameter" {
					t.Errorf("ErrorName = %q", w.ErrorName)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := parser.ParseWrapper([]byte(tt.body))
			if tt.expectError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.check(t, w)
		})
	}
}

func TestParseAny(t *testing.T) {
	parser := NewParser()

	tests := []struct {
		name        string
		body        string
		want        any
		expectError bool
	}{
		{
			name: "object with numbers",
			body: `{"items":[{"comment_id":12345678901234567}],"has_more":false}`,
			want: map[string]any{
				"items":    []any{map[string]any{"comment_id": json.Number("12345678901234567")}},
				"has_more": false,
			},
		},
		{name: "scalar string", body: `"hello"`, want: "hello"},
		{name: "null", body: `null`, want: nil},
		{name: "float", body: `1.5`, want: json.Number("1.5")},
		{name: "empty", body: ``, expectError: true},
		{name: "truncated", body: `{"items":[`, expectError: true},
		{name: "trailing value", body: `{} {}`, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parser.ParseAny([]byte(tt.body))
			if tt.expectError {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseAny mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseError(t *testing.T) {
	parser := NewParser()

	tests := []struct {
		name     string
		body     string
		wantID   int
		wantName string
		wantMsg  string
		wantOK   bool
	}{
		{
			name:     "error envelope",
			body:     `{"error_id":403,"error_name":"access_denied","error_message":"no access"}`,
			wantID:   403,
			wantName: "access_denied",
			wantMsg:  "no access",
			wantOK:   true,
		},
		{name: "items envelope", body: `{"items":[]}`},
		{name: "not json", body: `Service Unavailable`},
		{name: "empty", body: ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, name, msg, ok := parser.ParseError([]byte(tt.body))
			if ok != tt.wantOK || id != tt.wantID || name != tt.wantName || msg != tt.wantMsg {
				t.Errorf("ParseError() = (%d, %q, %q, %v), want (%d, %q, %q, %v)",
					id, name, msg, ok, tt.wantID, tt.wantName, tt.wantMsg, tt.wantOK)
			}
		})
	}
}

func TestExtractItems(t *testing.T) {
	type item struct {
		ID int `json:"id"`
	}

	tests := []struct {
		name        string
		wrapper     *types.Wrapper
		want        []item
		expectError bool
	}{
		{name: "nil wrapper", wrapper: nil, expectError: true},
		{name: "missing items", wrapper: &types.Wrapper{}, want: []item{}},
		{name: "null items", wrapper: &types.Wrapper{Items: json.RawMessage(`null`)}, want: []item{}},
		{name: "two items", wrapper: &types.Wrapper{Items: json.RawMessage(`[{"id":1},{"id":2}]`)}, want: []item{{ID: 1}, {ID: 2}}},
		{name: "items not an array", wrapper: &types.Wrapper{Items: json.RawMessage(`{"id":1}`)}, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractItems[item](tt.wrapper)
			if tt.expectError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ExtractItems mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
