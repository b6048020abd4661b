package internal

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func benchmarkServer(b *testing.B) *httptest.Server {
	b.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"question_id":1,"title":"benchmark"}],"has_more":false,"quota_max":300,"quota_remaining":299}`))
	}))
	b.Cleanup(server.Close)
	return server
}

func benchmarkGet(b *testing.B, logger *slog.Logger) {
	server := benchmarkServer(b)
	client := NewClient(server.Client(), "bench/1.0", nil, logger)
	params := url.Values{"site": {"stackoverflow"}}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := client.Get(context.Background(), server.URL+"/questions/1", params); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkGet_WithLogging measures Get with debug logging discarded.
func BenchmarkGet_WithLogging(b *testing.B) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
	benchmarkGet(b, logger)
}

// BenchmarkGet_LoggingDisabled measures Get with a logger that drops debug records.
func BenchmarkGet_LoggingDisabled(b *testing.B) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelInfo}))
	benchmarkGet(b, logger)
}

// BenchmarkGet_NoLogger measures Get without a logger.
func BenchmarkGet_NoLogger(b *testing.B) {
	benchmarkGet(b, nil)
}
