package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Simplici0/goldcalc/internal/metrics"
)

func TestWithLoggingSharesWrapperAndRecordsResponse(t *testing.T) {
	var buf bytes.Buffer
	srv := &server{log: slog.New(slog.NewJSONHandler(&buf, nil))}

	var flushed bool
	h := srv.withLogging(metrics.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("hello"))
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
			flushed = true
		}
	})))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/sell", nil))

	if !flushed || !rr.Flushed {
		t.Fatalf("expected Flush to reach the recorder through both middlewares")
	}

	var entry struct {
		Msg    string `json:"msg"`
		Status int    `json:"status"`
		Bytes  int    `json:"bytes"`
	}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if entry.Msg != "http_request" || entry.Status != http.StatusOK || entry.Bytes != len("hello") {
		t.Fatalf("unexpected access log entry: %+v", entry)
	}
}
