package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/preston-bernstein/equipment-tracker/internal/exports"
	"github.com/preston-bernstein/equipment-tracker/internal/store"
	"github.com/preston-bernstein/equipment-tracker/internal/testutil"
)

func TestWriteErrorIncludesRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	logger, _ := testutil.NewBufferLogger()

	req.Header.Set("X-Request-ID", "abc123")

	rr := testutil.ServeRequest(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusTeapot, "boom", logger)
	}), req)

	if rr.Code != http.StatusTeapot {
		t.Fatalf("expected status 418, got %d", rr.Code)
	}
	if got := rr.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("expected content type json, got %s", got)
	}
	if !bytes.Contains(rr.Body.Bytes(), []byte("abc123")) {
		t.Fatalf("expected requestId in body, got %s", rr.Body.String())
	}
}

func TestWriteJSONLogsEncodeError(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	rr := testutil.Serve(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, make(chan int), logger)
	}), http.MethodGet, "/encode-error", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status written even on encode error, got %d", rr.Code)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected logger to record encode error")
	}
}

func TestWriteServiceErrorMapsSentinels(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", fmt.Errorf("player x: %w", store.ErrNotFound), http.StatusNotFound},
		{"no sink", exports.ErrNotConfigured, http.StatusServiceUnavailable},
		{"other", errors.New("connection refused"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := testutil.NewBufferLogger()
			rr := testutil.Serve(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeServiceError(w, r, tt.err, logger)
			}), http.MethodGet, "/", nil)
			testutil.AssertStatus(t, rr, tt.want)
			if tt.want == http.StatusInternalServerError && !strings.Contains(buf.String(), "connection refused") {
				t.Fatalf("expected unexpected errors to be logged, got %q", buf.String())
			}
		})
	}
}

func TestDecodeBodyRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x","bogus":1}`))
	var dest struct {
		Name string `json:"name"`
	}
	if err := decodeBody(httptest.NewRecorder(), req, &dest); err == nil {
		t.Fatalf("expected unknown field to be rejected")
	}
}
