package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mediscribe/platform/pkg/logging"
)

func TestRequestLoggerPreservesResponse(t *testing.T) {
	mw := RequestLogger(logging.Default())

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"sess-1"}`))
	}))

	req := httptest.NewRequest(http.MethodPost, "/kiosk/sessions", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, rec.Code)
	}
	if rec.Body.String() != `{"id":"sess-1"}` {
		t.Fatalf("body altered by logger: %q", rec.Body.String())
	}
}

func TestRequestLoggerNilLogger(t *testing.T) {
	mw := RequestLogger(nil)

	called := false
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	if !called {
		t.Fatal("expected handler to be called")
	}
}
