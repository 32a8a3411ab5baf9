package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	logpkg "github.com/kailas-cloud/passpredict/internal/logger"
)

func TestJSONRecoverer(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	h := jsonRecoverer(zap.New(core))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/predict", http.NoBody))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("got %d, want 500", rr.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] != "internal error" {
		t.Errorf("unexpected body %v", body)
	}
	if logs.FilterMessage("panic recovered").Len() != 1 {
		t.Error("expected the panic to be logged")
	}
}

func TestWideEventMiddleware(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	var ctxLogged bool
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(zap.New(core)))
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		logpkg.FromContext(req.Context()).Debug("inside handler")
		ctxLogged = true
		w.WriteHeader(http.StatusTeapot)
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))

	if !ctxLogged {
		t.Fatal("handler not reached")
	}
	reqID := rr.Header().Get("X-Request-ID")
	if reqID == "" {
		t.Fatal("expected X-Request-ID header")
	}

	inner := logs.FilterMessage("inside handler").All()
	if len(inner) != 1 {
		t.Fatalf("expected one handler log entry, got %d", len(inner))
	}
	if f := inner[0].ContextMap(); f["request_id"] != reqID || f["path"] != "/health" {
		t.Errorf("handler logger missing request fields: %v", f)
	}

	lines := logs.FilterMessage("http_request").All()
	if len(lines) != 1 {
		t.Fatalf("expected one canonical line, got %d", len(lines))
	}
	fields := lines[0].ContextMap()
	if fields["status"] != int64(http.StatusTeapot) {
		t.Errorf("status field: %v", fields["status"])
	}
	if fields["path"] != "/health" {
		t.Errorf("path field: %v", fields["path"])
	}
}
