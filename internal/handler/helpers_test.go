package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/msomdec/knitshape/internal/domain"
	"github.com/msomdec/knitshape/internal/handler"
	"github.com/msomdec/knitshape/internal/service"
)

const testShareSecret = "test-secret-for-handler-tests-0123456789"

func newTestServer(t *testing.T, burst float64) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux,
		service.NewStraightLineShaper(),
		service.NewCrewNeckShaper(domain.CrewNeckRuleThird),
		service.NewShareService(testShareSecret, time.Hour),
		service.NewRateLimiter(t.Context(), 0, burst),
	)

	srv := httptest.NewServer(handler.SecurityHeaders(handler.RequestLogger(mux)))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeJSON[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return v
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b)
}
