package handler_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/msomdec/knitshape/internal/handler"
)

func TestHandleHome(t *testing.T) {
	srv := newTestServer(t, 10)

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body := readBody(t, resp)
	for _, want := range []string{`id="straight-result"`, `id="neck-result"`, "-5/2/2, -4/2/10", "-5, -1/1/5, -1/2/5"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected page to contain %q", want)
		}
	}
}

func TestHandleHomeNotFound(t *testing.T) {
	srv := newTestServer(t, 10)

	resp, err := http.Get(srv.URL + "/nonexistent")
	if err != nil {
		t.Fatalf("GET /nonexistent: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestHandleStraight(t *testing.T) {
	srv := newTestServer(t, 10)

	resp := postJSON(t, srv.URL+"/api/straight", map[string]any{
		"stitches":     50,
		"rows":         26,
		"distribution": "gentle",
		"operation":    "decrease",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	res := decodeJSON[handler.ShapingResultDTO](t, resp)
	if !res.IsValid {
		t.Fatal("expected a valid result")
	}
	if res.Notation != "-4/2/10, -5/2/2" {
		t.Fatalf("expected notation -4/2/10, -5/2/2, got %q", res.Notation)
	}
	if len(res.Segments) != 2 || res.Segments[0].Stitches != 4 || res.Segments[1].Repetitions != 2 {
		t.Fatalf("unexpected segments %+v", res.Segments)
	}
	if res.TotalRowsUsed != 24 {
		t.Fatalf("expected 24 rows used, got %d", res.TotalRowsUsed)
	}
}

func TestHandleStraight_IncreaseDefaultsToAggressive(t *testing.T) {
	srv := newTestServer(t, 10)

	resp := postJSON(t, srv.URL+"/api/straight", map[string]any{
		"stitches":  50,
		"rows":      120,
		"operation": "increase",
	})
	res := decodeJSON[handler.ShapingResultDTO](t, resp)

	if res.Notation != "1/2/41, 1/4/9" {
		t.Fatalf("expected notation 1/2/41, 1/4/9, got %q", res.Notation)
	}
}

func TestHandleStraight_FromGauge(t *testing.T) {
	srv := newTestServer(t, 10)

	resp := postJSON(t, srv.URL+"/api/straight", map[string]any{
		"gauge":  map[string]any{"stitches": 28, "rows": 40, "per": 10, "unit": "cm"},
		"width":  5,
		"height": 10,
		"unit":   "cm",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	res := decodeJSON[handler.ShapingResultDTO](t, resp)
	if res.Stitches != 14 || res.Rows != 40 {
		t.Fatalf("expected 14 stitches over 40 rows, got %d over %d", res.Stitches, res.Rows)
	}
	if res.Notation != "-1/2/9, -1/4/5" {
		t.Fatalf("expected notation -1/2/9, -1/4/5, got %q", res.Notation)
	}
}

func TestHandleStraight_NonPositiveInputIsInvalidResult(t *testing.T) {
	srv := newTestServer(t, 10)

	resp := postJSON(t, srv.URL+"/api/straight", map[string]any{"stitches": 0, "rows": 10})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	res := decodeJSON[handler.ShapingResultDTO](t, resp)
	if res.IsValid {
		t.Fatal("expected an invalid result")
	}
	if len(res.Segments) != 0 || len(res.Instructions) != 1 {
		t.Fatalf("expected no segments and one diagnostic, got %+v", res)
	}
}

func TestHandleStraight_BadRequests(t *testing.T) {
	srv := newTestServer(t, 10)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"unknown distribution", map[string]any{"stitches": 5, "rows": 20, "distribution": "sideways"}},
		{"unknown operation", map[string]any{"stitches": 5, "rows": 20, "operation": "cable"}},
		{"unknown field", map[string]any{"stitches": 5, "rows": 20, "colour": "red"}},
		{"bad gauge", map[string]any{"gauge": map[string]any{"stitches": 0, "rows": 40, "per": 10}, "width": 5, "height": 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, srv.URL+"/api/straight", tt.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", resp.StatusCode)
			}
		})
	}
}

func TestHandleCrewNeck(t *testing.T) {
	srv := newTestServer(t, 10)

	resp := postJSON(t, srv.URL+"/api/neck", map[string]any{"stitches": 15})
	res := decodeJSON[handler.CrewNeckResultDTO](t, resp)

	if res.Notation != "-5, -1/1/5, -1/2/5" || res.Rule != "third" {
		t.Fatalf("unexpected result %+v", res)
	}

	resp = postJSON(t, srv.URL+"/api/neck", map[string]any{"stitches": 20, "rule": "quarter"})
	res = decodeJSON[handler.CrewNeckResultDTO](t, resp)

	if res.CastOff != 5 || res.EveryRowDecrease != 10 || res.EORDecrease != 5 {
		t.Fatalf("unexpected quarter split %+v", res)
	}
}

func TestHandleCrewNeck_UnknownRule(t *testing.T) {
	srv := newTestServer(t, 10)

	resp := postJSON(t, srv.URL+"/api/neck", map[string]any{"stitches": 15, "rule": "half"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestAPIRateLimit(t *testing.T) {
	srv := newTestServer(t, 2)

	for i := 0; i < 2; i++ {
		resp := postJSON(t, srv.URL+"/api/neck", map[string]any{"stitches": 15})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, resp.StatusCode)
		}
	}

	resp := postJSON(t, srv.URL+"/api/neck", map[string]any{"stitches": 15})
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp.StatusCode)
	}
}

func TestHandleLiveStraight(t *testing.T) {
	srv := newTestServer(t, 10)

	resp, err := http.Post(srv.URL+"/shaping/straight", "application/json",
		strings.NewReader(`{"stitches":50,"rows":26,"distribution":"gentle","operation":"decrease","perSide":15}`))
	if err != nil {
		t.Fatalf("POST /shaping/straight: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Fatalf("expected an event stream, got %s", ct)
	}
	body := readBody(t, resp)
	for _, want := range []string{"datastar-patch-elements", `id="straight-result"`, "-4/2/10, -5/2/2", "/s/"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected SSE body to contain %q, got %s", want, body)
		}
	}
}

func TestHandleLiveCrewNeck(t *testing.T) {
	srv := newTestServer(t, 10)

	resp, err := http.Post(srv.URL+"/shaping/neck", "application/json",
		strings.NewReader(`{"stitches":50,"rows":26,"distribution":"aggressive","operation":"decrease","perSide":3}`))
	if err != nil {
		t.Fatalf("POST /shaping/neck: %v", err)
	}
	defer resp.Body.Close()

	body := readBody(t, resp)
	for _, want := range []string{`id="neck-result"`, "-1, -1/1/1, -1/2/1", "very small"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected SSE body to contain %q, got %s", want, body)
		}
	}
}

func TestHandleLiveStraight_BadSignals(t *testing.T) {
	srv := newTestServer(t, 10)

	resp, err := http.Post(srv.URL+"/shaping/straight", "application/json",
		strings.NewReader(`{"stitches":5,"rows":20,"distribution":"<b>sideways</b>"}`))
	if err != nil {
		t.Fatalf("POST /shaping/straight: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body := readBody(t, resp)
	for _, want := range []string{"datastar-patch-elements", `id="straight-result"`, `class="invalid"`, "unknown distribution", "&lt;b&gt;sideways&lt;/b&gt;"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected SSE body to contain %q, got %s", want, body)
		}
	}
	if strings.Contains(body, "<b>sideways</b>") {
		t.Fatalf("expected signal value to be escaped, got %s", body)
	}
}

func TestHandleLiveCrewNeck_MalformedSignals(t *testing.T) {
	srv := newTestServer(t, 10)

	resp, err := http.Post(srv.URL+"/shaping/neck", "application/json", strings.NewReader(`{"perSide":`))
	if err != nil {
		t.Fatalf("POST /shaping/neck: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body := readBody(t, resp)
	for _, want := range []string{`id="neck-result"`, "Could not read the calculator inputs."} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected SSE body to contain %q, got %s", want, body)
		}
	}
}
