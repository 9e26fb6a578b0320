package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ramos-ahron/Led-Intensity-Controller/internal/pwm"
	"github.com/ramos-ahron/Led-Intensity-Controller/internal/status"
)

func testTracker() *status.Tracker {
	tr := status.NewTracker(time.Now(), status.Config{
		PollMs:     10,
		FastTickUs: 500,
		SlowTickMs: 500,
		Period:     50,
		Broker:     "tcp://localhost:1883",
		SerialDev:  "/dev/serial0",
	})
	state := pwm.NewState(50)
	state.ApplyReading(512, 0)
	tr.Update("ON", state.Snapshot())
	return tr
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.srv.Handler.ServeHTTP(rec, req)
	return rec
}

func TestIndexPage(t *testing.T) {
	s := New(":0", testTracker())
	rec := get(t, s, "/")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
	body := rec.Body.String()
	for _, want := range []string{"LED Intensity Controller", "ON", "50%", "512"} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestIndexAliasAndNotFound(t *testing.T) {
	s := New(":0", testTracker())

	if rec := get(t, s, "/index.html"); rec.Code != http.StatusOK {
		t.Errorf("/index.html status = %d, want 200", rec.Code)
	}
	if rec := get(t, s, "/nope"); rec.Code != http.StatusNotFound {
		t.Errorf("/nope status = %d, want 404", rec.Code)
	}
}

func TestJSONEndpoint(t *testing.T) {
	s := New(":0", testTracker())
	rec := get(t, s, "/index.json")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var parsed status.StatusJSON
	if err := json.Unmarshal(rec.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if parsed.Status.Mode != "ON" {
		t.Errorf("mode = %q, want ON", parsed.Status.Mode)
	}
	if parsed.Status.DutyPercent != 50 {
		t.Errorf("duty_percent = %d, want 50", parsed.Status.DutyPercent)
	}
}

func TestPageReflectsBlinkState(t *testing.T) {
	tr := testTracker()
	state := pwm.NewState(50)
	state.EnableBlink()
	state.ApplyReading(614, 0)
	state.BlinkTick()
	tr.Update("ON_BLINK", state.Snapshot())

	s := New(":0", tr)
	body := get(t, s, "/").Body.String()
	if !strings.Contains(body, "enabled") {
		t.Error("page should show blink enabled")
	}
	if !strings.Contains(body, "ON_BLINK") {
		t.Error("page should show the blink mode")
	}
}
