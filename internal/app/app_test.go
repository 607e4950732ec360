package app

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/flo-mobility/admin-console/internal/config"
	"github.com/flo-mobility/admin-console/internal/observability"
)

type upstreamCall struct {
	method string
	path   string
	query  string
	auth   string
	body   string
}

type fakeFlo struct {
	mu     sync.Mutex
	calls  []upstreamCall
	status map[string]int
}

func (f *fakeFlo) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.calls = append(f.calls, upstreamCall{r.Method, r.URL.Path, r.URL.RawQuery, r.Header.Get("Authorization"), string(raw)})
		status := f.status[r.Method+" "+r.URL.Path]
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if status != 0 {
			w.WriteHeader(status)
			_, _ = io.WriteString(w, `{"message":"upstream says no"}`)
			return
		}
		switch r.Method + " " + r.URL.Path {
		case "POST /auth/login":
			_, _ = io.WriteString(w, `{"message":"otp sent successfully"}`)
		case "POST /auth/login/verify":
			_, _ = io.WriteString(w, `{"message":"ok","userId":42,"accessToken":"flo-token"}`)
		case "GET /users/rental":
			_, _ = io.WriteString(w, `{"data":[{"id":"u1","name":"Ada","status":"active"}],"page":{"previous":1,"current":2,"next":3,"total":5,"size":10}}`)
		case "GET /tickets/t1":
			_, _ = io.WriteString(w, `{"data":{"id":"t1","subject":"Flat tyre","ticket_status":"open","createdAt":"2024-03-05T10:00:00Z"}}`)
		case "PUT /tickets/t1/status":
			_, _ = io.WriteString(w, `{"message":"updated"}`)
		default:
			t.Errorf("unexpected upstream call %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func (f *fakeFlo) count(method, path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c.method == method && c.path == path {
			n++
		}
	}
	return n
}

func (f *fakeFlo) last(method, path string) upstreamCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.calls) - 1; i >= 0; i-- {
		if f.calls[i].method == method && f.calls[i].path == path {
			return f.calls[i]
		}
	}
	return upstreamCall{}
}

type recordingWriter struct {
	mu   sync.Mutex
	msgs []kafka.Message
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error { return nil }

func newTestApp(t *testing.T) (*App, *fakeFlo, *recordingWriter) {
	t.Helper()
	flo := &fakeFlo{status: map[string]int{}}
	srv := httptest.NewServer(flo.handler(t))
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		App:      config.AppConfig{Name: "flo-admin-console", Version: "test"},
		Upstream: config.UpstreamConfig{BaseURL: srv.URL, TimeoutSeconds: 5},
		Auth:     config.AuthConfig{JWTSecret: "jwt-secret", SessionTTLMinutes: 60, SealingSecret: "sealing-secret"},
		Cache:    config.CacheConfig{Enabled: true, DefaultTTLSeconds: 30, ActivitiesTTLSeconds: 300},
	}
	writer := &recordingWriter{}
	a, err := New(Options{Config: cfg, Logger: zap.NewNop(), Metrics: observability.NewMetrics(), KafkaWriter: writer})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return a, flo, writer
}

func do(t *testing.T, a *App, method, target, token, body string) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := a.Fiber.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	defer resp.Body.Close()
	out := map[string]any{}
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &out)
	}
	return resp.StatusCode, out
}

func login(t *testing.T, a *App) string {
	t.Helper()
	status, body := do(t, a, http.MethodPost, "/api/auth/login", "", `{"email":"ops@flo.io","password":"pw"}`)
	if status != http.StatusOK {
		t.Fatalf("login status %d: %v", status, body)
	}
	if step := body["data"].(map[string]any)["step"]; step != "enter-otp" {
		t.Fatalf("unexpected step %v", step)
	}
	status, body = do(t, a, http.MethodPost, "/api/auth/login/verify", "", `{"email":"ops@flo.io","otp":"123456"}`)
	if status != http.StatusCreated {
		t.Fatalf("verify status %d: %v", status, body)
	}
	token, _ := body["data"].(map[string]any)["token"].(string)
	if token == "" {
		t.Fatalf("missing token in %v", body)
	}
	return token
}

func errorCode(body map[string]any) string {
	errBody, _ := body["error"].(map[string]any)
	code, _ := errBody["code"].(string)
	return code
}

func TestHealthAndMetrics(t *testing.T) {
	a, _, _ := newTestApp(t)
	if status, _ := do(t, a, http.MethodGet, "/health/live", "", ""); status != http.StatusOK {
		t.Fatalf("live status %d", status)
	}
	status, body := do(t, a, http.MethodGet, "/health/ready", "", "")
	if status != http.StatusOK {
		t.Fatalf("ready status %d: %v", status, body)
	}
	deps := body["dependencies"].(map[string]any)
	if deps["postgres"] != "disabled" || deps["redis"] != "disabled" {
		t.Fatalf("unexpected dependencies %v", deps)
	}

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp, err := a.Fiber.Test(req, -1)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("metrics: %v %v", err, resp)
	}
	raw, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(raw), "http_requests_total") {
		t.Fatalf("metrics output missing request counter")
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	a, flo, _ := newTestApp(t)
	status, body := do(t, a, http.MethodGet, "/api/customers", "", "")
	if status != http.StatusUnauthorized || errorCode(body) != "UNAUTHORIZED" {
		t.Fatalf("expected 401, got %d %v", status, body)
	}
	status, _ = do(t, a, http.MethodGet, "/api/customers", "not-a-jwt", "")
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 for garbage token, got %d", status)
	}
	if len(flo.calls) != 0 {
		t.Fatalf("no upstream call expected, got %v", flo.calls)
	}
}

func TestUnknownRouteIsNotFound(t *testing.T) {
	a, _, _ := newTestApp(t)
	status, body := do(t, a, http.MethodGet, "/nope", "", "")
	if status != http.StatusNotFound || errorCode(body) != "NOT_FOUND" {
		t.Fatalf("expected 404, got %d %v", status, body)
	}
}

func TestLoginFailureCarriesUpstreamMessage(t *testing.T) {
	a, flo, _ := newTestApp(t)
	flo.status["POST /auth/login"] = http.StatusUnauthorized
	status, body := do(t, a, http.MethodPost, "/api/auth/login", "", `{"email":"ops@flo.io","password":"bad"}`)
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", status)
	}
	if msg := body["error"].(map[string]any)["message"]; msg != "upstream says no" {
		t.Fatalf("unexpected message %v", msg)
	}
}

func TestCustomerListForwardsTokenAndBuildsLinks(t *testing.T) {
	a, flo, _ := newTestApp(t)
	token := login(t, a)

	status, body := do(t, a, http.MethodGet, "/api/customers?page=2&size=10", token, "")
	if status != http.StatusOK {
		t.Fatalf("list status %d: %v", status, body)
	}
	call := flo.last(http.MethodGet, "/users/rental")
	if call.auth != "Bearer flo-token" {
		t.Fatalf("upstream token not forwarded: %q", call.auth)
	}
	links := body["links"].(map[string]any)
	if links["self"] != "/api/customers?page=2&size=10" ||
		links["next"] != "/api/customers?page=3&size=10" ||
		links["previous"] != "/api/customers?page=1&size=10" {
		t.Fatalf("unexpected links %v", links)
	}

	_, _ = do(t, a, http.MethodGet, "/api/customers?page=2&size=10", token, "")
	if n := flo.count(http.MethodGet, "/users/rental"); n != 1 {
		t.Fatalf("second list should be cached, got %d upstream calls", n)
	}

	status, body = do(t, a, http.MethodGet, "/api/auth/me", token, "")
	if status != http.StatusOK || body["data"].(map[string]any)["operatorId"] != "42" {
		t.Fatalf("unexpected me response %d %v", status, body)
	}
}

func TestTicketStatusUpdate(t *testing.T) {
	a, flo, writer := newTestApp(t)
	token := login(t, a)

	status, body := do(t, a, http.MethodPut, "/api/tickets/t1/status", token, `{"status":"open"}`)
	if status != http.StatusConflict || body["error"].(map[string]any)["message"] != "Ticket is already in Open status." {
		t.Fatalf("expected conflict, got %d %v", status, body)
	}
	if flo.count(http.MethodPut, "/tickets/t1/status") != 0 {
		t.Fatalf("same-status update must not reach upstream")
	}

	status, body = do(t, a, http.MethodPut, "/api/tickets/t1/status", token, `{"status":"resolved"}`)
	if status != http.StatusOK {
		t.Fatalf("update status %d: %v", status, body)
	}
	data := body["data"].(map[string]any)
	if data["message"] != "Ticket status has been updated to Resolved successfully!" {
		t.Fatalf("unexpected message %v", data["message"])
	}
	put := flo.last(http.MethodPut, "/tickets/t1/status")
	if !strings.Contains(put.body, `"resolutionComment":"Issue has been resolved successfully."`) {
		t.Fatalf("unexpected upstream body %s", put.body)
	}

	a.Close()
	var types []string
	for _, m := range writer.msgs {
		for _, h := range m.Headers {
			if h.Key == "event_type" {
				types = append(types, string(h.Value))
			}
		}
	}
	if strings.Join(types, ",") != "operator_logged_in,ticket_status_changed" {
		t.Fatalf("unexpected streamed events %v", types)
	}
}

func TestDashboardRejectsInvertedRange(t *testing.T) {
	a, _, _ := newTestApp(t)
	token := login(t, a)
	status, body := do(t, a, http.MethodGet, "/api/dashboard?startDate=2024-05-02&endDate=2024-05-01", token, "")
	if status != http.StatusBadRequest || body["error"].(map[string]any)["message"] != "start date cannot be after end date" {
		t.Fatalf("expected 400, got %d %v", status, body)
	}
}

func TestAuditDisabledWithoutPostgres(t *testing.T) {
	a, _, _ := newTestApp(t)
	token := login(t, a)
	status, body := do(t, a, http.MethodGet, "/api/audit", token, "")
	if status != http.StatusServiceUnavailable || errorCode(body) != "AUDIT_DISABLED" {
		t.Fatalf("expected 503, got %d %v", status, body)
	}
}

func TestUpstreamServerErrorBecomesBadGateway(t *testing.T) {
	a, flo, _ := newTestApp(t)
	token := login(t, a)
	flo.status["GET /users/taxi"] = http.StatusInternalServerError
	status, body := do(t, a, http.MethodGet, "/api/billing", token, "")
	if status != http.StatusBadGateway || errorCode(body) != "UPSTREAM_ERROR" {
		t.Fatalf("expected 502, got %d %v", status, body)
	}
}
