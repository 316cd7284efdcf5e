package app

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"vnechat/sms_dispatch/internal/config"
	"vnechat/sms_dispatch/internal/handler"
	"vnechat/sms_dispatch/internal/pkg/sms"
	"vnechat/sms_dispatch/internal/service"
)

func newTestServer() *Server {
	provider := sms.NewSMSRuClient(sms.SMSRuOptions{BaseURL: "http://127.0.0.1:0"})
	smsService := service.NewSMSService(provider, &config.Config{})
	return NewServer(handler.NewSMSHandler(smsService))
}

func TestCORSPreflightRequest(t *testing.T) {
	server := newTestServer()

	req := httptest.NewRequest("OPTIONS", "/api/send-sms", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")

	rr := httptest.NewRecorder()
	server.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rr.Code)
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %v, want *", got)
	}
	if got := rr.Header().Get("Access-Control-Allow-Methods"); got != "POST, OPTIONS" {
		t.Errorf("Access-Control-Allow-Methods = %v, want POST, OPTIONS", got)
	}
	if rr.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", rr.Body.String())
	}
}

func TestCORSWithActualRequest(t *testing.T) {
	server := newTestServer()

	req := httptest.NewRequest("POST", "/api/send-sms", strings.NewReader(`{"phone":"+7 999 123 45 67"}`))
	req.Header.Set("Origin", "http://example.com")

	rr := httptest.NewRecorder()
	server.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rr.Code)
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %v, want *", got)
	}
	if got := rr.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %v, want application/json", got)
	}
}

func TestHealthRoute(t *testing.T) {
	server := newTestServer()

	rr := httptest.NewRecorder()
	server.Handler().ServeHTTP(rr, httptest.NewRequest("GET", "/api/health", nil))

	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rr.Code)
	}
}

func TestUnknownRoute(t *testing.T) {
	server := newTestServer()

	rr := httptest.NewRecorder()
	server.Handler().ServeHTTP(rr, httptest.NewRequest("POST", "/api/unknown", nil))

	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rr.Code)
	}
}

func TestPanicReturnsJSONError(t *testing.T) {
	server := newTestServer()
	server.router.HandleFunc("/api/panic", func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	req := httptest.NewRequest("POST", "/api/panic", nil)
	rr := httptest.NewRecorder()
	server.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rr.Code)
	}
	if got := rr.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %v, want application/json", got)
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %v, want *", got)
	}
	if got := rr.Body.String(); got != `{"error":"Internal Server Error"}` {
		t.Errorf("body = %q", got)
	}
}
