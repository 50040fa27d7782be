// Copyright (c) 2026 Cooperative Impact Lab.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cooperativeimpactlab/cibola-portal/apperr"
)

func TestRequireAdmin(t *testing.T) {
	var called bool
	handler := RequireAdmin("secret", func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantCalled bool
	}{
		{"correct password", "secret", http.StatusOK, true},
		{"wrong password", "wrong", http.StatusUnauthorized, false},
		{"missing header", "", http.StatusUnauthorized, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called = false
			req := httptest.NewRequest("GET", "/admin/monitoring", nil)
			if tt.header != "" {
				req.Header.Set("X-Admin-Password", tt.header)
			}
			w := httptest.NewRecorder()

			handler(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if called != tt.wantCalled {
				t.Errorf("handler called = %v, want %v", called, tt.wantCalled)
			}
		})
	}
}

func TestTaxonomyError(t *testing.T) {
	w := httptest.NewRecorder()
	TaxonomyError(w, fmt.Errorf("%w: phase 2", apperr.ErrGateLocked))

	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", w.Code, http.StatusConflict)
	}
	if !strings.Contains(w.Body.String(), "phase locked") {
		t.Errorf("body missing error message: %s", w.Body.String())
	}
}

func TestJSONResponse(t *testing.T) {
	w := httptest.NewRecorder()
	JSONResponse(w, http.StatusCreated, map[string]string{"hello": "world"})

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", w.Code, http.StatusCreated)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}
	if !strings.Contains(w.Body.String(), `"hello":"world"`) {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestParseJSONBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/votes", strings.NewReader(`{"phase": 2}`))

	var body struct {
		Phase int `json:"phase"`
	}
	if err := ParseJSONBody(req, &body); err != nil {
		t.Fatalf("ParseJSONBody() error = %v", err)
	}
	if body.Phase != 2 {
		t.Errorf("phase = %d, want 2", body.Phase)
	}

	bad := httptest.NewRequest("POST", "/votes", strings.NewReader(`{not json`))
	if err := ParseJSONBody(bad, &body); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestCORS(t *testing.T) {
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest("OPTIONS", "/votes", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("preflight status = %d", w.Code)
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
			t.Errorf("allow-origin = %q", got)
		}
		allowed := w.Header().Get("Access-Control-Allow-Headers")
		if !strings.Contains(allowed, "X-Voter-ID") || !strings.Contains(allowed, "X-Admin-Password") {
			t.Errorf("allow-headers = %q", allowed)
		}
	})

	t.Run("passthrough", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/votes", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		if w.Code != http.StatusTeapot {
			t.Errorf("wrapped handler not reached: status = %d", w.Code)
		}
	})
}
