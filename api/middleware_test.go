package api_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/webert/crm/api"
	"github.com/webert/crm/internal/models"
)

func TestLoggingMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	handler := api.LoggingMiddleware(next)
	req := httptest.NewRequest(http.MethodGet, "/log", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)
	res := w.Result()
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if string(b) != "ok" {
		t.Fatalf("unexpected body: %q", string(b))
	}
}

func TestCORSMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := api.CORSMiddleware(next)

	// OPTIONS should return 204 and not call next
	reqOpt := httptest.NewRequest(http.MethodOptions, "/cors", nil)
	wOpt := httptest.NewRecorder()
	handler.ServeHTTP(wOpt, reqOpt)
	resOpt := wOpt.Result()
	defer resOpt.Body.Close()
	if resOpt.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204 for OPTIONS, got %d", resOpt.StatusCode)
	}
	if got := resOpt.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected CORS header set, got %q", got)
	}
	if got := resOpt.Header.Get("Access-Control-Allow-Headers"); !strings.Contains(got, api.TokenHeader) {
		t.Fatalf("expected Allow-Headers to include the token header, got %q", got)
	}

	// GET should pass through and set headers
	reqGet := httptest.NewRequest(http.MethodGet, "/cors", nil)
	wGet := httptest.NewRecorder()
	handler.ServeHTTP(wGet, reqGet)
	resGet := wGet.Result()
	defer resGet.Body.Close()
	if resGet.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for GET, got %d", resGet.StatusCode)
	}
	if got := resGet.Header.Get("Access-Control-Allow-Methods"); !strings.Contains(got, "PUT") {
		t.Fatalf("expected Allow-Methods to include PUT, got %q", got)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	pan := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	handler := api.RecoveryMiddleware(pan)
	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	res := w.Result()
	defer res.Body.Close()
	if res.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500 from panic recovery, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), "server error") {
		t.Fatalf("unexpected body for recovery: %s", string(b))
	}

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	handler2 := api.RecoveryMiddleware(ok)
	w2 := httptest.NewRecorder()
	handler2.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/ok", nil))
	if w2.Result().StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for normal path, got %d", w2.Result().StatusCode)
	}
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func TestTokenAuthWithSecret(t *testing.T) {
	secret := "s3cr3t"
	mw := api.TokenAuthWithSecret(secret)

	var gotUserID int64
	var gotRole string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = r.Context().Value(api.CtxUserID).(int64)
		gotRole, _ = r.Context().Value(api.CtxRole).(string)
		w.WriteHeader(http.StatusOK)
	})
	handler := mw(next)

	cases := []struct {
		name       string
		token      string
		wantStatus int
	}{
		{name: "MissingHeader", token: "", wantStatus: http.StatusUnauthorized},
		{name: "Garbage", token: "bad.token.here", wantStatus: http.StatusUnauthorized},
		{
			name: "WrongSecret",
			token: signToken(t, "othersecret", jwt.MapClaims{
				"userId": 1, "role": models.RolePracownik, "exp": time.Now().Add(time.Hour).Unix(),
			}),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "Expired",
			token: signToken(t, secret, jwt.MapClaims{
				"userId": 1, "role": models.RolePracownik, "exp": time.Now().Add(-time.Hour).Unix(),
			}),
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if c.token != "" {
				req.Header.Set(api.TokenHeader, c.token)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			if w.Result().StatusCode != c.wantStatus {
				t.Fatalf("%s: want %d got %d", c.name, c.wantStatus, w.Result().StatusCode)
			}
		})
	}

	// valid token populates the context
	tok := signToken(t, secret, jwt.MapClaims{
		"userId": 7, "role": models.RoleAdministrator, "exp": time.Now().Add(time.Hour).Unix(),
	})
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(api.TokenHeader, tok)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("valid token: expected 200 got %d", w.Result().StatusCode)
	}
	if gotUserID != 7 {
		t.Fatalf("expected userId 7 in context, got %d", gotUserID)
	}
	if gotRole != models.RoleAdministrator {
		t.Fatalf("expected role in context, got %q", gotRole)
	}
}

func TestRequireRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	handler := api.RequireRole(models.RoleAdministrator)(next)

	// no role in context
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/gated", nil))
	if w.Result().StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a role, got %d", w.Result().StatusCode)
	}

	// wrong role
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, asPrincipal(httptest.NewRequest(http.MethodDelete, "/gated", nil), 1, models.RolePracownik))
	if w.Result().StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for an excluded role, got %d", w.Result().StatusCode)
	}

	// allowed role
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, asPrincipal(httptest.NewRequest(http.MethodDelete, "/gated", nil), 1, models.RoleAdministrator))
	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for an allowed role, got %d", w.Result().StatusCode)
	}
}
