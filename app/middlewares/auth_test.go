package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SuperiorKe/sms-africas-talking/app/config"

	"github.com/golang-jwt/jwt/v5"
)

func protected(cfg config.Config) http.Handler {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return AdminAuth(cfg)(ok)
}

func TestAdminAuthDisabledWithoutSecret(t *testing.T) {
	rr := httptest.NewRecorder()
	protected(config.Config{}).ServeHTTP(rr, httptest.NewRequest("POST", "/", nil))
	if rr.Code != http.StatusOK {
		t.Errorf("expected pass-through without secret, got %d", rr.Code)
	}
}

func TestAdminAuthRejectsMissingToken(t *testing.T) {
	cfg := config.Config{AdminJWTSecret: "secret"}

	rr := httptest.NewRecorder()
	protected(cfg).ServeHTTP(rr, httptest.NewRequest("POST", "/", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without header, got %d", rr.Code)
	}

	req := httptest.NewRequest("POST", "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rr = httptest.NewRecorder()
	protected(cfg).ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for garbage token, got %d", rr.Code)
	}
}

func TestAdminAuthAcceptsValidToken(t *testing.T) {
	cfg := config.Config{AdminJWTSecret: "secret"}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	req := httptest.NewRequest("POST", "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rr := httptest.NewRecorder()
	protected(cfg).ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("expected 200 for valid token, got %d", rr.Code)
	}
}

func TestAdminAuthRejectsWrongSecret(t *testing.T) {
	cfg := config.Config{AdminJWTSecret: "secret"}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, _ := token.SignedString([]byte("other-secret"))

	req := httptest.NewRequest("POST", "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rr := httptest.NewRecorder()
	protected(cfg).ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for wrong secret, got %d", rr.Code)
	}
}
