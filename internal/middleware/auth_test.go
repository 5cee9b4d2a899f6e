package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func signedToken(t *testing.T, secret, role string, ttl time.Duration) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub":  "507f1f77bcf86cd799439011",
		"role": role,
		"exp":  time.Now().Add(ttl).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing test token failed: %v", err)
	}
	return signed
}

func guardedRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/guarded", AdminAuth(secret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"adminId": c.GetString("adminId")})
	})
	return r
}

func TestAdminAuthRejectsMissingOrMalformedToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"no bearer prefix", "just-a-token"},
		{"wrong scheme", "Basic abc123"},
	}

	r := guardedRouter(testSecret)
	for _, tt := range tests {
		recorder := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/guarded", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		r.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", tt.name, recorder.Code)
		}
	}
}

func TestAdminAuthRejectsBadSignatureAndExpiry(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"wrong secret", signedToken(t, "other-secret", "admin", time.Minute)},
		{"expired", signedToken(t, testSecret, "admin", -time.Minute)},
	}

	r := guardedRouter(testSecret)
	for _, tt := range tests {
		recorder := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/guarded", nil)
		req.Header.Set("Authorization", "Bearer "+tt.token)
		r.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", tt.name, recorder.Code)
		}
	}
}

func TestAdminAuthRejectsNonAdminRole(t *testing.T) {
	r := guardedRouter(testSecret)

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, testSecret, "customer", time.Minute))
	r.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", recorder.Code)
	}
}

func TestAdminAuthInjectsAdminID(t *testing.T) {
	r := guardedRouter(testSecret)

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, testSecret, "admin", time.Minute))
	r.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", recorder.Code, recorder.Body.String())
	}
	if body := recorder.Body.String(); !strings.Contains(body, "507f1f77bcf86cd799439011") {
		t.Fatalf("expected adminId from the sub claim, got %s", body)
	}
}
