package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"Aura_Community/internal/middleware"
	"Aura_Community/internal/pkg"

	"github.com/gin-gonic/gin"
)

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", middleware.AuthMiddleware(), func(c *gin.Context) {
		uid, _ := c.Get(middleware.ContextUserIDKey)
		c.JSON(http.StatusOK, gin.H{"user_id": uid})
	})
	return r
}

func doReq(t *testing.T, r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMissingToken(t *testing.T) {
	r := newAuthRouter()
	w := doReq(t, r, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("body: %v", err)
	}
	if body["error"] != "Access denied. No token provided." {
		t.Fatalf("error = %q, want access-denied message", body["error"])
	}
}

func TestAuthMalformedHeader(t *testing.T) {
	r := newAuthRouter()
	w := doReq(t, r, "Token abc123")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestAuthInvalidToken(t *testing.T) {
	r := newAuthRouter()
	w := doReq(t, r, "Bearer not-a-jwt")
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
	var body map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["error"] != "Invalid token" {
		t.Fatalf("error = %q, want \"Invalid token\"", body["error"])
	}
}

func TestAuthValidToken(t *testing.T) {
	r := newAuthRouter()
	pair, err := pkg.GeneratePair(42)
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}
	w := doReq(t, r, "Bearer "+pair.AccessToken)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}
	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if uid, ok := body["user_id"].(float64); !ok || uint64(uid) != 42 {
		t.Fatalf("user_id = %v, want 42", body["user_id"])
	}
}
