package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Chris-github01/3rd-Party-Inspection-sub000/internal/logger"
	"github.com/Chris-github01/3rd-Party-Inspection-sub000/internal/requestdata"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func newIdentityRouter(t *testing.T) (*gin.Engine, *requestdata.RequestData) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	captured := &requestdata.RequestData{}
	mw := NewIdentityMiddleware(logger.NewNop(), testSecret)
	router := gin.New()
	router.GET("/protected", mw.RequireIdentity(), func(c *gin.Context) {
		if rd := requestdata.GetRequestData(c.Request.Context()); rd != nil {
			*captured = *rd
		}
		c.Status(http.StatusOK)
	})
	return router, captured
}

func TestRequireIdentity_ValidToken(t *testing.T) {
	router, captured := newIdentityRouter(t)
	userID := uuid.New()
	token := signToken(t, jwt.MapClaims{"sub": userID.String(), "name": "J. Inspector"}, testSecret)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: want=200 got=%d", rec.Code)
	}
	if captured.UserID != userID {
		t.Fatalf("user id: want=%s got=%s", userID, captured.UserID)
	}
	if captured.DisplayName != "J. Inspector" {
		t.Fatalf("display name: got %q", captured.DisplayName)
	}
}

func TestRequireIdentity_Rejections(t *testing.T) {
	router, _ := newIdentityRouter(t)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not a bearer token", "Basic abc"},
		{"garbage token", "Bearer not.a.jwt"},
		{"wrong secret", "Bearer " + signToken(t, jwt.MapClaims{"sub": uuid.New().String()}, "other-secret")},
		{"non-uuid subject", "Bearer " + signToken(t, jwt.MapClaims{"sub": "bob"}, testSecret)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			router.ServeHTTP(rec, req)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status: want=401 got=%d", rec.Code)
			}
		})
	}
}
