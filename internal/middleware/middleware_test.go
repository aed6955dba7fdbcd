package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/pharma-scheduler/internal/audit"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func sign(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func securedRouter() *gin.Engine {
	r := gin.New()
	r.Use(RequestLogger(zerolog.Nop()))
	r.Use(AuthMiddleware("s3cret"))
	r.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, audit.ActorFrom(c.Request.Context()))
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	valid := sign(t, "s3cret", jwt.MapClaims{"sub": "ana", "exp": time.Now().Add(time.Hour).Unix()})
	expired := sign(t, "s3cret", jwt.MapClaims{"sub": "ana", "exp": time.Now().Add(-time.Hour).Unix()})
	foreign := sign(t, "other", jwt.MapClaims{"sub": "ana"})
	noSubject := sign(t, "s3cret", jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})

	cases := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"valid", "Bearer " + valid, http.StatusOK, "ana"},
		{"missing", "", http.StatusUnauthorized, "missing_authorization_header"},
		{"scheme", "Token " + valid, http.StatusUnauthorized, "invalid_authorization_header"},
		{"expired", "Bearer " + expired, http.StatusUnauthorized, "invalid_token"},
		{"wrong secret", "Bearer " + foreign, http.StatusUnauthorized, "invalid_token"},
		{"no subject", "Bearer " + noSubject, http.StatusUnauthorized, "invalid_token_payload"},
	}

	r := securedRouter()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
			assert.Contains(t, w.Body.String(), tc.body)
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware("https://farmacia.example"))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://farmacia.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://farmacia.example", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
