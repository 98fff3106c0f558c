package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/dogvet-api/internal/audit"
	"github.com/BruksfildServices01/dogvet-api/internal/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newIssuer(t *testing.T) *auth.Issuer {
	t.Helper()
	iss, err := auth.NewIssuer(auth.IssuerConfig{
		Secret: "k", Issuer: "dogvetapi.com", Audience: "usuario_comun", TTL: time.Hour,
	})
	require.NoError(t, err)
	return iss
}

func router(iss *auth.Issuer, roles ...auth.Role) *gin.Engine {
	r := gin.New()
	r.GET("/x", AuthMiddleware(iss), RequireRoles(roles...), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"login": IdentityFrom(c).Login,
			"id":    IdentityFrom(c).CredentialID,
			"actor": audit.ActorFrom(c.Request.Context()),
		})
	})
	return r
}

func call(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	iss := newIssuer(t)
	r := router(iss, auth.RoleStaff, auth.RoleClient)

	tok, err := iss.Issue(auth.Identity{CredentialID: 2, Login: "cliente@gft.com", Role: auth.RoleClient})
	require.NoError(t, err)

	w := call(r, "Bearer "+tok.Value)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"actor":"cliente@gft.com"`)
	assert.Contains(t, w.Body.String(), `"id":2`)

	for _, header := range []string{"", "Basic abc", "Bearer nope"} {
		w := call(r, header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, header)
		assert.Contains(t, w.Body.String(), `"error_code":"unauthorized"`)
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	issued := time.Now().Add(-2 * time.Hour)
	old := newIssuer(t).WithClock(func() time.Time { return issued })

	tok, err := old.Issue(auth.Identity{CredentialID: 1, Login: "f@gft.com", Role: auth.RoleStaff})
	require.NoError(t, err)

	w := call(router(newIssuer(t), auth.RoleStaff), "Bearer "+tok.Value)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoles_RejectsOutOfSet(t *testing.T) {
	iss := newIssuer(t)
	r := router(iss, auth.RoleStaff)

	tok, err := iss.Issue(auth.Identity{CredentialID: 2, Login: "cliente@gft.com", Role: auth.RoleClient})
	require.NoError(t, err)

	w := call(r, "Bearer "+tok.Value)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"http://ok.test"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://ok.test")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://ok.test", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://evil.test")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	r := gin.New()
	r.Use(RequestLogger(log))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))
	assert.Contains(t, buf.String(), `"status":418`)
}
