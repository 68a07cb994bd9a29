package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stcadmin/backend/internal/infrastructure/auth"
	"github.com/stcadmin/backend/internal/infrastructure/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRouter(t *testing.T, groups []string) (*gin.Engine, string) {
	t.Helper()
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:          "test-secret",
		Issuer:          "stcadmin",
		ExpirationHours: 1,
	})
	token, _, err := jwtService.GenerateToken(uuid.New(), "tester", groups)
	require.NoError(t, err)

	engine := gin.New()
	engine.Use(JWTAuth(jwtService, nil))
	engine.GET("/open", func(c *gin.Context) { c.Status(http.StatusOK) })
	engine.GET("/fba", RequireGroup("fba"), func(c *gin.Context) { c.Status(http.StatusOK) })
	return engine, token
}

func get(engine *gin.Engine, path, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
	}
	engine.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	engine, token := newAuthRouter(t, []string{"fba"})

	t.Run("valid token passes", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, get(engine, "/open", token).Code)
	})

	t.Run("missing header", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, get(engine, "/open", "").Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, get(engine, "/open", "garbage").Code)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/open", nil)
		req.Header.Set(AuthHeaderKey, "Basic "+token)
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireGroup(t *testing.T) {
	t.Run("member passes", func(t *testing.T) {
		engine, token := newAuthRouter(t, []string{"fba", "labelmaker"})
		assert.Equal(t, http.StatusOK, get(engine, "/fba", token).Code)
	})

	t.Run("non member is forbidden", func(t *testing.T) {
		engine, token := newAuthRouter(t, []string{"labelmaker"})
		assert.Equal(t, http.StatusForbidden, get(engine, "/fba", token).Code)
	})

	t.Run("no groups is forbidden", func(t *testing.T) {
		engine, token := newAuthRouter(t, nil)
		assert.Equal(t, http.StatusForbidden, get(engine, "/fba", token).Code)
	})
}
