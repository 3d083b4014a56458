package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Charusm03/todo-app/internal/auth"
	"github.com/Charusm03/todo-app/internal/middleware"
	"github.com/Charusm03/todo-app/internal/model"
	"github.com/Charusm03/todo-app/internal/policy"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_jwt_secret_32_chars_minimum!"

func signToken(t *testing.T, role policy.Role, ttl time.Duration) string {
	t.Helper()
	u := &model.User{ID: uuid.New(), Username: "testuser", Role: role}
	token, err := auth.IssueToken(testSecret, u, ttl)
	require.NoError(t, err)
	return token
}

func testRouter(handlerCalled *bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.JWTAuth(testSecret))
	ok := func(c *gin.Context) {
		if handlerCalled != nil {
			*handlerCalled = true
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
	r.GET("/todos", middleware.RequirePermission(policy.OpRead), ok)
	r.PUT("/todos/:id", middleware.RequirePermission(policy.OpUpdate), ok)
	r.GET("/users", middleware.RequireRole(policy.RoleAdmin), ok)
	return r
}

func do(r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

// ── JWTAuth ───────────────────────────────────────────────────────────────────

func TestJWTAuth_MissingToken(t *testing.T) {
	w := do(testRouter(nil), http.MethodGet, "/todos", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_MalformedHeader(t *testing.T) {
	r := testRouter(nil)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/todos", nil)
	req.Header.Set("Authorization", "Token abc123")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_GarbageToken(t *testing.T) {
	w := do(testRouter(nil), http.MethodGet, "/todos", "this.is.garbage")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	tok := signToken(t, policy.RoleAdmin, -time.Second)
	w := do(testRouter(nil), http.MethodGet, "/todos", tok)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestJWTAuth_ValidToken(t *testing.T) {
	tok := signToken(t, policy.RoleEmployee, time.Hour)
	w := do(testRouter(nil), http.MethodGet, "/todos", tok)
	assert.Equal(t, http.StatusOK, w.Code)
}

// ── RequirePermission ─────────────────────────────────────────────────────────

func TestRequirePermission_EmployeeUpdateDeniedBeforeHandler(t *testing.T) {
	// The permission check is role-only and runs before any lookup, so an
	// employee gets 403 no matter whether the id exists.
	called := false
	r := testRouter(&called)
	tok := signToken(t, policy.RoleEmployee, time.Hour)

	w := do(r, http.MethodPut, "/todos/"+uuid.NewString(), tok)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, called, "handler must not run after a policy denial")
}

func TestRequirePermission_ManagerUpdateAllowed(t *testing.T) {
	tok := signToken(t, policy.RoleManager, time.Hour)
	w := do(testRouter(nil), http.MethodPut, "/todos/"+uuid.NewString(), tok)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequirePermission_UnknownRoleDenied(t *testing.T) {
	tok := signToken(t, policy.Role("intern"), time.Hour)
	w := do(testRouter(nil), http.MethodGet, "/todos", tok)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

// ── RequireRole ───────────────────────────────────────────────────────────────

func TestRequireRole_WrongRole(t *testing.T) {
	tok := signToken(t, policy.RoleManager, time.Hour)
	w := do(testRouter(nil), http.MethodGet, "/users", tok)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRole_CorrectRole(t *testing.T) {
	tok := signToken(t, policy.RoleAdmin, time.Hour)
	w := do(testRouter(nil), http.MethodGet, "/users", tok)
	assert.Equal(t, http.StatusOK, w.Code)
}
