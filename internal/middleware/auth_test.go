package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/physiocare/physiocare-api/internal/model"
	"github.com/physiocare/physiocare-api/pkg/auth"
)

func newTestRouter(t *testing.T) (*gin.Engine, auth.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtSvc := auth.NewJWTService(auth.Config{
		Secret:        "test-secret",
		RefreshSecret: "test-refresh-secret",
	})
	authMW := NewAuthMiddleware(jwtSvc)

	r := gin.New()
	protected := r.Group("/", authMW.Authenticate())
	protected.GET("/any", func(c *gin.Context) { c.Status(http.StatusOK) })
	protected.POST("/admin-only", authMW.RequireRoles(model.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	protected.POST("/staff", authMW.RequireRoles(model.RoleAdmin, model.RoleSupportStaff), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, jwtSvc
}

func tokenFor(t *testing.T, jwtSvc auth.JWTService, role model.Role) string {
	t.Helper()
	token, err := jwtSvc.GenerateAccessToken(&model.User{
		Base:  model.Base{ID: uuid.New()},
		Email: "user@example.com",
		Role:  role,
	})
	require.NoError(t, err)
	return token
}

func TestAuthenticateMissingHeader(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/any", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateBadToken(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/any", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoles(t *testing.T) {
	r, jwtSvc := newTestRouter(t)

	tests := []struct {
		name string
		path string
		role model.Role
		want int
	}{
		{"admin on admin route", "/admin-only", model.RoleAdmin, http.StatusOK},
		{"patient on admin route", "/admin-only", model.RolePatient, http.StatusForbidden},
		{"therapist on admin route", "/admin-only", model.RoleTherapist, http.StatusForbidden},
		{"support staff on staff route", "/staff", model.RoleSupportStaff, http.StatusOK},
		{"patient on staff route", "/staff", model.RolePatient, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, tt.path, nil)
			req.Header.Set("Authorization", "Bearer "+tokenFor(t, jwtSvc, tt.role))
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestUserIDHelper(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := UserID(c)
	assert.False(t, ok)

	id := uuid.New()
	c.Set(ContextUserID, id.String())
	got, ok := UserID(c)
	assert.True(t, ok)
	assert.Equal(t, id, got)
}
