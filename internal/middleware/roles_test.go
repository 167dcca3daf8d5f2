package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/sgca/treasury_backend/internal/core/domain"
)

func performWithRole(t *testing.T, role *domain.UserRole, allowed ...domain.UserRole) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/protected",
		func(c *gin.Context) {
			if role != nil {
				c.Set(string(userRoleKey), *role)
			}
		},
		RequireRole(allowed...),
		func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		},
	)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)
	return w
}

func TestRequireRole(t *testing.T) {
	treasurer := domain.RoleTreasurer
	member := domain.RoleMember
	president := domain.RolePresident

	tests := []struct {
		name    string
		role    *domain.UserRole
		allowed []domain.UserRole
		want    int
	}{
		{name: "allowed role passes", role: &treasurer, allowed: []domain.UserRole{domain.RoleTreasurer}, want: http.StatusOK},
		{name: "one of several allowed roles passes", role: &president, allowed: []domain.UserRole{domain.RolePresident, domain.RoleTreasurer}, want: http.StatusOK},
		{name: "disallowed role rejected", role: &member, allowed: []domain.UserRole{domain.RoleTreasurer}, want: http.StatusForbidden},
		{name: "missing role rejected", role: nil, allowed: []domain.UserRole{domain.RoleTreasurer}, want: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performWithRole(t, tt.role, tt.allowed...)
			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusForbidden {
				assert.JSONEq(t, `{"error":"Access denied"}`, w.Body.String())
			}
		})
	}
}
