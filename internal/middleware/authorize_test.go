package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"emocare/api/internal/models"
)

func rolesRouter(seed *models.User, roles ...models.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/guarded",
		func(c *gin.Context) {
			if seed != nil {
				c.Set("current_user", *seed)
			}
			c.Next()
		},
		RequireRoles(roles...),
		func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		},
	)
	return router
}

func TestRequireRolesAllowsMatchingRole(t *testing.T) {
	router := rolesRouter(&models.User{ID: "d1", Role: models.RoleDoctor}, models.RoleDoctor)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestRequireRolesRejectsOtherRole(t *testing.T) {
	router := rolesRouter(&models.User{ID: "p1", Role: models.RolePatient}, models.RoleDoctor)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}

func TestRequireRolesRejectsMissingUser(t *testing.T) {
	router := rolesRouter(nil, models.RoleDoctor)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}
