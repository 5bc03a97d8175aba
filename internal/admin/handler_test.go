package admin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"docmind-backend/internal/documents"
	"docmind-backend/internal/shared/auth"
	"docmind-backend/internal/shared/server/middleware"
)

func newTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api/v1")
	admin := api.Group("")
	admin.Use(func(c *gin.Context) {
		c.Set("userId", "admin-1")
		c.Set("userRole", auth.RoleAdmin)
		c.Next()
	})
	admin.Use(middleware.RequireAdmin())
	h.RegisterRoutes(admin)
	return r
}

func TestDeleteUserCascades(t *testing.T) {
	repo := documents.NewMemoryRepo()
	svc := &documents.Service{Repo: repo}
	ctx := context.Background()

	for _, doc := range []documents.Document{
		{ID: "d1", OwnerID: "victim", FileName: "a.txt"},
		{ID: "d2", OwnerID: "victim", FileName: "b.txt"},
		{ID: "d3", OwnerID: "other", FileName: "c.txt"},
	} {
		if err := repo.Create(ctx, doc); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	r := newTestRouter(NewHandler(svc))

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/users/victim", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), `"documentsDeleted":2`) {
		t.Fatalf("expected 2 deleted, got %s", resp.Body.String())
	}

	remaining, _, err := repo.ListByOwner(ctx, "other", 10, 0)
	if err != nil {
		t.Fatalf("list other: %v", err)
	}
	if len(remaining) != 1 {
		t.Fatalf("expected other owner untouched, got %d docs", len(remaining))
	}
	gone, _, err := repo.ListByOwner(ctx, "victim", 10, 0)
	if err != nil {
		t.Fatalf("list victim: %v", err)
	}
	if len(gone) != 0 {
		t.Fatalf("expected victim docs removed, got %d", len(gone))
	}
}

func TestDeleteUserRequiresAdminRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := documents.NewMemoryRepo()
	h := NewHandler(&documents.Service{Repo: repo})

	r := gin.New()
	api := r.Group("/api/v1")
	api.Use(func(c *gin.Context) {
		c.Set("userId", "user-1")
		c.Set("userRole", auth.RoleUser)
		c.Next()
	})
	api.Use(middleware.RequireAdmin())
	h.RegisterRoutes(api)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/users/victim", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.Code)
	}
}
