package admin

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"docmind-backend/internal/documents"
	"docmind-backend/internal/shared/server/middleware"
	"docmind-backend/internal/shared/server/respond"
	"docmind-backend/internal/shared/telemetry"
)

// Handler exposes administrative operations.
type Handler struct {
	Docs *documents.Service
}

func NewHandler(docs *documents.Service) *Handler {
	return &Handler{Docs: docs}
}

// RegisterRoutes attaches admin routes. Callers must guard the group with
// middleware.RequireAdmin.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.DELETE("/admin/users/:id", h.deleteUser)
}

// deleteUser removes a user's documents and any derived artifacts stored
// with them.
func (h *Handler) deleteUser(c *gin.Context) {
	targetID := strings.TrimSpace(c.Param("id"))
	if targetID == "" {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "user id is required", nil)
		return
	}

	deleted, err := h.Docs.DeleteOwner(c.Request.Context(), targetID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to delete user data", nil)
		return
	}

	telemetry.Info("admin.user_deleted", map[string]any{
		"admin_id":          middleware.UserIDFromContext(c),
		"target_user_id":    targetID,
		"documents_deleted": deleted,
	})

	respond.OK(c, gin.H{
		"userId":           targetID,
		"documentsDeleted": deleted,
	})
}
