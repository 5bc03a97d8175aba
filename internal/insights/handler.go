package insights

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"docmind-backend/internal/documents"
	"docmind-backend/internal/llm"
	"docmind-backend/internal/shared/server/middleware"
	"docmind-backend/internal/shared/server/respond"
)

// Handler exposes the artifact endpoints.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches artifact routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/documents/:id/summary", h.summary)
	rg.POST("/documents/:id/keywords", h.keywords)
}

func (h *Handler) summary(c *gin.Context) {
	ownerID := middleware.UserIDFromContext(c)
	documentID := c.Param("id")

	summary, cached, err := h.Svc.Summary(c.Request.Context(), ownerID, documentID)
	if err != nil {
		respondArtifactError(c, err, "failed to summarize document")
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"summary": summary,
		"cached":  cached,
	})
}

func (h *Handler) keywords(c *gin.Context) {
	ownerID := middleware.UserIDFromContext(c)
	documentID := c.Param("id")

	keywords, cached, err := h.Svc.Keywords(c.Request.Context(), ownerID, documentID)
	if err != nil {
		respondArtifactError(c, err, "failed to extract keywords")
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"keywords": keywords,
		"cached":   cached,
	})
}

func respondArtifactError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, documents.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
	case errors.Is(err, ErrEmptyInput):
		respond.Error(c, http.StatusBadRequest, "empty_input", err.Error(), nil)
	case errors.Is(err, llm.ErrRateLimited):
		respond.Error(c, http.StatusTooManyRequests, "rate_limited", "AI request limit reached, retry later", nil)
	case errors.Is(err, llm.ErrUpstream):
		respond.Error(c, http.StatusBadGateway, "upstream_error", "AI capability unavailable", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
