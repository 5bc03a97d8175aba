package search

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"docmind-backend/internal/documents"
	"docmind-backend/internal/llm"
	"docmind-backend/internal/shared/server/middleware"
	"docmind-backend/internal/shared/server/respond"
)

// Handler exposes both search endpoints.
type Handler struct {
	Engine   *Engine
	Searcher *DocumentSearcher
	Docs     documents.Repo
}

// NewHandler constructs a Handler.
func NewHandler(engine *Engine, searcher *DocumentSearcher, docs documents.Repo) *Handler {
	return &Handler{Engine: engine, Searcher: searcher, Docs: docs}
}

// RegisterRoutes attaches search routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/documents/search", h.searchDocuments)
	rg.POST("/documents/:id/search", h.searchInDocument)
}

type searchQuery struct {
	Query string
}

func (q searchQuery) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.Query, validation.Required, validation.Length(1, 500)),
	)
}

func (h *Handler) searchDocuments(c *gin.Context) {
	ownerID := middleware.UserIDFromContext(c)

	q := searchQuery{Query: c.Query("query")}
	if err := q.Validate(); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_query", "a search query is required", err)
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		limit = atoiBounded(raw, defaultLimit, 100)
	}

	results, err := h.Engine.Search(c.Request.Context(), ownerID, q.Query, limit)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidQuery):
			respond.Error(c, http.StatusBadRequest, "invalid_query", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "search failed", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"results":      results,
		"query":        q.Query,
		"totalResults": len(results),
	})
}

type inDocumentRequest struct {
	Query string `json:"query"`
}

func (r inDocumentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Query, validation.Required, validation.Length(1, 500)),
	)
}

func (h *Handler) searchInDocument(c *gin.Context) {
	ownerID := middleware.UserIDFromContext(c)
	documentID := c.Param("id")

	var req inDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "a search query is required", err)
		return
	}

	doc, err := h.Docs.GetByOwner(c.Request.Context(), ownerID, documentID)
	if err != nil {
		switch {
		case errors.Is(err, documents.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch document", nil)
		}
		return
	}

	segments, err := h.Searcher.Search(c.Request.Context(), doc.ContentText, req.Query)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "invalid_input", err.Error(), nil)
		case errors.Is(err, llm.ErrRateLimited):
			respond.Error(c, http.StatusTooManyRequests, "rate_limited", "AI request limit reached, retry later", nil)
		case errors.Is(err, llm.ErrUpstream):
			respond.Error(c, http.StatusBadGateway, "upstream_error", "AI capability unavailable", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "in-document search failed", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"results":      segments,
		"query":        req.Query,
		"totalResults": len(segments),
	})
}

func atoiBounded(raw string, def, max int) int {
	val := def
	if parsed, err := strconv.Atoi(raw); err == nil {
		val = parsed
	}
	if val <= 0 {
		val = def
	}
	if val > max {
		val = max
	}
	return val
}
