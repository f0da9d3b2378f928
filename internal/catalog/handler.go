package catalog

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"farmadvisor-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the public read-only catalog route.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/catalog/:kind", h.list)
}

// RegisterAdminRoutes attaches option management routes.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/catalog/:kind", h.add)
	rg.DELETE("/catalog/:kind/:value", h.remove)
}

func (h *Handler) list(c *gin.Context) {
	kind := c.Param("kind")
	values, err := h.Svc.List(c.Request.Context(), kind)
	if err != nil {
		if errors.Is(err, ErrUnknownKind) {
			respond.Error(c, http.StatusNotFound, "not_found", "unknown catalog", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list options", nil)
		return
	}
	if values == nil {
		values = []string{}
	}
	respond.JSON(c, http.StatusOK, gin.H{"kind": kind, "options": values})
}

type addOptionRequest struct {
	Value string `json:"value"`
}

func (h *Handler) add(c *gin.Context) {
	var req addOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	kind := c.Param("kind")
	if err := h.Svc.Add(c.Request.Context(), kind, req.Value); err != nil {
		switch {
		case errors.Is(err, ErrUnknownKind):
			respond.Error(c, http.StatusNotFound, "not_found", "unknown catalog", nil)
		case errors.Is(err, ErrInvalidValue):
			respond.Error(c, http.StatusBadRequest, "validation_error", "a non-empty value is required", nil)
		case errors.Is(err, ErrExists):
			respond.Error(c, http.StatusConflict, "exists", "option already exists", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to add option", nil)
		}
		return
	}
	c.Status(http.StatusCreated)
}

func (h *Handler) remove(c *gin.Context) {
	kind := c.Param("kind")
	value := c.Param("value")
	if err := h.Svc.Remove(c.Request.Context(), kind, value); err != nil {
		switch {
		case errors.Is(err, ErrUnknownKind), errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "option not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to remove option", nil)
		}
		return
	}
	c.Status(http.StatusNoContent)
}
