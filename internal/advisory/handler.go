package advisory

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"farmadvisor-backend/internal/advisory/engine"
	"farmadvisor-backend/internal/shared/server/middleware"
	"farmadvisor-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches advisory routes for the authenticated caller.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/advisories", h.create)
	rg.GET("/advisories", h.list)
	rg.GET("/advisories/analytics", h.analytics)
	rg.DELETE("/advisories/:id", h.remove)
}

// RegisterAdminRoutes attaches per-user admin views.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/users/:id/advisories", h.adminList)
	rg.GET("/users/:id/analytics", h.adminAnalytics)
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var in engine.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	adv, err := h.Svc.Create(c.Request.Context(), userID, in)
	if err != nil {
		if errors.Is(err, engine.ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to evaluate advisory", nil)
		return
	}

	c.Set("advisoryId", adv.ID)
	respond.JSON(c, http.StatusCreated, adv)
}

func (h *Handler) list(c *gin.Context) {
	h.listFor(c, middleware.UserIDFromContext(c))
}

func (h *Handler) analytics(c *gin.Context) {
	h.analyticsFor(c, middleware.UserIDFromContext(c))
}

func (h *Handler) remove(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	advisoryID := c.Param("id")

	if err := h.Svc.Delete(c.Request.Context(), userID, advisoryID); err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "advisory not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete advisory", nil)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) adminList(c *gin.Context) {
	h.listFor(c, c.Param("id"))
}

func (h *Handler) adminAnalytics(c *gin.Context) {
	h.analyticsFor(c, c.Param("id"))
}

func (h *Handler) listFor(c *gin.Context, userID string) {
	limit := defaultHistoryLimit
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit < 0 {
		limit = 0
	}
	if limit > 100 {
		limit = 100
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	list, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list advisories", nil)
		return
	}
	if list == nil {
		list = []Advisory{}
	}
	respond.JSON(c, http.StatusOK, list)
}

func (h *Handler) analyticsFor(c *gin.Context, userID string) {
	analytics, err := h.Svc.Analytics(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to compute analytics", nil)
		return
	}
	respond.JSON(c, http.StatusOK, analytics)
}
