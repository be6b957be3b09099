package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/penpot-ir/panel/service"
	"go.uber.org/zap"
)

// PageHandlers serve the read-only admin and user pages
type PageHandlers struct {
	dashboard *service.DashboardService
	logger    *zap.Logger
}

// NewPageHandlers creates new page handlers
func NewPageHandlers(dashboard *service.DashboardService, logger *zap.Logger) *PageHandlers {
	return &PageHandlers{
		dashboard: dashboard,
		logger:    logger,
	}
}

func (h *PageHandlers) respond(c *gin.Context, data interface{}, err error) {
	if err != nil {
		h.logger.Error("failed to load page", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, data)
}

func (h *PageHandlers) AdminOverview(c *gin.Context) {
	stats, err := h.dashboard.AdminStats(c.Request.Context())
	h.respond(c, stats, err)
}

func (h *PageHandlers) AdminUsers(c *gin.Context) {
	users, err := h.dashboard.Users(c.Request.Context())
	h.respond(c, gin.H{"users": users}, err)
}

func (h *PageHandlers) AdminPlans(c *gin.Context) {
	plans, err := h.dashboard.Plans(c.Request.Context())
	h.respond(c, gin.H{"plans": plans}, err)
}

func (h *PageHandlers) AdminServices(c *gin.Context) {
	services, err := h.dashboard.Services(c.Request.Context())
	h.respond(c, gin.H{"services": services}, err)
}

func (h *PageHandlers) AdminPayments(c *gin.Context) {
	payments, err := h.dashboard.Payments(c.Request.Context())
	h.respond(c, gin.H{"payments": payments}, err)
}

// UserOverview is the landing page of an end user
func (h *PageHandlers) UserOverview(c *gin.Context) {
	identity, _ := CurrentIdentity(c)

	overview, err := h.dashboard.UserOverview(c.Request.Context(), identity.ID)
	h.respond(c, gin.H{"user": newUserResponse(identity), "overview": overview}, err)
}

func (h *PageHandlers) UserPlan(c *gin.Context) {
	identity, _ := CurrentIdentity(c)

	choice, err := h.dashboard.UserPlans(c.Request.Context(), identity.ID)
	h.respond(c, choice, err)
}

func (h *PageHandlers) UserBilling(c *gin.Context) {
	identity, _ := CurrentIdentity(c)

	payments, err := h.dashboard.UserPayments(c.Request.Context(), identity.ID)
	h.respond(c, gin.H{"payments": payments}, err)
}

func (h *PageHandlers) UserServices(c *gin.Context) {
	identity, _ := CurrentIdentity(c)

	choice, err := h.dashboard.UserServices(c.Request.Context(), identity.ID)
	h.respond(c, choice, err)
}
