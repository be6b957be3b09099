package http

import (
	"github.com/gin-gonic/gin"
	"github.com/penpot-ir/panel/core"
	"github.com/penpot-ir/panel/ports"
	"github.com/penpot-ir/panel/service"
	"go.uber.org/zap"
)

// RouterDeps are the services the router dispatches to
type RouterDeps struct {
	Auth      *service.AuthService
	Sessions  *service.SessionManager
	Dashboard *service.DashboardService
	Events    ports.EventPublisher
	Logger    *zap.Logger
}

// SetupRouter sets up the Gin router
func SetupRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(RequestLogger(deps.Logger), gin.Recovery())

	auth := NewAuthHandlers(deps.Auth, deps.Sessions, deps.Events, deps.Logger)
	pages := NewPageHandlers(deps.Dashboard, deps.Logger)

	router.GET("/", auth.Root)
	router.GET(LoginPath, auth.LoginPage)

	api := router.Group("/api")
	{
		api.POST("/login", auth.Login)
		api.POST("/logout", auth.Logout)
	}

	admin := router.Group(AdminHome)
	admin.Use(RequireRole(deps.Sessions, core.RoleAdmin))
	{
		admin.GET("", pages.AdminOverview)
		admin.GET("/users", pages.AdminUsers)
		admin.GET("/plans", pages.AdminPlans)
		admin.GET("/services", pages.AdminServices)
		admin.GET("/payments", pages.AdminPayments)
	}

	user := router.Group(UserHome)
	user.Use(RequireRole(deps.Sessions, core.RoleUser))
	{
		user.GET("", pages.UserOverview)
		user.GET("/plan", pages.UserPlan)
		user.GET("/billing", pages.UserBilling)
		user.GET("/services", pages.UserServices)
	}

	return router
}
