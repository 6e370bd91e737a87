package server

import (
	"github.com/teamscope-ai/teamscope/backend/internal/server/middleware"
	"github.com/teamscope-ai/teamscope/backend/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	apiRoutes := e.Group("/api", middleware.AuthMiddleware)

	// Team routes
	apiRoutes.GET("/teams", routes.GetTeamsHandler)
	apiRoutes.POST("/teams", routes.CreateTeamHandler, middleware.RequirePermission("team.create"))
	apiRoutes.DELETE("/teams/:id", routes.DeleteTeamHandler, middleware.RequirePermission("team.delete"))

	// Contact routes
	apiRoutes.GET("/teams/:id/contacts", routes.GetContactsHandler)
	apiRoutes.POST("/teams/:id/contacts", routes.CreateContactHandler, middleware.RequirePermission("contact.create"))
	apiRoutes.PATCH("/contacts/:id", routes.EditContactHandler, middleware.RequirePermission("contact.update"))
	apiRoutes.DELETE("/contacts/:id", routes.DeleteContactHandler, middleware.RequirePermission("contact.delete"))
	apiRoutes.GET("/contacts/:id/avatar", routes.GetContactAvatarHandler)

	// Analysis and graph routes
	apiRoutes.POST("/teams/:id/analyze", routes.AnalyzeTeamHandler, middleware.RequirePermission("team.analyze"))
	apiRoutes.POST("/teams/:id/analysis", routes.ImportAnalysisHandler, middleware.RequirePermission("team.analyze"))
	apiRoutes.GET("/teams/:id/graph", routes.GetTeamGraphHandler)
	apiRoutes.GET("/teams/:id/hierarchy", routes.GetTeamHierarchyHandler)

	// Availability routes
	apiRoutes.GET("/teams/:id/availability", routes.GetTeamAvailabilityHandler)
	apiRoutes.POST("/availability", routes.ComputeAvailabilityHandler)
}
