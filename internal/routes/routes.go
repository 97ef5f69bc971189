package routes

import (
	"github.com/gin-gonic/gin"

	"freetrack/internal/handlers"
	"freetrack/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	clientHandler *handlers.ClientHandler,
	contactHandler *handlers.ContactHandler,
	sourceHandler *handlers.SourceHandler,
	projectHandler *handlers.ProjectHandler,
	boardHandler *handlers.BoardHandler,
	stepHandler *handlers.StepHandler,
	reportHandler *handlers.ReportHandler,
) *gin.Engine {

	// ---- public
	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)
	r.POST("/refresh", authHandler.RefreshToken)

	// ---- protected
	r.Use(middleware.AuthMiddleware())

	r.POST("/logout", authHandler.Logout)

	// BOARD
	r.GET("/board", boardHandler.Get)

	// CLIENTS
	clients := r.Group("/clients")
	{
		clients.POST("/", clientHandler.Create)
		clients.GET("/", clientHandler.List)
		clients.GET("/:id", clientHandler.GetByID)
		clients.PUT("/:id", clientHandler.Update)
		clients.DELETE("/:id", clientHandler.Delete)
	}

	// CONTACTS
	contacts := r.Group("/contacts")
	{
		contacts.POST("/", contactHandler.Create)
		contacts.GET("/", contactHandler.List)
		contacts.GET("/:id", contactHandler.GetByID)
		contacts.PUT("/:id", contactHandler.Update)
		contacts.DELETE("/:id", contactHandler.Delete)
	}

	// SOURCES
	sources := r.Group("/sources")
	{
		sources.POST("/", sourceHandler.Create)
		sources.GET("/", sourceHandler.List)
		sources.GET("/:id", sourceHandler.GetByID)
		sources.PUT("/:id", sourceHandler.Update)
		sources.DELETE("/:id", sourceHandler.Delete)
	}

	// PROJECTS
	projects := r.Group("/projects")
	{
		projects.POST("/", projectHandler.Create)
		projects.GET("/", projectHandler.List)
		projects.GET("/:id", projectHandler.GetByID)
		projects.PUT("/:id", projectHandler.Update)
		projects.DELETE("/:id", projectHandler.Delete)
		projects.GET("/:id/steps", projectHandler.Steps)
		projects.POST("/:id/transition", projectHandler.Transition)
		projects.GET("/:id/report.pdf", reportHandler.ProjectReport)
	}

	// STEPS (one endpoint per status intent)
	steps := r.Group("/steps")
	{
		steps.POST("/:id/schedule", stepHandler.Schedule)
		steps.POST("/:id/waiting-feedback", stepHandler.MarkWaitingFeedback)
		steps.POST("/:id/validate", stepHandler.Validate)
		steps.POST("/:id/fail", stepHandler.Fail)
		steps.POST("/:id/cancel", stepHandler.Cancel)
	}

	// REPORTS
	reports := r.Group("/reports")
	{
		reports.GET("/summary", reportHandler.GetSummary)
	}

	return r
}
