package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "brushquote/docs"
	"brushquote/internal/config"
	"brushquote/internal/handler"
	"brushquote/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	templateH *handler.TemplateHandler,
	sessionH *handler.SessionHandler,
	proposalH *handler.ProposalHandler,
	uploadH *handler.UploadHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// API documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Template routes
	templates := v1.Group("/templates")
	templates.POST("", templateH.Create)
	templates.GET("", templateH.List)
	templates.GET("/:id", templateH.GetByID)
	templates.PUT("/:id", templateH.Update)
	templates.DELETE("/:id", templateH.Delete)

	// Form session routes
	sessions := v1.Group("/sessions")
	sessions.POST("", sessionH.Create)
	sessions.GET("/:id", sessionH.View)
	sessions.DELETE("/:id", sessionH.Close)
	sessions.PUT("/:id/mode", sessionH.SetMode)
	sessions.PUT("/:id/fields/:fieldID", sessionH.UpdateValue)
	sessions.POST("/:id/fields/:fieldID/rows", sessionH.SelectRow)
	sessions.POST("/:id/fields/:fieldID/cells", sessionH.SetCell)
	sessions.POST("/:id/fields/:fieldID/quantity", sessionH.AdjustQuantity)
	sessions.POST("/:id/fields/:fieldID/groups", sessionH.SelectGroup)
	sessions.POST("/:id/submit", sessionH.Submit)

	// Proposal routes
	proposals := v1.Group("/proposals")
	proposals.GET("", proposalH.List)
	proposals.GET("/:id", proposalH.GetByID)
	proposals.DELETE("/:id", proposalH.Delete)
	proposals.GET("/:id/export/csv", proposalH.ExportCSV)
	proposals.GET("/:id/export/xlsx", proposalH.ExportXLSX)

	// Upload routes
	uploads := v1.Group("/uploads")
	uploads.POST("", uploadH.Upload)
	uploads.GET("/:id", uploadH.GetByID)
	uploads.DELETE("/:id", uploadH.Delete)

	return r
}
