package routes

import (
	leadsapi "crm-backend/internal/api/leads"
	profilesapi "crm-backend/internal/api/profiles"
	templatesapi "crm-backend/internal/api/templates"
	"crm-backend/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public pages: anonymous traffic, no auth, read-only except leads
	r.GET("/p/:slug", profilesapi.PublicProfilePage)

	// ✅ Sanitize anonymous write input only
	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())
	public.POST("/leads", leadsapi.CaptureLead)
	public.POST("/p/:slug/leads", leadsapi.CaptureLeadForSlug)

	// Authenticated editors
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())
	auth.GET("/templates", templatesapi.ListTemplates)
	auth.POST("/templates", templatesapi.CreateTemplate)
	auth.POST("/templates/:id/duplicate", templatesapi.DuplicateTemplate)
	auth.DELETE("/templates/:id", templatesapi.DeleteTemplate)

	auth.POST("/profiles/from-template/:id", profilesapi.CreateProfileFromTemplate)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))
	admin.POST("/templates", templatesapi.CreateGlobalTemplate)
}
