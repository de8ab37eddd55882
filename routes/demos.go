package routes

import (
	"lead-capture-backend/handlers/demos"

	"github.com/gin-gonic/gin"
)

func DemosRoutes(public, admin *gin.RouterGroup, d Deps) {
	h := demos.New(d.Store, d.Notifier, d.CRM)
	public.POST("/leads/:id/demo", h.CreateDemoRequest)
	admin.PUT("/demos/:id/status", h.UpdateDemoStatus)
}
